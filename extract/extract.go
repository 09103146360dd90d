package extract

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/middlemost/podgen"
)

// Ensure service implements interface.
var _ podgen.TextExtractor = &TextExtractor{}

// TextExtractor extracts plain text from uploaded documents.
// Supported formats are dispatched on the filename extension.
type TextExtractor struct{}

// NewTextExtractor returns a new instance of TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText extracts the document text. Text files are decoded verbatim;
// PDF files are rendered page by page with "--- PAGE n ---" marker lines.
func (e *TextExtractor) ExtractText(ctx context.Context, doc *podgen.Document) (string, error) {
	switch {
	case strings.HasSuffix(doc.Name, ".txt"):
		return extractPlainText(doc.Data)
	case strings.HasSuffix(doc.Name, ".pdf"):
		return extractPDFText(doc.Data)
	default:
		return "", podgen.ErrUnsupportedFormat
	}
}

// extractPlainText decodes buf as UTF-8 text.
func extractPlainText(buf []byte) (string, error) {
	if !utf8.Valid(buf) {
		return "", podgen.ErrDecode
	}
	return string(buf), nil
}

// extractPDFText concatenates per-page segments in page order. Pages whose
// text cannot be extracted contribute an empty segment rather than an error.
func extractPDFText(buf []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		text, err := r.Page(i).GetPlainText(nil)
		if err != nil {
			text = ""
		}
		sb.WriteString(pageSegment(i, text))
	}
	return sb.String(), nil
}

// pageSegment formats one page as a marker line followed by its text.
func pageSegment(page int, text string) string {
	return podgen.PageMarker(page) + "\n" + text + "\n"
}
