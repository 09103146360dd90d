package podgen

import "context"

// Document errors.
const (
	ErrUnsupportedFormat = Error("unsupported file format: only pdf or txt allowed")
	ErrDecode            = Error("invalid text encoding")
)

// Document represents an uploaded source document.
// It is consumed by extraction and not retained afterward.
type Document struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// TextExtractor extracts plain text from a source document.
// Paged formats emit "--- PAGE n ---" marker lines between pages.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc *Document) (string, error)
}
