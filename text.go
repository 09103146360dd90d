package podgen

import (
	"fmt"
	"regexp"
	"strings"
)

// PageMarker returns the marker line emitted between extracted pages.
// Page numbering is 1-based.
func PageMarker(page int) string {
	return fmt.Sprintf("--- PAGE %d ---", page)
}

var (
	pageMarkerRegex = regexp.MustCompile(`--- PAGE \d+ ---`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize strips page markers and collapses whitespace runs into single
// spaces so the text forms one flowing paragraph. Empty input yields empty
// output.
func Normalize(text string) string {
	text = pageMarkerRegex.ReplaceAllString(text, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
