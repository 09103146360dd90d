package extract

import "testing"

// Ensure page segments carry the exact marker line and trailing newline.
func TestPageSegment(t *testing.T) {
	if got := pageSegment(1, "Intro text"); got != "--- PAGE 1 ---\nIntro text\n" {
		t.Fatalf("unexpected segment: %q", got)
	}

	// Unextractable pages contribute an empty segment, not an error.
	if got := pageSegment(12, ""); got != "--- PAGE 12 ---\n\n" {
		t.Fatalf("unexpected segment: %q", got)
	}
}
