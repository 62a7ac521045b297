package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane_FixedWidthAndHeight(t *testing.T) {
	in := "short\n" + strings.Repeat("x", 40) + "\n\x1b[1mbold\x1b[0m"
	out := normalizePane(in, 12, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 12 {
			t.Fatalf("line %d: expected width 12, got %d (%q)", i, w, ln)
		}
	}
}

func TestNormalizePane_CropsHeight(t *testing.T) {
	out := normalizePane("a\nb\nc", 3, 2)
	if got := strings.Split(out, "\n"); len(got) != 2 || strings.TrimSpace(got[1]) != "b" {
		t.Fatalf("unexpected crop: %q", out)
	}
}

func TestRenderInputLine_SingleLine(t *testing.T) {
	out := renderInputLine(20, "one\ntwo")
	if strings.Contains(out, "\n") {
		t.Fatalf("expected a single line, got %q", out)
	}
	if w := xansi.StringWidth(out); w > 20 {
		t.Fatalf("expected width <= 20, got %d", w)
	}
}
