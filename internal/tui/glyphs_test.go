package tui

import (
	"testing"

	"stepfolio/internal/model"
)

func TestGlyphs_ASCIIFallback(t *testing.T) {
	t.Setenv("STEPFOLIO_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	t.Cleanup(func() { asciiGlyphs.Store(false) })

	if got := glyphStar(); got != "*" {
		t.Fatalf("star: got %q", got)
	}
	if got := glyphSeparator(); got != ">" {
		t.Fatalf("separator: got %q", got)
	}
	if got := (folderItem{folder: model.Folder{ID: model.RewardsFolderID, Name: model.RewardsFolderName, IsRewards: true}}).Title(); got != "Rewards *" {
		t.Fatalf("rewards title: got %q", got)
	}
}

func TestResolveTheme_Precedence(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("STEPFOLIO_TUI_THEME", "")
	if got := resolveTheme("light"); got != "light" {
		t.Fatalf("config: got %q", got)
	}
	t.Setenv("STEPFOLIO_TUI_THEME", "dark")
	if got := resolveTheme("light"); got != "dark" {
		t.Fatalf("env should win, got %q", got)
	}
}
