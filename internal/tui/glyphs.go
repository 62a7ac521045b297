package tui

import (
	"os"
	"strings"
	"sync/atomic"
)

// STEPFOLIO_TUI_GLYPHS=ascii swaps the few non-ASCII glyphs for terminals and
// fonts that render them badly.
var asciiGlyphs atomic.Bool

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STEPFOLIO_TUI_GLYPHS"))) {
	case "ascii":
		asciiGlyphs.Store(true)
	case "", "unicode", "utf8":
		asciiGlyphs.Store(false)
	}
}

func glyph(unicode, ascii string) string {
	if asciiGlyphs.Load() {
		return ascii
	}
	return unicode
}

func glyphStar() string      { return glyph("★", "*") }
func glyphEllipsis() string  { return glyph("…", "...") }
func glyphSeparator() string { return glyph("›", ">") }
