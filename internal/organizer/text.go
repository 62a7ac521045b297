package organizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText trims user input and puts it in NFC form so that visually equal names
// compare equal. An empty result means "no input".
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
