package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderInputLine draws a text input as one filled row of bodyW columns. A
// newline in the view would wrap and read as inserted text, so it never gets one.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)
	line := lipgloss.NewStyle().
		Background(colorInputBg).
		Width(bodyW).
		Padding(0, 1).
		Render(inputView)
	line, _, _ = strings.Cut(line, "\n")
	return truncateLine(line, bodyW)
}
