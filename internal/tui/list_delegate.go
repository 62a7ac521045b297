package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// compactItemDelegate renders one row per item with a marker on the cursor row.
// Used for steps and the move picker, where descriptions add nothing.
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (compactItemDelegate) Height() int                         { return 1 }
func (compactItemDelegate) Spacing() int                        { return 0 }
func (compactItemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	width := m.Width()
	if width < 4 {
		return
	}
	title := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		title = t.Title()
	}
	marker, style := "  ", d.normal
	if index == m.Index() {
		marker, style = glyphSeparator()+" ", d.selected
	}
	fmt.Fprint(w, style.Render(normalizePane(marker+title, width, 1)))
}
