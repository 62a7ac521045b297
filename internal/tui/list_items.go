package tui

import (
	"fmt"

	"stepfolio/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type folderItem struct {
	folder model.Folder
}

func (i folderItem) FilterValue() string { return i.folder.Name }
func (i folderItem) Title() string {
	if i.folder.IsRewards {
		return i.folder.Name + " " + glyphStar()
	}
	return i.folder.Name
}
func (i folderItem) Description() string {
	return countLabel(len(i.folder.Tasks), "task", "tasks")
}

type taskItem struct {
	task     model.Task
	folderID string
}

func (i taskItem) FilterValue() string { return i.task.Name }
func (i taskItem) Title() string       { return i.task.Name }
func (i taskItem) Description() string {
	return countLabel(len(i.task.Steps), "step", "steps")
}

type stepItem struct {
	index int
	text  string
}

func (i stepItem) FilterValue() string { return i.text }
func (i stepItem) Title() string       { return fmt.Sprintf("%d. %s", i.index+1, i.text) }

// moveTargetItem is a destination folder in the move picker.
type moveTargetItem struct {
	folder model.Folder
}

func (i moveTargetItem) FilterValue() string { return i.folder.Name }
func (i moveTargetItem) Title() string       { return i.folder.Name }

func countLabel(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// The app renders its own header and footer.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list quits on ESC/q by default; here ESC is "back" and q is handled by the app.
	l.DisableQuitKeybindings()

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

// newCompactList is a one-line-per-row list (steps pane, move picker).
func newCompactList(title string, items []list.Item) list.Model {
	l := newList(title, items)
	l.SetDelegate(newCompactItemDelegate())
	l.SetFilteringEnabled(false)
	return l
}

func selectListItemByID(l *list.Model, id string) {
	for i, it := range l.VisibleItems() {
		switch it := it.(type) {
		case folderItem:
			if it.folder.ID == id {
				l.Select(i)
				return
			}
		case taskItem:
			if it.task.ID == id {
				l.Select(i)
				return
			}
		case moveTargetItem:
			if it.folder.ID == id {
				l.Select(i)
				return
			}
		}
	}
}

// selectIndex clamps i into the list and selects it.
func selectIndex(l *list.Model, i int) {
	n := len(l.VisibleItems())
	if n == 0 {
		return
	}
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	l.Select(i)
}
