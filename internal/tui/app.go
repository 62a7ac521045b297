package tui

import (
	"log/slog"
	"strings"
	"time"

	"stepfolio/internal/model"
	"stepfolio/internal/nav"
	"stepfolio/internal/organizer"
	"stepfolio/internal/present"
	"stepfolio/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	org     *organizer.Store
	nav     *nav.Controller
	hist    *nav.MemoryHistory
	session *present.Session
	data    store.Store
	log     *slog.Logger

	width  int
	height int

	view     view
	pane     pane
	folderID string

	foldersList list.Model
	tasksList   list.Model
	stepsList   list.Model
	moveList    list.Model

	modal        modalKind
	modalForID   string
	modalForIdx  int
	input        textinput.Model
	confirmFocus confirmModalFocus

	presenting bool
	present    presentView

	status    string
	statusErr bool
	statusSeq int

	pending *pendingChanges
	unsubs  []func()
}

func newAppModel(org *organizer.Store, ctl *nav.Controller, hist *nav.MemoryHistory, session *present.Session, data store.Store, log *slog.Logger) appModel {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := appModel{
		org:     org,
		nav:     ctl,
		hist:    hist,
		session: session,
		data:    data,
		log:     log,
		pending: newPendingChanges(),
	}

	m.foldersList = newList("Folders", nil)
	m.tasksList = newList("Tasks", nil)
	m.stepsList = newCompactList("Steps", nil)
	m.moveList = newCompactList("Move to", nil)

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 200

	p := m.pending
	m.unsubs = append(m.unsubs,
		org.Subscribe(func(c organizer.Change) {
			log.Debug("change", "op", c.Op, "region", string(c.Region))
			p.addRegion(c.Region)
		}),
		ctl.Subscribe(func(loc nav.Location) {
			log.Debug("navigate", "folder", loc.FolderID)
			p.markLocation()
		}),
	)

	m.refreshFolders()
	m.syncLocation()
	return m
}

// close drops the store and navigation subscriptions.
func (m appModel) close() {
	for _, fn := range m.unsubs {
		fn()
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.applyPending()
	return next, cmd
}

// applyPending redraws whatever the subscriptions flagged during the last
// message.
func (m *appModel) applyPending() {
	regions, moved := m.pending.take()
	if len(regions) == 0 && !moved {
		return
	}
	if regions[organizer.RegionFolders] {
		// The open folder may be gone.
		m.nav.Revalidate()
		if _, again := m.pending.take(); again {
			moved = true
		}
	}
	if moved {
		m.syncLocation()
	}
	if regions[organizer.RegionFolders] || regions[organizer.RegionTasks] || regions[organizer.RegionRewards] || moved {
		m.refreshFolders()
	}
	if m.view == viewFolder && len(regions) > 0 {
		m.refreshTasks()
	}
}

// syncLocation makes the screen follow the navigation controller.
func (m *appModel) syncLocation() {
	loc := m.nav.Location()
	m.pane = paneTasks
	if loc.IsRoot() {
		prev := m.folderID
		m.view = viewFolders
		m.folderID = ""
		if prev != "" {
			selectListItemByID(&m.foldersList, prev)
		}
		return
	}
	m.view = viewFolder
	if m.folderID != loc.FolderID {
		m.folderID = loc.FolderID
		m.tasksList.ResetFilter()
		m.tasksList.Select(0)
		m.stepsList.Select(0)
	}
	selectListItemByID(&m.foldersList, loc.FolderID)
	m.refreshTasks()
}

func (m *appModel) refreshFolders() {
	selected := ""
	if it, ok := m.foldersList.SelectedItem().(folderItem); ok {
		selected = it.folder.ID
	}
	idx := m.foldersList.Index()

	folders := m.org.ListFolders()
	items := make([]list.Item, 0, len(folders))
	for _, f := range folders {
		items = append(items, folderItem{folder: f})
	}
	m.foldersList.SetItems(items)
	selectIndex(&m.foldersList, idx)
	if selected != "" {
		selectListItemByID(&m.foldersList, selected)
	}
}

func (m *appModel) refreshTasks() {
	selected := ""
	if it, ok := m.tasksList.SelectedItem().(taskItem); ok {
		selected = it.task.ID
	}
	idx := m.tasksList.Index()

	tasks, _ := m.org.ListTasks(m.folderID)
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t, folderID: m.folderID})
	}
	m.tasksList.SetItems(items)
	selectIndex(&m.tasksList, idx)
	if selected != "" {
		selectListItemByID(&m.tasksList, selected)
	}
	m.refreshSteps()
}

func (m *appModel) refreshSteps() {
	idx := m.stepsList.Index()
	var items []list.Item
	if t, ok := m.selectedTask(); ok {
		for i, s := range t.Steps {
			items = append(items, stepItem{index: i, text: s})
		}
	}
	m.stepsList.SetItems(items)
	selectIndex(&m.stepsList, idx)
	if len(items) == 0 && m.pane == paneSteps {
		m.pane = paneTasks
	}
}

func (m appModel) selectedFolder() (model.Folder, bool) {
	it, ok := m.foldersList.SelectedItem().(folderItem)
	if !ok {
		return model.Folder{}, false
	}
	return it.folder, true
}

// openFolder returns the folder shown in the detail view.
func (m appModel) openFolder() (model.Folder, bool) {
	if m.view != viewFolder {
		return model.Folder{}, false
	}
	return m.org.Folder(m.folderID)
}

func (m appModel) selectedTask() (model.Task, bool) {
	it, ok := m.tasksList.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m appModel) selectedStep() (int, bool) {
	it, ok := m.stepsList.SelectedItem().(stepItem)
	if !ok {
		return 0, false
	}
	return it.index, true
}

func (m *appModel) resizeLists() {
	bodyH := m.height - 4
	if bodyH < 3 {
		bodyH = 3
	}
	m.foldersList.SetSize(m.width, bodyH)
	leftW := m.width * 2 / 5
	if leftW < 20 {
		leftW = 20
	}
	rightW := m.width - leftW - 3
	if rightW < 10 {
		rightW = 10
	}
	m.tasksList.SetSize(leftW, bodyH)
	m.stepsList.SetSize(rightW, bodyH)

	pickerH := bodyH - 8
	if pickerH > 10 {
		pickerH = 10
	}
	if pickerH < 3 {
		pickerH = 3
	}
	m.moveList.SetSize(modalBodyWidth(m.width), pickerH)
	m.input.Width = modalBodyWidth(m.width) - 4
}

func (m *appModel) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	m.statusErr = false
	seq := m.statusSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m *appModel) setError(op string, err error) {
	m.log.Error(op, "err", err)
	m.statusSeq++
	m.status = op + ": " + err.Error()
	m.statusErr = true
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.presenting {
		return m.present.render(m.width, m.height)
	}
	if box := m.renderModal(); box != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	bodyH := m.height - 4
	if bodyH < 3 {
		bodyH = 3
	}
	var body string
	switch m.view {
	case viewFolder:
		body = m.renderFolderDetail(bodyH)
	default:
		body = normalizePane(m.foldersList.View(), m.width, bodyH)
	}
	return strings.Join([]string{
		m.renderHeader(),
		"",
		body,
		"",
		m.renderFooter(),
	}, "\n")
}

func (m appModel) renderHeader() string {
	crumbs := []string{"stepfolio", "Folders"}
	if f, ok := m.openFolder(); ok {
		crumbs = append(crumbs, f.Name)
	}
	sep := " " + glyphSeparator() + " "
	return truncateLine(styleHeader().Render(strings.Join(crumbs, sep)), m.width)
}

func (m appModel) renderFolderDetail(bodyH int) string {
	leftW := m.tasksList.Width()
	rightW := m.width - leftW - 3
	if rightW < 0 {
		rightW = 0
	}

	left := m.tasksList.View()
	if len(m.tasksList.Items()) == 0 {
		left = styleMuted().Render("No tasks. Press n to add one.")
		if f, ok := m.openFolder(); ok && f.IsRewards {
			left = styleMuted().Render("No rewards yet. Complete a task with c.")
		}
	}

	stepsTitle := "Steps"
	if m.pane == paneSteps {
		stepsTitle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(stepsTitle)
	} else {
		stepsTitle = styleMuted().Render(stepsTitle)
	}
	right := m.stepsList.View()
	if len(m.stepsList.Items()) == 0 {
		right = styleMuted().Render("No steps.")
	}
	right = stepsTitle + "\n" + right

	divider := strings.TrimSuffix(strings.Repeat(" │ \n", bodyH), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(left, leftW, bodyH),
		styleMuted().Render(divider),
		normalizePane(right, rightW, bodyH),
	)
}

func (m appModel) renderFooter() string {
	if m.status != "" {
		if m.statusErr {
			return truncateLine(styleError().Render(m.status), m.width)
		}
		return truncateLine(lipgloss.NewStyle().Foreground(colorAccent).Render(m.status), m.width)
	}
	return truncateLine(styleMuted().Render(m.helpLine()), m.width)
}

func (m appModel) helpLine() string {
	switch m.view {
	case viewFolder:
		if f, ok := m.openFolder(); ok && f.IsRewards {
			return "d delete   esc back   q quit"
		}
		if m.pane == paneSteps {
			return "a add   e edit   x remove   K/J move   tab tasks"
		}
		return "n new   r rename   m move   p present   c complete   d delete   K/J move   a add step   tab steps   esc back"
	default:
		return "enter open   n new   r rename   d delete   K/J move   q quit"
	}
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalNone:
		return ""
	case modalConfirmDeleteFolder:
		name := m.modalForID
		if f, ok := m.org.Folder(m.modalForID); ok {
			name = f.Name
		}
		return renderConfirmModal(m.width, "Delete folder", "Delete \""+name+"\" and all its tasks?", "Delete", "Cancel", m.confirmFocus)
	case modalConfirmDeleteTask:
		name := m.modalForID
		if t, ok := m.org.Task(m.modalForID); ok {
			name = t.Name
		}
		return renderConfirmModal(m.width, "Delete task", "Delete \""+name+"\"?", "Delete", "Cancel", m.confirmFocus)
	case modalPickMoveTarget:
		help := styleMuted().Render("enter: move   esc: cancel")
		return renderModalBox(m.width, "Move task", m.moveList.View()+"\n\n"+help)
	}
	title, label := promptText(m.modal)
	return renderPromptModal(m.width, title, label, m.input.View())
}

func promptText(k modalKind) (title, label string) {
	switch k {
	case modalNewFolder:
		return "New folder", "Folder name"
	case modalRenameFolder:
		return "Rename folder", "Folder name"
	case modalNewTask:
		return "New task", "Task name"
	case modalRenameTask:
		return "Rename task", "Task name"
	case modalReward:
		return "Task complete", "Reward yourself with"
	case modalAddStep:
		return "Add step", "Step"
	case modalEditStep:
		return "Edit step", "Step"
	}
	return "", ""
}
