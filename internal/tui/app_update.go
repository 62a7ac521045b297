package tui

import (
	"stepfolio/internal/model"
	"stepfolio/internal/organizer"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case presentStateMsg:
		if !m.presenting {
			return m, nil
		}
		var cmd tea.Cmd
		m.present, cmd = m.present.onState(msg.state)
		return m, cmd

	case flashDoneMsg:
		m.present = m.present.onFlashDone(msg.seq)
		return m, nil

	case statusDoneMsg:
		if msg.seq == m.statusSeq && !m.statusErr {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Stop()
			return m, tea.Quit
		}
		if m.statusErr {
			m.status = ""
			m.statusErr = false
		}
		switch {
		case m.presenting:
			return m.updatePresenting(msg)
		case m.modal != modalNone:
			return m.updateModal(msg)
		}
		if m.activeList().FilterState() == list.Filtering {
			return m.updateActiveList(msg)
		}
		switch m.view {
		case viewFolder:
			if m.pane == paneSteps {
				return m.updateSteps(msg)
			}
			return m.updateFolder(msg)
		default:
			return m.updateFolders(msg)
		}
	}
	return m.updateActiveList(msg)
}

func (m *appModel) activeList() *list.Model {
	switch {
	case m.view == viewFolders:
		return &m.foldersList
	case m.pane == paneSteps:
		return &m.stepsList
	default:
		return &m.tasksList
	}
}

func (m appModel) updateActiveList(msg tea.Msg) (appModel, tea.Cmd) {
	l := m.activeList()
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	if l == &m.tasksList {
		m.refreshSteps()
	}
	return m, cmd
}

func (m appModel) updatePresenting(msg tea.KeyMsg) (appModel, tea.Cmd) {
	var (
		cmd  tea.Cmd
		exit bool
	)
	m.present, cmd, exit = m.present.handleKey(msg)
	if exit {
		m.presenting = false
		m.log.Info("presentation ended", "elapsed", m.present.state.Elapsed)
	}
	return m, cmd
}

func (m appModel) updateFolders(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "right", "l":
		if f, ok := m.selectedFolder(); ok {
			m.nav.OpenFolder(f.ID)
		}
		return m, nil
	case "n":
		return m.openPrompt(modalNewFolder, "", 0, "")
	case "r":
		if f, ok := m.selectedFolder(); ok && !f.IsRewards {
			return m.openPrompt(modalRenameFolder, f.ID, 0, f.Name)
		}
		return m, nil
	case "d":
		if f, ok := m.selectedFolder(); ok && !f.IsRewards {
			m.openConfirm(modalConfirmDeleteFolder, f.ID)
		}
		return m, nil
	case "K", "shift+up":
		return m.swapFolder(-1)
	case "J", "shift+down":
		return m.swapFolder(1)
	case "]":
		m.hist.Forward()
		return m, nil
	}
	return m.updateActiveList(msg)
}

// swapFolder swaps the selected folder with its neighbour and keeps it selected.
func (m appModel) swapFolder(delta int) (appModel, tea.Cmd) {
	items := m.foldersList.VisibleItems()
	i := m.foldersList.Index()
	j := i + delta
	if i < 0 || j < 0 || i >= len(items) || j >= len(items) {
		return m, nil
	}
	a := items[i].(folderItem).folder.ID
	b := items[j].(folderItem).folder.ID
	if _, err := m.org.SwapFolders(a, b); err != nil {
		m.setError("swap folders", err)
		return m, nil
	}
	m.refreshFolders()
	selectListItemByID(&m.foldersList, a)
	return m, nil
}

func (m appModel) updateFolder(msg tea.KeyMsg) (appModel, tea.Cmd) {
	f, ok := m.openFolder()
	if !ok {
		m.nav.ShowFolders()
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "[":
		if !m.hist.Back() {
			m.nav.ShowFolders()
		}
		return m, nil
	case "]":
		m.hist.Forward()
		return m, nil
	case "h", "left":
		m.nav.ShowFolders()
		return m, nil
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.openConfirm(modalConfirmDeleteTask, t.ID)
		}
		return m, nil
	}

	// The rewards folder is a log: entries can only be deleted.
	if f.IsRewards {
		return m.updateActiveList(msg)
	}

	t, hasTask := m.selectedTask()
	switch msg.String() {
	case "n":
		return m.openPrompt(modalNewTask, f.ID, 0, "")
	case "r":
		if hasTask {
			return m.openPrompt(modalRenameTask, t.ID, 0, t.Name)
		}
		return m, nil
	case "m":
		if hasTask {
			m.openMovePicker(f.ID, t.ID)
		}
		return m, nil
	case "p", "enter":
		if hasTask {
			return m.startPresenting(t)
		}
		return m, nil
	case "c":
		if hasTask {
			return m.openPrompt(modalReward, t.ID, 0, "")
		}
		return m, nil
	case "K", "shift+up":
		return m.swapTask(f.ID, -1)
	case "J", "shift+down":
		return m.swapTask(f.ID, 1)
	case "a":
		if hasTask {
			return m.openPrompt(modalAddStep, t.ID, 0, "")
		}
		return m, nil
	case "tab":
		if len(m.stepsList.Items()) > 0 {
			m.pane = paneSteps
		}
		return m, nil
	}
	return m.updateActiveList(msg)
}

func (m appModel) swapTask(folderID string, delta int) (appModel, tea.Cmd) {
	items := m.tasksList.VisibleItems()
	i := m.tasksList.Index()
	j := i + delta
	if i < 0 || j < 0 || i >= len(items) || j >= len(items) {
		return m, nil
	}
	a := items[i].(taskItem).task.ID
	b := items[j].(taskItem).task.ID
	if _, err := m.org.SwapTasks(folderID, a, b); err != nil {
		m.setError("swap tasks", err)
		return m, nil
	}
	m.refreshTasks()
	selectListItemByID(&m.tasksList, a)
	m.refreshSteps()
	return m, nil
}

func (m appModel) updateSteps(msg tea.KeyMsg) (appModel, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		m.pane = paneTasks
		return m, nil
	}
	idx, hasStep := m.selectedStep()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "esc", "h", "left":
		m.pane = paneTasks
		return m, nil
	case "a":
		return m.openPrompt(modalAddStep, t.ID, 0, "")
	case "e", "enter":
		if hasStep {
			return m.openPrompt(modalEditStep, t.ID, idx, t.Steps[idx])
		}
		return m, nil
	case "x", "d":
		if hasStep {
			if _, err := m.org.RemoveStep(t.ID, idx); err != nil {
				m.setError("remove step", err)
			}
		}
		return m, nil
	case "K", "shift+up":
		return m.swapStep(t.ID, idx, idx-1, hasStep)
	case "J", "shift+down":
		return m.swapStep(t.ID, idx, idx+1, hasStep)
	case "p":
		return m.startPresenting(t)
	}
	return m.updateActiveList(msg)
}

func (m appModel) swapStep(taskID string, i, j int, ok bool) (appModel, tea.Cmd) {
	if !ok {
		return m, nil
	}
	changed, err := m.org.SwapSteps(taskID, i, j)
	if err != nil {
		m.setError("swap steps", err)
		return m, nil
	}
	if changed {
		m.refreshTasks()
		selectIndex(&m.stepsList, j)
	}
	return m, nil
}

func (m appModel) startPresenting(t model.Task) (appModel, tea.Cmd) {
	if !m.session.Start(t.Steps) {
		return m, m.setStatus("Nothing to present: add a step first")
	}
	m.log.Info("presentation started", "task", t.ID, "steps", len(t.Steps))
	m.presenting = true
	m.present = newPresentView(t.Name, m.session)
	return m, listenPresent(m.session)
}

func (m appModel) openPrompt(kind modalKind, forID string, forIdx int, initial string) (appModel, tea.Cmd) {
	m.modal = kind
	m.modalForID = forID
	m.modalForIdx = forIdx
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *appModel) openConfirm(kind modalKind, forID string) {
	m.modal = kind
	m.modalForID = forID
	m.confirmFocus = confirmFocusConfirm
}

func (m *appModel) openMovePicker(fromFolderID, taskID string) {
	var items []list.Item
	for _, f := range m.org.ListFolders() {
		if f.ID == fromFolderID {
			continue
		}
		items = append(items, moveTargetItem{folder: f})
	}
	if len(items) == 0 {
		return
	}
	m.moveList.SetItems(items)
	m.moveList.Select(0)
	m.modal = modalPickMoveTarget
	m.modalForID = taskID
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.modalForIdx = 0
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updateModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case m.modal.isPrompt():
		switch msg.String() {
		case "esc":
			m.closeModal()
			return m, nil
		case "enter":
			return m.submitPrompt(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case m.modal == modalPickMoveTarget:
		switch msg.String() {
		case "esc", "q":
			m.closeModal()
			return m, nil
		case "enter":
			it, ok := m.moveList.SelectedItem().(moveTargetItem)
			taskID := m.modalForID
			m.closeModal()
			if !ok {
				return m, nil
			}
			if _, err := m.org.MoveTask(taskID, m.folderID, it.folder.ID); err != nil {
				m.setError("move task", err)
				return m, nil
			}
			return m, m.setStatus("Moved to " + it.folder.Name)
		}
		var cmd tea.Cmd
		m.moveList, cmd = m.moveList.Update(msg)
		return m, cmd
	}

	// Confirm modals.
	switch msg.String() {
	case "esc", "n":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.confirm()
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.closeModal()
			return m, nil
		}
		return m.confirm()
	}
	return m, nil
}

func (m appModel) confirm() (appModel, tea.Cmd) {
	kind, id := m.modal, m.modalForID
	m.closeModal()
	switch kind {
	case modalConfirmDeleteFolder:
		if _, err := m.org.RemoveFolder(id); err != nil {
			m.setError("delete folder", err)
		}
	case modalConfirmDeleteTask:
		if _, err := m.org.RemoveTask(m.folderID, id); err != nil {
			m.setError("delete task", err)
		}
	}
	return m, nil
}

// answer turns a submitted modal value into a Prompter for the *With operations.
func answer(v string) organizer.Prompter {
	return organizer.PromptFunc(func(_, _ string) (string, bool) { return v, true })
}

func (m appModel) submitPrompt(value string) (appModel, tea.Cmd) {
	kind, id, idx := m.modal, m.modalForID, m.modalForIdx
	m.closeModal()

	switch kind {
	case modalNewFolder:
		newID, err := m.org.CreateFolder(value)
		if err != nil {
			m.setError("create folder", err)
			return m, nil
		}
		if newID != "" {
			m.refreshFolders()
			selectListItemByID(&m.foldersList, newID)
		}
	case modalRenameFolder:
		if _, err := m.org.RenameFolderWith(answer(value), id); err != nil {
			m.setError("rename folder", err)
		}
	case modalNewTask:
		newID, err := m.org.CreateTask(id, value)
		if err != nil {
			m.setError("create task", err)
			return m, nil
		}
		if newID != "" {
			m.refreshTasks()
			selectListItemByID(&m.tasksList, newID)
			m.refreshSteps()
		}
	case modalRenameTask:
		if _, err := m.org.RenameTaskWith(answer(value), id); err != nil {
			m.setError("rename task", err)
		}
	case modalReward:
		rewardID, err := m.org.AddReward(value)
		if err != nil {
			m.setError("add reward", err)
			return m, nil
		}
		if reward, ok := m.org.Task(rewardID); ok {
			return m, m.setStatus(reward.Name + " " + glyphStar())
		}
	case modalAddStep:
		changed, err := m.org.AddStep(id, value)
		if err != nil {
			m.setError("add step", err)
			return m, nil
		}
		if changed {
			m.refreshTasks()
			selectIndex(&m.stepsList, len(m.stepsList.Items())-1)
		}
	case modalEditStep:
		if _, err := m.org.EditStepWith(answer(value), id, idx); err != nil {
			m.setError("edit step", err)
		}
	}
	return m, nil
}
