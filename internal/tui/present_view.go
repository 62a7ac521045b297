package tui

import (
	"strings"
	"time"

	"stepfolio/internal/present"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const flashDuration = 2 * time.Second

// presentView is the step-at-a-time overlay. It is embedded in the app and
// also runs on its own for `stepfolio present`.
type presentView struct {
	title   string
	session *present.Session
	state   present.State

	flash    string
	flashErr bool
	flashSeq int
}

func newPresentView(title string, s *present.Session) presentView {
	return presentView{title: title, session: s, state: s.State()}
}

// listenPresent waits for the next session update.
func listenPresent(s *present.Session) tea.Cmd {
	return func() tea.Msg {
		return presentStateMsg{state: <-s.Updates()}
	}
}

func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

// onState applies a session update and keeps listening while the timer runs.
func (v presentView) onState(st present.State) (presentView, tea.Cmd) {
	v.state = st
	if st.Running {
		return v, listenPresent(v.session)
	}
	return v, nil
}

func (v presentView) onFlashDone(seq int) presentView {
	if seq == v.flashSeq {
		v.flash = ""
		v.flashErr = false
	}
	return v
}

// handleKey returns exit=true once the session has been stopped.
func (v presentView) handleKey(msg tea.KeyMsg) (presentView, tea.Cmd, bool) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		v.session.Previous()
		v.state = v.session.State()
	case "right", "l", " ", "tab":
		v.session.Next()
		v.state = v.session.State()
	case "y":
		v.flashSeq++
		if err := copyToClipboard(v.state.Current()); err != nil {
			v.flash = "copy failed: " + err.Error()
			v.flashErr = true
		} else {
			v.flash = "Copied step " + v.state.Position()
			v.flashErr = false
		}
		return v, flashCmd(v.flashSeq), false
	case "esc", "q":
		// Keep the final state for the caller; Stop resets elapsed.
		v.state = v.session.State()
		v.session.Stop()
		return v, nil, true
	}
	return v, nil, false
}

func (v presentView) render(width, height int) string {
	if width <= 0 {
		width = 80
	}
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := styleHeader().Render(v.title)
	pos := styleMuted().Render(v.state.Position())
	timer := lipgloss.NewStyle().Bold(true).Foreground(colorTimer).Render(present.FormatElapsed(v.state.Elapsed))

	header := title + "  " + pos
	gap := innerW - lipgloss.Width(header) - lipgloss.Width(timer)
	if gap < 1 {
		gap = 1
	}
	header = truncateLine(header+strings.Repeat(" ", gap)+timer, innerW)

	body := renderStepMarkdown(v.state.Current(), innerW)

	footer := styleMuted().Render("←/→ step   y copy   esc exit")
	if v.flash != "" {
		if v.flashErr {
			footer = styleError().Render(v.flash)
		} else {
			footer = lipgloss.NewStyle().Foreground(colorAccent).Render(v.flash)
		}
	}

	bodyH := height - 4
	if bodyH < 1 {
		bodyH = 1
	}
	out := strings.Join([]string{
		header,
		"",
		normalizePane(body, innerW, bodyH),
		footer,
	}, "\n")
	return lipgloss.NewStyle().Padding(0, 2).Render(out)
}

// presentModel is the standalone program behind `stepfolio present`.
type presentModel struct {
	view   presentView
	width  int
	height int
}

func newPresentModel(title string, s *present.Session) presentModel {
	return presentModel{view: newPresentView(title, s)}
}

func (m presentModel) Init() tea.Cmd { return listenPresent(m.view.session) }

func (m presentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case presentStateMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.onState(msg.state)
		return m, cmd
	case flashDoneMsg:
		m.view = m.view.onFlashDone(msg.seq)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.view.state = m.view.session.State()
			m.view.session.Stop()
			return m, tea.Quit
		}
		var (
			cmd  tea.Cmd
			exit bool
		)
		m.view, cmd, exit = m.view.handleKey(msg)
		if exit {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m presentModel) View() string {
	return m.view.render(m.width, m.height)
}
