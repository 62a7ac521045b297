package tui

import (
	"errors"
	"log/slog"

	"stepfolio/internal/nav"
	"stepfolio/internal/organizer"
	"stepfolio/internal/present"
	"stepfolio/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Org *organizer.Store
	// Data is where the view state file lives. A zero value disables it.
	Data   store.Store
	Theme  string
	Logger *slog.Logger
}

// Run starts the interactive organizer and blocks until the user quits.
func Run(opts Options) error {
	if opts.Org == nil {
		return errors.New("tui: nil organizer")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference()

	hist := nav.NewMemoryHistory()
	ctl := nav.New(opts.Org, hist)
	session := present.NewSession()
	defer session.Stop()

	restoreViewState(opts.Data, hist, ctl, log)

	m := newAppModel(opts.Org, ctl, hist, session, opts.Data, log)
	defer m.close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if serr := saveViewState(opts.Data, hist, ctl); serr != nil {
		log.Warn("save view state", "err", serr)
	}
	return err
}

type PresentOptions struct {
	Title  string
	Steps  []string
	Theme  string
	Logger *slog.Logger
}

// RunPresentation shows only the presentation overlay for a list of steps.
func RunPresentation(opts PresentOptions) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference()

	session := present.NewSession()
	if !session.Start(opts.Steps) {
		return errors.New("tui: nothing to present")
	}
	defer session.Stop()
	log.Info("presentation started", "title", opts.Title, "steps", len(opts.Steps))

	m := newPresentModel(opts.Title, session)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if pm, ok := final.(presentModel); ok {
		log.Info("presentation ended", "elapsed", present.FormatElapsed(pm.view.state.Elapsed))
	}
	return err
}
