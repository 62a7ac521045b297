package tui

import (
	"log/slog"

	"stepfolio/internal/nav"
	"stepfolio/internal/store"
)

// restoreViewState reloads the navigation stack saved by the previous run.
// Missing or unreadable state just starts at the folders view.
func restoreViewState(data store.Store, hist *nav.MemoryHistory, ctl *nav.Controller, log *slog.Logger) {
	st, err := data.LoadViewState()
	if err != nil {
		log.Warn("load view state", "err", err)
		return
	}
	entries := make([]nav.Record, 0, len(st.History))
	for _, id := range st.History {
		entries = append(entries, nav.Record{FolderID: id})
	}
	hist.Restore(entries, st.HistoryIndex)

	// FolderID wins over the history cursor: "h" leaves the stack pointing at a
	// folder while showing the root.
	if st.FolderID == "" {
		ctl.Restore(nav.Record{}, false)
		return
	}
	ctl.Restore(nav.Record{FolderID: st.FolderID}, true)
}

func saveViewState(data store.Store, hist *nav.MemoryHistory, ctl *nav.Controller) error {
	entries, idx := hist.Entries()
	st := &store.ViewState{
		Version:      1,
		HistoryIndex: idx,
		FolderID:     ctl.Location().FolderID,
	}
	for _, r := range entries {
		st.History = append(st.History, r.FolderID)
	}
	return data.SaveViewState(st)
}
