package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const viewStateFileName = "view_state.json"

// ViewState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It lives inside the data directory and is best effort: callers should tolerate
// missing/invalid data.
type ViewState struct {
	Version int `json:"version"`

	// History is the navigation stack, oldest first. Each entry is a folder id.
	History []string `json:"history,omitempty"`

	// HistoryIndex is the position of the current entry in History (-1 = root).
	HistoryIndex int `json:"historyIndex"`

	// FolderID is the open folder ("" = folders view).
	FolderID string `json:"folderId,omitempty"`
}

func (s Store) viewStatePath() string {
	return filepath.Join(s.Dir, viewStateFileName)
}

func defaultViewState() *ViewState {
	return &ViewState{Version: 1, HistoryIndex: -1}
}

func (s Store) LoadViewState() (*ViewState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return defaultViewState(), nil
	}
	b, err := os.ReadFile(s.viewStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultViewState(), nil
		}
		return nil, err
	}
	st := defaultViewState()
	if err := json.Unmarshal(b, st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return defaultViewState(), nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if st.HistoryIndex < -1 || st.HistoryIndex >= len(st.History) {
		st.HistoryIndex = len(st.History) - 1
	}
	return st, nil
}

func (s Store) SaveViewState(st *ViewState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, viewStateFileName+".*.tmp", s.viewStatePath(), b, 0o644)
}
