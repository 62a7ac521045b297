package tui

import (
	"sync"

	"stepfolio/internal/organizer"
	"stepfolio/internal/present"
)

type view int

const (
	viewFolders view = iota
	viewFolder
)

func viewToString(v view) string {
	switch v {
	case viewFolders:
		return "folders"
	case viewFolder:
		return "folder"
	default:
		return "unknown"
	}
}

type pane int

const (
	paneTasks pane = iota
	paneSteps
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewFolder
	modalRenameFolder
	modalConfirmDeleteFolder
	modalNewTask
	modalRenameTask
	modalConfirmDeleteTask
	modalPickMoveTarget
	modalReward
	modalAddStep
	modalEditStep
)

func (k modalKind) isPrompt() bool {
	switch k {
	case modalNewFolder, modalRenameFolder, modalNewTask, modalRenameTask, modalReward, modalAddStep, modalEditStep:
		return true
	}
	return false
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// presentStateMsg carries a presentation session update into Update.
type presentStateMsg struct{ state present.State }

type flashDoneMsg struct{ seq int }

// statusDoneMsg clears the footer status if nothing newer replaced it.
type statusDoneMsg struct{ seq int }

// pendingChanges collects store and navigation signals between renders. The
// subscriber callbacks run inside Update (mutations are synchronous), so the
// model drains this right after handling each message.
type pendingChanges struct {
	mu       sync.Mutex
	regions  map[organizer.Region]bool
	location bool
}

func newPendingChanges() *pendingChanges {
	return &pendingChanges{regions: map[organizer.Region]bool{}}
}

func (p *pendingChanges) addRegion(r organizer.Region) {
	p.mu.Lock()
	p.regions[r] = true
	p.mu.Unlock()
}

func (p *pendingChanges) markLocation() {
	p.mu.Lock()
	p.location = true
	p.mu.Unlock()
}

func (p *pendingChanges) take() (regions map[organizer.Region]bool, location bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	regions, location = p.regions, p.location
	p.regions = map[organizer.Region]bool{}
	p.location = false
	return regions, location
}
