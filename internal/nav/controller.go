// Package nav tracks which view is showing (the folder list or one folder) and
// keeps it in step with a back/forward History.
package nav

import (
	"sync"

	"stepfolio/internal/model"
)

// Location is the current view. The zero value is the folder list.
type Location struct {
	FolderID string
}

func (l Location) IsRoot() bool { return l.FolderID == "" }

// Folders is the lookup the controller needs. *organizer.Store satisfies it.
type Folders interface {
	Folder(id string) (model.Folder, bool)
}

type Controller struct {
	folders Folders
	hist    History

	mu  sync.Mutex
	loc Location

	subsMu  sync.Mutex
	subs    map[int]func(Location)
	nextSub int
}

// New returns a controller showing the folder list and registers for h's pop
// signal.
func New(folders Folders, h History) *Controller {
	c := &Controller{
		folders: folders,
		hist:    h,
		subs:    map[int]func(Location){},
	}
	if h != nil {
		h.OnPop(c.restore)
	}
	return c
}

func (c *Controller) Location() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

// OpenFolder shows a folder and records it in History. Unknown ids are ignored.
func (c *Controller) OpenFolder(id string) bool {
	if _, ok := c.folders.Folder(id); !ok {
		return false
	}
	c.set(Location{FolderID: id})
	if c.hist != nil {
		c.hist.Push(Record{FolderID: id})
	}
	return true
}

// ShowFolders goes back to the folder list without touching History.
func (c *Controller) ShowFolders() {
	c.set(Location{})
}

// Restore shows the folder named by r without pushing a new record. A missing
// record, or one whose folder is gone, shows the folder list.
func (c *Controller) Restore(r Record, ok bool) {
	c.restore(r, ok)
}

func (c *Controller) restore(r Record, ok bool) {
	if ok && r.FolderID != "" {
		if _, exists := c.folders.Folder(r.FolderID); exists {
			c.set(Location{FolderID: r.FolderID})
			return
		}
	}
	c.set(Location{})
}

// Revalidate falls back to the folder list if the open folder no longer exists.
func (c *Controller) Revalidate() {
	loc := c.Location()
	if loc.IsRoot() {
		return
	}
	if _, ok := c.folders.Folder(loc.FolderID); !ok {
		c.set(Location{})
	}
}

// Subscribe registers fn for location changes. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(Location)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) set(loc Location) {
	c.mu.Lock()
	if c.loc == loc {
		c.mu.Unlock()
		return
	}
	c.loc = loc
	c.mu.Unlock()

	c.subsMu.Lock()
	fns := make([]func(Location), 0, len(c.subs))
	for i := 0; i < c.nextSub; i++ {
		if fn, ok := c.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	c.subsMu.Unlock()
	for _, fn := range fns {
		fn(loc)
	}
}
