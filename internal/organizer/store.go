package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"stepfolio/internal/model"
	"stepfolio/internal/store"
)

// Persister loads and saves the whole collection. *store.Snapshot implements it.
type Persister interface {
	Load(ctx context.Context) ([]model.Folder, bool, error)
	Save(ctx context.Context, folders []model.Folder) error
}

// IDFunc returns a new id with the given prefix that exists reports as unused.
type IDFunc func(prefix string, exists func(string) bool) (string, error)

type Store struct {
	mu      sync.Mutex
	p       Persister
	folders []model.Folder
	log     *slog.Logger
	newID   IDFunc

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open loads the collection from p, repairs anything that breaks the collection
// invariants and makes sure the Rewards folder exists. The repaired collection is
// written back only when something had to change.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:     p,
		log:   slog.New(slog.DiscardHandler),
		newID: store.NewID,
		subs:  map[int]func(Change){},
	}
	for _, o := range opts {
		o(s)
	}

	folders, malformed, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	if malformed {
		s.log.Warn("persisted folders could not be parsed; starting empty")
	}
	folders, repaired, err := normalize(folders, s.newID)
	if err != nil {
		return nil, err
	}
	if repaired {
		if err := p.Save(ctx, folders); err != nil {
			return nil, fmt.Errorf("save repaired folders: %w", err)
		}
		s.log.Info("repaired persisted folders", "folders", len(folders))
	}
	s.folders = folders
	return s, nil
}

// mutation edits fs (a private copy) and returns it with the Change it made.
// A nil Change means nothing changed.
type mutation func(fs []model.Folder) ([]model.Folder, *Change, error)

func (s *Store) apply(fn mutation) (*Change, error) {
	s.mu.Lock()
	next, ch, err := fn(model.CloneFolders(s.folders))
	if err != nil || ch == nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.p.Save(context.Background(), next); err != nil {
		s.mu.Unlock()
		s.log.Error("persist failed", "op", ch.Op, "err", err)
		return nil, fmt.Errorf("%s: %w", ch.Op, err)
	}
	s.folders = next
	s.mu.Unlock()

	s.log.Debug("mutation", "op", ch.Op, "region", string(ch.Region), "folder", ch.FolderID, "task", ch.TaskID)
	s.notify(*ch)
	return ch, nil
}

func (s *Store) read(fn func(fs []model.Folder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.folders)
}

// Subscribe registers fn to be called after every successful mutation.
// fn runs on the mutating goroutine after the store lock is released, so it may
// read from the store. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(c Change) {
	s.subsMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subsMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func folderIndex(fs []model.Folder, id string) int {
	for i := range fs {
		if fs[i].ID == id {
			return i
		}
	}
	return -1
}

func taskIndexIn(f model.Folder, taskID string) int {
	for i := range f.Tasks {
		if f.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// locateTask finds a task anywhere in the collection (task ids are global).
func locateTask(fs []model.Folder, taskID string) (fi, ti int) {
	for i := range fs {
		if j := taskIndexIn(fs[i], taskID); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

func (s *Store) issueID(fs []model.Folder, prefix string) (string, error) {
	ids := store.IDsIn(fs)
	return s.newID(prefix, func(id string) bool { return ids[id] })
}
