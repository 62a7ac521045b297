package nav

import "sync"

// Record is one history entry: the folder that was open.
type Record struct {
	FolderID string `json:"folderId"`
}

// History is a back/forward stack. Push adds an entry after the current one
// (dropping anything forward of it). OnPop registers the callback invoked when
// the user moves through the stack; ok is false when the move landed before the
// first entry.
type History interface {
	Push(r Record)
	OnPop(fn func(r Record, ok bool))
}

// MemoryHistory is an in-process History.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Record
	index   int // position of the current entry; -1 = before the first
	onPop   func(Record, bool)
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{index: -1}
}

func (h *MemoryHistory) Push(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], r)
	h.index = len(h.entries) - 1
}

func (h *MemoryHistory) OnPop(fn func(Record, bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPop = fn
}

// Back moves one entry back and fires the pop callback. It reports false when
// already before the first entry.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and fires the pop callback.
func (h *MemoryHistory) Forward() bool {
	return h.move(+1)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < -1 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	r, ok := h.currentLocked()
	fn := h.onPop
	h.mu.Unlock()

	if fn != nil {
		fn(r, ok)
	}
	return true
}

// Current returns the entry the stack is positioned on.
func (h *MemoryHistory) Current() (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentLocked()
}

func (h *MemoryHistory) currentLocked() (Record, bool) {
	if h.index < 0 || h.index >= len(h.entries) {
		return Record{}, false
	}
	return h.entries[h.index], true
}

// Entries returns a copy of the stack and the current position.
func (h *MemoryHistory) Entries() ([]Record, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Record(nil), h.entries...), h.index
}

// Restore replaces the stack (used when relaunching). An out-of-range index is
// clamped to the last entry. The pop callback is not fired.
func (h *MemoryHistory) Restore(entries []Record, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]Record(nil), entries...)
	if index < -1 || index >= len(h.entries) {
		index = len(h.entries) - 1
	}
	h.index = index
}
