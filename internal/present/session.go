// Package present runs a step-by-step presentation of one task with an
// elapsed-time counter.
package present

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is a snapshot of the session.
type State struct {
	Steps   []string
	Index   int
	Elapsed int // seconds
	Running bool
}

// Current returns the step being shown, or "" when nothing is.
func (s State) Current() string {
	if !s.Running || s.Index < 0 || s.Index >= len(s.Steps) {
		return ""
	}
	return s.Steps[s.Index]
}

// Position renders "2/5" style progress.
func (s State) Position() string {
	if len(s.Steps) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", s.Index+1, len(s.Steps))
}

type Session struct {
	clock    Clock
	interval time.Duration

	// run serializes Start and Stop so there is never more than one ticker.
	run    sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	steps   []string
	index   int
	elapsed int
	running bool

	updates chan State
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		clock:    realClock{},
		interval: time.Second,
		updates:  make(chan State, 1),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start begins presenting steps from the first one with the timer at zero.
// An empty list leaves the session as it is and returns false.
func (s *Session) Start(steps []string) bool {
	if len(steps) == 0 {
		return false
	}
	s.run.Lock()
	defer s.run.Unlock()

	s.stopTickerLocked()

	s.mu.Lock()
	s.steps = append([]string(nil), steps...)
	s.index = 0
	s.elapsed = 0
	s.running = true
	s.publishLocked()
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	t := s.clock.NewTicker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				s.Tick()
			}
		}
	}()
	return true
}

// Stop ends the session and resets the timer. There is no resume.
func (s *Session) Stop() {
	s.run.Lock()
	defer s.run.Unlock()

	s.stopTickerLocked()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running && s.elapsed == 0 {
		return
	}
	s.running = false
	s.elapsed = 0
	s.publishLocked()
}

// stopTickerLocked cancels the ticker goroutine and waits for it to exit.
// Caller holds s.run.
func (s *Session) stopTickerLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
}

// Next moves to the following step; it stops at the last one.
func (s *Session) Next() bool {
	return s.step(+1)
}

// Previous moves to the preceding step; it stops at the first one.
func (s *Session) Previous() bool {
	return s.step(-1)
}

func (s *Session) step(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	next := s.index + delta
	if next < 0 || next >= len(s.steps) {
		return false
	}
	s.index = next
	s.publishLocked()
	return true
}

// Tick advances the timer by one second while running.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.elapsed++
	s.publishLocked()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Steps:   append([]string(nil), s.steps...),
		Index:   s.index,
		Elapsed: s.elapsed,
		Running: s.running,
	}
}

// Updates delivers the latest State after each change. Slow readers only see
// the most recent one.
func (s *Session) Updates() <-chan State {
	return s.updates
}

func (s *Session) publishLocked() {
	st := s.stateLocked()
	select {
	case s.updates <- st:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- st:
	default:
	}
}

// FormatElapsed renders seconds as MM:SS. Minutes are not capped at 59.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
