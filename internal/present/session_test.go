package present

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualClock hands out tickers that only fire when the test says so.
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) last() *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[len(c.tickers)-1]
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers one tick and blocks until the session goroutine took it.
func (t *manualTicker) fire() {
	t.ch <- time.Time{}
}

func TestStart_EmptyStepsStaysInactive(t *testing.T) {
	clk := &manualClock{}
	s := NewSession(WithClock(clk))
	require.False(t, s.Start(nil))
	require.False(t, s.Start([]string{}))
	require.False(t, s.State().Running)
	require.Zero(t, clk.count())
}

func TestNextPrevious_ClampAtEnds(t *testing.T) {
	s := NewSession(WithClock(&manualClock{}))
	defer s.Stop()
	require.True(t, s.Start([]string{"a", "b"}))

	require.True(t, s.Next())
	require.False(t, s.Next())
	require.False(t, s.Next())
	require.Equal(t, 1, s.State().Index)
	require.Equal(t, "b", s.State().Current())

	require.True(t, s.Previous())
	require.False(t, s.Previous())
	require.Equal(t, 0, s.State().Index)
	require.Equal(t, "1/2", s.State().Position())
}

func TestStart_CopiesSteps(t *testing.T) {
	s := NewSession(WithClock(&manualClock{}))
	defer s.Stop()
	steps := []string{"a", "b"}
	s.Start(steps)
	steps[0] = "changed"
	require.Equal(t, []string{"a", "b"}, s.State().Steps)
}

func TestTicker_AdvancesElapsed(t *testing.T) {
	clk := &manualClock{}
	s := NewSession(WithClock(clk))
	defer s.Stop()
	s.Start([]string{"a"})

	tk := clk.last()
	for i := 0; i < 65; i++ {
		tk.fire()
	}
	require.Eventually(t, func() bool { return s.State().Elapsed == 65 }, time.Second, time.Millisecond)
	require.Equal(t, "01:05", FormatElapsed(s.State().Elapsed))
}

func TestTick_IgnoredWhenStopped(t *testing.T) {
	s := NewSession(WithClock(&manualClock{}))
	s.Tick()
	require.Zero(t, s.State().Elapsed)
}

func TestStop_ResetsAndStopsTicker(t *testing.T) {
	clk := &manualClock{}
	s := NewSession(WithClock(clk))
	s.Start([]string{"a", "b"})
	s.Tick()
	s.Tick()
	require.Equal(t, 2, s.State().Elapsed)

	s.Stop()
	st := s.State()
	require.False(t, st.Running)
	require.Zero(t, st.Elapsed)
	require.Equal(t, "", st.Current())
	require.True(t, clk.last().isStopped())
	require.False(t, s.Next())
}

func TestRestart_NeverTwoTickers(t *testing.T) {
	clk := &manualClock{}
	s := NewSession(WithClock(clk))
	defer s.Stop()

	s.Start([]string{"a"})
	first := clk.last()
	s.Tick()

	s.Start([]string{"x", "y"})
	require.Equal(t, 2, clk.count())
	require.True(t, first.isStopped())
	require.False(t, clk.last().isStopped())

	st := s.State()
	require.Zero(t, st.Elapsed)
	require.Zero(t, st.Index)
	require.Equal(t, []string{"x", "y"}, st.Steps)
}

func TestUpdates_CoalesceToLatest(t *testing.T) {
	s := NewSession(WithClock(&manualClock{}))
	defer s.Stop()
	s.Start([]string{"a", "b"})
	s.Tick()
	s.Next()

	st := <-s.Updates()
	require.Equal(t, 1, st.Index)
	require.Equal(t, 1, st.Elapsed)

	select {
	case extra := <-s.Updates():
		t.Fatalf("unexpected extra update: %+v", extra)
	default:
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{65, "01:05"},
		{3599, "59:59"},
		{6000, "100:00"},
		{-3, "00:00"},
	}
	for _, tc := range tests {
		if got := FormatElapsed(tc.in); got != tc.want {
			t.Fatalf("FormatElapsed(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
