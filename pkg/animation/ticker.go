// Package animation provides the timing primitives that the choreo engine
// coordinates: tickers, progress controllers, easing curves, and tweens.
//
// # Core Components
//
//   - [Controller]: drives a named progress value from 0.0 to 1.0 (or back)
//     over a duration, applying an easing curve. Each run hands back a
//     completion channel so callers can join on it.
//
//   - [Ticker]: the low-level timing primitive. Active tickers are advanced
//     together by [StepTickers], either from a [Driver] loop in production
//     or manually from tests.
//
//   - Curves: easing functions such as [EaseOut] and [CubicBezier] that
//     transform linear progress into natural-feeling motion.
//
//   - [Tween]: maps the controller's 0-1 value onto other ranges or types.
//
// All tickers share a single logical timeline: one clock (see [SetClock])
// and one step loop. Pausing the timeline freezes every in-flight run
// without losing progress.
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback on each step while active.
//
// The callback receives the elapsed running time since Start, excluding any
// time spent paused. Tickers are advanced by [StepTickers]; they do not own
// a goroutine.
type Ticker struct {
	mu       sync.Mutex
	callback func(elapsed time.Duration)
	active   bool
	paused   bool
	start    time.Time
	frozen   time.Duration // elapsed time banked across pauses
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return
	}
	t.active = true
	t.paused = false
	t.frozen = 0
	t.start = Now()
	t.mu.Unlock()

	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.active = false
	t.mu.Unlock()

	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// Pause freezes the ticker's elapsed time. The ticker stays registered but
// is skipped by StepTickers until resumed.
func (t *Ticker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || t.paused {
		return
	}
	t.frozen += Since(t.start)
	t.paused = true
}

// Resume continues a paused ticker from where it left off.
func (t *Ticker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || !t.paused {
		return
	}
	t.start = Now()
	t.paused = false
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Elapsed returns the running time since the ticker started, excluding
// paused intervals.
func (t *Ticker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Ticker) elapsedLocked() time.Duration {
	if !t.active {
		return 0
	}
	if t.paused {
		return t.frozen
	}
	return t.frozen + Since(t.start)
}

// StepTickers advances all active, unpaused tickers. This is called once per
// frame by a [Driver], or directly by tests that control the clock.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start or stop tickers without deadlocking.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	for _, ticker := range tickers {
		ticker.mu.Lock()
		active, paused := ticker.active, ticker.paused
		elapsed := ticker.elapsedLocked()
		callback := ticker.callback
		ticker.mu.Unlock()

		if active && !paused && callback != nil {
			callback(elapsed)
		}
	}
}

// PauseTickers pauses every active ticker, freezing the shared timeline.
func PauseTickers() {
	for _, t := range snapshotTickers() {
		t.Pause()
	}
}

// ResumeTickers resumes every paused ticker.
func ResumeTickers() {
	for _, t := range snapshotTickers() {
		t.Resume()
	}
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}

func snapshotTickers() []*Ticker {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	tickers := make([]*Ticker, 0, len(activeTickers))
	for t := range activeTickers {
		tickers = append(tickers, t)
	}
	return tickers
}
