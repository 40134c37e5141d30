package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// TestTicker_ElapsedExcludesPauses verifies that elapsed time banks across
// pause/resume cycles without counting the paused interval.
func TestTicker_ElapsedExcludesPauses(t *testing.T) {
	clock := installClock(t)
	ticker := animation.NewTicker(nil)
	ticker.Start()
	defer ticker.Stop()

	clock.Advance(30 * time.Millisecond)
	ticker.Pause()
	clock.Advance(1 * time.Second)
	ticker.Resume()
	clock.Advance(20 * time.Millisecond)

	if got := ticker.Elapsed(); got != 50*time.Millisecond {
		t.Errorf("Elapsed = %v, want 50ms", got)
	}
}

// TestTicker_StepSkipsPaused verifies that StepTickers does not invoke the
// callback of a paused ticker.
func TestTicker_StepSkipsPaused(t *testing.T) {
	clock := installClock(t)
	var calls int
	ticker := animation.NewTicker(func(time.Duration) { calls++ })
	ticker.Start()
	defer ticker.Stop()

	clock.Step(10 * time.Millisecond)
	ticker.Pause()
	clock.Step(10 * time.Millisecond)
	ticker.Resume()
	clock.Step(10 * time.Millisecond)

	if calls != 2 {
		t.Errorf("callback fired %d times, want 2", calls)
	}
}

// TestTicker_StartStop verifies registration bookkeeping and that restarts
// reset the elapsed baseline.
func TestTicker_StartStop(t *testing.T) {
	clock := installClock(t)
	ticker := animation.NewTicker(nil)

	if animation.HasActiveTickers() {
		t.Fatal("no tickers should be active before Start")
	}
	ticker.Start()
	if !ticker.IsActive() || !animation.HasActiveTickers() {
		t.Fatal("ticker not registered after Start")
	}

	clock.Advance(40 * time.Millisecond)
	ticker.Stop()
	if ticker.IsActive() || animation.HasActiveTickers() {
		t.Fatal("ticker still registered after Stop")
	}
	if got := ticker.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Stop = %v, want 0", got)
	}

	ticker.Start()
	clock.Advance(10 * time.Millisecond)
	if got := ticker.Elapsed(); got != 10*time.Millisecond {
		t.Errorf("Elapsed after restart = %v, want 10ms", got)
	}
	ticker.Stop()
}

// TestTicker_CallbackMayStopTicker verifies that a callback can stop its own
// ticker without deadlocking the step loop.
func TestTicker_CallbackMayStopTicker(t *testing.T) {
	clock := installClock(t)
	var ticker *animation.Ticker
	var calls int
	ticker = animation.NewTicker(func(time.Duration) {
		calls++
		ticker.Stop()
	})
	ticker.Start()

	clock.Step(time.Millisecond)
	clock.Step(time.Millisecond)

	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
	if animation.HasActiveTickers() {
		t.Error("ticker still registered after stopping itself")
	}
}

// TestPauseResumeTickers verifies the timeline-wide pause helpers.
func TestPauseResumeTickers(t *testing.T) {
	clock := installClock(t)
	var calls [2]int
	a := animation.NewTicker(func(time.Duration) { calls[0]++ })
	b := animation.NewTicker(func(time.Duration) { calls[1]++ })
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	animation.PauseTickers()
	clock.Step(10 * time.Millisecond)
	if calls[0] != 0 || calls[1] != 0 {
		t.Fatalf("paused tickers fired: %v", calls)
	}

	animation.ResumeTickers()
	clock.Step(10 * time.Millisecond)
	if calls[0] != 1 || calls[1] != 1 {
		t.Errorf("resumed tickers fired %v times, want one each", calls)
	}
}
