// Package testing provides deterministic timing helpers for choreo tests:
// a controllable clock and a stepper that advances the shared ticker
// timeline without waiting on wall-clock time.
package testing

import (
	"sync"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Step advances the clock by d and steps all active tickers once, simulating
// a single frame of that length.
func (c *FakeClock) Step(d time.Duration) {
	c.Advance(d)
	animation.StepTickers()
}

// StepUntil steps the clock in fixed increments until the condition holds or
// maxSteps frames have elapsed. Returns true if the condition was met.
func (c *FakeClock) StepUntil(increment time.Duration, maxSteps int, cond func() bool) bool {
	for i := 0; i < maxSteps; i++ {
		if cond() {
			return true
		}
		c.Step(increment)
	}
	return cond()
}

// Install replaces the animation clock with c and returns a restore
// function for test cleanup.
func (c *FakeClock) Install() func() {
	prev := animation.SetClock(c)
	return func() { animation.SetClock(prev) }
}
