package animation

import "time"

// Clock is the engine's shared time source. Production code reads the system
// clock; tests swap in a controllable one with SetClock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// clock is the package-level time source shared by all tickers.
var clock Clock = ClockFunc(time.Now)

// SetClock replaces the shared time source and returns the previous one so
// callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the shared clock.
func Now() time.Time { return clock.Now() }

// Since returns the time elapsed since t on the shared clock.
func Since(t time.Time) time.Duration { return Now().Sub(t) }
