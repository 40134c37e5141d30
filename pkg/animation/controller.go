package animation

import (
	"fmt"
	"sync"
	"time"
)

// RunState represents the current state of a timed task.
//
// A task starts idle, runs forward (toward 1.0) or in reverse (toward 0.0),
// and ends completed or cancelled:
//
//	          Forward()/Reverse()              progress reaches target
//	Idle ──────────────────────► Forward/Reverse ─────────────────► Completed
//	                                    │
//	                                    │ Cancel()
//	                                    ▼
//	                                Cancelled
type RunState int

const (
	// RunIdle means the task has not started, or was reset to its start value.
	RunIdle RunState = iota
	// RunForward means the task is progressing toward the upper bound (1.0).
	RunForward
	// RunReverse means the task is progressing toward the lower bound (0.0).
	RunReverse
	// RunCompleted means the task reached its target and stopped.
	RunCompleted
	// RunCancelled means the task was stopped before reaching its target.
	RunCancelled
)

// String returns a human-readable representation of the run state.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunForward:
		return "forward"
	case RunReverse:
		return "reverse"
	case RunCompleted:
		return "completed"
	case RunCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Running returns true while the task is progressing in either direction.
func (s RunState) Running() bool {
	return s == RunForward || s == RunReverse
}

// Terminal returns true once the task has finished or been cancelled.
func (s RunState) Terminal() bool {
	return s == RunCompleted || s == RunCancelled
}

// Controller drives a named timed task by producing values over time.
//
// The controller manages a value that progresses across [0, 1] over the
// configured duration, shaped by an easing curve. Forward and Reverse each
// return a channel that is closed when the run completes or is cancelled,
// so callers can join on any combination of runs without callbacks.
//
// Controllers are safe for concurrent use: runs tick on the driver
// goroutine while callers start, cancel, or inspect them from their own.
//
// Always call Dispose when done to stop the run and release listeners.
type Controller struct {
	mu sync.Mutex

	id       string
	duration time.Duration
	curve    func(float64) float64

	value      float64
	state      RunState
	target     float64
	startValue float64
	ticker     *Ticker
	done       chan struct{}
	runSeq     uint64
	disposed   bool

	listeners      map[int]func(float64)
	stateListeners map[int]func(RunState)
	nextListenerID int
}

// NewController creates a controller for the given task id and duration.
func NewController(id string, duration time.Duration) *Controller {
	return &Controller{
		id:             id,
		duration:       duration,
		curve:          LinearCurve,
		state:          RunIdle,
		listeners:      make(map[int]func(float64)),
		stateListeners: make(map[int]func(RunState)),
	}
}

// ID returns the task id the controller was created with.
func (c *Controller) ID() string { return c.id }

// Value returns the current progress value in [0, 1].
func (c *Controller) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Duration returns the configured run duration.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// SetDuration replaces the run duration for subsequent runs.
func (c *Controller) SetDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = d
}

// SetCurve replaces the easing curve for subsequent runs. A nil curve
// falls back to linear progress.
func (c *Controller) SetCurve(curve func(float64) float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if curve == nil {
		curve = LinearCurve
	}
	c.curve = curve
}

// State returns the current run state.
func (c *Controller) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Forward runs the task from its current value toward 1.0. The returned
// channel is closed when the run completes or is cancelled.
func (c *Controller) Forward() <-chan struct{} {
	return c.animateTo(1, RunForward)
}

// Reverse runs the task from its current value toward 0.0. The returned
// channel is closed when the run completes or is cancelled.
func (c *Controller) Reverse() <-chan struct{} {
	return c.animateTo(0, RunReverse)
}

func (c *Controller) animateTo(target float64, direction RunState) <-chan struct{} {
	c.mu.Lock()

	if c.disposed {
		c.mu.Unlock()
		return closedChan()
	}

	// Supersede any in-flight run so its waiters are released.
	c.stopRunLocked(RunCancelled)

	done := make(chan struct{})
	c.done = done
	c.runSeq++
	seq := c.runSeq

	// Zero-length runs and runs already at the target complete synchronously.
	if c.duration <= 0 || c.value == target {
		c.value = target
		c.setStateLocked(RunCompleted)
		c.done = nil
		c.mu.Unlock()
		close(done)
		return done
	}

	c.target = target
	c.startValue = c.value
	c.setStateLocked(direction)
	c.ticker = NewTicker(func(elapsed time.Duration) {
		c.tick(seq, elapsed)
	})
	ticker := c.ticker
	c.mu.Unlock()

	ticker.Start()
	return done
}

func (c *Controller) tick(seq uint64, elapsed time.Duration) {
	c.mu.Lock()
	if c.runSeq != seq || !c.state.Running() {
		c.mu.Unlock()
		return
	}

	progress := float64(elapsed) / float64(c.duration)
	if progress >= 1 {
		progress = 1
	}

	eased := progress
	if c.curve != nil {
		eased = c.curve(progress)
	}
	c.value = c.startValue + (c.target-c.startValue)*eased
	value := c.value
	valueListeners := c.copyValueListenersLocked()

	var done chan struct{}
	var stateListeners []func(RunState)
	finished := progress >= 1
	if finished {
		if c.ticker != nil {
			c.ticker.Stop()
			c.ticker = nil
		}
		c.state = RunCompleted
		stateListeners = c.copyStateListenersLocked()
		done = c.done
		c.done = nil
	}
	c.mu.Unlock()

	for _, fn := range valueListeners {
		fn(value)
	}
	if finished {
		for _, fn := range stateListeners {
			fn(RunCompleted)
		}
		if done != nil {
			close(done)
		}
	}
}

// Cancel stops the current run, marks the task cancelled, and releases any
// waiters on the run's completion channel. The partial value is left as-is.
// An idle task is marked cancelled; a finished task is left alone.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.disposed || c.state.Terminal() {
		c.mu.Unlock()
		return
	}
	done, listeners := c.stopRunNotifyLocked(RunCancelled)
	if c.state == RunIdle {
		c.state = RunCancelled
		listeners = c.copyStateListenersLocked()
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(RunCancelled)
	}
	if done != nil {
		close(done)
	}
}

// Reset returns the task to its start value and idle state, releasing any
// in-flight run's waiters.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	done, _ := c.stopRunNotifyLocked(RunCancelled)
	c.value = 0
	c.state = RunIdle
	listeners := c.copyStateListenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(RunIdle)
	}
	if done != nil {
		close(done)
	}
}

// JumpTo sets the value directly without running, leaving the task idle.
// Used to position a task before a reverse run.
func (c *Controller) JumpTo(value float64) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	done, _ := c.stopRunNotifyLocked(RunCancelled)
	c.value = clampUnit(value)
	c.state = RunIdle
	c.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// Pause freezes the current run in place. No-op unless running.
func (c *Controller) Pause() {
	c.mu.Lock()
	ticker := c.ticker
	c.mu.Unlock()
	if ticker != nil {
		ticker.Pause()
	}
}

// Resume continues a paused run. No-op unless paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	ticker := c.ticker
	c.mu.Unlock()
	if ticker != nil {
		ticker.Resume()
	}
}

// AddListener adds a callback that fires with the value on every tick.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn func(float64)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners == nil {
		return func() {}
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// AddStateListener adds a callback that fires whenever the run state
// changes. Returns an unsubscribe function.
func (c *Controller) AddStateListener(fn func(RunState)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateListeners == nil {
		return func() {}
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.stateListeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.stateListeners, id)
	}
}

// Dispose stops the controller and releases listeners. Safe to call
// multiple times.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	done, _ := c.stopRunNotifyLocked(RunCancelled)
	c.disposed = true
	c.listeners = nil
	c.stateListeners = nil
	c.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// stopRunLocked halts the in-flight run, if any, marking it with the given
// terminal state and closing its completion channel.
func (c *Controller) stopRunLocked(terminal RunState) {
	done, _ := c.stopRunNotifyLocked(terminal)
	if done != nil {
		// Closing under the lock is safe: nothing receives while holding it.
		close(done)
	}
}

// stopRunNotifyLocked halts the in-flight run and returns the completion
// channel (for the caller to close outside the lock) and the state
// listeners to notify, if the run state changed.
func (c *Controller) stopRunNotifyLocked(terminal RunState) (chan struct{}, []func(RunState)) {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	done := c.done
	c.done = nil
	c.runSeq++

	var listeners []func(RunState)
	if c.state.Running() {
		c.state = terminal
		listeners = c.copyStateListenersLocked()
	}
	return done, listeners
}

func (c *Controller) setStateLocked(state RunState) {
	if c.state == state {
		return
	}
	c.state = state
}

func (c *Controller) copyValueListenersLocked() []func(float64) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(float64), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

func (c *Controller) copyStateListenersLocked() []func(RunState) {
	if len(c.stateListeners) == 0 {
		return nil
	}
	out := make([]func(RunState), 0, len(c.stateListeners))
	for _, fn := range c.stateListeners {
		out = append(out, fn)
	}
	return out
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func closedChan() <-chan struct{} { return closedDone }
