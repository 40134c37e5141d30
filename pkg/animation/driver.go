package animation

import (
	"sync"
	"time"
)

// DefaultFrameInterval is the step interval used when a Driver is created
// with a non-positive interval (roughly 120 steps per second).
const DefaultFrameInterval = 8 * time.Millisecond

// Driver pumps the shared ticker timeline from its own goroutine, stepping
// all active tickers at a fixed frame interval. It is the production
// replacement for a host frame loop; tests usually skip the Driver and call
// [StepTickers] directly against a fake clock.
type Driver struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewDriver creates a driver stepping at the given interval.
func NewDriver(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Driver{interval: interval}
}

// Interval returns the configured frame interval.
func (d *Driver) Interval() time.Duration { return d.interval }

// Start launches the step loop. Starting a running driver is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return
	}
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	d.stop = stopCh
	d.done = doneCh

	go func() {
		defer close(doneCh)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				StepTickers()
			case <-stopCh:
				return
			}
		}
	}()
}

// Stop halts the step loop and waits for it to exit. Stopping a stopped
// driver is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()
	stopCh, doneCh := d.stop, d.done
	d.stop = nil
	d.done = nil
	d.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

// Running reports whether the step loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}
