package choreo

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// StaggerRun schedules a group of element tasks with per-index start
// offsets and exposes a single join signal that resolves when all of them
// have finished or been cancelled.
//
// Item i starts at offset base×i + specs[i].Delay from the call to
// RunStaggered. Items run concurrently once started and may finish out of
// index order; the join is order-independent.
type StaggerRun struct {
	mu        sync.Mutex
	reg       *Registry
	specs     []ElementSpec
	base      time.Duration
	prefix    string
	curve     func(float64) float64
	handles   []*animation.Controller
	started   []bool
	ticker    *animation.Ticker
	done      chan struct{}
	finished  bool
	cancelled bool
}

// RunStaggered starts a staggered group run. An empty spec list resolves the
// join immediately without scheduling anything.
func RunStaggered(reg *Registry, specs []ElementSpec, base time.Duration, idPrefix string, curve func(float64) float64) *StaggerRun {
	s := &StaggerRun{
		reg:     reg,
		specs:   specs,
		base:    base,
		prefix:  idPrefix,
		curve:   curve,
		handles: make([]*animation.Controller, len(specs)),
		started: make([]bool, len(specs)),
		done:    make(chan struct{}),
	}
	if len(specs) == 0 {
		s.finished = true
		close(s.done)
		return s
	}

	s.ticker = animation.NewTicker(s.step)
	s.ticker.Start()
	// Items with a zero offset begin on the same frame the run was started.
	s.step(0)
	return s
}

// Done returns the join signal. It is closed once every item has completed
// or been cancelled; it never hangs, even when the run is aborted.
func (s *StaggerRun) Done() <-chan struct{} {
	return s.done
}

// Cancel aborts the run: in-flight items are cancelled, not-yet-started
// items are marked cancelled without ever starting, and the join resolves.
func (s *StaggerRun) Cancel() {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	for i := range s.specs {
		if h := s.handles[i]; h != nil {
			h.Cancel()
		}
		s.started[i] = true
	}
	s.finishLocked()
}

// Cancelled reports whether the run was aborted.
func (s *StaggerRun) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// States returns the per-item run states in index order. Items that were
// cancelled before starting report RunCancelled; items not yet due report
// RunIdle.
func (s *StaggerRun) States() []animation.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	states := make([]animation.RunState, len(s.specs))
	for i := range s.specs {
		switch {
		case s.handles[i] != nil:
			states[i] = s.handles[i].State()
		case s.cancelled:
			states[i] = animation.RunCancelled
		default:
			states[i] = animation.RunIdle
		}
	}
	return states
}

// step starts items that have come due and resolves the join once every
// item is terminal. Runs on the shared ticker timeline.
func (s *StaggerRun) step(elapsed time.Duration) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}

	allDone := true
	for i := range s.specs {
		spec := s.specs[i]
		if !s.started[i] {
			offset := s.base*time.Duration(i) + spec.Delay
			if elapsed < offset {
				allDone = false
				continue
			}
			s.started[i] = true
			handle := s.reg.CreateOrReset(s.itemID(i), spec.Duration)
			if handle == nil {
				// Registry torn down mid-run; the item counts as cancelled.
				continue
			}
			handle.SetCurve(s.curve)
			handle.Forward()
			s.handles[i] = handle
		}
		if h := s.handles[i]; h != nil && !h.State().Terminal() {
			allDone = false
		}
	}

	if allDone {
		s.finishLocked()
		return
	}
	s.mu.Unlock()
}

// finishLocked stops the scheduler ticker and resolves the join. Unlocks.
func (s *StaggerRun) finishLocked() {
	s.finished = true
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	close(s.done)
	s.mu.Unlock()
}

func (s *StaggerRun) itemID(i int) string {
	return fmt.Sprintf("%s/element_%d_%s", s.prefix, i, s.specs[i].Type)
}
