package choreo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/choreo/pkg/animation"
	cherrors "github.com/go-drift/choreo/pkg/errors"
)

// StateChange is delivered to subscribers whenever the playback state or
// current sequence name changes.
type StateChange struct {
	State    PlaybackState
	Sequence string
}

// MicroInteraction plays one short interaction animation. Implementations
// must block until the run finishes.
type MicroInteraction func(ctx context.Context, reg *Registry) error

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger attaches a structured logger. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithPreferences sets the preferences source consulted before every
// playback. The default enables full motion.
func WithPreferences(source func() Preferences) Option {
	return func(c *Coordinator) {
		if source != nil {
			c.prefs = source
		}
	}
}

// WithMetricCapacity bounds the metric log. The default keeps the 100 most
// recent entries.
func WithMetricCapacity(capacity int) Option {
	return func(c *Coordinator) { c.metrics = NewMetricLog(capacity) }
}

// Coordinator is the engine's public entry point: it plays entrances, exits,
// and micro-interactions, owns the playback state machine, and records
// performance metrics for completed sequences.
//
// Coordinators are explicitly constructed and passed to consumers; there is
// no package-level instance. The zero registry case (nil, or disposed) makes
// every playback a silent no-op, so a coordinator can be wired before its
// collaborators are ready.
type Coordinator struct {
	logger  zerolog.Logger
	prefs   func() Preferences
	metrics *MetricLog

	mu       sync.Mutex
	reg      *Registry
	state    PlaybackState
	sequence string
	active   []*run
	micro    map[string]MicroInteraction
	subs     map[int]chan StateChange
	nextSub  int
}

// New creates a coordinator over the given task registry. A nil registry is
// allowed; attach one later with AttachRegistry.
func New(reg *Registry, opts ...Option) *Coordinator {
	c := &Coordinator{
		logger: zerolog.Nop(),
		prefs:  DefaultPreferences,
		reg:    reg,
		micro:  make(map[string]MicroInteraction),
		subs:   make(map[int]chan StateChange),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetricLog(DefaultMetricCapacity)
	}
	return c
}

// AttachRegistry replaces the coordinator's task registry.
func (c *Coordinator) AttachRegistry(reg *Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg = reg
}

// State returns the current playback state.
func (c *Coordinator) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentSequence returns the name of the sequence in flight, or "" when
// none is.
func (c *Coordinator) CurrentSequence() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sequence
}

// Metrics returns a read-only snapshot of the metric log, oldest first.
func (c *Coordinator) Metrics() []Metric {
	return c.metrics.Snapshot()
}

// Summary aggregates the metric log; an empty log yields the zero Summary.
func (c *Coordinator) Summary() Summary {
	return c.metrics.Summarize()
}

// Subscribe registers a state-change listener. Changes are delivered on a
// buffered channel; slow consumers miss intermediate changes rather than
// blocking playback.
func (c *Coordinator) Subscribe() (int, <-chan StateChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan StateChange, 8)
	c.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (c *Coordinator) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(ch)
	}
}

// RegisterMicroInteraction installs a named micro-interaction. Unregistered
// kinds fall back to a short forward-then-reverse run of the task
// "micro_<kind>".
func (c *Coordinator) RegisterMicroInteraction(kind string, fn MicroInteraction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.micro[kind] = fn
}

// PlayEntrance plays the page's entrance sequence, blocking until every
// task it spawned completes or is cancelled. The configuration is
// preference-transformed before playback, the operation is timed, and a
// metric is appended on completion.
//
// With no usable registry attached the call is a silent no-op. Sequence
// failures set the error state and are returned to the caller.
func (c *Coordinator) PlayEntrance(ctx context.Context, pageID string, cfg SequenceConfig) error {
	seq := "entrance_" + pageID
	reg, r, prefs, ok := c.beginSequence(seq)
	if !ok {
		c.logger.Debug().Str("sequence", seq).Msg("entrance skipped: no task registry attached")
		return nil
	}

	runID := uuid.NewString()
	effective := ApplyPreferences(cfg, prefs)
	c.logger.Info().
		Str("run_id", runID).
		Str("sequence", seq).
		Stringer("pattern", effective.Pattern).
		Int("elements", len(effective.Elements)).
		Msg("entrance started")

	start := time.Now()
	err := (&player{reg: reg, logger: c.logger, instant: !prefs.AnimationsEnabled}).playEntrance(ctx, r, seq, effective)
	elapsed := time.Since(start)

	return c.finishSequence("choreo.PlayEntrance", seq, runID, effective.Pattern.String(), len(effective.Elements), elapsed, reg, r, err)
}

// PlayExit plays the reverse exit run, blocking until it finishes. Exit is
// pattern-independent with a fixed base duration, still honoring the user's
// motion preferences. Same error semantics as PlayEntrance.
func (c *Coordinator) PlayExit(ctx context.Context) error {
	const seq = "exit"
	reg, r, prefs, ok := c.beginSequence(seq)
	if !ok {
		c.logger.Debug().Msg("exit skipped: no task registry attached")
		return nil
	}

	runID := uuid.NewString()
	duration := exitDuration
	switch {
	case !prefs.AnimationsEnabled:
		duration = 0
	case prefs.ReducedMotion:
		duration = halveDuration(duration)
	}
	c.logger.Info().Str("run_id", runID).Dur("duration", duration).Msg("exit started")

	start := time.Now()
	err := (&player{reg: reg, logger: c.logger, instant: !prefs.AnimationsEnabled}).playExit(ctx, r, duration)
	elapsed := time.Since(start)

	return c.finishSequence("choreo.PlayExit", seq, runID, seq, 0, elapsed, reg, r, err)
}

// PlayMicroInteraction plays a short interaction animation (forward then
// reverse). It never fails the caller: errors and panics are logged and
// swallowed, and the playback state is untouched. No-op when animations are
// disabled or no registry is attached.
func (c *Coordinator) PlayMicroInteraction(ctx context.Context, kind string) {
	defer func() {
		if rec := recover(); rec != nil {
			perr := cherrors.FromPanic("choreo.PlayMicroInteraction", rec)
			c.logger.Error().Err(perr).Str("kind", kind).Msg("micro-interaction panicked")
		}
	}()

	c.mu.Lock()
	reg := c.reg
	fn := c.micro[kind]
	c.mu.Unlock()

	if reg == nil || reg.Disposed() {
		return
	}
	if !c.prefs().AnimationsEnabled {
		return
	}
	if fn == nil {
		fn = defaultMicroInteraction(kind)
	}
	if err := fn(ctx, reg); err != nil {
		c.logger.Warn().Err(err).Str("kind", kind).Msg("micro-interaction failed")
	}
}

// Pause freezes the shared timeline. Only effective while playing.
//
// The ticker timeline is shared process-wide, so pausing also freezes runs
// owned by any other coordinator in the same process.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StatePaused, c.sequence)
	c.mu.Unlock()
	animation.PauseTickers()
	c.logger.Debug().Msg("playback paused")
}

// Resume continues a paused timeline. Only effective while paused. Like
// Pause, it acts on the process-wide ticker timeline.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	if c.state != StatePaused {
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StatePlaying, c.sequence)
	c.mu.Unlock()
	animation.ResumeTickers()
	c.logger.Debug().Msg("playback resumed")
}

// StopAll aborts every in-flight sequence (their join signals resolve
// immediately), forces every task to a terminal state, resets values, and
// returns the coordinator to idle with no sequence name, regardless of the
// prior state.
func (c *Coordinator) StopAll() {
	c.mu.Lock()
	active := c.active
	c.active = nil
	reg := c.reg
	c.setStateLocked(StateIdle, "")
	c.mu.Unlock()

	for _, r := range active {
		r.cancel()
	}
	if reg != nil {
		reg.StopAll()
		reg.ResetAll()
	}
	c.logger.Debug().Msg("playback stopped")
}

// beginSequence transitions to playing and tracks a new run. Runs may
// overlap; the sequence name follows the newest one. Returns ok=false when
// no usable registry is attached (configuration error, treated as a silent
// no-op per the engine's error policy).
func (c *Coordinator) beginSequence(seq string) (*Registry, *run, Preferences, bool) {
	c.mu.Lock()
	reg := c.reg
	if reg == nil || reg.Disposed() {
		c.mu.Unlock()
		return nil, nil, Preferences{}, false
	}
	r := &run{seq: seq}
	c.active = append(c.active, r)
	c.setStateLocked(StatePlaying, seq)
	prefs := c.prefs()
	c.mu.Unlock()
	return reg, r, prefs, true
}

// finishSequence settles the state machine after a playback returns and
// appends the metric on normal completion. The coordinator stays playing
// while other runs remain in flight; only the last one settles it to idle.
func (c *Coordinator) finishSequence(op, seq, runID, pattern string, elements int, elapsed time.Duration, reg *Registry, r *run, err error) error {
	c.mu.Lock()
	c.removeRunLocked(r)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Context cancellation behaves like StopAll: abort every
			// in-flight run so no scheduler keeps starting items.
			others := c.active
			c.active = nil
			c.setStateLocked(StateIdle, "")
			c.mu.Unlock()
			for _, o := range others {
				o.cancel()
			}
			reg.StopAll()
			c.logger.Info().Str("run_id", runID).Str("sequence", seq).Msg("sequence cancelled by context")
			return err
		}
		c.setStateLocked(StateError, "")
		c.mu.Unlock()
		var cerr *cherrors.ChoreoError
		if !errors.As(err, &cerr) {
			err = cherrors.New(op, cherrors.KindSequence, seq, err)
		}
		c.logger.Error().Err(err).Str("run_id", runID).Msg("sequence failed")
		return err
	}

	if r.isCancelled() {
		// StopAll already settled the state machine; nothing to record.
		c.mu.Unlock()
		c.logger.Info().Str("run_id", runID).Str("sequence", seq).Msg("sequence stopped")
		return nil
	}

	c.settleLocked()
	c.mu.Unlock()

	c.metrics.Append(Metric{
		RunID:        runID,
		SequenceName: seq,
		Pattern:      pattern,
		Duration:     elapsed,
		ElementCount: elements,
		Timestamp:    time.Now(),
	})
	c.logger.Info().
		Str("run_id", runID).
		Str("sequence", seq).
		Dur("took", elapsed).
		Msg("sequence completed")
	return nil
}

// removeRunLocked drops a settled run from the in-flight set. No-op when
// StopAll already cleared it.
func (c *Coordinator) removeRunLocked(r *run) {
	for i, o := range c.active {
		if o == r {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// settleLocked follows the newest remaining run, or returns to idle when the
// last one finished. A paused timeline stays paused.
func (c *Coordinator) settleLocked() {
	if n := len(c.active); n > 0 {
		state := StatePlaying
		if c.state == StatePaused {
			state = StatePaused
		}
		c.setStateLocked(state, c.active[n-1].seq)
		return
	}
	c.setStateLocked(StateIdle, "")
}

// setStateLocked updates the state machine and notifies subscribers.
// Buffered, non-blocking delivery: a full subscriber misses the change.
func (c *Coordinator) setStateLocked(state PlaybackState, sequence string) {
	if c.state == state && c.sequence == sequence {
		return
	}
	c.state = state
	c.sequence = sequence
	change := StateChange{State: state, Sequence: sequence}
	for _, ch := range c.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// defaultMicroInteraction runs micro_<kind> forward then in reverse.
func defaultMicroInteraction(kind string) MicroInteraction {
	return func(ctx context.Context, reg *Registry) error {
		handle := reg.CreateOrReset("micro_"+kind, microDuration)
		if handle == nil {
			return ErrRegistryDisposed
		}
		handle.SetCurve(animation.EaseInOut)
		select {
		case <-handle.Forward():
		case <-ctx.Done():
			handle.Cancel()
			return ctx.Err()
		}
		select {
		case <-handle.Reverse():
		case <-ctx.Done():
			handle.Cancel()
			return ctx.Err()
		}
		return nil
	}
}
