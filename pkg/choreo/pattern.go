package choreo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/choreo/pkg/animation"
	cherrors "github.com/go-drift/choreo/pkg/errors"
)

// Sentinel errors surfaced by sequence playback.
var (
	// ErrRegistryDisposed means a task could not be created because the
	// registry was torn down mid-sequence.
	ErrRegistryDisposed = errors.New("task registry is disposed")
	// ErrUnknownPattern means the config named a pattern the player cannot
	// compose.
	ErrUnknownPattern = errors.New("unknown entrance pattern")
)

// Fixed durations used by compositions that do not derive everything from
// the configuration.
const (
	// exitDuration is the reverse exit run's length before preferences.
	exitDuration = 200 * time.Millisecond
	// minimalTaskDuration is PatternMinimal's lead-in task length.
	minimalTaskDuration = 100 * time.Millisecond
	// minimalStaggerDelay replaces the configured stagger delay under
	// PatternMinimal.
	minimalStaggerDelay = 20 * time.Millisecond
	// microDuration is the default micro-interaction run length.
	microDuration = 80 * time.Millisecond
)

// run tracks the cancelable pieces of one in-flight sequence so StopAll and
// context cancellation can release its join signals immediately.
type run struct {
	seq string

	mu        sync.Mutex
	stagger   *StaggerRun
	cancelled bool
}

func (r *run) track(s *StaggerRun) {
	r.mu.Lock()
	r.stagger = s
	cancelled := r.cancelled
	r.mu.Unlock()
	if cancelled {
		s.Cancel()
	}
}

func (r *run) cancel() {
	r.mu.Lock()
	r.cancelled = true
	s := r.stagger
	r.mu.Unlock()
	if s != nil {
		s.Cancel()
	}
}

func (r *run) isCancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelled
}

// player maps a pattern to a concrete composition of task runs and stagger
// groups, built from the registry's primitives. Every branch blocks until
// all of the sub-tasks it spawned are terminal. instant carries the
// disabled-motion preference so fixed pattern durations collapse to zero.
type player struct {
	reg     *Registry
	logger  zerolog.Logger
	instant bool
}

// playEntrance dispatches on the config's pattern. Panics inside a branch
// (including a Custom hook) are recovered into a PanicError so a broken
// composition cannot take down the caller.
func (p *player) playEntrance(ctx context.Context, r *run, prefix string, cfg SequenceConfig) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = cherrors.FromPanic("choreo.playEntrance", rec)
		}
	}()

	easing := cfg.EffectiveEasing()
	p.logger.Debug().
		Stringer("pattern", cfg.Pattern).
		Int("elements", len(cfg.Elements)).
		Msg("composing entrance")

	switch cfg.Pattern {
	case PatternDramatic:
		if err := p.runForward(ctx, r, prefix+"/anticipation", cfg.PageTransition/3, animation.EaseIn); err != nil {
			return err
		}
		if err := p.runForward(ctx, r, prefix+"/main", cfg.PageTransition, easing); err != nil {
			return err
		}
		return p.stagger(ctx, r, prefix, cfg.Elements, cfg.StaggerDelay, easing)

	case PatternElegant:
		main := p.reg.CreateOrReset(prefix+"/main", cfg.PageTransition)
		if main == nil {
			return ErrRegistryDisposed
		}
		main.SetCurve(easing)
		mainDone := main.Forward()
		group := RunStaggered(p.reg, cfg.Elements, cfg.StaggerDelay, prefix, easing)
		r.track(group)
		if err := p.await(ctx, r, mainDone); err != nil {
			return err
		}
		return p.await(ctx, r, group.Done())

	case PatternStaggered:
		return p.stagger(ctx, r, prefix, cfg.Elements, cfg.StaggerDelay, easing)

	case PatternPlayful:
		if err := p.runForward(ctx, r, prefix+"/bounce", cfg.PageTransition/4, animation.EaseInOut); err != nil {
			return err
		}
		return p.stagger(ctx, r, prefix, cfg.Elements, cfg.StaggerDelay/2, easing)

	case PatternMinimal:
		if err := p.runForward(ctx, r, prefix+"/simple", p.fixed(minimalTaskDuration), easing); err != nil {
			return err
		}
		return p.stagger(ctx, r, prefix, cfg.Elements, p.fixed(minimalStaggerDelay), easing)

	case PatternCustom:
		if cfg.Custom != nil {
			return cfg.Custom(ctx, p.reg, cfg)
		}
		return p.stagger(ctx, r, prefix, cfg.Elements, cfg.StaggerDelay, easing)

	default:
		return cherrors.New("choreo.playEntrance", cherrors.KindConfig, cfg.Name, ErrUnknownPattern)
	}
}

// playExit runs the single reverse exit task. Exit sequences are
// pattern-independent.
func (p *player) playExit(ctx context.Context, r *run, duration time.Duration) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = cherrors.FromPanic("choreo.playExit", rec)
		}
	}()

	handle := p.reg.CreateOrReset("exit", duration)
	if handle == nil {
		return ErrRegistryDisposed
	}
	handle.SetCurve(animation.EaseIn)
	handle.JumpTo(1)
	return p.await(ctx, r, handle.Reverse())
}

// runForward creates (or resets) the named task and blocks until its
// forward run finishes or is cancelled.
func (p *player) runForward(ctx context.Context, r *run, id string, duration time.Duration, curve func(float64) float64) error {
	handle := p.reg.CreateOrReset(id, duration)
	if handle == nil {
		return ErrRegistryDisposed
	}
	handle.SetCurve(curve)
	return p.await(ctx, r, handle.Forward())
}

// stagger starts a staggered group and blocks on its join.
func (p *player) stagger(ctx context.Context, r *run, prefix string, specs []ElementSpec, base time.Duration, curve func(float64) float64) error {
	group := RunStaggered(p.reg, specs, base, prefix, curve)
	r.track(group)
	return p.await(ctx, r, group.Done())
}

// await blocks on a completion channel, honoring context cancellation.
// Context cancellation aborts the run's scheduled work before returning.
func (p *player) await(ctx context.Context, r *run, ch <-chan struct{}) error {
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}

// fixed returns a pattern's fixed duration, or zero when motion is disabled
// and every run must be instant.
func (p *player) fixed(d time.Duration) time.Duration {
	if p.instant {
		return 0
	}
	return d
}
