// Package choreo coordinates named timed tasks into page entrance and exit
// sequences: it owns task lifecycles, rewrites configurations to honor user
// motion preferences, staggers element runs, composes pattern playbacks,
// and tracks playback state and performance metrics.
//
// The engine decides when and how long each task runs, never what is drawn.
// Rendering, curve shapes, and preference persistence belong to
// collaborators; see [Coordinator] for the public surface.
package choreo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// Pattern names a composition strategy for a page entrance.
type Pattern int

const (
	// PatternDramatic runs an anticipation task, then the main task, then
	// staggers the elements.
	PatternDramatic Pattern = iota
	// PatternElegant runs the main task and the staggered elements
	// concurrently.
	PatternElegant
	// PatternStaggered runs only the staggered elements.
	PatternStaggered
	// PatternPlayful runs a short bounce task, then staggers elements with
	// half the configured delay.
	PatternPlayful
	// PatternMinimal runs a short fixed task, then staggers elements with a
	// small fixed delay, ignoring the configured stagger delay.
	PatternMinimal
	// PatternCustom staggers elements with the configured delay, or defers
	// entirely to the config's Custom hook when one is set.
	PatternCustom
)

// String returns the pattern's configuration name.
func (p Pattern) String() string {
	switch p {
	case PatternDramatic:
		return "dramatic"
	case PatternElegant:
		return "elegant"
	case PatternStaggered:
		return "staggered"
	case PatternPlayful:
		return "playful"
	case PatternMinimal:
		return "minimal"
	case PatternCustom:
		return "custom"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// ParsePattern maps a configuration name to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	switch s {
	case "dramatic":
		return PatternDramatic, nil
	case "elegant":
		return PatternElegant, nil
	case "staggered":
		return PatternStaggered, nil
	case "playful":
		return PatternPlayful, nil
	case "minimal":
		return PatternMinimal, nil
	case "custom":
		return PatternCustom, nil
	default:
		return 0, fmt.Errorf("unknown entrance pattern %q", s)
	}
}

// PlaybackState is the coordinator's sequence-level state.
type PlaybackState int

const (
	// StateIdle means no sequence is in flight.
	StateIdle PlaybackState = iota
	// StatePlaying means at least one sequence-level operation is in flight.
	StatePlaying
	// StatePaused means an in-flight sequence is frozen.
	StatePaused
	// StateError means the last sequence failed; the next Play call resets it.
	StateError
)

// String returns a human-readable representation of the playback state.
func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("PlaybackState(%d)", int(s))
	}
}

// ElementSpec describes one staggered sub-animation within a sequence.
type ElementSpec struct {
	// Type tags the kind of element being animated (header, card, ...).
	Type string
	// Duration is the element's own run length.
	Duration time.Duration
	// Delay is an intrinsic start offset added on top of the stagger offset.
	Delay time.Duration
	// StartOffset is the element's initial displacement; it animates to zero.
	StartOffset animation.Offset
	// StartScale and EndScale bound the element's scale animation.
	StartScale float64
	EndScale   float64
}

// OffsetAt returns the element's displacement at progress t, tweening from
// StartOffset to rest.
func (e ElementSpec) OffsetAt(t float64) animation.Offset {
	return animation.TweenOffset(e.StartOffset, animation.Offset{}).Evaluate(t)
}

// ScaleAt returns the element's scale at progress t.
func (e ElementSpec) ScaleAt(t float64) float64 {
	return animation.LerpFloat64(e.StartScale, e.EndScale, t)
}

// PlayFunc is the caller-extensible hook for PatternCustom. It receives
// the registry and the effective (preference-transformed) configuration and
// must block until its composition finishes.
type PlayFunc func(ctx context.Context, reg *Registry, cfg SequenceConfig) error

// SequenceConfig is a named, versionable configuration for a page's
// entrance. Configs are immutable by convention: the engine transforms
// copies and never mutates a caller's instance.
type SequenceConfig struct {
	// Name identifies the config (usually a page or screen identity).
	Name string
	// Pattern selects the entrance composition.
	Pattern Pattern
	// PageTransition is the main task's duration.
	PageTransition time.Duration
	// StaggerDelay is the per-index start offset between elements.
	StaggerDelay time.Duration
	// Elements are staggered in order.
	Elements []ElementSpec
	// Easing shapes element and main-task runs. Nil means EaseOut.
	Easing func(float64) float64
	// Custom is consulted only for PatternCustom.
	Custom PlayFunc
}

// Clone returns a deep copy of the config.
func (c SequenceConfig) Clone() SequenceConfig {
	out := c
	if c.Elements != nil {
		out.Elements = make([]ElementSpec, len(c.Elements))
		copy(out.Elements, c.Elements)
	}
	return out
}

// EffectiveEasing returns the config's easing curve, defaulting to EaseOut.
func (c SequenceConfig) EffectiveEasing() func(float64) float64 {
	if c.Easing != nil {
		return c.Easing
	}
	return animation.EaseOut
}

// Preferences holds the user's motion accessibility settings. They are
// supplied by an external preferences source and applied to every sequence
// through ApplyPreferences.
type Preferences struct {
	// AnimationsEnabled gates all motion; false means every run is instant.
	AnimationsEnabled bool
	// ReducedMotion dampens motion without disabling it.
	ReducedMotion bool
}

// DefaultPreferences returns preferences with full motion enabled.
func DefaultPreferences() Preferences {
	return Preferences{AnimationsEnabled: true}
}
