package choreo

import (
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// ApplyPreferences maps a base sequence configuration and the user's motion
// preferences to an effective configuration. The input is never mutated; the
// result is always a fresh copy.
//
// Callers must always transform from the canonical original config. The
// function is deterministic, so re-applying it to the same original yields
// the same result; applying it to its own output would compound the
// reduced-motion halving.
func ApplyPreferences(cfg SequenceConfig, prefs Preferences) SequenceConfig {
	out := cfg.Clone()

	switch {
	case !prefs.AnimationsEnabled:
		out.PageTransition = 0
		out.StaggerDelay = 0
		out.Easing = animation.InstantCurve
		for i := range out.Elements {
			out.Elements[i].Duration = 0
			out.Elements[i].Delay = 0
		}

	case prefs.ReducedMotion:
		out.PageTransition = halveDuration(cfg.PageTransition)
		out.StaggerDelay = halveDuration(cfg.StaggerDelay)
		for i := range out.Elements {
			el := &out.Elements[i]
			el.Duration = halveDuration(el.Duration)
			el.StartOffset = el.StartOffset.Scale(0.5)
			el.StartScale = compressScale(el.StartScale)
			el.EndScale = compressScale(el.EndScale)
		}
	}

	return out
}

// halveDuration halves d at millisecond granularity, rounding half up.
func halveDuration(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	return time.Duration((ms+1)/2) * time.Millisecond
}

// compressScale pulls a scale factor halfway toward 1.0.
func compressScale(s float64) float64 {
	return 1.0 + (s-1.0)*0.5
}
