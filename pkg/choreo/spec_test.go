package choreo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreo"
)

// TestParsePattern verifies the name round-trip for every pattern.
func TestParsePattern(t *testing.T) {
	patterns := []choreo.Pattern{
		choreo.PatternDramatic,
		choreo.PatternElegant,
		choreo.PatternStaggered,
		choreo.PatternPlayful,
		choreo.PatternMinimal,
		choreo.PatternCustom,
	}
	for _, p := range patterns {
		parsed, err := choreo.ParsePattern(p.String())
		require.NoError(t, err, p.String())
		assert.Equal(t, p, parsed)
	}

	_, err := choreo.ParsePattern("waltz")
	assert.Error(t, err)
}

// TestPlaybackState_String verifies the state names used in logs and output.
func TestPlaybackState_String(t *testing.T) {
	assert.Equal(t, "idle", choreo.StateIdle.String())
	assert.Equal(t, "playing", choreo.StatePlaying.String())
	assert.Equal(t, "paused", choreo.StatePaused.String())
	assert.Equal(t, "error", choreo.StateError.String())
}

// TestSequenceConfig_Clone verifies that clones share nothing with the
// original's element slice.
func TestSequenceConfig_Clone(t *testing.T) {
	cfg := baseConfig()
	clone := cfg.Clone()

	clone.Elements[0].Duration = time.Hour
	assert.Equal(t, 225*time.Millisecond, cfg.Elements[0].Duration, "clone must not alias the original")
	assert.Equal(t, cfg.Name, clone.Name)
}

// TestSequenceConfig_EffectiveEasing verifies the ease-out default.
func TestSequenceConfig_EffectiveEasing(t *testing.T) {
	var cfg choreo.SequenceConfig
	curve := cfg.EffectiveEasing()
	require.NotNil(t, curve)
	assert.Greater(t, curve(0.5), 0.5, "default easing should be ease-out shaped")

	cfg.Easing = animation.LinearCurve
	assert.Equal(t, 0.5, cfg.EffectiveEasing()(0.5))
}

// TestElementSpec_Interpolation verifies the offset and scale helpers.
func TestElementSpec_Interpolation(t *testing.T) {
	el := choreo.ElementSpec{
		StartOffset: animation.Offset{X: 0, Y: 30},
		StartScale:  0.8,
		EndScale:    1.0,
	}

	assert.Equal(t, animation.Offset{X: 0, Y: 30}, el.OffsetAt(0))
	assert.Equal(t, animation.Offset{X: 0, Y: 15}, el.OffsetAt(0.5))
	assert.True(t, el.OffsetAt(1).IsZero())

	assert.Equal(t, 0.8, el.ScaleAt(0))
	assert.InDelta(t, 0.9, el.ScaleAt(0.5), 1e-9)
	assert.Equal(t, 1.0, el.ScaleAt(1))
}
