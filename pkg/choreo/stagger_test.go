package choreo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreo"
)

func staggerSpecs(n int, duration time.Duration) []choreo.ElementSpec {
	specs := make([]choreo.ElementSpec, n)
	for i := range specs {
		specs[i] = choreo.ElementSpec{Type: "card", Duration: duration}
	}
	return specs
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// TestRunStaggered_Empty verifies that an empty group resolves immediately.
func TestRunStaggered_Empty(t *testing.T) {
	installClock(t)
	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	group := choreo.RunStaggered(reg, nil, 50*time.Millisecond, "page", animation.EaseOut)
	assert.True(t, isClosed(group.Done()), "empty group must resolve without a frame")
	assert.Empty(t, group.States())
	assert.False(t, animation.HasActiveTickers())
}

// TestRunStaggered_StartOffsets verifies that item i starts at base*i plus
// its own delay, and that the join resolves only after the last item ends.
func TestRunStaggered_StartOffsets(t *testing.T) {
	clock := installClock(t)
	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	specs := staggerSpecs(3, 100*time.Millisecond)
	specs[1].Delay = 10 * time.Millisecond // starts at 50+10 = 60ms

	group := choreo.RunStaggered(reg, specs, 50*time.Millisecond, "page", animation.LinearCurve)

	// Item 0 is due at offset zero and starts on the same frame.
	states := group.States()
	require.Len(t, states, 3)
	assert.Equal(t, animation.RunForward, states[0])
	assert.Equal(t, animation.RunIdle, states[1])
	assert.Equal(t, animation.RunIdle, states[2])

	clock.Step(50 * time.Millisecond) // t=50: item 1 not due yet (60ms)
	assert.Equal(t, animation.RunIdle, group.States()[1])

	clock.Step(10 * time.Millisecond) // t=60: item 1 due
	assert.Equal(t, animation.RunForward, group.States()[1])

	clock.Step(40 * time.Millisecond) // t=100: item 2 due, item 0 completing
	assert.Equal(t, animation.RunForward, group.States()[2])

	// Last item ends at 100+100 = 200ms; step past it and let the scheduler
	// observe the terminal states.
	ok := clock.StepUntil(10*time.Millisecond, 20, func() bool {
		return isClosed(group.Done())
	})
	require.True(t, ok, "join did not resolve after every item finished")

	for i, state := range group.States() {
		assert.Equal(t, animation.RunCompleted, state, "item %d", i)
	}
	assert.False(t, group.Cancelled())
	assert.False(t, animation.HasActiveTickers(), "scheduler ticker must stop with the join")
}

// TestRunStaggered_TaskIDs verifies the registry ids the group creates.
func TestRunStaggered_TaskIDs(t *testing.T) {
	clock := installClock(t)
	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	specs := []choreo.ElementSpec{
		{Type: "header", Duration: 10 * time.Millisecond},
		{Type: "card", Duration: 10 * time.Millisecond},
	}
	group := choreo.RunStaggered(reg, specs, 0, "entrance_home", animation.EaseOut)
	clock.StepUntil(5*time.Millisecond, 10, func() bool { return isClosed(group.Done()) })

	_, ok := reg.Get("entrance_home/element_0_header")
	assert.True(t, ok)
	_, ok = reg.Get("entrance_home/element_1_card")
	assert.True(t, ok)
}

// TestRunStaggered_CancelNeverHangs verifies that cancelling releases the
// join and marks unstarted items cancelled without ever starting them.
func TestRunStaggered_CancelNeverHangs(t *testing.T) {
	clock := installClock(t)
	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	group := choreo.RunStaggered(reg, staggerSpecs(3, 100*time.Millisecond), 80*time.Millisecond, "page", animation.EaseOut)
	clock.Step(20 * time.Millisecond) // only item 0 has started

	group.Cancel()

	assert.True(t, isClosed(group.Done()), "Cancel must resolve the join immediately")
	assert.True(t, group.Cancelled())
	for i, state := range group.States() {
		assert.Equal(t, animation.RunCancelled, state, "item %d", i)
	}

	// Unstarted items must never start on later frames.
	clock.Step(200 * time.Millisecond)
	_, ok := reg.Get("page/element_1_card")
	assert.False(t, ok, "cancelled item 1 was started after Cancel")
	assert.Equal(t, 1, reg.Len())
}

// TestRunStaggered_CancelIdempotent verifies repeated and post-completion
// cancels are no-ops.
func TestRunStaggered_CancelIdempotent(t *testing.T) {
	clock := installClock(t)
	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	group := choreo.RunStaggered(reg, staggerSpecs(2, 10*time.Millisecond), 0, "page", animation.EaseOut)
	clock.StepUntil(5*time.Millisecond, 10, func() bool { return isClosed(group.Done()) })

	group.Cancel()
	group.Cancel()
	assert.False(t, group.Cancelled(), "a completed group is not retroactively cancelled")
}
