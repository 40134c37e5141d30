package choreo_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/choreo"
)

// TestMetricLog_CapsAtCapacity verifies that the log keeps only the most
// recent entries once full, in arrival order.
func TestMetricLog_CapsAtCapacity(t *testing.T) {
	log := choreo.NewMetricLog(choreo.DefaultMetricCapacity)
	for i := 0; i < 150; i++ {
		log.Append(choreo.Metric{RunID: fmt.Sprintf("run-%d", i)})
	}

	require.Equal(t, 100, log.Len())
	snapshot := log.Snapshot()
	require.Len(t, snapshot, 100)
	assert.Equal(t, "run-50", snapshot[0].RunID, "oldest surviving entry")
	assert.Equal(t, "run-149", snapshot[99].RunID, "newest entry")
}

// TestMetricLog_SnapshotOrder verifies arrival ordering before the ring wraps.
func TestMetricLog_SnapshotOrder(t *testing.T) {
	log := choreo.NewMetricLog(10)
	for i := 0; i < 3; i++ {
		log.Append(choreo.Metric{RunID: fmt.Sprintf("run-%d", i)})
	}

	snapshot := log.Snapshot()
	require.Len(t, snapshot, 3)
	for i, m := range snapshot {
		assert.Equal(t, fmt.Sprintf("run-%d", i), m.RunID)
	}
}

// TestMetricLog_EmptySnapshot verifies the empty-log behavior.
func TestMetricLog_EmptySnapshot(t *testing.T) {
	log := choreo.NewMetricLog(0) // falls back to the default capacity
	assert.Zero(t, log.Len())
	assert.Nil(t, log.Snapshot())
	assert.Equal(t, choreo.Summary{}, log.Summarize())
}

// TestMetricLog_Summarize verifies the aggregate computation.
func TestMetricLog_Summarize(t *testing.T) {
	log := choreo.NewMetricLog(10)
	log.Append(choreo.Metric{Duration: 100 * time.Millisecond, ElementCount: 3})
	log.Append(choreo.Metric{Duration: 300 * time.Millisecond, ElementCount: 5})
	log.Append(choreo.Metric{Duration: 200 * time.Millisecond, ElementCount: 0})

	s := log.Summarize()
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 8, s.TotalElements)
	assert.Equal(t, 200*time.Millisecond, s.Average)
	assert.Equal(t, 300*time.Millisecond, s.Longest)
	assert.Equal(t, 100*time.Millisecond, s.Shortest)
}
