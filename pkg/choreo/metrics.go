package choreo

import (
	"sync"
	"time"
)

// DefaultMetricCapacity bounds the metric log to the most recent entries.
const DefaultMetricCapacity = 100

// Metric records one completed sequence playback.
type Metric struct {
	// RunID uniquely identifies the playback.
	RunID string
	// SequenceName is the name recorded while the sequence was in flight.
	SequenceName string
	// Pattern is the composition that was played ("dramatic", "exit", ...).
	Pattern string
	// Duration is the wall-clock time the whole sequence took.
	Duration time.Duration
	// ElementCount is the number of staggered elements in the sequence.
	ElementCount int
	// Timestamp is when the sequence finished.
	Timestamp time.Time
}

// MetricLog stores recent sequence metrics in a bounded ring buffer: once
// full, the oldest entry is evicted first.
type MetricLog struct {
	mu      sync.RWMutex
	entries []Metric
	index   int
	count   int
}

// NewMetricLog creates a log bounded at capacity entries. Non-positive
// capacities fall back to DefaultMetricCapacity.
func NewMetricLog(capacity int) *MetricLog {
	if capacity <= 0 {
		capacity = DefaultMetricCapacity
	}
	return &MetricLog{entries: make([]Metric, capacity)}
}

// Append stores a metric, evicting the oldest entry when the log is full.
func (l *MetricLog) Append(m Metric) {
	l.mu.Lock()
	l.entries[l.index] = m
	l.index = (l.index + 1) % len(l.entries)
	if l.count < len(l.entries) {
		l.count++
	}
	l.mu.Unlock()
}

// Len returns the number of stored metrics.
func (l *MetricLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Snapshot returns the stored metrics in arrival order, oldest first.
func (l *MetricLog) Snapshot() []Metric {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.count == 0 {
		return nil
	}
	result := make([]Metric, l.count)
	if l.count < len(l.entries) {
		copy(result, l.entries[:l.count])
	} else {
		copy(result, l.entries[l.index:])
		copy(result[len(l.entries)-l.index:], l.entries[:l.index])
	}
	return result
}

// Summary aggregates the metric log.
type Summary struct {
	// Count is the number of recorded sequences.
	Count int
	// TotalElements sums the element counts across sequences.
	TotalElements int
	// Average, Longest, and Shortest describe the sequence durations.
	// All are zero when the log is empty.
	Average  time.Duration
	Longest  time.Duration
	Shortest time.Duration
}

// Summarize computes aggregates over the stored metrics. An empty log
// yields the zero Summary rather than an error.
func (l *MetricLog) Summarize() Summary {
	metrics := l.Snapshot()
	if len(metrics) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:    len(metrics),
		Longest:  metrics[0].Duration,
		Shortest: metrics[0].Duration,
	}
	var total time.Duration
	for _, m := range metrics {
		total += m.Duration
		s.TotalElements += m.ElementCount
		if m.Duration > s.Longest {
			s.Longest = m.Duration
		}
		if m.Duration < s.Shortest {
			s.Shortest = m.Duration
		}
	}
	s.Average = total / time.Duration(len(metrics))
	return s
}
