package benchmarks

import (
	"slices"
	"time"
)

// Latencies collects per-iteration timings so a benchmark can report tail
// latency next to the mean that testing.B prints.
type Latencies struct {
	durations []time.Duration
}

func NewLatencies(capacity int) *Latencies {
	return &Latencies{durations: make([]time.Duration, 0, capacity)}
}

// Time runs fn and records how long it took.
func (l *Latencies) Time(fn func()) {
	start := time.Now()
	fn()
	l.durations = append(l.durations, time.Since(start))
}

func (l *Latencies) P50() time.Duration {
	return l.percentile(0.50)
}

func (l *Latencies) P99() time.Duration {
	return l.percentile(0.99)
}

func (l *Latencies) percentile(p float64) time.Duration {
	if len(l.durations) == 0 {
		return 0
	}
	sorted := slices.Clone(l.durations)
	slices.Sort(sorted)
	return sorted[int(float64(len(sorted)-1)*p)]
}
