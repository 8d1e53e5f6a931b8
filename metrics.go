package centroids

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting run metrics.
// Implement this interface to integrate with monitoring systems; package
// metric ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordPass is called after each pass. duration covers assignment and
	// relocation, moved reports whether any centroid moved and reseeded is
	// the number of empty clusters that drew a random target.
	RecordPass(duration time.Duration, moved bool, reseeded int)

	// RecordRun is called once when a run terminates. err is nil when the
	// run converged.
	RecordRun(iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPass(time.Duration, bool, int) {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PassCount      atomic.Int64
	PassMovedCount atomic.Int64
	PassTotalNanos atomic.Int64
	ReseedCount    atomic.Int64
	RunCount       atomic.Int64
	RunConverged   atomic.Int64
	RunStopped     atomic.Int64
	RunIterations  atomic.Int64
	RunTotalNanos  atomic.Int64
}

// RecordPass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPass(duration time.Duration, moved bool, reseeded int) {
	b.PassCount.Add(1)
	b.PassTotalNanos.Add(duration.Nanoseconds())
	b.ReseedCount.Add(int64(reseeded))
	if moved {
		b.PassMovedCount.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunIterations.Add(int64(iterations))
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunStopped.Add(1)
	} else {
		b.RunConverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PassCount:      b.PassCount.Load(),
		PassMovedCount: b.PassMovedCount.Load(),
		PassAvgNanos:   b.getAvgPassNanos(),
		ReseedCount:    b.ReseedCount.Load(),
		RunCount:       b.RunCount.Load(),
		RunConverged:   b.RunConverged.Load(),
		RunStopped:     b.RunStopped.Load(),
		RunIterations:  b.RunIterations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgPassNanos() int64 {
	count := b.PassCount.Load()
	if count == 0 {
		return 0
	}
	return b.PassTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PassCount      int64
	PassMovedCount int64
	PassAvgNanos   int64
	ReseedCount    int64
	RunCount       int64
	RunConverged   int64
	RunStopped     int64
	RunIterations  int64
}
