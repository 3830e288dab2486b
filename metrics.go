package tagdict

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each registration (Add or Insert).
	// duration is the total time taken, err is nil if successful.
	RecordAdd(duration time.Duration, err error)

	// RecordQuery is called after each Get.
	// tags is the number of tags requested, matches the number of items found.
	RecordQuery(tags, matches int, duration time.Duration)

	// RecordMutation is called after each tag-set mutation
	// (AddTag, RemoveTag, ReplaceTags).
	RecordMutation(duration time.Duration, err error)

	// RecordRemove is called after each Remove.
	RecordRemove(duration time.Duration, err error)

	// RecordMerge is called after each Merge.
	// entries is the number of entries in the merged source.
	RecordMerge(entries int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)      {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordMutation(time.Duration, error) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)   {}
func (NoopMetricsCollector) RecordMerge(int, time.Duration)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount        atomic.Int64
	AddErrors       atomic.Int64
	AddTotalNanos   atomic.Int64
	QueryCount      atomic.Int64
	QueryMatches    atomic.Int64
	QueryTotalNanos atomic.Int64
	MutationCount   atomic.Int64
	MutationErrors  atomic.Int64
	RemoveCount     atomic.Int64
	RemoveErrors    atomic.Int64
	MergeCount      atomic.Int64
	MergeEntries    atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(tags, matches int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryMatches.Add(int64(matches))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordMutation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMutation(duration time.Duration, err error) {
	b.MutationCount.Add(1)
	if err != nil {
		b.MutationErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(entries int, duration time.Duration) {
	b.MergeCount.Add(1)
	b.MergeEntries.Add(int64(entries))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:       b.AddCount.Load(),
		AddErrors:      b.AddErrors.Load(),
		AddAvgNanos:    avgNanos(b.AddTotalNanos.Load(), b.AddCount.Load()),
		QueryCount:     b.QueryCount.Load(),
		QueryMatches:   b.QueryMatches.Load(),
		QueryAvgNanos:  avgNanos(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		MutationCount:  b.MutationCount.Load(),
		MutationErrors: b.MutationErrors.Load(),
		RemoveCount:    b.RemoveCount.Load(),
		RemoveErrors:   b.RemoveErrors.Load(),
		MergeCount:     b.MergeCount.Load(),
		MergeEntries:   b.MergeEntries.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount       int64
	AddErrors      int64
	AddAvgNanos    int64
	QueryCount     int64
	QueryMatches   int64
	QueryAvgNanos  int64
	MutationCount  int64
	MutationErrors int64
	RemoveCount    int64
	RemoveErrors   int64
	MergeCount     int64
	MergeEntries   int64
}
