package voxbvh

import (
	"sync/atomic"
	"time"
)

// QueryKind identifies a read operation for metrics.
type QueryKind string

// Query kinds reported to MetricsCollector.RecordQuery.
const (
	QueryBox      QueryKind = "box"
	QueryPoint    QueryKind = "point"
	QueryRadius   QueryKind = "radius"
	QueryClosest  QueryKind = "closest"
	QueryContains QueryKind = "contains"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
//
// Methods are called after the index lock has been released, so
// implementations may block briefly but must be safe for concurrent use.
type MetricsCollector interface {
	// RecordInsert is called after Insert, InsertRange and Build.
	// items is the number of items added.
	RecordInsert(items int, duration time.Duration, err error)

	// RecordRemove is called after each Remove. found reports whether an
	// entry was removed.
	RecordRemove(found bool, duration time.Duration, err error)

	// RecordUpdate is called after each Update and Move.
	RecordUpdate(duration time.Duration, err error)

	// RecordQuery is called after each query with the number of results.
	RecordQuery(kind QueryKind, results int, duration time.Duration, err error)

	// RecordRebalance is called after each completed rebalance.
	RecordRebalance(items int, duration time.Duration, background bool)

	// RecordSize is called after every mutation with the new item count.
	RecordSize(items int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordRemove(bool, time.Duration, error)          {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)                {}
func (NoopMetricsCollector) RecordQuery(QueryKind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRebalance(int, time.Duration, bool)         {}
func (NoopMetricsCollector) RecordSize(int)                                   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount          atomic.Int64
	InsertItems          atomic.Int64
	InsertErrors         atomic.Int64
	InsertTotalNanos     atomic.Int64
	RemoveCount          atomic.Int64
	RemoveMisses         atomic.Int64
	RemoveErrors         atomic.Int64
	UpdateCount          atomic.Int64
	UpdateErrors         atomic.Int64
	QueryCount           atomic.Int64
	QueryErrors          atomic.Int64
	QueryResults         atomic.Int64
	QueryTotalNanos      atomic.Int64
	RebalanceCount       atomic.Int64
	BackgroundRebalances atomic.Int64
	RebalanceTotalNanos  atomic.Int64
	Size                 atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(items int, duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
		return
	}
	b.InsertItems.Add(int64(items))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(found bool, duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
		return
	}
	if !found {
		b.RemoveMisses.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(kind QueryKind, results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryResults.Add(int64(results))
}

// RecordRebalance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRebalance(items int, duration time.Duration, background bool) {
	b.RebalanceCount.Add(1)
	b.RebalanceTotalNanos.Add(duration.Nanoseconds())
	if background {
		b.BackgroundRebalances.Add(1)
	}
}

// RecordSize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSize(items int) {
	b.Size.Store(int64(items))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:          b.InsertCount.Load(),
		InsertItems:          b.InsertItems.Load(),
		InsertErrors:         b.InsertErrors.Load(),
		InsertAvgNanos:       avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		RemoveCount:          b.RemoveCount.Load(),
		RemoveMisses:         b.RemoveMisses.Load(),
		RemoveErrors:         b.RemoveErrors.Load(),
		UpdateCount:          b.UpdateCount.Load(),
		UpdateErrors:         b.UpdateErrors.Load(),
		QueryCount:           b.QueryCount.Load(),
		QueryErrors:          b.QueryErrors.Load(),
		QueryResults:         b.QueryResults.Load(),
		QueryAvgNanos:        avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		RebalanceCount:       b.RebalanceCount.Load(),
		BackgroundRebalances: b.BackgroundRebalances.Load(),
		RebalanceAvgNanos:    avg(b.RebalanceTotalNanos.Load(), b.RebalanceCount.Load()),
		Size:                 b.Size.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount          int64
	InsertItems          int64
	InsertErrors         int64
	InsertAvgNanos       int64
	RemoveCount          int64
	RemoveMisses         int64
	RemoveErrors         int64
	UpdateCount          int64
	UpdateErrors         int64
	QueryCount           int64
	QueryErrors          int64
	QueryResults         int64
	QueryAvgNanos        int64
	RebalanceCount       int64
	BackgroundRebalances int64
	RebalanceAvgNanos    int64
	Size                 int64
}
