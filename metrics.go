package keycluster

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRun is called after each clustering run. values is the number of
	// distinct values clustered, clusters the number found.
	RecordRun(mode Mode, values, clusters int, duration time.Duration, err error)

	// RecordBlocking is called after a blocking index is built.
	RecordBlocking(blocks, largest int)

	// RecordComparisons is called with the distance computations of a run.
	RecordComparisons(n int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Mode, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBlocking(int, int)                         {}
func (NoopMetricsCollector) RecordComparisons(int64)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	RunCount      atomic.Int64
	RunErrors     atomic.Int64
	RunTotalNanos atomic.Int64
	BinningRuns   atomic.Int64
	KNNRuns       atomic.Int64
	ValuesSeen    atomic.Int64
	ClustersFound atomic.Int64
	BlockCount    atomic.Int64
	LargestBlock  atomic.Int64
	Comparisons   atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(mode Mode, values, clusters int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch mode {
	case ModeBinning:
		b.BinningRuns.Add(1)
	case ModeKNN:
		b.KNNRuns.Add(1)
	}
	b.ValuesSeen.Add(int64(values))
	b.ClustersFound.Add(int64(clusters))
}

// RecordBlocking implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBlocking(blocks, largest int) {
	b.BlockCount.Add(int64(blocks))
	for {
		cur := b.LargestBlock.Load()
		if int64(largest) <= cur || b.LargestBlock.CompareAndSwap(cur, int64(largest)) {
			return
		}
	}
}

// RecordComparisons implements MetricsCollector.
func (b *BasicMetricsCollector) RecordComparisons(n int64) {
	b.Comparisons.Add(n)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:      b.RunCount.Load(),
		RunErrors:     b.RunErrors.Load(),
		RunAvgNanos:   b.getAvgRunNanos(),
		BinningRuns:   b.BinningRuns.Load(),
		KNNRuns:       b.KNNRuns.Load(),
		ValuesSeen:    b.ValuesSeen.Load(),
		ClustersFound: b.ClustersFound.Load(),
		BlockCount:    b.BlockCount.Load(),
		LargestBlock:  b.LargestBlock.Load(),
		Comparisons:   b.Comparisons.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount      int64
	RunErrors     int64
	RunAvgNanos   int64
	BinningRuns   int64
	KNNRuns       int64
	ValuesSeen    int64
	ClustersFound int64
	BlockCount    int64
	LargestBlock  int64
	Comparisons   int64
}
