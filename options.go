package keycluster

import (
	"log/slog"

	"github.com/hupe1980/keycluster/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	chunkRows        int
	resources        resource.Config
}

// Option configures a Clusterer.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &keycluster.BasicMetricsCollector{}
//	c := keycluster.New(nil, keycluster.WithMetricsCollector(metrics))
//	// ... run clusterings ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, comparisons: %d\n", stats.RunCount, stats.Comparisons)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers sets the size of the worker pool used for keying and distance
// computations. Values < 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkRows sets how many block rows one kNN task compares. Smaller
// chunks make cancellation and budget checks more responsive.
func WithChunkRows(n int) Option {
	return func(o *options) {
		o.chunkRows = n
	}
}

// WithBudget limits each kNN run to maxComparisons distance computations.
// A run that would exceed it fails with resource.ErrBudgetExceeded.
// 0 means unlimited.
func WithBudget(maxComparisons int64) Option {
	return func(o *options) {
		o.resources.MaxComparisons = maxComparisons
	}
}

// WithComparisonRate throttles distance computations across all runs of the
// Clusterer. 0 means unlimited.
func WithComparisonRate(perSecond int64) Option {
	return func(o *options) {
		o.resources.ComparisonsPerSec = perSecond
	}
}

// WithMaxConcurrentRuns bounds how many runs execute at once. Further runs
// wait for a slot or for their context to end. 0 means unlimited.
func WithMaxConcurrentRuns(n int64) Option {
	return func(o *options) {
		o.resources.MaxConcurrentRuns = n
	}
}

// WithIOLimit throttles reads of blob-backed inputs loaded through
// Clusterer.Load. 0 means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.resources.IOLimitBytesPerSec = bytesPerSec
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
