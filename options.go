package voxbvh

import (
	"log/slog"
	"time"

	"github.com/hupe1980/voxbvh/internal/tree"
)

const (
	// DefaultRebalanceThreshold is the number of mutations after which an
	// automatic rebalance is scheduled.
	DefaultRebalanceThreshold = 1000

	// DefaultLeafCapacity is the default maximum number of items per leaf.
	DefaultLeafCapacity = tree.DefaultLeafCapacity

	// DefaultParallelBuildThreshold is the default partition size from which
	// bulk builds use two goroutines.
	DefaultParallelBuildThreshold = tree.DefaultParallelBuildThreshold
)

type options struct {
	metricsCollector       MetricsCollector
	logger                 *Logger
	autoRebalance          bool
	rebalanceThreshold     int
	rebalanceInterval      time.Duration
	leafCapacity           int
	parallelBuildThreshold int
}

// Option configures an Index.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &voxbvh.BasicMetricsCollector{}
//	ix := voxbvh.New[*Block](voxbvh.WithMetricsCollector(metrics))
//	// ... use ix ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := voxbvh.NewJSONLogger(slog.LevelInfo)
//	ix := voxbvh.New[*Block](voxbvh.WithLogger(logger))
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

// WithAutoRebalance enables or disables automatic background rebalancing.
// It is enabled by default.
func WithAutoRebalance(enabled bool) Option {
	return func(o *options) {
		o.autoRebalance = enabled
	}
}

// WithRebalanceThreshold sets the number of mutations after which an
// automatic rebalance is scheduled. Values below 1 fall back to
// DefaultRebalanceThreshold.
func WithRebalanceThreshold(ops int) Option {
	return func(o *options) {
		o.rebalanceThreshold = ops
	}
}

// WithRebalanceInterval sets the minimum time between two automatic
// rebalances. While the interval has not elapsed, reaching the threshold
// only defers the rebalance to a later mutation. Zero means no limit.
func WithRebalanceInterval(d time.Duration) Option {
	return func(o *options) {
		o.rebalanceInterval = d
	}
}

// WithLeafCapacity sets the maximum number of items per leaf. Values outside
// [2, 64] fall back to DefaultLeafCapacity.
func WithLeafCapacity(n int) Option {
	return func(o *options) {
		o.leafCapacity = n
	}
}

// WithParallelBuildThreshold sets the partition size from which bulk builds
// and rebalances construct both halves concurrently. Zero disables parallel
// builds.
func WithParallelBuildThreshold(n int) Option {
	return func(o *options) {
		o.parallelBuildThreshold = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:       NoopMetricsCollector{},
		logger:                 NoopLogger(),
		autoRebalance:          true,
		rebalanceThreshold:     DefaultRebalanceThreshold,
		leafCapacity:           DefaultLeafCapacity,
		parallelBuildThreshold: DefaultParallelBuildThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.rebalanceThreshold < 1 {
		o.logger.LogOptionClamped("rebalance_threshold", o.rebalanceThreshold, DefaultRebalanceThreshold)
		o.rebalanceThreshold = DefaultRebalanceThreshold
	}
	if o.leafCapacity < tree.MinLeafCapacity || o.leafCapacity > tree.MaxLeafCapacity {
		o.logger.LogOptionClamped("leaf_capacity", o.leafCapacity, DefaultLeafCapacity)
		o.leafCapacity = DefaultLeafCapacity
	}
	if o.parallelBuildThreshold < 0 {
		o.logger.LogOptionClamped("parallel_build_threshold", o.parallelBuildThreshold, 0)
		o.parallelBuildThreshold = 0
	}
	if o.rebalanceInterval < 0 {
		o.rebalanceInterval = 0
	}

	return o
}

func (o options) treeConfig() tree.Config {
	return tree.Config{
		LeafCapacity:           o.leafCapacity,
		ParallelBuildThreshold: o.parallelBuildThreshold,
	}
}
