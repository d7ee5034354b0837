// Package promcollector exports voxbvh index metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/voxbvh"
)

// Operation label values.
const (
	OpInsert = "insert"
	OpRemove = "remove"
	OpUpdate = "update"
)

// Collector implements voxbvh.MetricsCollector on top of Prometheus
// collectors. Query kinds are reported with op="query_<kind>".
type Collector struct {
	opLatency   *prometheus.HistogramVec
	insertItems prometheus.Counter
	removeMiss  prometheus.Counter
	queryItems  *prometheus.HistogramVec
	rebalances  *prometheus.CounterVec
	rebalanceD  prometheus.Histogram
	size        prometheus.Gauge
}

var _ voxbvh.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers it with reg. A nil reg uses
// prometheus.DefaultRegisterer. namespace prefixes every metric name.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index operations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status"}),
		insertItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserted_items_total",
			Help:      "Total items added by Build, Insert and InsertRange",
		}),
		removeMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remove_misses_total",
			Help:      "Total Remove calls that found no entry",
		}),
		queryItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of items returned per query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
		rebalances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebalances_total",
			Help:      "Total completed rebalances",
		}, []string{"trigger"}),
		rebalanceD: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebalance_duration_seconds",
			Help:      "Duration of full rebuilds, during which the index is write-locked",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Current number of indexed items",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.opLatency, c.insertItems, c.removeMiss, c.queryItems, c.rebalances, c.rebalanceD, c.size,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordInsert implements voxbvh.MetricsCollector.
func (c *Collector) RecordInsert(items int, d time.Duration, err error) {
	c.opLatency.WithLabelValues(OpInsert, status(err)).Observe(d.Seconds())
	if err == nil {
		c.insertItems.Add(float64(items))
	}
}

// RecordRemove implements voxbvh.MetricsCollector.
func (c *Collector) RecordRemove(found bool, d time.Duration, err error) {
	c.opLatency.WithLabelValues(OpRemove, status(err)).Observe(d.Seconds())
	if err == nil && !found {
		c.removeMiss.Inc()
	}
}

// RecordUpdate implements voxbvh.MetricsCollector.
func (c *Collector) RecordUpdate(d time.Duration, err error) {
	c.opLatency.WithLabelValues(OpUpdate, status(err)).Observe(d.Seconds())
}

// RecordQuery implements voxbvh.MetricsCollector.
func (c *Collector) RecordQuery(kind voxbvh.QueryKind, results int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("query_"+string(kind), status(err)).Observe(d.Seconds())
	if err == nil {
		c.queryItems.WithLabelValues(string(kind)).Observe(float64(results))
	}
}

// RecordRebalance implements voxbvh.MetricsCollector.
func (c *Collector) RecordRebalance(items int, d time.Duration, background bool) {
	c.rebalances.WithLabelValues(trigger(background)).Inc()
	c.rebalanceD.Observe(d.Seconds())
}

// RecordSize implements voxbvh.MetricsCollector.
func (c *Collector) RecordSize(items int) {
	c.size.Set(float64(items))
}

func trigger(background bool) string {
	if background {
		return "auto"
	}
	return "manual"
}
