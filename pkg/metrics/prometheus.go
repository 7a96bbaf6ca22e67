// Package metrics provides Prometheus metrics for the feedback results server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Option func(*Metrics)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Metrics) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// Metrics holds the collectors for aggregation runs and the results cache.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	aggregationDuration *prometheus.HistogramVec
	resultRecords       prometheus.Gauge
	skippedResponses    prometheus.Counter
	cacheLookups        *prometheus.CounterVec
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: "feedback360",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.aggregationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "aggregation",
		Name:      "duration_seconds",
		Help:      "Time spent loading and aggregating a cycle's results",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	m.resultRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "aggregation",
		Name:      "result_records",
		Help:      "Result records produced by the last successful aggregation",
	})

	m.skippedResponses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "aggregation",
		Name:      "skipped_responses_total",
		Help:      "Responses dropped for unknown references or missing scale values",
	})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Results cache lookups by operation and outcome",
	}, []string{"op", "outcome"})

	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAggregation records one aggregation run.
func (m *Metrics) ObserveAggregation(d time.Duration, records, skipped int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aggregationDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if err != nil {
		return
	}
	m.resultRecords.Set(float64(records))
	m.skippedResponses.Add(float64(skipped))
}

// CacheHit counts a cache hit for op.
func (m *Metrics) CacheHit(op string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(op, "hit").Inc()
}

// CacheMiss counts a cache miss for op.
func (m *Metrics) CacheMiss(op string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(op, "miss").Inc()
}
