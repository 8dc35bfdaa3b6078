// Package metric provides Prometheus metrics for parallel-hash.
//
// It exposes metrics in Prometheus format for monitoring workload
// throughput, operation outcomes, and the state of the map under test.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes all metric names.
const namespace = "phash"

// Operation label values.
const (
	OpGet    = "get"
	OpPut    = "put"
	OpDelete = "delete"
)

// Outcome label values.
const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeInsert = "insert"
	OutcomeUpdate = "update"
)

// Metrics holds all workload metrics backed by a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// OpsTotal counts completed operations by op and outcome.
	OpsTotal *prometheus.CounterVec

	// OpDuration samples operation latency by op.
	OpDuration *prometheus.HistogramVec

	// WorkersActive tracks the number of running workers.
	WorkersActive prometheus.Gauge
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "ops_total",
			Help:      "Completed map operations by op and outcome.",
		}, []string{"op", "outcome"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "op_duration_seconds",
			Help:      "Latency of map operations.",
			Buckets:   prometheus.ExponentialBuckets(50e-9, 4, 12),
		}, []string{"op"}),
		WorkersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "workers_active",
			Help:      "Number of workers currently issuing operations.",
		}),
	}

	m.registry.MustRegister(
		m.OpsTotal,
		m.OpDuration,
		m.WorkersActive,
		collectors.NewGoCollector(),
	)

	return m
}

// Register adds an extra collector, such as the map collector.
func (m *Metrics) Register(c prometheus.Collector) error {
	return m.registry.Register(c)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
