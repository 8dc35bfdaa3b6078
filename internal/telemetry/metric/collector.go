// Package metric provides Prometheus metrics for parallel-hash.
package metric

import "github.com/prometheus/client_golang/prometheus"

// MapStats is the read-only view of the map that the collector scrapes.
// *intmap.Map satisfies it.
type MapStats interface {
	Len() int
	Ops() uint64
	Capacity() int
}

// MapCollector exports the live state of one map.
type MapCollector struct {
	stats MapStats

	sizeDesc     *prometheus.Desc
	opsDesc      *prometheus.Desc
	capacityDesc *prometheus.Desc
}

// NewMapCollector creates a collector over the given map.
func NewMapCollector(stats MapStats) *MapCollector {
	return &MapCollector{
		stats: stats,
		sizeDesc: prometheus.NewDesc(
			namespace+"_map_size",
			"Live entries in the map.",
			nil, nil,
		),
		opsDesc: prometheus.NewDesc(
			namespace+"_map_ops_total",
			"Completed operations as counted by the map itself (best-effort).",
			nil, nil,
		),
		capacityDesc: prometheus.NewDesc(
			namespace+"_map_capacity",
			"Fixed bucket count of the map.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *MapCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sizeDesc
	ch <- c.opsDesc
	ch <- c.capacityDesc
}

// Collect implements prometheus.Collector.
func (c *MapCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(c.stats.Len()))
	ch <- prometheus.MustNewConstMetric(c.opsDesc, prometheus.CounterValue, float64(c.stats.Ops()))
	ch <- prometheus.MustNewConstMetric(c.capacityDesc, prometheus.GaugeValue, float64(c.stats.Capacity()))
}
