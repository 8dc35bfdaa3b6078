// Package config defines the parallel-hash configuration structure.
package config

// Default configuration values.
const (
	DefaultCapacity = 1024

	DefaultWorkers   = 8
	DefaultOps       = 100000
	DefaultKeySpace  = 1 << 16
	DefaultReadPct   = 60
	DefaultDeletePct = 10

	DefaultMetricsAddr = "127.0.0.1:9180"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Map: MapSection{
			Capacity: DefaultCapacity,
		},
		Workload: WorkloadSection{
			Workers:   DefaultWorkers,
			Ops:       DefaultOps,
			KeySpace:  DefaultKeySpace,
			ReadPct:   DefaultReadPct,
			DeletePct: DefaultDeletePct,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
