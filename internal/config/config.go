// Package config defines the parallel-hash configuration structure.
package config

// Config is the root configuration for the phash driver.
type Config struct {
	Map      MapSection      `koanf:"map"`
	Workload WorkloadSection `koanf:"workload"`
	Metrics  MetricsSection  `koanf:"metrics"`
	Log      LogSection      `koanf:"log"`
}

// MapSection configures the map under test.
type MapSection struct {
	// Capacity is the fixed bucket count, set once at construction.
	Capacity int `koanf:"capacity"`
}

// WorkloadSection configures the concurrent workload.
type WorkloadSection struct {
	// Workers is the number of concurrent worker goroutines.
	Workers int `koanf:"workers"`

	// Ops is the number of operations each worker issues.
	Ops int `koanf:"ops"`

	// KeySpace bounds the keys drawn by the workload to [0, KeySpace).
	KeySpace int64 `koanf:"key_space"`

	// ReadPct is the percentage of operations that are lookups.
	ReadPct int `koanf:"read_pct"`

	// DeletePct is the percentage of operations that are deletes.
	// The remainder after reads and deletes are upserts.
	DeletePct int `koanf:"delete_pct"`

	// Seed seeds the per-worker PRNGs. Zero picks a random seed.
	Seed int64 `koanf:"seed"`

	// Scramble mixes keys through murmur3 before use, spreading
	// sequential key spaces across buckets.
	Scramble bool `koanf:"scramble"`

	// Rate caps each worker's operations per second. Zero means
	// unlimited.
	Rate float64 `koanf:"rate"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
