// Package config defines the parallel-hash configuration structure.
package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyMap(&cfg.Map); err != nil {
		return err
	}
	if err := verifyWorkload(&cfg.Workload); err != nil {
		return err
	}
	return verifyMetrics(&cfg.Metrics)
}

func verifyMap(cfg *MapSection) error {
	if cfg.Capacity < 1 {
		return errors.New("map.capacity must be at least 1")
	}
	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Workers < 1 {
		return errors.New("workload.workers must be at least 1")
	}
	if cfg.Ops < 1 {
		return errors.New("workload.ops must be at least 1")
	}
	if cfg.KeySpace < 1 {
		return errors.New("workload.key_space must be at least 1")
	}
	if cfg.ReadPct < 0 || cfg.ReadPct > 100 {
		return errors.New("workload.read_pct must be between 0 and 100")
	}
	if cfg.DeletePct < 0 || cfg.DeletePct > 100 {
		return errors.New("workload.delete_pct must be between 0 and 100")
	}
	if cfg.ReadPct+cfg.DeletePct > 100 {
		return errors.New("workload.read_pct and workload.delete_pct must sum to at most 100")
	}
	if cfg.Rate < 0 {
		return errors.New("workload.rate must not be negative")
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Enabled && cfg.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}
