// Package command provides CLI command definitions for phash.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ablaberge/parallel-hash/internal/config"
	"github.com/ablaberge/parallel-hash/internal/infra/confloader"
	"github.com/ablaberge/parallel-hash/internal/telemetry/logger"
)

// loadConfig assembles the effective configuration: defaults, then the
// config file, then environment, then command-line flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(confloader.WithConfigFile(c.String("config")))
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyFlags(c, cfg)

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyFlags overlays set command-line flags onto the configuration.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("capacity") {
		cfg.Map.Capacity = c.Int("capacity")
	}
	if c.IsSet("workers") {
		cfg.Workload.Workers = c.Int("workers")
	}
	if c.IsSet("ops") {
		cfg.Workload.Ops = c.Int("ops")
	}
	if c.IsSet("key-space") {
		cfg.Workload.KeySpace = c.Int64("key-space")
	}
	if c.IsSet("seed") {
		cfg.Workload.Seed = c.Int64("seed")
	}
	if c.IsSet("scramble") {
		cfg.Workload.Scramble = c.Bool("scramble")
	}
	if c.IsSet("rate") {
		cfg.Workload.Rate = c.Float64("rate")
	}
	if c.IsSet("metrics") {
		cfg.Metrics.Enabled = c.Bool("metrics")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
	}
}

// initLogger builds the configured logger and installs it as the
// process default.
func initLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// watchConfig reloads the log level when the config file changes.
// Returns a stop function; both are nil when no config file is in use.
func watchConfig(c *cli.Context, log logger.Logger) (func(), error) {
	path := c.String("config")
	if path == "" {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	watcher.OnChange(func(string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(path))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "level", cfg.Log.Level)
	})
	watcher.StartAsync()

	return func() { _ = watcher.Stop() }, nil
}
