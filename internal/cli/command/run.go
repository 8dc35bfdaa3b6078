// Package command provides CLI command definitions for phash.
package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ablaberge/parallel-hash/internal/infra/shutdown"
	"github.com/ablaberge/parallel-hash/internal/telemetry/logger"
	"github.com/ablaberge/parallel-hash/internal/telemetry/metric"
	"github.com/ablaberge/parallel-hash/internal/workload"
	"github.com/ablaberge/parallel-hash/pkg/intmap"
)

// workloadFlags are shared by the run and verify commands.
func workloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "Fixed bucket count of the map",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Number of concurrent workers",
		},
		&cli.IntFlag{
			Name:    "ops",
			Aliases: []string{"n"},
			Usage:   "Operations per worker",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "PRNG seed for reproducible runs (0 = random)",
		},
		&cli.BoolFlag{
			Name:  "scramble",
			Usage: "Mix keys through murmur3 before use",
		},
	}
}

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the configured mixed workload against one map",
		Flags: append(workloadFlags(),
			&cli.Int64Flag{
				Name:  "key-space",
				Usage: "Bound on drawn keys",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Per-worker operations per second (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Expose Prometheus metrics while the workload runs",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Listen address for the metrics endpoint",
			},
		),
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}

	stopWatch, err := watchConfig(c, log)
	if err != nil {
		return err
	}
	if stopWatch != nil {
		defer stopWatch()
	}

	m, err := intmap.New(cfg.Map.Capacity)
	if err != nil {
		return err
	}
	defer m.Close()

	opts := []workload.Option{workload.WithLogger(log)}

	var metrics *metric.Metrics
	if cfg.Metrics.Enabled {
		metrics = metric.New()
		if err := metrics.Register(metric.NewMapCollector(m)); err != nil {
			return err
		}
		opts = append(opts, workload.WithMetrics(metrics))
	}

	runner := workload.NewRunner(m, cfg.Workload, opts...)

	if metrics == nil {
		report, err := runner.Run(context.Background())
		if err != nil {
			return err
		}
		logReport(log, report)
		return nil
	}

	// With metrics enabled the endpoint stays up until the workload
	// finishes or the process is signaled, whichever comes first.
	handler := shutdown.NewHandler(10 * time.Second)

	server := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: metrics.Handler(),
	}
	handler.OnShutdown(func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler.OnShutdown(func(context.Context) error {
		cancel()
		return nil
	})

	go func() {
		log.Info("metrics endpoint listening", "addr", cfg.Metrics.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics endpoint error", "error", err)
		}
	}()

	var report *workload.Report
	var runErr error
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		report, runErr = runner.Run(ctx)
		handler.Trigger()
	}()

	if err := handler.Wait(); err != nil {
		log.Warn("shutdown hook failed", "error", err)
	}
	// On the signal path the workload is canceled by a hook; wait for
	// the goroutine to finish writing its results before reading them.
	<-runDone
	if runErr != nil {
		return runErr
	}
	if report != nil {
		logReport(log, report)
	}
	return nil
}

// logReport writes the run summary.
func logReport(log logger.Logger, report *workload.Report) {
	log.Info("run report",
		"run_id", report.RunID,
		"total_ops", report.Total(),
		"gets", report.Gets(),
		"get_hits", report.GetHits(),
		"puts", report.Puts(),
		"updates", report.Updates,
		"deletes", report.Deletes(),
		"delete_hits", report.DeleteHits(),
		"duration", report.Duration.String(),
		"ops_per_second", report.OpsPerSecond,
		"final_size", report.FinalSize,
		"map_ops", report.MapOps)
}
