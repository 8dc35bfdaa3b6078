// Package command provides CLI command definitions for phash.
package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/ablaberge/parallel-hash/internal/workload"
	"github.com/ablaberge/parallel-hash/pkg/intmap"
)

// VerifyCommand returns the verify command.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:   "verify",
		Usage:  "Insert disjoint key ranges from concurrent workers and check the result",
		Flags:  workloadFlags(),
		Action: verifyAction,
	}
}

func verifyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}

	m, err := intmap.New(cfg.Map.Capacity)
	if err != nil {
		return err
	}
	defer m.Close()

	runner := workload.NewRunner(m, cfg.Workload, workload.WithLogger(log))
	report, err := runner.Verify(context.Background())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info("verify report",
		"run_id", report.RunID,
		"entries", report.FinalSize,
		"duration", report.Duration.String())
	return nil
}
