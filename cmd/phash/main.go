// Package main provides the entry point for phash.
//
// phash is the workload driver for the parallel-hash concurrent map:
// it runs configurable concurrent workloads against a fixed-capacity
// map, verifies concurrent-insert consistency, and prints bucket
// chains for inspection.
//
// Usage:
//
//	phash run --workers 8 --ops 100000 --metrics
//	phash verify --workers 8 --ops 10000
//	phash dump --capacity 8 --entries 32
package main

import (
	"fmt"
	"os"

	"github.com/ablaberge/parallel-hash/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
