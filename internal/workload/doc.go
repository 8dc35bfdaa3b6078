// Package workload drives a parallel-hash map from concurrent workers.
//
// This package implements the stress and verification harness around
// pkg/intmap:
//
//   - Worker Pool: N goroutines issuing a configured number of
//     operations each against one shared map
//   - Operation Mix: get/put/delete percentages drawn from seeded
//     per-worker PRNGs for reproducible runs
//   - Key Scrambling: optional murmur3 mixing to spread sequential key
//     spaces across buckets
//   - Pacing: optional per-worker rate limiting via golang.org/x/time
//   - Verification: disjoint-insert mode that checks the map's size
//     and contents after all workers have joined
//
// Every run carries a ULID identifying it in logs and reports.
package workload
