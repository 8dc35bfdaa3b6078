// Package command provides CLI command definitions for phash.
//
// It uses urfave/cli/v2 for command parsing. Commands:
//
//   - run: execute the configured mixed workload against one map
//   - verify: run the disjoint-insert consistency check
//   - dump: populate a small map and print its bucket chains
//
// Configuration comes from, in increasing priority: defaults, a YAML
// config file, PHASH_* environment variables, and command-line flags.
package command
