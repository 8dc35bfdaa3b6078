// Package buildinfo provides build information for phash.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "0.2.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// Usage:
//
//	go build -ldflags "-X github.com/ablaberge/parallel-hash/internal/infra/buildinfo.Version=0.2.0"
package buildinfo
