// Package shutdown provides graceful shutdown for parallel-hash.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic shutdown when a run completes
//   - Timeout-based forced shutdown
//   - Cleanup callback registration in reverse order
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return server.Shutdown(ctx) })
//	go func() { work(); h.Trigger() }()
//	return h.Wait()
package shutdown
