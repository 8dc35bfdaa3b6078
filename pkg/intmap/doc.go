// Package intmap provides a fixed-capacity concurrent map for int64
// keys and values.
//
// This package implements a chained hash map with per-bucket locking,
// built for many goroutines hammering a small fixed key space:
//
//   - Fixed Capacity: The bucket array is sized once at construction
//     and never resized or rehashed
//   - Fine-grained Locking: One mutex per bucket; operations on
//     different buckets never block each other
//   - Chained Buckets: Each bucket is a singly linked chain with at
//     most one entry per key
//   - Lock-free Diagnostics: Range and Dump walk the chains without
//     taking locks and see a best-effort, possibly torn view
//
// Usage:
//
//	m, err := intmap.New(1024)
//	if err != nil {
//		// capacity was invalid
//	}
//	prev, existed := m.Put(42, 7)
//	val, ok := m.Get(42)
//	m.Delete(42)
//
// Thread Safety:
//
// Get, Put, Delete, Len, Ops and Range are safe for concurrent use.
// Close requires that no other operation is in flight; using a Map
// after Close panics.
package intmap
