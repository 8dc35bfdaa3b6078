// Package intmap provides a fixed-capacity concurrent map for int64 keys and values.
package intmap

import (
	"fmt"
	"io"
)

// Range iterates over all key-value pairs in bucket order, then chain
// order within a bucket. The callback returns false to stop iteration.
//
// Range takes no locks. Under concurrent writers it is a best-effort
// snapshot: it may observe an entry that is being removed, miss an
// entry inserted mid-walk, or see buckets from different moments. It
// must not be used where a consistent view is required.
func (m *Map) Range(fn func(key, value int64) bool) {
	m.check()
	for i := range m.buckets {
		for e := m.buckets[i].head.Load(); e != nil; e = e.next.Load() {
			if !fn(e.key, e.value.Load()) {
				return
			}
		}
	}
}

// Keys returns all keys, subject to the same weak consistency as Range.
func (m *Map) Keys() []int64 {
	keys := make([]int64, 0, m.Len())
	m.Range(func(key, _ int64) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Dump writes a human-readable listing of every bucket chain, one
// bucket per line:
//
//	[0] -> (0,10) -> (4,14)
//	[1] -> (1,11) -> (5,15)
//
// Dump shares Range's weak consistency and is intended for human
// inspection only.
func (m *Map) Dump(w io.Writer) error {
	m.check()
	for i := range m.buckets {
		if _, err := fmt.Fprintf(w, "[%d] ->", i); err != nil {
			return err
		}
		for e := m.buckets[i].head.Load(); e != nil; e = e.next.Load() {
			if _, err := fmt.Fprintf(w, " (%d,%d)", e.key, e.value.Load()); err != nil {
				return err
			}
			if e.next.Load() != nil {
				if _, err := io.WriteString(w, " ->"); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
