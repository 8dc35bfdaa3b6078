// Package intmap provides a fixed-capacity concurrent map for int64 keys and values.
package intmap

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrInvalidCapacity is returned by New when capacity is less than one.
var ErrInvalidCapacity = errors.New("intmap: capacity must be at least 1")

// Map is a fixed-capacity concurrent chained hash map.
//
// The zero value is not usable; construct with New.
type Map struct {
	buckets []bucket

	// size counts live entries. It is updated inside the owning
	// bucket's critical section, so it agrees exactly with the chains
	// whenever no operation is in flight.
	size atomic.Int64

	// ops counts completed Get/Put/Delete calls. Observability only;
	// it may lag the chains under concurrent callers.
	ops atomic.Uint64

	closed atomic.Bool
}

// bucket holds one chain and the lock that serializes mutations on it.
// The head pointer is atomic so lock-free readers (Range, Dump) stay
// memory-safe while writers relink the chain under the lock.
type bucket struct {
	mu   sync.Mutex
	head atomic.Pointer[entry]
}

// entry is a single key/value node in a bucket chain. The key is
// immutable after the entry is published; value and next are atomic
// for the same reason bucket.head is.
type entry struct {
	key   int64
	value atomic.Int64
	next  atomic.Pointer[entry]
}

// New creates a map with the given number of buckets. Capacity is
// fixed for the life of the map.
func New(capacity int) (*Map, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Map{buckets: make([]bucket, capacity)}, nil
}

// index returns the bucket index for a key. Capacity never changes,
// so a key maps to the same bucket for the life of the map.
func (m *Map) index(key int64) int {
	return int(uint64(key) % uint64(len(m.buckets)))
}

// Get returns the value stored for key.
func (m *Map) Get(key int64) (int64, bool) {
	m.check()
	b := &m.buckets[m.index(key)]
	b.mu.Lock()
	defer b.mu.Unlock()

	defer m.ops.Add(1)

	for e := b.head.Load(); e != nil; e = e.next.Load() {
		if e.key == key {
			return e.value.Load(), true
		}
	}
	return 0, false
}

// Has reports whether key is present.
func (m *Map) Has(key int64) bool {
	_, ok := m.Get(key)
	return ok
}

// Put stores value for key. If the key was already present its value
// is overwritten in place and the prior value is returned with
// existed=true; otherwise a new entry is appended to the tail of the
// bucket chain and existed is false.
func (m *Map) Put(key, value int64) (prev int64, existed bool) {
	m.check()
	b := &m.buckets[m.index(key)]
	b.mu.Lock()
	defer b.mu.Unlock()

	defer m.ops.Add(1)

	var last *entry
	for e := b.head.Load(); e != nil; e = e.next.Load() {
		if e.key == key {
			prev = e.value.Swap(value)
			return prev, true
		}
		last = e
	}

	e := &entry{key: key}
	e.value.Store(value)
	if last == nil {
		b.head.Store(e)
	} else {
		last.next.Store(e)
	}
	m.size.Add(1)
	return 0, false
}

// Delete removes key and returns the value it held. A miss is a
// normal outcome, not an error; it still counts as a completed
// operation.
func (m *Map) Delete(key int64) (int64, bool) {
	m.check()
	b := &m.buckets[m.index(key)]
	b.mu.Lock()
	defer b.mu.Unlock()

	defer m.ops.Add(1)

	var prev *entry
	for e := b.head.Load(); e != nil; e = e.next.Load() {
		if e.key == key {
			next := e.next.Load()
			if prev == nil {
				b.head.Store(next)
			} else {
				prev.next.Store(next)
			}
			m.size.Add(-1)
			return e.value.Load(), true
		}
		prev = e
	}
	return 0, false
}

// Len returns the number of live entries. Exact whenever no operation
// is in flight.
func (m *Map) Len() int {
	return int(m.size.Load())
}

// Ops returns the number of completed Get/Put/Delete calls. The count
// is best-effort under concurrent callers.
func (m *Map) Ops() uint64 {
	return m.ops.Load()
}

// Capacity returns the fixed bucket count.
func (m *Map) Capacity() int {
	return len(m.buckets)
}

// Close tears the map down: every chain is unlinked and further
// operations panic. The caller must guarantee no operation is in
// flight. Close is idempotent.
func (m *Map) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	for i := range m.buckets {
		b := &m.buckets[i]
		b.mu.Lock()
		b.head.Store(nil)
		b.mu.Unlock()
	}
	m.size.Store(0)
	return nil
}

// check panics if the map has been closed. Operations on a closed map
// are a caller bug, in the same class as sending on a closed channel.
func (m *Map) check() {
	if m.closed.Load() {
		panic("intmap: operation on closed Map")
	}
}
