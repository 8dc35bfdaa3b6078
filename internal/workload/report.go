// Package workload drives a parallel-hash map from concurrent workers.
package workload

import (
	"sync/atomic"
	"time"

	"github.com/ablaberge/parallel-hash/pkg/intmap"
)

// Report summarizes one workload run. The counters are updated
// atomically by workers while the run is in flight; the derived fields
// are filled in once all workers have joined.
type Report struct {
	RunID        string
	Workers      int
	OpsPerWorker int

	gets       atomic.Uint64
	getHits    atomic.Uint64
	puts       atomic.Uint64
	updates    atomic.Uint64
	deletes    atomic.Uint64
	deleteHits atomic.Uint64

	// Derived after the run.
	Updates      uint64
	Duration     time.Duration
	OpsPerSecond float64
	FinalSize    int
	MapOps       uint64
}

func (r *Report) countGet(hit bool) {
	r.gets.Add(1)
	if hit {
		r.getHits.Add(1)
	}
}

func (r *Report) countPut(existed bool) {
	r.puts.Add(1)
	if existed {
		r.updates.Add(1)
	}
}

func (r *Report) countDelete(hit bool) {
	r.deletes.Add(1)
	if hit {
		r.deleteHits.Add(1)
	}
}

// Gets returns the number of lookups issued.
func (r *Report) Gets() uint64 { return r.gets.Load() }

// GetHits returns the number of lookups that found their key.
func (r *Report) GetHits() uint64 { return r.getHits.Load() }

// Puts returns the number of upserts issued.
func (r *Report) Puts() uint64 { return r.puts.Load() }

// Deletes returns the number of deletes issued.
func (r *Report) Deletes() uint64 { return r.deletes.Load() }

// DeleteHits returns the number of deletes that removed an entry.
func (r *Report) DeleteHits() uint64 { return r.deleteHits.Load() }

// Total returns the number of operations issued over the whole run.
func (r *Report) Total() uint64 {
	return r.gets.Load() + r.puts.Load() + r.deletes.Load()
}

// finish fills in the derived fields from the quiescent map.
func (r *Report) finish(m *intmap.Map) {
	r.Updates = r.updates.Load()
	r.FinalSize = m.Len()
	r.MapOps = m.Ops()
	if r.Duration > 0 {
		r.OpsPerSecond = float64(r.Total()) / r.Duration.Seconds()
	}
}
