// Package workload drives a parallel-hash map from concurrent workers.
package workload

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/time/rate"

	"github.com/ablaberge/parallel-hash/internal/config"
	"github.com/ablaberge/parallel-hash/internal/telemetry/logger"
	"github.com/ablaberge/parallel-hash/internal/telemetry/metric"
	"github.com/ablaberge/parallel-hash/pkg/intmap"
)

// Runner executes a configured workload against one map.
type Runner struct {
	m       *intmap.Map
	cfg     config.WorkloadSection
	metrics *metric.Metrics
	log     logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics attaches a metrics registry; operations are then counted
// and timed.
func WithMetrics(m *metric.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger sets the runner's logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner creates a runner over the given map.
func NewRunner(m *intmap.Map, cfg config.WorkloadSection, opts ...Option) *Runner {
	r := &Runner{
		m:   m,
		cfg: cfg,
		log: logger.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewRunID returns a fresh ULID identifying one run.
func NewRunID() string {
	return ulid.Make().String()
}

// scramble mixes a key through murmur3 so that sequential key spaces
// land on unrelated buckets.
func scramble(key int64) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return int64(murmur3.Sum64(buf[:]))
}

// key derives the key a worker uses for one operation.
func (r *Runner) key(rng *rand.Rand) int64 {
	k := rng.Int63n(r.cfg.KeySpace)
	if r.cfg.Scramble {
		k = scramble(k)
	}
	return k
}

// seed returns the base PRNG seed for a run. A configured seed makes
// runs reproducible; otherwise each run gets its own.
func (r *Runner) seed() int64 {
	if r.cfg.Seed != 0 {
		return r.cfg.Seed
	}
	return time.Now().UnixNano()
}

// Run executes the mixed workload and returns its report. It stops
// early when ctx is canceled, returning what was counted so far along
// with the context error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := NewRunID()
	log := r.log.With("run_id", runID)
	ctx = logger.WithRunID(ctx, runID)

	seed := r.seed()
	log.Info("starting workload",
		"workers", r.cfg.Workers,
		"ops_per_worker", r.cfg.Ops,
		"key_space", r.cfg.KeySpace,
		"read_pct", r.cfg.ReadPct,
		"delete_pct", r.cfg.DeletePct,
		"seed", seed,
		"scramble", r.cfg.Scramble,
		"rate", r.cfg.Rate)

	report := &Report{
		RunID:        runID,
		Workers:      r.cfg.Workers,
		OpsPerWorker: r.cfg.Ops,
	}

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, r.cfg.Workers)

	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if err := r.worker(ctx, seed+int64(w), report); err != nil {
				errs <- err
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	report.Duration = time.Since(start)
	report.finish(r.m)

	if err := <-errs; err != nil {
		return report, err
	}

	log.Info("workload finished",
		"duration", report.Duration,
		"ops_per_second", report.OpsPerSecond,
		"final_size", report.FinalSize)
	return report, nil
}

// worker issues r.cfg.Ops operations with the configured mix.
func (r *Runner) worker(ctx context.Context, seed int64, report *Report) error {
	if r.metrics != nil {
		r.metrics.WorkersActive.Inc()
		defer r.metrics.WorkersActive.Dec()
	}

	rng := rand.New(rand.NewSource(seed))

	var limiter *rate.Limiter
	if r.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.Rate), 1)
	}

	for i := 0; i < r.cfg.Ops; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		key := r.key(rng)
		roll := rng.Intn(100)

		start := time.Now()
		switch {
		case roll < r.cfg.ReadPct:
			_, ok := r.m.Get(key)
			report.countGet(ok)
			r.observe(metric.OpGet, hitOutcome(ok), start)
		case roll < r.cfg.ReadPct+r.cfg.DeletePct:
			_, ok := r.m.Delete(key)
			report.countDelete(ok)
			r.observe(metric.OpDelete, hitOutcome(ok), start)
		default:
			_, existed := r.m.Put(key, rng.Int63())
			report.countPut(existed)
			r.observe(metric.OpPut, putOutcome(existed), start)
		}
	}
	return nil
}

// observe records one operation in the metrics registry, if attached.
func (r *Runner) observe(op, outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.OpsTotal.WithLabelValues(op, outcome).Inc()
	r.metrics.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func hitOutcome(ok bool) string {
	if ok {
		return metric.OutcomeHit
	}
	return metric.OutcomeMiss
}

func putOutcome(existed bool) string {
	if existed {
		return metric.OutcomeUpdate
	}
	return metric.OutcomeInsert
}

// Verify runs the disjoint-insert scenario: every worker inserts its
// own key range, and after all workers have joined the map must hold
// exactly workers*ops entries, each readable with its value.
func (r *Runner) Verify(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := NewRunID()
	log := r.log.With("run_id", runID)

	report := &Report{
		RunID:        runID,
		Workers:      r.cfg.Workers,
		OpsPerWorker: r.cfg.Ops,
	}

	log.Info("starting verification",
		"workers", r.cfg.Workers,
		"keys_per_worker", r.cfg.Ops,
		"scramble", r.cfg.Scramble)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := int64(w) * int64(r.cfg.Ops)
			for i := int64(0); i < int64(r.cfg.Ops); i++ {
				key := base + i
				if r.cfg.Scramble {
					key = scramble(key)
				}
				opStart := time.Now()
				_, existed := r.m.Put(key, base+i+1)
				report.countPut(existed)
				r.observe(metric.OpPut, putOutcome(existed), opStart)
			}
		}(w)
	}
	wg.Wait()

	report.Duration = time.Since(start)
	report.finish(r.m)

	want := r.cfg.Workers * r.cfg.Ops
	if report.FinalSize != want {
		return report, fmt.Errorf("workload: size is %d after %d distinct inserts", report.FinalSize, want)
	}
	if report.Updates != 0 {
		return report, fmt.Errorf("workload: %d distinct inserts hit existing entries", report.Updates)
	}

	for k := int64(0); k < int64(want); k++ {
		key := k
		if r.cfg.Scramble {
			key = scramble(k)
		}
		val, ok := r.m.Get(key)
		if !ok {
			return report, fmt.Errorf("workload: key %d missing after insert", k)
		}
		if val != k+1 {
			return report, fmt.Errorf("workload: key %d holds %d, want %d", k, val, k+1)
		}
	}

	log.Info("verification passed",
		"entries", want,
		"duration", report.Duration)
	return report, nil
}
