package matching

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.bsuitor.dev/core/capacity"
	"go.bsuitor.dev/core/graph"
	"go.bsuitor.dev/core/metrics"
	"go.bsuitor.dev/core/suitor"
	"golang.org/x/sync/errgroup"
)

// vertex is the state of a vertex over a single profile run. |initial| is
// fixed at the start of the run. |capacity| and |cursor| are accessed only by
// the worker which has claimed the vertex in the current round. |displaced|
// is incremented by any worker which evicts one of the vertex's proposals.
type vertex struct {
	initial   int          // Capacity of the vertex under the current profile.
	capacity  int          // Proposal quota of the current round.
	cursor    int          // Index of the next unexamined neighbor.
	displaced atomic.Int32 // Proposals of the vertex evicted this round.
}

// Result summarizes the run of a single capacity profile.
type Result struct {
	Profile int
	// Total weight of the matching.
	Weight graph.Weight
	// Number of rounds required to converge.
	Rounds int
	// Proposals admitted by a suitor Set.
	Proposals int64
	// Proposals discarded by the lock-free pre-check.
	Filtered int64
	// Proposals which passed the pre-check, but were rejected under lock.
	Rejected int64
	// Admitted proposals which displaced a prior suitor.
	Evictions int64
	// Displaced vertices queued for a further round.
	Requeued int64
	Duration time.Duration
}

// Engine computes b-matchings of a Graph. An Engine may be Run repeatedly
// with different capacity profiles, but not concurrently.
type Engine struct {
	graph    *graph.Graph
	workers  int
	vertices []vertex
	suitors  []suitor.Set
	queue    roundQueue

	// TestHook is an optional testing hook, invoked after each round has been
	// drained and the next round's queue and quotas are in place.
	TestHook func(round int)
}

// NewEngine returns an Engine of the Graph which runs up to |workers|
// concurrent workers within each round.
func NewEngine(g *graph.Graph, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		graph:    g,
		workers:  workers,
		vertices: make([]vertex, g.Len()),
		suitors:  make([]suitor.Set, g.Len()),
	}
}

// Graph returns the Graph of the Engine.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Capacity returns the capacity of |v| under the most recent profile.
func (e *Engine) Capacity(v graph.VertexID) int { return e.vertices[v].initial }

// Suitors returns the proposals held by |v|, from best to worst.
func (e *Engine) Suitors(v graph.VertexID) []suitor.Entry { return e.suitors[v].Entries() }

// Run computes a b-matching under |profile| of the capacity Profile.
// The Context is consulted only between rounds: a round, once begun,
// always runs to completion.
func (e *Engine) Run(ctx context.Context, profile int, cp capacity.Profile) (Result, error) {
	var startTime = time.Now()
	var res = Result{Profile: profile}

	e.initialize(profile, cp)

	for queued := e.queue.size; queued != 0; {
		if err := ctx.Err(); err != nil {
			return res, errors.WithMessagef(err, "profile %d round %d", profile, res.Rounds+1)
		}
		var stats = e.round()
		queued = e.queue.swap()
		e.refreshQuotas()

		res.Rounds++
		res.Proposals += stats.accepted
		res.Filtered += stats.filtered
		res.Rejected += stats.rejected
		res.Evictions += stats.evictions
		res.Requeued += stats.requeued

		metrics.RoundsTotal.Inc()
		metrics.ProposalsTotal.WithLabelValues(metrics.Accepted).Add(float64(stats.accepted))
		metrics.ProposalsTotal.WithLabelValues(metrics.Filtered).Add(float64(stats.filtered))
		metrics.ProposalsTotal.WithLabelValues(metrics.Rejected).Add(float64(stats.rejected))
		metrics.EvictionsTotal.Add(float64(stats.evictions))
		metrics.RequeuedTotal.Add(float64(stats.requeued))

		log.WithFields(log.Fields{
			"profile":   profile,
			"round":     res.Rounds,
			"accepted":  stats.accepted,
			"filtered":  stats.filtered,
			"rejected":  stats.rejected,
			"evictions": stats.evictions,
			"requeued":  queued,
		}).Debug("round complete")

		if e.TestHook != nil {
			e.TestHook(res.Rounds)
		}
	}

	for v := range e.suitors {
		res.Weight += e.suitors[v].Weight()
	}
	// Each matched edge is held at both of its endpoints.
	res.Weight /= 2
	res.Duration = time.Since(startTime)

	metrics.ProfilesTotal.Inc()
	metrics.MatchedWeight.Set(float64(res.Weight))
	metrics.ProfileDurationSeconds.Observe(res.Duration.Seconds())

	log.WithFields(log.Fields{
		"profile":   profile,
		"weight":    humanize.Comma(int64(res.Weight)),
		"rounds":    res.Rounds,
		"proposals": humanize.Comma(res.Proposals),
		"evictions": humanize.Comma(res.Evictions),
		"dur":       res.Duration,
	}).Info("profile converged")

	return res, nil
}

// RunProfiles runs each profile of [0, maxProfile] in order, invoking |fn|
// with each Result. It stops at the first error.
func (e *Engine) RunProfiles(ctx context.Context, maxProfile int, cp capacity.Profile, fn func(Result) error) error {
	for profile := 0; profile <= maxProfile; profile++ {
		var res, err = e.Run(ctx, profile, cp)
		if err != nil {
			return err
		} else if err = fn(res); err != nil {
			return err
		}
	}
	return nil
}

// initialize vertex state and suitor Sets for |profile|, and queue all
// vertices for the first round.
func (e *Engine) initialize(profile int, cp capacity.Profile) {
	for v := range e.vertices {
		var b = cp.Capacity(profile, e.graph.Original(graph.VertexID(v)))
		if b < 0 {
			b = 0
		}
		var vx = &e.vertices[v]
		vx.initial, vx.capacity, vx.cursor = b, b, 0
		vx.displaced.Store(0)

		e.suitors[v].Reset(b)
	}
	e.queue.reset(e.graph.Order())
}

// round runs workers over the current queue until all of its vertices have
// been claimed and processed, and returns their summed statistics.
func (e *Engine) round() roundStats {
	var workers = e.workers
	if workers > e.queue.size {
		workers = e.queue.size
	}
	var stats = make([]roundStats, workers)
	var eg errgroup.Group

	// The calling goroutine acts as the first worker.
	for i := 1; i < workers; i++ {
		var s = &stats[i]
		eg.Go(func() error {
			e.work(s)
			return nil
		})
	}
	e.work(&stats[0])
	_ = eg.Wait() // Workers don't fail.

	var sum roundStats
	for _, s := range stats {
		sum.add(s)
	}
	return sum
}

// refreshQuotas assigns each vertex queued for the next round a quota equal
// to the number of its proposals which were displaced, and clears its count.
func (e *Engine) refreshQuotas() {
	for _, v := range e.queue.pending() {
		var vx = &e.vertices[v]
		vx.capacity = int(vx.displaced.Swap(0))
	}
}

// displace records an eviction of a proposal made by |v|. The first eviction
// of a round queues |v| for the next round, and displace returns true.
func (e *Engine) displace(v graph.VertexID) bool {
	if e.vertices[v].displaced.Add(1) == 1 {
		e.queue.push(v)
		return true
	}
	return false
}

// roundStats are accumulated locally by each worker.
type roundStats struct {
	accepted, filtered, rejected, evictions, requeued int64
}

func (s *roundStats) add(o roundStats) {
	s.accepted += o.accepted
	s.filtered += o.filtered
	s.rejected += o.rejected
	s.evictions += o.evictions
	s.requeued += o.requeued
}
