package matching

import (
	"go.bsuitor.dev/core/graph"
	"go.bsuitor.dev/core/suitor"
)

// work claims and processes vertices of the current round until none remain.
func (e *Engine) work(stats *roundStats) {
	for {
		if u, ok := e.queue.claim(); !ok {
			return
		} else {
			e.propose(u, stats)
		}
	}
}

// propose extends proposals from |u| to its neighbors, in order, until |u|
// has had its quota of proposals admitted or has no further neighbors.
// Each neighbor is examined at most once per profile run.
func (e *Engine) propose(u graph.VertexID, stats *roundStats) {
	var (
		vx   = &e.vertices[u]
		adj  = e.graph.Neighbors(u)
		sent int
	)
	for vx.cursor < len(adj) && sent < vx.capacity {
		var n = adj[vx.cursor]
		vx.cursor++

		if e.vertices[n.ID].initial == 0 {
			continue // |n| can never admit a proposal.
		}
		var set = &e.suitors[n.ID]
		var proposal = suitor.Entry{ID: u, Weight: n.Weight}

		if !set.Admits(proposal) {
			stats.filtered++
			continue
		}
		var out = set.TryAdmit(proposal)

		switch out.Status {
		case suitor.Rejected:
			stats.rejected++ // The pre-check observed a stale worst entry.
			continue
		case suitor.AcceptedWithEviction:
			stats.evictions++
			if e.displace(out.Evicted.ID) {
				stats.requeued++
			}
		}
		stats.accepted++
		sent++
	}
}
