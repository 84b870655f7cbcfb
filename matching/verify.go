package matching

import (
	"github.com/pkg/errors"
	"go.bsuitor.dev/core/graph"
	"go.bsuitor.dev/core/suitor"
)

// Verify checks that the suitor Sets of a converged Engine form a valid,
// stable b-matching of its Graph:
//
//   - No Set holds more entries than its vertex's capacity.
//   - Every entry corresponds to an edge of the Graph, with its exact weight,
//     and no proposer is held twice by one Set.
//   - No vertex has more proposals held than its own capacity.
//   - No vertex could improve its proposals: every neighbor which it would
//     prefer to one of its held proposals (or any neighbor at all, if it has
//     spare capacity) would reject it.
//
// Verify must not be called concurrently with Run.
func Verify(e *Engine) error {
	var g = e.graph
	var held = make([][]graph.Neighbor, g.Len()) // Vertices holding a proposal of the indexed vertex.

	for p := range e.suitors {
		var pid = graph.VertexID(p)
		var entries = e.suitors[p].Entries()

		if len(entries) > e.vertices[p].initial {
			return errors.Errorf("vertex %d holds %d suitors (capacity %d)",
				g.Original(pid), len(entries), e.vertices[p].initial)
		}
		for i, en := range entries {
			if w, ok := g.EdgeWeight(pid, en.ID); !ok {
				return errors.Errorf("vertex %d holds suitor %d, which is not a neighbor",
					g.Original(pid), g.Original(en.ID))
			} else if w != en.Weight {
				return errors.Errorf("vertex %d holds suitor %d with weight %d (edge weight is %d)",
					g.Original(pid), g.Original(en.ID), en.Weight, w)
			}
			for _, other := range entries[:i] {
				if other.ID == en.ID {
					return errors.Errorf("vertex %d holds suitor %d twice", g.Original(pid), g.Original(en.ID))
				}
			}
			held[en.ID] = append(held[en.ID], graph.Neighbor{ID: pid, Weight: en.Weight})
		}
	}

	for u := range held {
		var uid = graph.VertexID(u)
		var b = e.vertices[u].initial

		if len(held[u]) > b {
			return errors.Errorf("vertex %d has %d proposals held (capacity %d)",
				g.Original(uid), len(held[u]), b)
		} else if b == 0 {
			continue
		}

		// Find the least preferred neighbor holding a proposal of |u|.
		var weakest *graph.Neighbor
		for i := range held[u] {
			if weakest == nil || graph.Precedes(*weakest, held[u][i]) {
				weakest = &held[u][i]
			}
		}
		var full = len(held[u]) == b

		for _, n := range g.Neighbors(uid) {
			if full && !graph.Precedes(n, *weakest) {
				break // |u| has no reason to propose further.
			} else if isHeldBy(held[u], n.ID) || e.vertices[n.ID].initial == 0 {
				continue
			}
			var proposal = suitor.Entry{ID: uid, Weight: n.Weight}
			if wouldAdmit(&e.suitors[n.ID], proposal) {
				return errors.Errorf("vertex %d would admit a proposal from %d (weight %d)",
					g.Original(n.ID), g.Original(uid), n.Weight)
			}
		}
	}
	return nil
}

func isHeldBy(held []graph.Neighbor, v graph.VertexID) bool {
	for _, h := range held {
		if h.ID == v {
			return true
		}
	}
	return false
}

// wouldAdmit returns whether TryAdmit of |e| would succeed, without
// modifying the Set.
func wouldAdmit(s *suitor.Set, e suitor.Entry) bool {
	var entries = s.Entries()
	if len(entries) < s.Limit() {
		return true
	}
	return len(entries) != 0 && e.Beats(entries[len(entries)-1])
}
