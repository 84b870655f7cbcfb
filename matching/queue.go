package matching

import (
	"sync/atomic"

	"go.bsuitor.dev/core/graph"
)

// roundQueue is a double-buffered queue of vertices. Workers claim vertices
// of the |current| round via an atomic cursor, and append displaced vertices
// for the |next| round via a second atomic cursor. Each buffer is sized to
// hold every vertex, and callers ensure a vertex is appended at most once per
// round, so appends never overflow.
type roundQueue struct {
	current, next []graph.VertexID
	size          int // Number of claimable entries of |current|.

	claimed atomic.Int64 // Next index of |current| to claim.
	written atomic.Int64 // Next index of |next| to append.
}

// reset the queue to hold exactly |order| for the current round.
func (q *roundQueue) reset(order []graph.VertexID) {
	if cap(q.current) < len(order) {
		q.current = make([]graph.VertexID, len(order))
		q.next = make([]graph.VertexID, len(order))
	}
	q.current, q.next = q.current[:len(order)], q.next[:len(order)]
	q.size = copy(q.current, order)
	q.claimed.Store(0)
	q.written.Store(0)
}

// claim the next unclaimed vertex of the current round. Each vertex is
// returned to exactly one caller.
func (q *roundQueue) claim() (graph.VertexID, bool) {
	var ind = q.claimed.Add(1) - 1
	if ind >= int64(q.size) {
		return 0, false
	}
	return q.current[ind], true
}

// push appends |v| to the next round.
func (q *roundQueue) push(v graph.VertexID) {
	q.next[q.written.Add(1)-1] = v
}

// swap promotes the next round to current, returning its size.
// swap must not be called concurrently with claim or push.
func (q *roundQueue) swap() int {
	q.current, q.next = q.next, q.current
	q.size = int(q.written.Load())
	q.claimed.Store(0)
	q.written.Store(0)
	return q.size
}

// pending returns the vertices of the current round.
func (q *roundQueue) pending() []graph.VertexID { return q.current[:q.size] }
