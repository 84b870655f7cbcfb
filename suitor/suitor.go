// Package suitor implements the bounded set of proposals ("suitors") held by
// a single vertex of a b-matching.
//
// A Set admits up to Limit entries. Once full, a new proposal is admitted
// only if it strictly beats the current worst entry, which is then evicted.
// Entries are ordered on Weight, and then on proposer ID: of two proposals
// having equal weight, the higher ID is preferred.
//
// Mutation is serialized by a per-Set lock. The worst entry of a full Set is
// additionally published to a lock-free shadow, which callers may consult to
// discard proposals that cannot be admitted without contending on the lock.
// The shadow is updated before the lock is released, and the worst entry of
// a full Set only ever improves. A stale shadow can therefore pass proposals
// which the authoritative check will reject, but never the reverse.
package suitor

import (
	"container/heap"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.bsuitor.dev/core/graph"
)

// Entry is a proposal held by a Set.
type Entry struct {
	ID     graph.VertexID // Proposing vertex.
	Weight graph.Weight   // Weight of the proposed edge.
}

// Beats returns true if |e| is strictly preferred to |other|.
func (e Entry) Beats(other Entry) bool {
	if e.Weight != other.Weight {
		return e.Weight > other.Weight
	}
	return e.ID > other.ID
}

// Status of a TryAdmit.
type Status int

const (
	// Rejected proposals leave the Set unchanged.
	Rejected Status = iota
	// Accepted proposals were admitted into a Set with spare capacity.
	Accepted
	// AcceptedWithEviction proposals were admitted into a full Set,
	// displacing its prior worst Entry.
	AcceptedWithEviction
)

func (s Status) String() string {
	switch s {
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case AcceptedWithEviction:
		return "accepted-with-eviction"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome of a TryAdmit. Evicted is meaningful only if Status is
// AcceptedWithEviction.
type Outcome struct {
	Status  Status
	Evicted Entry
}

// Set is a bounded collection of suitor Entries. The zero value is a Set of
// Limit zero, which admits nothing. A Set must not be copied after first use.
type Set struct {
	mu      sync.Mutex
	limit   int
	entries entryHeap
	// Worst Entry of a full Set, or nil if the Set is not full.
	worst atomic.Pointer[Entry]
}

// Reset clears the Set and sets its Limit. Reset must not be called
// concurrently with any other method.
func (s *Set) Reset(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
	s.entries = s.entries[:0]
	s.worst.Store(nil)

	if limit == 0 {
		// A zero-limit Set is always full, and admits nothing.
		s.worst.Store(&Entry{ID: maxVertexID, Weight: maxWeight})
	}
}

// Limit returns the maximum number of entries of the Set.
func (s *Set) Limit() int { return s.limit }

// PeekWorst returns the worst Entry of a full Set without locking. If the
// Set is not (yet) known to be full, it returns false.
func (s *Set) PeekWorst() (Entry, bool) {
	if w := s.worst.Load(); w != nil {
		return *w, true
	}
	return Entry{}, false
}

// Admits is an optimistic, lock-free check of whether |e| could be admitted.
// False positives are possible, but false negatives are not.
func (s *Set) Admits(e Entry) bool {
	if w, full := s.PeekWorst(); full {
		return e.Beats(w)
	}
	return true
}

// TryAdmit attempts to add |e| to the Set.
func (s *Set) TryAdmit(e Entry) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Outcome

	if len(s.entries) < s.limit {
		heap.Push(&s.entries, e)
		out.Status = Accepted
	} else if s.limit != 0 && e.Beats(s.entries[0]) {
		out.Status, out.Evicted = AcceptedWithEviction, s.entries[0]
		s.entries[0] = e
		heap.Fix(&s.entries, 0)
	} else {
		return Outcome{Status: Rejected}
	}

	if len(s.entries) > s.limit {
		panic(fmt.Sprintf("suitor set overflow (%d > %d)", len(s.entries), s.limit))
	} else if len(s.entries) == s.limit {
		var worst = s.entries[0]
		s.worst.Store(&worst)
	}
	return out
}

// Len returns the number of entries of the Set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of the Set's entries, ordered from best to worst.
func (s *Set) Entries() []Entry {
	s.mu.Lock()
	var out = append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Beats(out[j]) })
	return out
}

// Weight returns the summed Weight of the Set's entries.
func (s *Set) Weight() graph.Weight {
	s.mu.Lock()
	defer s.mu.Unlock()

	var w graph.Weight
	for _, e := range s.entries {
		w += e.Weight
	}
	return w
}

const (
	maxVertexID = graph.VertexID(1<<31 - 1)
	maxWeight   = graph.Weight(1<<63 - 1)
)

// entryHeap is a min-heap of Entries: its root is the worst Entry.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[j].Beats(h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(Entry))
}
func (h *entryHeap) Pop() interface{} {
	var old, l = *h, len(*h)
	var x = old[l-1]
	*h = old[0 : l-1]
	return x
}
