package matching

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.bsuitor.dev/core/graph"
)

func TestQueueClaimsEachVertexOnce(t *testing.T) {
	const n, workers = 5000, 8

	var order = make([]graph.VertexID, n)
	for i := range order {
		order[i] = graph.VertexID(n - i - 1)
	}
	var q roundQueue
	q.reset(order)

	var claimed = make([][]graph.VertexID, workers)
	var wg sync.WaitGroup

	for w := 0; w != workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				var v, ok = q.claim()
				if !ok {
					return
				}
				claimed[w] = append(claimed[w], v)
				if v%3 == 0 {
					q.push(v)
				}
			}
		}(w)
	}
	wg.Wait()

	var all []graph.VertexID
	for _, c := range claimed {
		all = append(all, c...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	require.Len(t, all, n)
	for i, v := range all {
		require.Equal(t, graph.VertexID(i), v)
	}

	// Pushed vertices become the next round.
	require.Equal(t, (n+2)/3, q.swap())
	var next = append([]graph.VertexID(nil), q.pending()...)
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	for i, v := range next {
		require.Equal(t, graph.VertexID(3*i), v)
	}

	// Claims begin again from the start of the new round.
	var v, ok = q.claim()
	require.True(t, ok)
	require.Equal(t, q.pending()[0], v)

	require.Equal(t, 0, q.swap())
	_, ok = q.claim()
	require.False(t, ok)
}
