package graph

import (
	"context"
	"math"
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type (
	// VertexID is the dense (compacted) identifier of a vertex.
	VertexID int32
	// Weight of an edge. Input weights are non-negative.
	Weight int64
)

// MaxTotalWeight bounds the summed weight of all input edges. A matched edge
// is held at both of its endpoints, so matching totals are accumulated at up
// to twice this value.
const MaxTotalWeight = Weight(math.MaxInt64 / 2)

// Neighbor is an adjacent vertex, and the Weight of the connecting edge.
type Neighbor struct {
	ID     VertexID
	Weight Weight
}

// Edge is an undirected edge of the input, in original vertex identifiers.
type Edge struct {
	From, To int64
	Weight   Weight
}

// Graph is a compacted, immutable undirected graph.
type Graph struct {
	original  []int64      // Dense VertexID => original identifier.
	adjacency [][]Neighbor // Neighbors of each VertexID, in proposal order.
	order     []VertexID   // VertexIDs on descending heaviest edge.
	edges     int          // Number of distinct undirected edges.
}

// Len returns the number of vertices of the Graph.
func (g *Graph) Len() int { return len(g.original) }

// Edges returns the number of distinct undirected edges of the Graph.
func (g *Graph) Edges() int { return g.edges }

// Neighbors returns the neighbors of |v| in proposal order. The returned
// slice must not be modified.
func (g *Graph) Neighbors(v VertexID) []Neighbor { return g.adjacency[v] }

// Original returns the input identifier of dense VertexID |v|.
func (g *Graph) Original(v VertexID) int64 { return g.original[v] }

// Order returns all VertexIDs on descending weight of their heaviest edge.
// The returned slice must not be modified.
func (g *Graph) Order() []VertexID { return g.order }

// Lookup returns the dense VertexID of an original identifier.
func (g *Graph) Lookup(original int64) (VertexID, bool) {
	var ind = sort.Search(len(g.original), func(i int) bool { return g.original[i] >= original })
	if ind == len(g.original) || g.original[ind] != original {
		return 0, false
	}
	return VertexID(ind), true
}

// EdgeWeight returns the Weight of the edge between |u| and |v|, if one exists.
func (g *Graph) EdgeWeight(u, v VertexID) (Weight, bool) {
	for _, n := range g.adjacency[u] {
		if n.ID == v {
			return n.Weight, true
		}
	}
	return 0, false
}

// Precedes is the proposal order of neighbors: descending on weight, and
// then on descending VertexID.
func Precedes(a, b Neighbor) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	return a.ID > b.ID
}

// Build compacts |edges| into a Graph. Neighbor lists are sorted using up to
// |workers| concurrent sorters. Self-loops are dropped (though their vertex is
// retained), and parallel edges collapse to the heaviest of them.
func Build(ctx context.Context, edges []Edge, workers int) (*Graph, error) {
	var g = new(Graph)

	var total Weight
	for _, e := range edges {
		if e.Weight < 0 {
			return nil, errors.Errorf("edge %d-%d has negative weight (%d)", e.From, e.To, e.Weight)
		} else if e.Weight > MaxTotalWeight-total {
			return nil, errors.Errorf("total edge weight exceeds %d", MaxTotalWeight)
		}
		total += e.Weight
	}

	// Collect and order distinct original identifiers.
	var ids = make([]int64, 0, 2*len(edges))
	for _, e := range edges {
		ids = append(ids, e.From, e.To)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			g.original = append(g.original, id)
		}
	}

	// Count degrees so that each adjacency list is allocated once.
	var degree = make([]int, len(g.original))
	var dense = make([][2]VertexID, len(edges))

	for i, e := range edges {
		var from, _ = g.Lookup(e.From)
		var to, _ = g.Lookup(e.To)
		dense[i] = [2]VertexID{from, to}

		if from != to {
			degree[from]++
			degree[to]++
		}
	}
	g.adjacency = make([][]Neighbor, len(g.original))
	for v := range g.adjacency {
		g.adjacency[v] = make([]Neighbor, 0, degree[v])
	}
	for i, e := range edges {
		var from, to = dense[i][0], dense[i][1]
		if from == to {
			continue
		}
		g.adjacency[from] = append(g.adjacency[from], Neighbor{ID: to, Weight: e.Weight})
		g.adjacency[to] = append(g.adjacency[to], Neighbor{ID: from, Weight: e.Weight})
	}

	if err := sortNeighbors(ctx, g.adjacency, workers); err != nil {
		return nil, err
	}
	for _, adj := range g.adjacency {
		g.edges += len(adj)
	}
	g.edges /= 2

	g.order = make([]VertexID, len(g.original))
	for v := range g.order {
		g.order[v] = VertexID(v)
	}
	sort.Slice(g.order, func(i, j int) bool {
		return Precedes(g.heaviest(g.order[i]), g.heaviest(g.order[j]))
	})
	return g, nil
}

// heaviest returns the first (heaviest) Neighbor of |v| as a Neighbor having
// the ID of |v|, or a Neighbor of Weight -1 if |v| has no edges.
func (g *Graph) heaviest(v VertexID) Neighbor {
	if len(g.adjacency[v]) == 0 {
		return Neighbor{ID: v, Weight: -1}
	}
	return Neighbor{ID: v, Weight: g.adjacency[v][0].Weight}
}

// sortNeighbors de-duplicates and orders each adjacency list. Lists are
// claimed by |workers| concurrent sorters through a shared atomic cursor.
func sortNeighbors(ctx context.Context, adjacency [][]Neighbor, workers int) error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(adjacency) {
		workers = len(adjacency)
	}
	var next atomic.Int64
	var eg, egCtx = errgroup.WithContext(ctx)

	for i := 0; i != workers; i++ {
		eg.Go(func() error {
			for {
				var v = next.Add(1) - 1
				if v >= int64(len(adjacency)) {
					return nil
				} else if err := egCtx.Err(); err != nil {
					return err
				}
				adjacency[v] = dedupe(adjacency[v])
				sort.Slice(adjacency[v], func(i, j int) bool {
					return Precedes(adjacency[v][i], adjacency[v][j])
				})
			}
		})
	}
	return eg.Wait()
}

// dedupe collapses neighbors having a common ID to the heaviest of them.
func dedupe(adj []Neighbor) []Neighbor {
	sort.Slice(adj, func(i, j int) bool {
		if adj[i].ID != adj[j].ID {
			return adj[i].ID < adj[j].ID
		}
		return adj[i].Weight > adj[j].Weight
	})
	var out = adj[:0]
	for _, n := range adj {
		if len(out) == 0 || out[len(out)-1].ID != n.ID {
			out = append(out, n)
		}
	}
	return out
}
