package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.bsuitor.dev/core/codecs"
)

func TestParseEdges(t *testing.T) {
	var edges, err = ParseEdges(strings.NewReader(`# A leading comment.
# Another.
10 20 5
20	30   7

# Interior comment.
30 10 0
`))
	require.NoError(t, err)
	require.Equal(t, []Edge{
		{From: 10, To: 20, Weight: 5},
		{From: 20, To: 30, Weight: 7},
		{From: 30, To: 10, Weight: 0},
	}, edges)
}

func TestParseEdgesErrors(t *testing.T) {
	for _, tc := range []struct {
		input, err string
	}{
		{"1 2\n", "line 1: expected `src dst weight`, got 2 fields"},
		{"1 2 3\n1 2 3 4\n", "line 2: expected `src dst weight`, got 4 fields"},
		{"1 2 x\n", `line 1: field 3: strconv.ParseInt: parsing "x": invalid syntax`},
		{"# c\n1 -2 3\n", "line 2: field 2 is negative (-2)"},
		{"0 1 2305843009213693952\n2 3 2305843009213693952\n",
			"line 2: total edge weight exceeds 4611686018427387903"},
		{"0 1 9223372036854775807\n", "line 1: total edge weight exceeds 4611686018427387903"},
	} {
		var _, err = ParseEdges(strings.NewReader(tc.input))
		require.EqualError(t, err, tc.err)
	}
}

func TestBuildCompactsAndOrders(t *testing.T) {
	var g, err = Build(context.Background(), []Edge{
		{From: 100, To: 7, Weight: 3},
		{From: 7, To: 42, Weight: 9},
		{From: 42, To: 100, Weight: 3},
		{From: 100, To: 7, Weight: 4}, // Parallel edge: heavier copy wins.
		{From: 42, To: 42, Weight: 50}, // Self-loop is dropped.
		{From: 5, To: 5, Weight: 1},    // Vertex of only a self-loop is kept.
	}, 3)
	require.NoError(t, err)

	// Dense IDs follow ascending original identifiers.
	require.Equal(t, 4, g.Len())
	require.Equal(t, 3, g.Edges())
	for v, orig := range []int64{5, 7, 42, 100} {
		require.Equal(t, orig, g.Original(VertexID(v)))

		var id, ok = g.Lookup(orig)
		require.True(t, ok)
		require.Equal(t, VertexID(v), id)
	}
	var _, ok = g.Lookup(6)
	require.False(t, ok)

	const (
		v5, v7, v42, v100 = VertexID(0), VertexID(1), VertexID(2), VertexID(3)
	)
	require.Empty(t, g.Neighbors(v5))
	require.Equal(t, []Neighbor{{ID: v42, Weight: 9}, {ID: v100, Weight: 4}}, g.Neighbors(v7))
	require.Equal(t, []Neighbor{{ID: v7, Weight: 9}, {ID: v100, Weight: 3}}, g.Neighbors(v42))
	// Equal weights are ordered on descending VertexID.
	require.Equal(t, []Neighbor{{ID: v7, Weight: 4}, {ID: v42, Weight: 3}}, g.Neighbors(v100))

	var w, found = g.EdgeWeight(v100, v7)
	require.True(t, found)
	require.Equal(t, Weight(4), w)
	_, found = g.EdgeWeight(v5, v7)
	require.False(t, found)

	// Heaviest edges: v7 & v42 => 9, v100 => 4, v5 => none.
	require.Equal(t, []VertexID{v42, v7, v100, v5}, g.Order())
}

func TestBuildRejectsOverflowingWeights(t *testing.T) {
	// Each edge fits, but their doubled sum would not.
	var _, err = Build(context.Background(), []Edge{
		{From: 0, To: 1, Weight: 1 << 62},
		{From: 2, To: 3, Weight: 1 << 62},
	}, 2)
	require.EqualError(t, err, "total edge weight exceeds 4611686018427387903")

	_, err = Build(context.Background(), []Edge{{From: 0, To: 1, Weight: -1}}, 1)
	require.EqualError(t, err, "edge 0-1 has negative weight (-1)")

	// The largest admissible total is summed without overflow.
	g, err := Build(context.Background(), []Edge{
		{From: 0, To: 1, Weight: MaxTotalWeight - 1},
		{From: 2, To: 3, Weight: 1},
	}, 2)
	require.NoError(t, err)
	require.Equal(t, 2, g.Edges())
}

func TestLoadCompressed(t *testing.T) {
	var fs = afero.NewMemMapFs()

	var f, err = fs.Create("/graphs/triangle.txt.gz")
	require.NoError(t, err)
	cw, err := codecs.NewCodecWriter(f, codecs.Gzip)
	require.NoError(t, err)
	_, err = cw.Write([]byte("# triangle\n0 1 10\n1 2 5\n0 2 1\n"))
	require.NoError(t, err)
	require.NoError(t, cw.Close())
	require.NoError(t, f.Close())

	g, err := Load(context.Background(), fs, "/graphs/triangle.txt.gz", codecs.ForPath("triangle.txt.gz"), 2)
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())
	require.Equal(t, 3, g.Edges())
	require.Equal(t, []Neighbor{{ID: 1, Weight: 10}, {ID: 2, Weight: 1}}, g.Neighbors(0))

	_, err = Load(context.Background(), fs, "/graphs/missing.txt", codecs.None, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "opening graph")

	require.NoError(t, afero.WriteFile(fs, "/graphs/bad.txt", []byte("0 1 10\n0 1\n"), 0644))
	_, err = Load(context.Background(), fs, "/graphs/bad.txt", codecs.None, 1)
	require.EqualError(t, err, "/graphs/bad.txt: line 2: expected `src dst weight`, got 2 fields")
}
