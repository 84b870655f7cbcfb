package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.bsuitor.dev/core/codecs"
)

func TestParseInvocation(t *testing.T) {
	var inv, err = parseInvocation([]string{"4", "graph.txt", "2"})
	require.NoError(t, err)
	require.Equal(t, invocation{threads: 4, path: "graph.txt", maxProfile: 2}, inv)

	for _, tc := range []struct {
		args []string
		err  string
	}{
		{[]string{"4", "graph.txt"}, "expected 3 arguments, got 2"},
		{[]string{"4", "graph.txt", "2", "extra"}, "expected 3 arguments, got 4"},
		{[]string{"four", "graph.txt", "2"}, `thread-count: strconv.Atoi: parsing "four": invalid syntax`},
		{[]string{"0", "graph.txt", "2"}, "thread-count must be at least 1 (got 0)"},
		{[]string{"1", "graph.txt", "-1"}, "b-limit must be non-negative (got -1)"},
	} {
		_, err = parseInvocation(tc.args)
		require.EqualError(t, err, tc.err)
	}
}

func TestRunWritesOneWeightPerProfile(t *testing.T) {
	var fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "triangle.txt", []byte(
		"# Triangle.\n0 1 10\n1 2 5\n0 2 1\n"), 0644))

	var cfg = newTestConfig()
	cfg.Match.Capacity = "linear"
	cfg.Match.Verify = true
	cfg.Match.Report = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), fs, cfg,
		invocation{threads: 3, path: "triangle.txt", maxProfile: 2}, &stdout, &stderr))

	require.Equal(t, "10\n16\n16\n", stdout.String())
	// The report table holds a row per profile.
	var report = strings.ToUpper(stderr.String())
	require.Contains(t, report, "PROFILE")
	require.Contains(t, report, "EVICTIONS")
}

func TestRunCompressedStar(t *testing.T) {
	var fs = afero.NewMemMapFs()
	var f, err = fs.Create("star.txt.sz")
	require.NoError(t, err)
	cw, err := codecs.NewCodecWriter(f, codecs.Snappy)
	require.NoError(t, err)
	_, err = cw.Write([]byte("0 1 9\n0 2 7\n0 3 3\n"))
	require.NoError(t, err)
	require.NoError(t, cw.Close())
	require.NoError(t, f.Close())

	// Under the modulo family, profile 1 assigns capacity 2 to even vertices
	// and capacity 1 to odd ones, so center 0 keeps its two heaviest leaves.
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), fs, newTestConfig(),
		invocation{threads: 2, path: "star.txt.sz", maxProfile: 1}, &stdout, &bytes.Buffer{}))
	require.Equal(t, "9\n16\n", stdout.String())
}

func TestRunFailsOnMalformedInput(t *testing.T) {
	var fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.txt", []byte("0 1 10\n1 two 5\n"), 0644))

	var stdout bytes.Buffer
	var err = run(context.Background(), fs, newTestConfig(),
		invocation{threads: 1, path: "bad.txt", maxProfile: 0}, &stdout, &bytes.Buffer{})
	require.EqualError(t, err, `bad.txt: line 2: field 2: strconv.ParseInt: parsing "two": invalid syntax`)
	require.Empty(t, stdout.String())

	err = run(context.Background(), fs, newTestConfig(),
		invocation{threads: 1, path: "missing.txt", maxProfile: 0}, &stdout, &bytes.Buffer{})
	require.Error(t, err)

	// Weights whose matched total cannot be represented are refused.
	require.NoError(t, afero.WriteFile(fs, "heavy.txt",
		[]byte("0 1 4611686018427387904\n2 3 4611686018427387904\n"), 0644))
	err = run(context.Background(), fs, newTestConfig(),
		invocation{threads: 2, path: "heavy.txt", maxProfile: 0}, &stdout, &bytes.Buffer{})
	require.EqualError(t, err, "heavy.txt: line 1: total edge weight exceeds 4611686018427387903")
	require.Empty(t, stdout.String())
}

func newTestConfig() *config {
	var cfg = new(config)
	cfg.Match.Capacity = "modulo"
	cfg.Input.Codec = "auto"
	return cfg
}
