package graph

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.bsuitor.dev/core/codecs"
)

// maxLineSize bounds the length of a single edge-list line.
const maxLineSize = 1 << 20

// ParseEdges reads an edge list from |r|. Each line holds a whitespace-separated
// `src dst weight` triple of non-negative integers. Blank lines, and lines
// beginning with '#', are skipped.
func ParseEdges(r io.Reader) ([]Edge, error) {
	var (
		edges []Edge
		br    = bufio.NewScanner(r)
		line  int
		total Weight
	)
	br.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for br.Scan() {
		line++

		var text = strings.TrimSpace(br.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		var fields = strings.Fields(text)
		if len(fields) != 3 {
			return nil, errors.Errorf("line %d: expected `src dst weight`, got %d fields", line, len(fields))
		}

		var vals [3]int64
		for i, f := range fields {
			var v, err = strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: field %d", line, i+1)
			} else if v < 0 {
				return nil, errors.Errorf("line %d: field %d is negative (%d)", line, i+1, v)
			}
			vals[i] = v
		}
		if vals[2] > int64(MaxTotalWeight-total) {
			return nil, errors.Errorf("line %d: total edge weight exceeds %d", line, MaxTotalWeight)
		}
		total += Weight(vals[2])
		edges = append(edges, Edge{From: vals[0], To: vals[1], Weight: Weight(vals[2])})
	}
	if err := br.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", line+1)
	}
	return edges, nil
}

// Load reads, decompresses, parses, and compacts the edge list at |path|.
func Load(ctx context.Context, fs afero.Fs, path string, codec codecs.Codec, workers int) (*Graph, error) {
	var startTime = time.Now()

	var f, err = fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening graph")
	}
	defer f.Close()

	dec, err := codecs.NewCodecReader(f, codec)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	defer dec.Close()

	edges, err := ParseEdges(dec)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	g, err := Build(ctx, edges, workers)
	if err != nil {
		return nil, errors.WithMessage(err, "building graph")
	}

	log.WithFields(log.Fields{
		"path":     path,
		"codec":    codec,
		"lines":    humanize.Comma(int64(len(edges))),
		"vertices": humanize.Comma(int64(g.Len())),
		"edges":    humanize.Comma(int64(g.Edges())),
		"dur":      time.Since(startTime),
	}).Info("loaded graph")

	return g, nil
}
