package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.bsuitor.dev/core/capacity"
	"go.bsuitor.dev/core/codecs"
	"go.bsuitor.dev/core/graph"
	mbp "go.bsuitor.dev/core/mainboilerplate"
	"go.bsuitor.dev/core/matching"
	"go.bsuitor.dev/core/metrics"
)

const iniFilename = "bsuitor.ini"

type config struct {
	Match struct {
		Capacity string `long:"capacity" env:"CAPACITY" default:"modulo" choice:"modulo" choice:"linear" description:"Family of capacity profiles to evaluate"`
		Verify   bool   `long:"verify" env:"VERIFY" description:"Verify that each profile's result is a stable b-matching"`
		Report   bool   `long:"report" env:"REPORT" description:"Write a summary table of evaluated profiles to stderr"`
	} `group:"Matching" namespace:"match" env-namespace:"MATCH"`

	Input struct {
		Codec string `long:"codec" env:"CODEC" default:"auto" choice:"auto" choice:"none" choice:"gzip" choice:"snappy" choice:"zstd" description:"Compression of the input file. If 'auto', it's inferred from the file extension"`
	} `group:"Input" namespace:"input" env-namespace:"INPUT"`

	Log         mbp.LogConfig         `group:"Logging" namespace:"log" env-namespace:"LOG"`
	Diagnostics mbp.DiagnosticsConfig `group:"Debug" namespace:"debug" env-namespace:"DEBUG"`
}

// Config is the top-level configuration object of bsuitor.
var Config = new(config)

// invocation is the positional arguments of the program.
type invocation struct {
	threads    int
	path       string
	maxProfile int
}

func parseInvocation(args []string) (invocation, error) {
	if len(args) != 3 {
		return invocation{}, errors.Errorf("expected 3 arguments, got %d", len(args))
	}
	var inv = invocation{path: args[1]}
	var err error

	if inv.threads, err = strconv.Atoi(args[0]); err != nil {
		return invocation{}, errors.Wrap(err, "thread-count")
	} else if inv.threads < 1 {
		return invocation{}, errors.Errorf("thread-count must be at least 1 (got %d)", inv.threads)
	}
	if inv.maxProfile, err = strconv.Atoi(args[2]); err != nil {
		return invocation{}, errors.Wrap(err, "b-limit")
	} else if inv.maxProfile < 0 {
		return invocation{}, errors.Errorf("b-limit must be non-negative (got %d)", inv.maxProfile)
	}
	return inv, nil
}

// run loads the graph of the invocation, and evaluates each capacity profile,
// writing matched weights to |stdout|.
func run(ctx context.Context, fs afero.Fs, cfg *config, inv invocation, stdout, stderr io.Writer) error {
	var codec, err = codecs.Parse(cfg.Input.Codec, inv.path)
	if err != nil {
		return err
	}
	cp, err := capacity.ByName(cfg.Match.Capacity)
	if err != nil {
		return err
	}
	g, err := graph.Load(ctx, fs, inv.path, codec, inv.threads)
	if err != nil {
		return err
	}
	metrics.GraphVertices.Set(float64(g.Len()))
	metrics.GraphEdges.Set(float64(g.Edges()))

	var (
		engine  = matching.NewEngine(g, inv.threads)
		bw      = bufio.NewWriter(stdout)
		results []matching.Result
	)
	err = engine.RunProfiles(ctx, inv.maxProfile, cp, func(res matching.Result) error {
		if cfg.Match.Verify {
			if err := matching.Verify(engine); err != nil {
				return errors.WithMessagef(err, "verifying profile %d", res.Profile)
			}
		}
		results = append(results, res)

		if _, err := fmt.Fprintln(bw, res.Weight); err != nil {
			return err
		}
		return bw.Flush()
	})
	if err != nil {
		return err
	}

	if cfg.Match.Report {
		writeReport(stderr, results)
	}
	return nil
}

func main() {
	var parser = flags.NewParser(Config, flags.Default)
	parser.Usage = "[OPTIONS] thread-count inputfile b-limit"

	var rest = mbp.MustParseConfig(parser, iniFilename, os.Args[1:])

	var inv, err = parseInvocation(rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: %s thread-count inputfile b-limit\n%s\n",
			filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}

	mbp.InitLog(Config.Log)
	defer mbp.InitDiagnosticsAndRecover(Config.Diagnostics)()
	prometheus.MustRegister(metrics.MatchingCollectors()...)

	log.WithFields(log.Fields{
		"config":  Config,
		"threads": inv.threads,
		"path":    inv.path,
		"bLimit":  inv.maxProfile,
	}).Debug("starting bsuitor")

	var ctx, stop = signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, afero.NewOsFs(), Config, inv, os.Stdout, os.Stderr); err != nil {
		log.WithField("err", err).Fatal("bsuitor failed")
	}
}
