package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/centroids/distance"
)

type config struct {
	Input   string
	Columns []int

	N        int
	Dim      int
	Min, Max float64

	K             int
	Distance      string
	Seed          int64
	Delay         time.Duration
	MaxIterations int

	Trace string
	HTML  string
	Lines bool

	MetricsAddr string
	Hold        time.Duration

	LogFormat string
	LogLevel  slog.Level
}

func parseConfig(args []string, output io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("centroids", flag.ContinueOnError)
	fs.SetOutput(output)

	columns := fs.String("columns", "0,1", "Comma-separated CSV columns to read as coordinates")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")

	fs.StringVar(&cfg.Input, "input", "", "CSV file with points (default: generate random points)")
	fs.IntVar(&cfg.N, "n", 100, "Number of random points to generate")
	fs.IntVar(&cfg.Dim, "dim", 2, "Dimensionality of random points")
	fs.Float64Var(&cfg.Min, "min", 0, "Lower bound of random coordinates")
	fs.Float64Var(&cfg.Max, "max", 100, "Upper bound of random coordinates")
	fs.IntVar(&cfg.K, "k", 3, "Number of clusters")
	fs.StringVar(&cfg.Distance, "distance", "euclidean", "Distance used for assignment: euclidean or squared")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 uses the current time)")
	fs.DurationVar(&cfg.Delay, "delay", 0, "Pause between passes")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", 0, "Stop after this many passes (0 = unlimited)")
	fs.StringVar(&cfg.Trace, "trace", "", "Record every pass to this file (.zst or .lz4 to compress)")
	fs.StringVar(&cfg.HTML, "html", "", "Write a chart of the final state to this HTML file")
	fs.BoolVar(&cfg.Lines, "lines", true, "Draw point-to-centroid lines in the chart")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.DurationVar(&cfg.Hold, "hold", 0, "Keep serving metrics this long after the run ends")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")

	fs.Usage = func() {
		fmt.Fprintf(output, `centroids - animated k-means clustering

Usage:
  centroids [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cols, err := parseColumns(*columns)
	if err != nil {
		return nil, err
	}
	cfg.Columns = cols

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", *logLevel, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) validate() error {
	if c.K < 1 {
		return fmt.Errorf("-k must be positive, got %d", c.K)
	}
	if c.Input == "" {
		if c.N < 1 {
			return fmt.Errorf("-n must be positive, got %d", c.N)
		}
		if c.Dim < 1 {
			return fmt.Errorf("-dim must be positive, got %d", c.Dim)
		}
		if c.Max <= c.Min {
			return fmt.Errorf("-max (%g) must be greater than -min (%g)", c.Max, c.Min)
		}
	}
	if c.Delay < 0 {
		return errors.New("-delay must not be negative")
	}
	switch c.Distance {
	case "euclidean", "squared":
	default:
		return fmt.Errorf("invalid -distance %q", c.Distance)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid -log-format %q", c.LogFormat)
	}
	return nil
}

func (c *config) distanceFunc() distance.Func {
	if c.Distance == "squared" {
		return distance.SquaredEuclidean
	}
	return distance.Euclidean
}

func parseColumns(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	cols := make([]int, 0, len(parts))
	for _, p := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || c < 0 {
			return nil, fmt.Errorf("invalid column %q in -columns", p)
		}
		cols = append(cols, c)
	}
	return cols, nil
}
