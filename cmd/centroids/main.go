package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/centroids"
	"github.com/hupe1980/centroids/metric"
	"github.com/hupe1980/centroids/render"
	"github.com/hupe1980/centroids/sample"
	"github.com/hupe1980/centroids/trace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, stderr)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	data, err := loadData(cfg, seed)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	collector := metric.NewPrometheusCollector(registry)

	eng, err := centroids.New(data, cfg.K,
		centroids.WithSeed(seed),
		centroids.WithDistance(cfg.distanceFunc()),
		centroids.WithLogger(logger),
		centroids.WithMetricsCollector(collector),
	)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()

		state, err := cluster(gctx, cfg, eng, logger)
		if err != nil {
			return err
		}

		printSummary(stdout, state)

		if cfg.MetricsAddr != "" && cfg.Hold > 0 {
			select {
			case <-time.After(cfg.Hold):
			case <-ctx.Done():
			}
		}
		return nil
	})

	return g.Wait()
}

func cluster(ctx context.Context, cfg *config, eng *centroids.Engine, logger *centroids.Logger) (centroids.State, error) {
	var recorder *trace.Writer
	if cfg.Trace != "" {
		w, err := trace.Create(cfg.Trace)
		if err != nil {
			return centroids.State{}, err
		}
		if _, err := w.Attach(eng.Events()); err != nil {
			_ = w.Close()
			return centroids.State{}, err
		}
		recorder = w
	}

	progress := &rate.Sometimes{First: 1, Interval: time.Second}
	if _, err := eng.Events().Subscribe(centroids.EventIteration, func(s centroids.State) {
		progress.Do(func() {
			logger.Info("progress", "iteration", s.Iterations, "sizes", s.Sizes())
		})
	}); err != nil {
		return centroids.State{}, err
	}

	opts := []centroids.RunOption{
		centroids.WithDelay(cfg.Delay),
		centroids.WithMaxIterations(cfg.MaxIterations),
	}
	if err := eng.Run(ctx, opts...); err != nil {
		return centroids.State{}, err
	}

	runErr := eng.Wait(context.Background())
	state := eng.State()

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return state, fmt.Errorf("write trace: %w", err)
		}
		logger.Info("trace written", "path", cfg.Trace, "records", recorder.Count())
	}

	if runErr != nil && !errors.Is(runErr, centroids.ErrMaxIterations) {
		return state, runErr
	}

	if cfg.HTML != "" {
		if err := writeChart(cfg, state); err != nil {
			return state, err
		}
		logger.Info("chart written", "path", cfg.HTML)
	}

	return state, nil
}

func loadData(cfg *config, seed int64) ([][]float64, error) {
	if cfg.Input != "" {
		return sample.ImportFile(cfg.Input, cfg.Columns...)
	}
	rng := rand.New(rand.NewSource(seed + 1)) //nolint:gosec
	return sample.Points(rng, cfg.N, cfg.Dim, cfg.Min, cfg.Max), nil
}

func writeChart(cfg *config, state centroids.State) error {
	f, err := os.Create(cfg.HTML)
	if err != nil {
		return err
	}

	renderErr := render.Chart(f, state, render.Options{
		Palette: sample.Palette(state.K),
		Lines:   cfg.Lines,
	})

	return errors.Join(renderErr, f.Close())
}

func newLogger(cfg *config, w io.Writer) *centroids.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return centroids.NewLogger(slog.NewJSONHandler(w, handlerOpts))
	}
	return centroids.NewLogger(slog.NewTextHandler(w, handlerOpts))
}

func printSummary(w io.Writer, s centroids.State) {
	fmt.Fprintf(w, "status: %s\n", s.Status)
	fmt.Fprintf(w, "iterations: %d\n", s.Iterations)
	sizes := s.Sizes()
	for c, m := range s.Means {
		fmt.Fprintf(w, "cluster %d: size=%d mean=%v\n", c+1, sizes[c], m)
	}
}
