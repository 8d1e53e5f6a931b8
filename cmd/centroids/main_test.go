package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/centroids"
	"github.com/hupe1980/centroids/render"
	"github.com/hupe1980/centroids/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := parseConfig(nil, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.K)
		assert.Equal(t, 100, cfg.N)
		assert.Equal(t, 2, cfg.Dim)
		assert.Equal(t, []int{0, 1}, cfg.Columns)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "euclidean", cfg.Distance)
	})

	t.Run("Flags", func(t *testing.T) {
		cfg, err := parseConfig([]string{
			"-k", "5", "-delay", "10ms", "-columns", "2, 3,4", "-log-level", "debug", "-log-format", "json",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.K)
		assert.Equal(t, 10*time.Millisecond, cfg.Delay)
		assert.Equal(t, []int{2, 3, 4}, cfg.Columns)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("Help", func(t *testing.T) {
		var out bytes.Buffer
		_, err := parseConfig([]string{"-h"}, &out)
		require.ErrorIs(t, err, flag.ErrHelp)
		assert.Contains(t, out.String(), "centroids - animated k-means clustering")
	})

	invalid := map[string][]string{
		"ZeroK":       {"-k", "0"},
		"ZeroN":       {"-n", "0"},
		"ZeroDim":     {"-dim", "0"},
		"EmptyRange":  {"-min", "5", "-max", "5"},
		"NegDelay":    {"-delay", "-1s"},
		"BadFormat":   {"-log-format", "xml"},
		"BadDistance": {"-distance", "manhattan"},
		"BadLevel":    {"-log-level", "loud"},
		"BadColumns":  {"-columns", "0,x"},
		"NegColumn":   {"-columns", "-1"},
		"UnknownFlag": {"-nope"},
	}
	for name, args := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig(args, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestRunRandomPoints(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "run.jsonl.zst")
	htmlPath := filepath.Join(dir, "run.html")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-n", "60", "-k", "3", "-seed", "7",
		"-trace", tracePath, "-html", htmlPath,
		"-log-format", "json",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "status: converged")
	assert.Contains(t, stdout.String(), "cluster 3: size=")
	assert.Contains(t, stderr.String(), `"msg":"run converged"`)

	r, err := trace.Open(tracePath)
	require.NoError(t, err)
	defer r.Close()

	records, err := r.All()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, centroids.EventEnd, records[len(records)-1].Event)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Centroid 1")
}

func TestRunInputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "points.csv")

	var sb strings.Builder
	sb.WriteString("x,y\n")
	for _, p := range [][2]string{
		{"1", "1"}, {"1.5", "2"}, {"2", "1"},
		{"20", "20"}, {"21", "19"}, {"19", "21"},
	} {
		sb.WriteString(p[0] + "," + p[1] + "\n")
	}
	require.NoError(t, os.WriteFile(input, []byte(sb.String()), 0o600))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-input", input, "-k", "2", "-seed", "3"}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "status: converged")
}

func TestRunMaxIterations(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-n", "200", "-k", "8", "-seed", "11", "-max-iterations", "1",
	}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "iterations: 1")
}

func TestRunMissingInput(t *testing.T) {
	err := run(context.Background(), []string{"-input", filepath.Join(t.TempDir(), "missing.csv")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunSquaredDistance(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-n", "40", "-k", "2", "-seed", "5", "-distance", "squared"}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "status: converged")
}

func TestWriteChart(t *testing.T) {
	eng, err := centroids.New([][]float64{{1, 1}, {2, 2}, {9, 9}}, 2, centroids.WithSeed(1))
	require.NoError(t, err)
	_, _, err = eng.Step()
	require.NoError(t, err)

	t.Run("Written", func(t *testing.T) {
		cfg := &config{HTML: filepath.Join(t.TempDir(), "chart.html"), Lines: true}
		require.NoError(t, writeChart(cfg, eng.State()))

		html, err := os.ReadFile(cfg.HTML)
		require.NoError(t, err)
		assert.Contains(t, string(html), "Centroid 2")
	})

	t.Run("RenderError", func(t *testing.T) {
		cfg := &config{HTML: filepath.Join(t.TempDir(), "chart.html")}
		state := eng.State()
		state.Extents = nil

		assert.ErrorIs(t, writeChart(cfg, state), render.ErrInvalidProjection)
		assert.FileExists(t, cfg.HTML)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		cfg := &config{HTML: filepath.Join(t.TempDir(), "missing", "chart.html")}
		assert.Error(t, writeChart(cfg, eng.State()))
	})
}
