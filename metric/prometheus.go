package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "centroids"

// Run outcome label values.
const (
	OutcomeConverged = "converged"
	OutcomeStopped   = "stopped"
)

// PrometheusCollector records engine metrics as Prometheus series. It
// satisfies centroids.MetricsCollector.
type PrometheusCollector struct {
	passes        *prometheus.CounterVec
	passDuration  prometheus.Histogram
	reseeds       prometheus.Counter
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	runIterations prometheus.Histogram
}

// NewPrometheusCollector creates the collector and registers its series with
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		passes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_total",
				Help:      "Total refinement passes",
			},
			[]string{"moved"}, // moved: "true" or "false"
		),
		passDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pass_duration_seconds",
				Help:      "Time spent assigning points and relocating centroids per pass",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		reseeds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "empty_cluster_reseeds_total",
				Help:      "Total random targets drawn for clusters without points",
			},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total finished runs",
			},
			[]string{"outcome"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of finished runs, including pass delays",
				Buckets:   prometheus.DefBuckets,
			},
		),
		runIterations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_iterations",
				Help:      "Iteration counter at the end of a run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

// RecordPass implements centroids.MetricsCollector.
func (p *PrometheusCollector) RecordPass(duration time.Duration, moved bool, reseeded int) {
	label := "false"
	if moved {
		label = "true"
	}
	p.passes.WithLabelValues(label).Inc()
	p.passDuration.Observe(duration.Seconds())
	p.reseeds.Add(float64(reseeded))
}

// RecordRun implements centroids.MetricsCollector.
func (p *PrometheusCollector) RecordRun(iterations int, duration time.Duration, err error) {
	outcome := OutcomeConverged
	if err != nil {
		outcome = OutcomeStopped
	}
	p.runs.WithLabelValues(outcome).Inc()
	p.runDuration.Observe(duration.Seconds())
	p.runIterations.Observe(float64(iterations))
}
