package centroids

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/hupe1980/centroids/distance"
)

type options struct {
	rng              *rand.Rand
	distance         distance.Func
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Engine construction.
type Option func(*options)

// WithSeed seeds the random source used for centroid seeding and for
// reseeding empty clusters. Engines built with the same seed and data
// produce identical runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) // nolint gosec
	}
}

// WithRand configures the random source directly. The engine takes
// ownership; it must not be shared with other goroutines.
//
// If nil is passed, a time-seeded source is used.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithDistance sets the function used to find the nearest centroid.
// The default is distance.Euclidean. Any function that orders points like
// it, such as distance.SquaredEuclidean, yields the same assignments.
func WithDistance(fn distance.Func) Option {
	return func(o *options) {
		o.distance = fn
	}
}

// WithMetricsCollector configures a metrics collector for passes and runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &centroids.BasicMetricsCollector{}
//	eng, _ := centroids.New(data, 3, centroids.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Passes: %d, Reseeds: %d\n", stats.PassCount, stats.ReseedCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := centroids.NewJSONLogger(slog.LevelDebug)
//	eng, _ := centroids.New(data, 3, centroids.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		distance:         distance.Euclidean,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}
	if o.distance == nil {
		o.distance = distance.Euclidean
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

type runOptions struct {
	delay         time.Duration
	maxIterations int
}

// RunOption configures a single Run.
type RunOption func(*runOptions)

// WithDelay waits d between passes. It paces the run for animation and has
// no effect on the numeric result. The default is 0.
func WithDelay(d time.Duration) RunOption {
	return func(o *runOptions) {
		o.delay = d
	}
}

// WithMaxIterations stops the run once the iteration counter reaches n
// without convergence. Zero means no limit, which is the default.
func WithMaxIterations(n int) RunOption {
	return func(o *runOptions) {
		o.maxIterations = n
	}
}

func applyRunOptions(optFns []RunOption) (runOptions, error) {
	var o runOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.delay < 0 {
		return o, ErrInvalidDelay
	}
	if o.maxIterations < 0 {
		o.maxIterations = 0
	}
	return o, nil
}
