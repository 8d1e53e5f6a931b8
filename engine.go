package centroids

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/centroids/distance"
	"github.com/hupe1980/centroids/event"
	"github.com/hupe1980/centroids/internal/kmeans"
)

const (
	// EventIteration is published after every pass that moved a centroid.
	EventIteration = "iteration"

	// EventEnd is published once per run, after the first pass that moved
	// no centroid.
	EventEnd = "end"
)

// Engine refines k centroids over a fixed dataset, one pass at a time.
//
// Every pass assigns each point to its nearest centroid and moves every
// centroid a damped step toward the mean of its points. Passes that move a
// centroid publish EventIteration; the first pass that moves nothing
// publishes EventEnd and ends the run. Both carry a State snapshot.
//
// Handlers run synchronously on the goroutine executing the pass, after the
// engine has released its lock, so they may call any Engine method.
type Engine struct {
	data    [][]float64
	k       int
	extents  []Extent
	ranges   []float64
	distance distance.Func

	events  *event.Bus[State]
	logger  *Logger
	metrics MetricsCollector

	mu          sync.Mutex
	rng         *rand.Rand
	means       [][]float64
	assignments []int
	iterations  int
	status      Status
	runID       string
	current     *run
}

// run is one invocation of Run. All fields below ctx are guarded by
// Engine.mu. done is closed once the run is terminated and no pass of it is
// publishing.
type run struct {
	id         string
	ctx        context.Context
	opts       runOptions
	logger     *Logger
	started    time.Time
	timer      *time.Timer
	stopCtx    func() bool
	terminated bool
	publishing bool
	finished   bool

	// result is set by terminate and read by Wait once done is closed.
	result error
	done   chan struct{}
}

// finish must be called with Engine.mu held.
func (r *run) finish() {
	if r.finished {
		return
	}
	r.finished = true
	close(r.done)
}

// New creates an engine over data with k centroids seeded uniformly within
// the extents of data.
//
// data must be non-empty and all points must share one non-zero
// dimensionality. The engine never modifies data.
func New(data [][]float64, k int, optFns ...Option) (*Engine, error) {
	if err := validate(data, k); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	extents := kmeans.Extents(data)
	ranges := kmeans.Ranges(extents)

	return &Engine{
		data:     data,
		k:        k,
		extents:  extents,
		ranges:   ranges,
		distance: o.distance,
		events:   event.NewBus[State](),
		logger:  o.logger.WithK(k).WithDimension(len(extents)),
		metrics: o.metricsCollector,
		rng:     o.rng,
		means:   kmeans.SeedMeans(o.rng, k, extents, ranges),
		status:  StatusIdle,
	}, nil
}

// Events returns the bus on which EventIteration and EventEnd are published.
func (e *Engine) Events() *event.Bus[State] {
	return e.events
}

// Run starts scheduling passes and returns immediately. The first pass runs
// right away, each following pass after the configured delay. The run ends
// when a pass moves no centroid, when Stop is called, when ctx is done or
// when the iteration limit is reached; Wait reports which.
//
// A run continues from the current centroids and iteration counter. Run
// returns ErrAlreadyRunning while a previous run is still active or still
// delivering its final event.
func (e *Engine) Run(ctx context.Context, optFns ...RunOption) error {
	opts, err := applyRunOptions(optFns)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy() {
		return ErrAlreadyRunning
	}

	r := &run{
		id:      uuid.NewString(),
		ctx:     ctx,
		opts:    opts,
		started: time.Now(),
		done:    make(chan struct{}),
	}
	r.logger = e.logger.WithRunID(r.id)

	e.current = r
	e.runID = r.id
	e.status = StatusRunning

	r.logger.LogRunStart(ctx, len(e.data), opts.delay, e.iterations)

	r.stopCtx = context.AfterFunc(ctx, func() {
		e.abort(r, fmt.Errorf("%w: %w", ErrStopped, context.Cause(ctx)))
	})
	r.timer = time.AfterFunc(0, func() { e.pass(r) })

	return nil
}

// Stop cancels the pending pass of the active run. A pass that is already
// executing completes and publishes its event, but no further pass is
// scheduled; Wait returns once that event was delivered. Stop reports
// whether a run was active.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	r := e.current
	e.mu.Unlock()

	if r == nil {
		return false
	}

	return e.abort(r, ErrStopped)
}

// Wait blocks until the most recent run has ended and its final event has
// been delivered. It returns nil if the run converged, an error wrapping
// ErrStopped or ErrMaxIterations otherwise, or ctx.Err() if ctx is done
// first.
func (e *Engine) Wait(ctx context.Context) error {
	e.mu.Lock()
	r := e.current
	e.mu.Unlock()

	if r == nil {
		return ErrNotStarted
	}

	select {
	case <-r.done:
		return r.result
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step runs exactly one pass on the calling goroutine and publishes its
// event. It lets a caller drive pacing itself instead of using Run. Step
// reports whether any centroid moved; it returns ErrAlreadyRunning while a
// run is active. States produced by Step carry no RunID.
func (e *Engine) Step() (State, bool, error) {
	e.mu.Lock()
	if e.busy() {
		e.mu.Unlock()
		return State{}, false, ErrAlreadyRunning
	}

	e.runID = ""
	moved, reseeded := e.advance()
	if moved {
		e.status = StatusIdle
	} else {
		e.status = StatusConverged
	}
	state := e.snapshot()
	e.mu.Unlock()

	e.logger.LogPass(context.Background(), state.Iterations, moved, reseeded)
	e.publish(state, moved)

	return state, moved, nil
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot()
}

// Status returns the lifecycle state of the engine.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.status
}

// Iterations returns the number of passes executed so far.
func (e *Engine) Iterations() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.iterations
}

// Means returns a copy of the current centroids.
func (e *Engine) Means() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneMatrix(e.means)
}

// Assignments returns a copy of the current assignment vector. It is empty
// before the first pass.
func (e *Engine) Assignments() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.assignments)
}

// Extents returns the per-dimension extents of the dataset.
func (e *Engine) Extents() []Extent {
	return slices.Clone(e.extents)
}

// Ranges returns the per-dimension ranges of the dataset.
func (e *Engine) Ranges() []float64 {
	return slices.Clone(e.ranges)
}

// K returns the number of centroids.
func (e *Engine) K() int {
	return e.k
}

// pass executes one scheduled pass of r and schedules the next one.
func (e *Engine) pass(r *run) {
	e.mu.Lock()
	if r.terminated {
		e.mu.Unlock()
		return
	}

	moved, reseeded := e.advance()

	switch {
	case !moved:
		e.terminate(r, StatusConverged, nil)
	case r.opts.maxIterations > 0 && e.iterations >= r.opts.maxIterations:
		e.terminate(r, StatusStopped, fmt.Errorf("%w: %d", ErrMaxIterations, r.opts.maxIterations))
	}
	state := e.snapshot()
	state.RunID = r.id
	r.publishing = true
	e.mu.Unlock()

	r.logger.LogPass(r.ctx, state.Iterations, moved, reseeded)
	e.publish(state, moved)

	e.mu.Lock()
	defer e.mu.Unlock()

	r.publishing = false
	if r.terminated {
		// Converged, capped, or stopped while publishing.
		r.finish()
		return
	}

	r.timer = time.AfterFunc(r.opts.delay, func() { e.pass(r) })
}

// abort terminates r before convergence. A pass that is publishing finishes
// r itself once its handlers returned.
func (e *Engine) abort(r *run, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r.terminated {
		return false
	}
	e.terminate(r, StatusStopped, err)

	if !r.publishing {
		r.finish()
	}
	return true
}

// busy must be called with e.mu held.
func (e *Engine) busy() bool {
	return e.status == StatusRunning || (e.current != nil && !e.current.finished)
}

// terminate must be called with e.mu held.
func (e *Engine) terminate(r *run, status Status, err error) {
	if r.terminated {
		return
	}
	r.terminated = true
	r.result = err

	if r.timer != nil {
		r.timer.Stop()
	}
	if r.stopCtx != nil {
		r.stopCtx()
	}
	if e.current == r {
		e.status = status
	}

	elapsed := time.Since(r.started)
	e.metrics.RecordRun(e.iterations, elapsed, err)

	if err != nil {
		r.logger.LogStopped(r.ctx, e.iterations, err)
	} else {
		r.logger.LogConverged(r.ctx, e.iterations, elapsed)
	}
}

// advance must be called with e.mu held.
func (e *Engine) advance() (bool, int) {
	start := time.Now()

	e.iterations++
	e.assignments = kmeans.Assign(e.data, e.means, e.assignments, e.distance)
	targets, reseeded := kmeans.Targets(e.data, e.means, e.assignments, e.reseed)
	moved := kmeans.Move(e.means, targets)

	e.metrics.RecordPass(time.Since(start), moved, reseeded)

	return moved, reseeded
}

// reseed must be called with e.mu held.
func (e *Engine) reseed() []float64 {
	return kmeans.Seed(e.rng, e.extents, e.ranges)
}

// snapshot must be called with e.mu held.
func (e *Engine) snapshot() State {
	s := State{
		RunID:       e.runID,
		Status:      e.status,
		K:           e.k,
		Iterations:  e.iterations,
		Data:        e.data,
		Means:       cloneMatrix(e.means),
		Assignments: slices.Clone(e.assignments),
		Extents:     slices.Clone(e.extents),
		Ranges:      slices.Clone(e.ranges),
	}
	return s
}

func (e *Engine) publish(state State, moved bool) {
	if moved {
		e.events.Publish(EventIteration, state)
		return
	}
	e.events.Publish(EventEnd, state)
}
