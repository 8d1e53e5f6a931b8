// Package centroids partitions n-dimensional points into k clusters by
// damped, observable centroid refinement.
//
// An Engine holds a dataset and k centroids seeded uniformly within the
// dataset's extents. Each pass assigns every point to its nearest centroid
// (Euclidean distance, ties to the lowest index) and moves every centroid
// toward the mean of its points. Large moves are damped to a tenth of the
// remaining distance so the trajectory can be animated; empty clusters draw a
// fresh random target.
//
// # Quick Start
//
//	eng, _ := centroids.New(points, 3, centroids.WithSeed(1))
//
//	eng.Events().Subscribe(centroids.EventIteration, func(s centroids.State) {
//	    draw(s.Data, s.Means, s.Assignments)
//	})
//	eng.Events().Subscribe(centroids.EventEnd, func(s centroids.State) {
//	    fmt.Println("converged after", s.Iterations, "passes")
//	})
//
//	_ = eng.Run(ctx, centroids.WithDelay(50*time.Millisecond))
//	_ = eng.Wait(ctx)
//
// # Driving passes manually
//
// Step executes a single pass on the calling goroutine and publishes the same
// events as Run, for callers that control pacing themselves:
//
//	for {
//	    state, moved, _ := eng.Step()
//	    render(state)
//	    if !moved {
//	        break
//	    }
//	}
//
// # Lifecycle
//
// An engine starts in StatusIdle. Run switches it to StatusRunning until a
// pass moves nothing (StatusConverged) or the run is cut short by Stop,
// context cancellation or WithMaxIterations (StatusStopped). Running again
// continues from the current centroids.
package centroids
