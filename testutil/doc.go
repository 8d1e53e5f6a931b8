// Package testutil provides testing utilities for centroids.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(100, 2, 0, 10)     // uniform in [0, 10)
//	blobs := rng.ClusteredPoints(centers, 20, 0.5) // gaussian blobs
//
// # Fixtures
//
//	data := testutil.ExampleDataset() // ten 2-D points, extents {4,10} x {1,10}
package testutil
