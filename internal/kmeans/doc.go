// Package kmeans implements the numeric steps of damped k-means refinement.
//
// The functions here are pure: they operate on caller-owned slices and a
// caller-supplied random source, and never retain references. The engine in
// the root package sequences them into passes:
//
//	extents := kmeans.Extents(data)
//	ranges := kmeans.Ranges(extents)
//	means := kmeans.SeedMeans(rng, k, extents, ranges)
//
//	assignments = kmeans.Assign(data, means, assignments, distance.Euclidean)
//	targets, reseeded := kmeans.Targets(data, means, assignments, reseed)
//	moved := kmeans.Move(means, targets)
//
// Centroids never jump to their target in one pass when the remaining
// distance in a dimension exceeds StepThreshold; they cover a tenth of it and
// are rounded to two decimals. Residual distances at or below the threshold
// snap to the target.
package kmeans
