package kmeans

import (
	"math"
	"math/rand"

	"github.com/hupe1980/centroids/distance"
	"gonum.org/v1/gonum/floats"
)

const (
	// StepThreshold is the per-dimension distance above which a centroid is
	// damped instead of snapped to its target.
	StepThreshold = 0.1

	// DampingFactor divides the remaining distance on a damped step.
	DampingFactor = 10
)

// Extent is the closed interval covered by the dataset in one dimension.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Extents scans data once and returns the per-dimension minimum and maximum.
// The dimensionality is taken from the first point. It returns nil for an
// empty dataset.
func Extents(data [][]float64) []Extent {
	if len(data) == 0 {
		return nil
	}

	dim := len(data[0])
	extents := make([]Extent, dim)

	for d := 0; d < dim; d++ {
		extents[d] = Extent{Min: data[0][d], Max: data[0][d]}
	}

	for _, p := range data[1:] {
		for d := 0; d < dim; d++ {
			if p[d] < extents[d].Min {
				extents[d].Min = p[d]
			}
			if p[d] > extents[d].Max {
				extents[d].Max = p[d]
			}
		}
	}

	return extents
}

// Ranges returns Max-Min for every extent.
func Ranges(extents []Extent) []float64 {
	ranges := make([]float64, len(extents))
	for d, e := range extents {
		ranges[d] = e.Max - e.Min
	}

	return ranges
}

// Seed draws one point uniformly from [Min, Min+range] in every dimension.
func Seed(rng *rand.Rand, extents []Extent, ranges []float64) []float64 {
	p := make([]float64, len(extents))
	for d := range p {
		p[d] = extents[d].Min + rng.Float64()*ranges[d]
	}

	return p
}

// SeedMeans draws k independent centroids with Seed.
func SeedMeans(rng *rand.Rand, k int, extents []Extent, ranges []float64) [][]float64 {
	means := make([][]float64, k)
	for i := range means {
		means[i] = Seed(rng, extents, ranges)
	}

	return means
}

// Nearest returns the index of the centroid closest to p under dist.
// Equidistant centroids resolve to the lowest index.
func Nearest(p []float64, means [][]float64, dist distance.Func) int {
	best := 0
	minDist := math.Inf(1)

	for j, m := range means {
		// Strict comparison keeps the first minimum on ties.
		if d := dist(p, m); d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}

// Assign computes the nearest centroid for every point. The result reuses
// dst when it has enough capacity; previous contents are ignored.
func Assign(data, means [][]float64, dst []int, dist distance.Func) []int {
	if cap(dst) < len(data) {
		dst = make([]int, len(data))
	}
	dst = dst[:len(data)]

	for i, p := range data {
		dst[i] = Nearest(p, means, dist)
	}

	return dst
}

// Targets computes where every centroid should move to. A centroid with
// assigned points targets their mean rounded to two decimals; a centroid
// without points targets a fresh point from reseed. It also reports how many
// centroids were reseeded.
func Targets(data, means [][]float64, assignments []int, reseed func() []float64) ([][]float64, int) {
	dim := len(means[0])
	sums := make([][]float64, len(means))
	counts := make([]int, len(means))

	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for i, cluster := range assignments {
		floats.Add(sums[cluster], data[i])
		counts[cluster]++
	}

	reseeded := 0
	targets := make([][]float64, len(means))

	for j := range targets {
		if counts[j] == 0 {
			targets[j] = reseed()
			reseeded++
			continue
		}

		floats.Scale(1/float64(counts[j]), sums[j])
		for d := range sums[j] {
			sums[j][d] = Round2(sums[j][d])
		}
		targets[j] = sums[j]
	}

	return targets, reseeded
}

// Moved reports whether any dimension of any centroid differs from its
// target. Values are compared exactly.
func Moved(means, targets [][]float64) bool {
	for j := range means {
		for d := range means[j] {
			if means[j][d] != targets[j][d] {
				return true
			}
		}
	}

	return false
}

// Move applies one damped step from means toward targets in place and
// reports whether anything moved. Nothing is written when nothing moved.
func Move(means, targets [][]float64) bool {
	if !Moved(means, targets) {
		return false
	}

	for j := range means {
		for d := range means[j] {
			means[j][d] = Step(means[j][d], targets[j][d])
		}
	}

	return true
}

// Step returns the next value of a single centroid coordinate.
func Step(previous, target float64) float64 {
	diff := target - previous
	if math.Abs(diff) > StepThreshold {
		return Round2(previous + diff/DampingFactor)
	}

	return target
}

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
