package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points of the given dimensionality with every
// coordinate uniform in [minVal, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dimensions int, minVal, maxVal float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([][]float64, num)
	span := maxVal - minVal

	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		points[i] = p
	}

	return points
}

// ClusteredPoints generates perCluster points around every center with
// gaussian noise of the given spread. Points are interleaved: point i
// belongs to centers[i%len(centers)].
func (r *RNG) ClusteredPoints(centers [][]float64, perCluster int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	num := perCluster * len(centers)
	points := make([][]float64, num)

	for i := range num {
		center := centers[i%len(centers)]
		p := make([]float64, len(center))
		for j := range p {
			p[j] = center[j] + r.rand.NormFloat64()*spread
		}
		points[i] = p
	}

	return points
}

// ExampleDataset returns ten 2-D points whose extents are {4,10} and {1,10}.
func ExampleDataset() [][]float64 {
	return [][]float64{
		{6, 5}, {9, 10}, {10, 1}, {5, 5}, {7, 7},
		{4, 1}, {10, 7}, {6, 8}, {10, 2}, {9, 4},
	}
}
