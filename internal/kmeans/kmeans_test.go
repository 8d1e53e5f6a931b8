package kmeans

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/centroids/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleData = [][]float64{
	{6, 5}, {9, 10}, {10, 1}, {5, 5}, {7, 7},
	{4, 1}, {10, 7}, {6, 8}, {10, 2}, {9, 4},
}

func TestExtentsAndRanges(t *testing.T) {
	extents := Extents(exampleData)
	require.Len(t, extents, 2)
	assert.Equal(t, []Extent{{Min: 4, Max: 10}, {Min: 1, Max: 10}}, extents)
	assert.Equal(t, []float64{6, 9}, Ranges(extents))

	for _, p := range exampleData {
		for d, e := range extents {
			assert.LessOrEqual(t, e.Min, p[d])
			assert.GreaterOrEqual(t, e.Max, p[d])
		}
	}
}

func TestExtents_Empty(t *testing.T) {
	assert.Nil(t, Extents(nil))
	assert.Empty(t, Ranges(nil))
}

func TestExtents_SinglePoint(t *testing.T) {
	extents := Extents([][]float64{{3, -2, 7}})
	assert.Equal(t, []Extent{{3, 3}, {-2, -2}, {7, 7}}, extents)
	assert.Equal(t, []float64{0, 0, 0}, Ranges(extents))
}

func TestSeedMeans(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	extents := Extents(exampleData)
	ranges := Ranges(extents)

	means := SeedMeans(rng, 50, extents, ranges)
	require.Len(t, means, 50)

	for _, m := range means {
		require.Len(t, m, 2)
		for d, e := range extents {
			assert.GreaterOrEqual(t, m[d], e.Min)
			assert.LessOrEqual(t, m[d], e.Min+ranges[d])
		}
	}
}

func TestSeed_Deterministic(t *testing.T) {
	extents := Extents(exampleData)
	ranges := Ranges(extents)

	a := Seed(rand.New(rand.NewSource(7)), extents, ranges)
	b := Seed(rand.New(rand.NewSource(7)), extents, ranges)
	assert.Equal(t, a, b)
}

func TestNearest_TieBreak(t *testing.T) {
	means := [][]float64{{1, 0}, {5, 5}, {-1, 0}}

	// (0,0) is exactly 1 away from centroids 0 and 2.
	assert.Equal(t, 0, Nearest([]float64{0, 0}, means, distance.Euclidean))
	assert.Equal(t, 1, Nearest([]float64{5, 4}, means, distance.Euclidean))
	assert.Equal(t, 2, Nearest([]float64{-3, 0}, means, distance.Euclidean))
}

func TestNearest_AllEqual(t *testing.T) {
	means := [][]float64{{2, 2}, {2, 2}, {2, 2}}
	assert.Equal(t, 0, Nearest([]float64{9, 9}, means, distance.Euclidean))
}

func TestAssign(t *testing.T) {
	means := [][]float64{{5, 5}, {10, 2}, {8, 9}}

	first := Assign(exampleData, means, nil, distance.Euclidean)
	require.Len(t, first, len(exampleData))
	assert.Equal(t, []int{0, 2, 1, 0, 2, 0, 2, 2, 1, 1}, first)

	// Same centroids, same answer, regardless of prior contents.
	second := Assign(exampleData, means, []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, distance.Euclidean)
	assert.Equal(t, first, second)
}

func TestAssign_SquaredEuclideanAgrees(t *testing.T) {
	means := [][]float64{{5, 5}, {10, 2}, {8, 9}}

	assert.Equal(t,
		Assign(exampleData, means, nil, distance.Euclidean),
		Assign(exampleData, means, nil, distance.SquaredEuclidean),
	)
	assert.Equal(t, 0, Nearest([]float64{0, 0}, [][]float64{{1, 0}, {5, 5}, {-1, 0}}, distance.SquaredEuclidean))
}

func TestAssign_ReusesBuffer(t *testing.T) {
	buf := make([]int, 0, len(exampleData))
	out := Assign(exampleData, [][]float64{{0, 0}}, buf, distance.Euclidean)
	assert.Len(t, out, len(exampleData))
	assert.Equal(t, cap(buf), cap(out))
}

func TestTargets(t *testing.T) {
	data := [][]float64{{1, 1}, {2, 2}, {2, 1}, {9, 9}}
	means := [][]float64{{0, 0}, {50, 50}, {9, 9}}
	assignments := []int{0, 0, 0, 2}

	calls := 0
	reseed := func() []float64 {
		calls++
		return []float64{4.5, 4.5}
	}

	targets, reseeded := Targets(data, means, assignments, reseed)
	require.Len(t, targets, 3)
	assert.Equal(t, 1, reseeded)
	assert.Equal(t, 1, calls)

	assert.Equal(t, []float64{1.67, 1.33}, targets[0])
	assert.Equal(t, []float64{4.5, 4.5}, targets[1])
	assert.Equal(t, []float64{9, 9}, targets[2])

	// Inputs are untouched.
	assert.Equal(t, []float64{0, 0}, means[0])
	assert.Equal(t, []float64{1, 1}, data[0])
}

func TestStep(t *testing.T) {
	tests := []struct {
		name             string
		previous, target float64
		expected         float64
	}{
		{"DampedUp", 0, 5, 0.5},
		{"DampedDown", 10, 4, 9.4},
		{"DampedRounded", 1, 2.234, 1.12},
		{"JustAboveThreshold", 0, 0.11, 0.01},
		{"AtThreshold", 0, 0.1, 0.1},
		{"Small", 1, 1.05, 1.05},
		{"SmallNegative", 3.2, 3.15, 3.15},
		{"Equal", 2.5, 2.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Step(tt.previous, tt.target))
		})
	}
}

func TestMove(t *testing.T) {
	t.Run("NotMoved", func(t *testing.T) {
		means := [][]float64{{1, 2}, {3.33, 4}}
		targets := [][]float64{{1, 2}, {3.33, 4}}

		assert.False(t, Move(means, targets))
		assert.Equal(t, [][]float64{{1, 2}, {3.33, 4}}, means)
	})

	t.Run("Moved", func(t *testing.T) {
		means := [][]float64{{0, 2}, {3.33, 4}}
		targets := [][]float64{{10, 2.05}, {3.33, 4}}

		assert.True(t, Move(means, targets))
		assert.Equal(t, [][]float64{{1, 2.05}, {3.33, 4}}, means)
	})

	t.Run("SingleDimension", func(t *testing.T) {
		means := [][]float64{{1, 1}}
		targets := [][]float64{{1, 1.01}}

		assert.True(t, Moved(means, targets))
		assert.True(t, Move(means, targets))
		assert.False(t, Moved(means, targets))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, -2.5, Round2(-2.5))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, 7.0, Round2(7))
}

func TestConvergence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	extents := Extents(exampleData)
	ranges := Ranges(extents)
	reseed := func() []float64 { return Seed(rng, extents, ranges) }

	means := [][]float64{{6, 5}, {10, 1}, {6, 8}}

	var assignments []int
	converged := false
	passes := 0

	for passes < 10000 {
		passes++
		assignments = Assign(exampleData, means, assignments, distance.Euclidean)
		targets, _ := Targets(exampleData, means, assignments, reseed)
		if !Move(means, targets) {
			converged = true
			break
		}
	}

	require.True(t, converged, "no convergence after %d passes", passes)
	assert.Greater(t, passes, 1)
	assert.Len(t, assignments, len(exampleData))

	// At the fixed point every centroid sits on the rounded mean of its points.
	final := Assign(exampleData, means, nil, distance.Euclidean)
	assert.Equal(t, assignments, final)
}
