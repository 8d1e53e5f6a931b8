package distance

import (
	"gonum.org/v1/gonum/floats"
)

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Euclidean calculates the L2 distance sqrt(sum((a[i]-b[i])^2)).
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean calculates the squared L2 distance. It orders points
// exactly like Euclidean without the square root.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

var _ Func = Euclidean
