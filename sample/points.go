package sample

import (
	"math"
	"math/rand"
)

// Points returns n points of dimension dim with every coordinate drawn
// uniformly from [minVal, maxVal) and rounded to two decimals.
func Points(rng *rand.Rand, n, dim int, minVal, maxVal float64) [][]float64 {
	span := maxVal - minVal
	points := make([][]float64, n)

	for i := range points {
		p := make([]float64, dim)
		for d := range p {
			p[d] = math.Round((minVal+rng.Float64()*span)*100) / 100
		}
		points[i] = p
	}

	return points
}
