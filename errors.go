package centroids

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyDataset is returned when the dataset contains no points.
	ErrEmptyDataset = errors.New("dataset must contain at least one point")

	// ErrInvalidDelay is returned when a negative pass delay is configured.
	ErrInvalidDelay = errors.New("delay must not be negative")

	// ErrAlreadyRunning is returned when Run or Step is called while a run
	// is still scheduling passes.
	ErrAlreadyRunning = errors.New("engine is already running")

	// ErrStopped is returned by Wait when the run was stopped before it
	// converged.
	ErrStopped = errors.New("run stopped before convergence")

	// ErrMaxIterations is returned by Wait when the run hit its iteration
	// cap before it converged.
	ErrMaxIterations = errors.New("iteration limit reached before convergence")

	// ErrNotStarted is returned by Wait when Run was never called.
	ErrNotStarted = errors.New("engine has not been started")
)

// ErrDimensionMismatch indicates a point whose dimensionality differs from
// the first point of the dataset.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrInvalidDimension indicates points with zero dimensions.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func validate(data [][]float64, k int) error {
	if len(data) == 0 {
		return ErrEmptyDataset
	}

	if k < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	dim := len(data[0])
	if dim == 0 {
		return &ErrInvalidDimension{Dimension: dim}
	}

	for i, p := range data {
		if len(p) != dim {
			return &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(p)}
		}
	}

	return nil
}
