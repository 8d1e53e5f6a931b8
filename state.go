package centroids

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/centroids/internal/kmeans"
)

// Extent is the per-dimension minimum and maximum of the dataset.
type Extent = kmeans.Extent

// Status is the lifecycle state of an Engine.
type Status int

const (
	// StatusIdle means no run is scheduling passes and the last pass (if
	// any) moved a centroid.
	StatusIdle Status = iota
	// StatusRunning means a run is scheduling passes.
	StatusRunning
	// StatusConverged means the last pass moved no centroid.
	StatusConverged
	// StatusStopped means the last run ended before convergence.
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "running":
		*s = StatusRunning
	case "converged":
		*s = StatusConverged
	case "stopped":
		*s = StatusStopped
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// State is a consistent snapshot of an Engine taken after a pass.
//
// Data is the caller's dataset and is shared, not copied. Every other slice
// is owned by the snapshot.
type State struct {
	RunID       string      `json:"run_id,omitempty"`
	Status      Status      `json:"status"`
	K           int         `json:"k"`
	Iterations  int         `json:"iterations"`
	Data        [][]float64 `json:"data"`
	Means       [][]float64 `json:"means"`
	Assignments []int       `json:"assignments"`
	Extents     []Extent    `json:"extents"`
	Ranges      []float64   `json:"ranges"`
}

// Dimension returns the dimensionality of the points.
func (s State) Dimension() int {
	return len(s.Extents)
}

// Sizes returns the number of points assigned to every centroid. All sizes
// are zero before the first pass.
func (s State) Sizes() []int {
	sizes := make([]int, s.K)
	for _, c := range s.Assignments {
		sizes[c]++
	}
	return sizes
}

// Members returns, per centroid, the indices of the points assigned to it.
func (s State) Members() []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, s.K)
	for i := range members {
		members[i] = roaring.New()
	}
	for i, c := range s.Assignments {
		members[c].Add(uint32(i))
	}
	return members
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
