package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hupe1980/centroids"
	"github.com/hupe1980/centroids/sample"
)

const (
	pointSize    = 8
	centroidSize = 18
	unassigned   = "#9e9e9e"
)

// ErrInvalidProjection is returned when a projected dimension does not exist.
var ErrInvalidProjection = errors.New("render: projection dimension out of range")

// Options configures a chart.
type Options struct {
	// Title defaults to "k-means (iteration N)".
	Title string
	// Palette holds one "#rrggbb" color per cluster. Missing colors are
	// filled from sample.Palette.
	Palette []string
	// X and Y select the projected dimensions. Y defaults to 1 when X and Y
	// are both zero.
	X, Y int
	// Lines joins every point to its assigned centroid.
	Lines bool
	// Width and Height are CSS sizes, e.g. "900px".
	Width, Height string
}

func (o Options) withDefaults(s centroids.State) Options {
	if o.X == 0 && o.Y == 0 && s.Dimension() > 1 {
		o.Y = 1
	}
	if o.Title == "" {
		o.Title = fmt.Sprintf("k-means (iteration %d)", s.Iterations)
	}
	if len(o.Palette) < s.K {
		o.Palette = append(append([]string(nil), o.Palette...), sample.Palette(s.K)[len(o.Palette):]...)
	}
	if o.Width == "" {
		o.Width = "900px"
	}
	if o.Height == "" {
		o.Height = "600px"
	}
	return o
}

// Chart writes a standalone HTML page with one chart of s to w.
func Chart(w io.Writer, s centroids.State, o Options) error {
	scatter, err := NewScatter(s, o)
	if err != nil {
		return err
	}
	return scatter.Render(w)
}

// Frames writes a single HTML page with one chart per snapshot, in order.
// It is meant for replaying a recorded run.
func Frames(w io.Writer, states []centroids.State, o Options) error {
	page := components.NewPage()

	for _, s := range states {
		scatter, err := NewScatter(s, o)
		if err != nil {
			return err
		}
		page.AddCharts(scatter)
	}

	return page.Render(w)
}

// NewScatter builds the chart for s without rendering it.
func NewScatter(s centroids.State, o Options) (*charts.Scatter, error) {
	o = o.withDefaults(s)

	dim := s.Dimension()
	if o.X < 0 || o.X >= dim || o.Y < 0 || (dim > 1 && o.Y >= dim) {
		return nil, fmt.Errorf("%w: x=%d y=%d dimension=%d", ErrInvalidProjection, o.X, o.Y, dim)
	}

	project := func(p []float64) []float64 {
		if dim == 1 {
			return []float64{p[o.X], 0}
		}
		return []float64{p[o.X], p[o.Y]}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: fmt.Sprintf("status %s, %d points, k=%d", s.Status, len(s.Data), s.K),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: fmt.Sprintf("dim %d", o.X), Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("dim %d", o.Y), Type: "value"}),
	)

	if len(s.Assignments) == 0 {
		points := make([]opts.ScatterData, len(s.Data))
		for i, p := range s.Data {
			points[i] = opts.ScatterData{Value: project(p), SymbolSize: pointSize}
		}
		scatter.AddSeries("Points", points, charts.WithItemStyleOpts(opts.ItemStyle{Color: unassigned}))
	} else {
		members := make([][]opts.ScatterData, s.K)
		for i, c := range s.Assignments {
			members[c] = append(members[c], opts.ScatterData{Value: project(s.Data[i]), SymbolSize: pointSize})
		}
		for c, points := range members {
			scatter.AddSeries(fmt.Sprintf("Cluster %d", c+1), points,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: o.Palette[c]}))
		}
	}

	for c, m := range s.Means {
		scatter.AddSeries(fmt.Sprintf("Centroid %d", c+1), []opts.ScatterData{{
			Value:      project(m),
			Symbol:     "diamond",
			SymbolSize: centroidSize,
		}}, charts.WithItemStyleOpts(opts.ItemStyle{Color: o.Palette[c], BorderColor: "#000000"}))
	}

	if o.Lines && len(s.Assignments) > 0 {
		for i, c := range s.Assignments {
			line := charts.NewLine()
			line.AddSeries(fmt.Sprintf("Link %d", i), []opts.LineData{
				{Value: project(s.Data[i])},
				{Value: project(s.Means[c])},
			}, charts.WithItemStyleOpts(opts.ItemStyle{Color: o.Palette[c]}))
			scatter.Overlap(line)
		}
	}

	return scatter, nil
}
