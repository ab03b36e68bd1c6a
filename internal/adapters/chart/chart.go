// Package chart renders projected points as a PNG scatter plot.
package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/vnl/internal/domain/projection"
	"github.com/okian/vnl/pkg/metrics"
)

// Sentinel kinds for chart errors.
var (
	ErrEmpty  = errors.New("no points to plot")
	ErrRender = errors.New("chart render failed")
)

// Default image size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image width and height. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithDotColor sets the marker color.
func WithDotColor(c drawing.Color) Option {
	return func(r *Renderer) {
		r.dot = c
	}
}

// Renderer draws scatter charts.
type Renderer struct {
	width  int
	height int
	dot    drawing.Color
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth, height: DefaultHeight, dot: gochart.ColorBlue}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the configured image size.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Scatter plots points within bounds and returns PNG bytes.
func (r *Renderer) Scatter(ctx context.Context, xName, yName string, points []projection.Point, bounds projection.Bounds) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	xs := make([]float64, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	// go-chart cannot draw a series of one value.
	if len(points) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      fmt.Sprintf("%s vs %s", yName, xName),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: xName, Range: axisRange(bounds.X)},
		YAxis:      gochart.YAxis{Name: yName, Range: axisRange(bounds.Y)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "players",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    4,
					DotColor:    r.dot,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		metrics.RecordErrorByComponent("chart", "render")
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	metrics.RecordChartBytes(buf.Len())
	return buf.Bytes(), nil
}

// axisRange widens degenerate ranges, which go-chart rejects.
func axisRange(r projection.Range) *gochart.ContinuousRange {
	lo, hi := r.Min, r.Max
	if hi <= lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}
