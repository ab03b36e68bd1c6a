// Package projection maps filtered records onto two statistic axes.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/vnl/internal/domain/player"
)

// ErrUnknownAxis is returned when an axis key is not a plottable statistic.
var ErrUnknownAxis = errors.New("unknown axis")

// Point is one plotted record.
type Point struct {
	X      float64
	Y      float64
	Record player.Record
}

// Range is the padded display range of one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bounds holds the display ranges of both axes.
type Bounds struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// Project returns a point for every record whose x and y values are both known,
// in input order.
func Project(records []player.Record, x, y player.StatKey) ([]Point, error) {
	if !player.IsAxis(x) {
		return nil, fmt.Errorf("project: %w: %q", ErrUnknownAxis, x)
	}
	if !player.IsAxis(y) {
		return nil, fmt.Errorf("project: %w: %q", ErrUnknownAxis, y)
	}

	points := make([]Point, 0, len(records))
	for _, r := range records {
		xv, ok := r.Value(x).Get()
		if !ok {
			continue
		}
		yv, ok := r.Value(y).Get()
		if !ok {
			continue
		}
		points = append(points, Point{X: xv, Y: yv, Record: r})
	}
	return points, nil
}

// ComputeBounds pads the observed extent of each axis by 5% of its largest
// magnitude and floors the lower bound at zero. It reports false for no points.
func ComputeBounds(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return Bounds{X: padded(xs), Y: padded(ys)}, true
}

func padded(vs []float64) Range {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	base := max(math.Abs(lo), math.Abs(hi))
	if base == 0 {
		base = 1
	}
	pad := 0.05 * base
	return Range{Min: max(0, lo-pad), Max: hi + pad}
}
