package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle in logical units. Y grows downwards.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area, zero for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o. The result has zero area when
// they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Margin grows (positive) or shrinks (negative) each edge of the viewport
// test rectangle.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Apply returns r with the margin applied to each edge.
func (m Margin) Apply(r Rect) Rect {
	return Rect{
		X: r.X - m.Left,
		Y: r.Y - m.Top,
		W: r.W + m.Left + m.Right,
		H: r.H + m.Top + m.Bottom,
	}
}

// ParseMargin parses a CSS-style margin shorthand with one to four
// values, e.g. "0px 0px -50px 0px". The "px" suffix is optional.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return Margin{}, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}

	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Margin{}, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return Margin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Margin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Margin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return Margin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

// ratio is the visible fraction of el inside root. A zero-area element
// counts as fully visible when it touches the root.
func ratio(el, root Rect) float64 {
	area := el.Area()
	if area == 0 {
		if el.X >= root.X && el.X <= root.X+root.W && el.Y >= root.Y && el.Y <= root.Y+root.H {
			return 1
		}
		return 0
	}
	return el.Intersect(root).Area() / area
}
