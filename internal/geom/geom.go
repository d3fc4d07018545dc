// Package geom holds the small integer geometry used for terminal cell layout.
package geom

import "math"

// Point is a terminal cell coordinate.
type Point struct {
	X, Y int
}

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Rect is an axis-aligned rectangle. Max edges are exclusive.
type Rect struct {
	X, Y, Width, Height int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

func (r Rect) MaxX() int { return r.X + r.Width }
func (r Rect) MaxY() int { return r.Y + r.Height }

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Offset translates the rect by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Scaled grows the rect around its centre so that it is factor times its own size.
func (r Rect) Scaled(factor int) Rect {
	if factor <= 1 {
		return r
	}
	w := r.Width * factor
	h := r.Height * factor
	return Rect{
		X:      r.X - (w-r.Width)/2,
		Y:      r.Y - (h-r.Height)/2,
		Width:  w,
		Height: h,
	}
}

// Union returns the smallest rect containing both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{X: x, Y: y, Width: max(r.MaxX(), o.MaxX()) - x, Height: max(r.MaxY(), o.MaxY()) - y}
}

// Intersect returns the overlap of r and o, or the zero rect.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	mx := min(r.MaxX(), o.MaxX())
	my := min(r.MaxY(), o.MaxY())
	if mx <= x || my <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: mx - x, Height: my - y}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool { return !r.Intersect(o).Empty() }

// Distance is the Euclidean distance from p to the nearest cell of r.
// It is zero when p is inside r.
func (r Rect) Distance(p Point) float64 {
	dx := 0
	switch {
	case p.X < r.X:
		dx = r.X - p.X
	case p.X >= r.MaxX():
		dx = p.X - (r.MaxX() - 1)
	}
	dy := 0
	switch {
	case p.Y < r.Y:
		dy = r.Y - p.Y
	case p.Y >= r.MaxY():
		dy = p.Y - (r.MaxY() - 1)
	}
	return math.Hypot(float64(dx), float64(dy))
}

// Lerp interpolates between a and b; t is clamped to [0,1].
func Lerp(a, b Rect, t float64) Rect {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y int) int { return x + int(math.Round(float64(y-x)*t)) }
	return Rect{
		X:      mix(a.X, b.X),
		Y:      mix(a.Y, b.Y),
		Width:  mix(a.Width, b.Width),
		Height: mix(a.Height, b.Height),
	}
}
