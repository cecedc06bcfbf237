// Package geom holds the float geometry shared by the editor packages. All
// values are in unscaled canvas units unless a caller says otherwise.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in either screen or canvas space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Div returns p divided by k.
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Rect is an axis aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectOf returns the rectangle at the origin with the given size.
func RectOf(s Size) Rect { return Rect{W: s.W, H: s.H} }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Center returns the midpoint.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive, matching image.Rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inset shrinks r by n on every side. Negative n grows it.
func (r Rect) Inset(n float64) Rect {
	return Rect{r.X + n, r.Y + n, r.W - 2*n, r.H - 2*n}
}

// Image converts r to an image.Rectangle, rounding outward.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
}

func (r Rect) String() string { return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H) }

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins, so an object
// larger than its bounds is pinned to the leading edge.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
