package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/designstudio/internal/colorutil"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
)

// Segments used to approximate curves.
const (
	ellipseSegments = 72
	cornerSegments  = 12
)

// drawShape fills dst, sized to the shape box, with the shape. The stroke
// lies inside the box.
func drawShape(dst *image.RGBA, s *design.Shape) {
	b := dst.Bounds()
	box := geom.R(0, 0, float64(b.Dx()), float64(b.Dy()))
	fill := colorutil.ParseOr(s.FillColor, color.RGBA{})
	stroke := colorutil.ParseOr(s.StrokeColor, color.RGBA{})
	sw := math.Max(0, s.StrokeWidth)

	outer := outline(s, box, 0)
	if sw == 0 || stroke.A == 0 {
		fillRings(dst, fill, outer)
		return
	}
	inner := outline(s, box, sw)
	fillRings(dst, fill, inner)
	fillRings(dst, stroke, outer, reverse(inner))
}

// outline returns the closed polygon of s inside box, inset by d.
func outline(s *design.Shape, box geom.Rect, d float64) []geom.Point {
	switch s.ShapeKind {
	case design.ShapeCircle:
		return ellipse(box.Inset(d))
	case design.ShapeTriangle:
		return insetTriangle(triangle(box), d)
	}
	return roundRect(box.Inset(d), s.BorderRadius-d)
}

func ellipse(r geom.Rect) []geom.Point {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	c := r.Center()
	pts := make([]geom.Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = geom.Pt(c.X+r.W/2*math.Cos(a), c.Y+r.H/2*math.Sin(a))
	}
	return pts
}

func roundRect(r geom.Rect, radius float64) []geom.Point {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		return []geom.Point{
			geom.Pt(r.X, r.Y), geom.Pt(r.X+r.W, r.Y),
			geom.Pt(r.X+r.W, r.Y+r.H), geom.Pt(r.X, r.Y+r.H),
		}
	}
	corners := []struct {
		c     geom.Point
		start float64
	}{
		{geom.Pt(r.X+r.W-radius, r.Y+radius), -math.Pi / 2},
		{geom.Pt(r.X+r.W-radius, r.Y+r.H-radius), 0},
		{geom.Pt(r.X+radius, r.Y+r.H-radius), math.Pi / 2},
		{geom.Pt(r.X+radius, r.Y+radius), math.Pi},
	}
	pts := make([]geom.Point, 0, 4*(cornerSegments+1))
	for _, k := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := k.start + math.Pi/2*float64(i)/cornerSegments
			pts = append(pts, geom.Pt(k.c.X+radius*math.Cos(a), k.c.Y+radius*math.Sin(a)))
		}
	}
	return pts
}

// triangle is the isosceles triangle with its apex at the top centre.
func triangle(r geom.Rect) []geom.Point {
	return []geom.Point{
		geom.Pt(r.X+r.W/2, r.Y),
		geom.Pt(r.X+r.W, r.Y+r.H),
		geom.Pt(r.X, r.Y+r.H),
	}
}

// insetTriangle moves every edge of t inward by d by scaling about the
// incentre.
func insetTriangle(t []geom.Point, d float64) []geom.Point {
	if d <= 0 {
		return t
	}
	a, b, c := t[0], t[1], t[2]
	la, lb, lc := dist(b, c), dist(c, a), dist(a, b)
	per := la + lb + lc
	if per == 0 {
		return nil
	}
	area := math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	inr := 2 * area / per
	if inr <= d {
		return nil
	}
	in := geom.Pt((la*a.X+lb*b.X+lc*c.X)/per, (la*a.Y+lb*b.Y+lc*c.Y)/per)
	k := (inr - d) / inr
	out := make([]geom.Point, 3)
	for i, p := range t {
		out[i] = in.Add(p.Sub(in).Mul(k))
	}
	return out
}

func dist(p, q geom.Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

func reverse(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// fillRings rasterizes the rings as one path. Rings wound in opposite
// directions cancel, which cuts holes.
func fillRings(dst *image.RGBA, col color.RGBA, rings ...[]geom.Point) {
	if col.A == 0 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	drawn := false
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, p := range ring[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
		drawn = true
	}
	if drawn {
		z.Draw(dst, b, image.NewUniform(col), image.Point{})
	}
}
