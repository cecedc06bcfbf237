// Package viewport maps between screen pixels and canvas units and owns the
// zoom/pan state of one editor session.
package viewport

import "github.com/example/designstudio/internal/geom"

// Transform is the forward mapping used for painting and its exact inverse
// used for pointer math:
//
//	screen = origin + pan + canvas*zoom
//	canvas = (screen - origin - pan) / zoom
type Transform struct {
	Zoom   float64
	Pan    geom.Point
	Origin geom.Point
}

// ScreenToCanvas converts a pointer position to unscaled canvas units.
func (t Transform) ScreenToCanvas(p geom.Point) geom.Point {
	z := t.zoom()
	return geom.Point{
		X: (p.X - t.Origin.X - t.Pan.X) / z,
		Y: (p.Y - t.Origin.Y - t.Pan.Y) / z,
	}
}

// CanvasToScreen converts canvas units to screen pixels.
func (t Transform) CanvasToScreen(p geom.Point) geom.Point {
	z := t.zoom()
	return geom.Point{
		X: p.X*z + t.Pan.X + t.Origin.X,
		Y: p.Y*z + t.Pan.Y + t.Origin.Y,
	}
}

// RectToScreen maps a canvas rectangle onto the screen.
func (t Transform) RectToScreen(r geom.Rect) geom.Rect {
	p0 := t.CanvasToScreen(r.Min())
	z := t.zoom()
	return geom.Rect{X: p0.X, Y: p0.Y, W: r.W * z, H: r.H * z}
}

// ScreenLength converts a screen distance to canvas units.
func (t Transform) ScreenLength(d float64) float64 { return d / t.zoom() }

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}
