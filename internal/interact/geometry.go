package interact

import (
	"math"

	"github.com/example/designstudio/internal/geom"
)

// MoveTo places a box of the given size at target, clamped so it stays
// inside bounds. When the box is larger than bounds it is pinned to the
// top-left of bounds.
func MoveTo(target geom.Point, size geom.Size, bounds geom.Rect) geom.Point {
	return geom.Pt(
		geom.Clamp(target.X, bounds.X, bounds.X+bounds.W-size.W),
		geom.Clamp(target.Y, bounds.Y, bounds.Y+bounds.H-size.H),
	)
}

// Resize moves the edges that h controls to ptr, leaving the opposite edges
// fixed. A moving left or top edge always follows ptr; width and height are
// then floored independently, so a grip dragged past the opposite edge
// carries the floored box with it.
func Resize(r geom.Rect, h Handle, ptr geom.Point, floor geom.Size) geom.Rect {
	out := r
	right, bottom := r.X+r.W, r.Y+r.H
	switch {
	case h.movesRight():
		out.W = ptr.X - r.X
	case h.movesLeft():
		out.W = right - ptr.X
		out.X = ptr.X
	}
	switch {
	case h.movesBottom():
		out.H = ptr.Y - r.Y
	case h.movesTop():
		out.H = bottom - ptr.Y
		out.Y = ptr.Y
	}
	out.W = math.Max(out.W, floor.W)
	out.H = math.Max(out.H, floor.H)
	if math.IsNaN(out.W) || math.IsNaN(out.H) {
		return r
	}
	return out
}
