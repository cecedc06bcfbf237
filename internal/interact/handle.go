// Package interact implements pointer driven moving and resizing of design
// objects: resize handles, hit testing and the drag state machine.
package interact

import (
	"fmt"

	"github.com/example/designstudio/internal/geom"
)

// HandleSize is the edge length of a resize handle in screen pixels.
const HandleSize = 8

// Handle names one of the eight resize grips around a selected object.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

var handleNames = [...]string{"", "nw", "n", "ne", "e", "se", "s", "sw", "w"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandle converts a compass name such as "nw" to a Handle.
func ParseHandle(s string) (Handle, error) {
	for i, n := range handleNames {
		if i > 0 && n == s {
			return Handle(i), nil
		}
	}
	return HandleNone, fmt.Errorf("unknown handle %q", s)
}

// Handles lists the grips clockwise from the top-left corner.
func Handles() []Handle {
	return []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}
}

// movesLeft reports whether dragging h moves the left edge.
func (h Handle) movesLeft() bool { return h == HandleNW || h == HandleW || h == HandleSW }

func (h Handle) movesRight() bool { return h == HandleNE || h == HandleE || h == HandleSE }

func (h Handle) movesTop() bool { return h == HandleNW || h == HandleN || h == HandleNE }

func (h Handle) movesBottom() bool { return h == HandleSW || h == HandleS || h == HandleSE }

// Anchor returns the point of r that h sits on.
func (h Handle) Anchor(r geom.Rect) geom.Point {
	x, y := r.X+r.W/2, r.Y+r.H/2
	switch {
	case h.movesLeft():
		x = r.X
	case h.movesRight():
		x = r.X + r.W
	}
	switch {
	case h.movesTop():
		y = r.Y
	case h.movesBottom():
		y = r.Y + r.H
	}
	return geom.Pt(x, y)
}

// HandleRect is a grip together with its square in screen space.
type HandleRect struct {
	Handle Handle
	Rect   geom.Rect
}

// HandleRects returns the grip squares for a box already in screen space.
func HandleRects(r geom.Rect) []HandleRect {
	hs := float64(HandleSize) / 2
	out := make([]HandleRect, 0, 8)
	for _, h := range Handles() {
		p := h.Anchor(r)
		out = append(out, HandleRect{Handle: h, Rect: geom.R(p.X-hs, p.Y-hs, HandleSize, HandleSize)})
	}
	return out
}
