package interact

import (
	"github.com/example/designstudio/internal/geom"
)

// State is the gesture currently in progress.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// Limits constrain the geometry a gesture may produce.
type Limits struct {
	// Bounds confines dragged objects: the canvas, or the print area in
	// product mode.
	Bounds geom.Rect
	// Floor is the minimum box for resizes.
	Floor geom.Size
}

// Machine tracks one drag or resize gesture on one object. Pointer moves are
// coalesced: Move only records the latest canvas position and Flush applies
// it, so several moves between two frames produce one update.
type Machine struct {
	state  State
	target string
	offset geom.Point
	start  geom.Point
	handle Handle
	moves  *Latest[geom.Point]
}

// NewMachine returns an idle machine.
func NewMachine() *Machine {
	return &Machine{moves: NewLatest[geom.Point]()}
}

// State returns the active gesture.
func (m *Machine) State() State { return m.state }

// Target returns the id of the object being manipulated, or "".
func (m *Machine) Target() string { return m.target }

// Handle returns the active resize grip, or HandleNone.
func (m *Machine) Handle() Handle { return m.handle }

// Offset returns the grab offset of a drag.
func (m *Machine) Offset() geom.Point { return m.offset }

// Start returns the raw screen position where a resize began.
func (m *Machine) Start() geom.Point { return m.start }

// BeginMove starts dragging the object with the given bounds from the
// canvas point ptr, keeping the grab offset for later moves.
func (m *Machine) BeginMove(id string, ptr geom.Point, obj geom.Rect) {
	m.reset()
	m.state = Dragging
	m.target = id
	m.offset = ptr.Sub(geom.Pt(obj.X, obj.Y))
}

// BeginResize starts resizing id with grip h from the screen point screen.
func (m *Machine) BeginResize(id string, h Handle, screen geom.Point) {
	m.reset()
	if h == HandleNone {
		return
	}
	m.state = Resizing
	m.target = id
	m.handle = h
	m.start = screen
}

// Move records the latest canvas pointer position. It returns false when no
// gesture is active.
func (m *Machine) Move(ptr geom.Point) bool {
	if m.state == Idle {
		return false
	}
	m.moves.Offer(ptr)
	return true
}

// Pending reports whether a move is waiting to be applied.
func (m *Machine) Pending() bool { return m.moves.Pending() }

// Flush applies the pending move to obj, the current bounds of the target,
// and returns the new bounds. ok is false when nothing was pending.
func (m *Machine) Flush(obj geom.Rect, lim Limits) (r geom.Rect, ok bool) {
	ptr, ok := m.moves.Take()
	if !ok || m.state == Idle {
		return obj, false
	}
	return m.Apply(obj, ptr, lim), true
}

// Apply computes the bounds obj takes when the pointer is at ptr.
func (m *Machine) Apply(obj geom.Rect, ptr geom.Point, lim Limits) geom.Rect {
	switch m.state {
	case Dragging:
		p := MoveTo(ptr.Sub(m.offset), obj.Size(), lim.Bounds)
		return geom.R(p.X, p.Y, obj.W, obj.H)
	case Resizing:
		return Resize(obj, m.handle, ptr, lim.Floor)
	}
	return obj
}

// End returns to idle and drops any move that was not flushed.
func (m *Machine) End() { m.reset() }

func (m *Machine) reset() {
	m.state = Idle
	m.target = ""
	m.offset = geom.Point{}
	m.start = geom.Point{}
	m.handle = HandleNone
	m.moves.Discard()
}
