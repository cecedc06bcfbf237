package editor

import (
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/interact"
	"github.com/example/designstudio/internal/viewport"
)

// Gesture returns the pointer gesture in progress.
func (s *Session) Gesture() interact.State { return s.machine.State() }

// Panning reports whether a pan gesture is active.
func (s *Session) Panning() bool { return s.view.Panning() }

// PointerDown handles a press at the screen point p. Middle or alt+left
// presses pan; left presses grab a handle of the selection, grab an object
// body or clear the selection when they miss.
func (s *Session) PointerDown(p geom.Point, b viewport.Button, mods viewport.Modifiers) {
	if s.view.BeginPan(p, b, mods) {
		return
	}
	if b != viewport.ButtonLeft {
		return
	}
	t := s.view.Transform()
	hit, ok := interact.HitTest(s.store.Painted(), s.store.Selected(), p, t)
	if !ok {
		s.machine.End()
		s.ClickCanvas()
		return
	}
	if hit.Handle != interact.HandleNone {
		s.machine.BeginResize(hit.ID, hit.Handle, p)
		return
	}
	s.Select(hit.ID)
	obj, _ := s.store.Get(hit.ID)
	s.machine.BeginMove(hit.ID, t.ScreenToCanvas(p), obj.Bounds())
}

// PointerMove records a pointer position. Pans apply immediately; drag and
// resize positions are coalesced until the next Frame. It reports whether
// anything changed or is pending.
func (s *Session) PointerMove(p geom.Point) bool {
	if s.view.PanTo(p) {
		return true
	}
	return s.machine.Move(s.view.Transform().ScreenToCanvas(p))
}

// Frame applies the latest coalesced pointer move, at most one per call. It
// reports whether an object changed.
func (s *Session) Frame() bool {
	if !s.machine.Pending() {
		return false
	}
	id := s.machine.Target()
	obj, ok := s.store.Get(id)
	if !ok {
		s.machine.End()
		return false
	}
	r, ok := s.machine.Flush(obj.Bounds(), s.limits(id))
	if !ok {
		return false
	}
	return s.store.SetBounds(id, r)
}

// PointerUp ends any pan, drag or resize. A move not yet applied by Frame is
// dropped.
func (s *Session) PointerUp() {
	s.view.EndPan()
	s.machine.End()
}

// Wheel zooms when control or meta is held and reports whether it did.
func (s *Session) Wheel(deltaY float64, mods viewport.Modifiers) bool {
	return s.view.Wheel(deltaY, mods)
}

// DoubleClick starts editing the text object under p.
func (s *Session) DoubleClick(p geom.Point) bool {
	hit, ok := interact.HitTest(s.store.Painted(), "", p, s.view.Transform())
	if !ok {
		return false
	}
	return s.BeginEdit(hit.ID) == nil
}
