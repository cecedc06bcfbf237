package interact

import (
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/viewport"
)

// Hit is the result of a pointer test. Handle is HandleNone for a body hit.
type Hit struct {
	ID     string
	Handle Handle
}

// HitTest finds what lies under the screen point p. The grips of the
// selected object win, then object bodies from the highest zIndex down.
// Rotation is ignored. objs must be in paint order.
func HitTest(objs []design.Object, selected string, p geom.Point, t viewport.Transform) (Hit, bool) {
	if selected != "" {
		for i := range objs {
			if objs[i].ID != selected {
				continue
			}
			for _, hr := range HandleRects(t.RectToScreen(objs[i].Bounds())) {
				if hr.Rect.Contains(p) {
					return Hit{ID: selected, Handle: hr.Handle}, true
				}
			}
			break
		}
	}
	c := t.ScreenToCanvas(p)
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i].Bounds().Contains(c) {
			return Hit{ID: objs[i].ID}, true
		}
	}
	return Hit{}, false
}
