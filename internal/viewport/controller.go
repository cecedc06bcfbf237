package viewport

import (
	"math"

	"github.com/example/designstudio/internal/geom"
)

const (
	// MinZoom and MaxZoom bound every zoom operation.
	MinZoom = 0.1
	MaxZoom = 5.0

	// ZoomStep is applied by ZoomIn and ZoomOut.
	ZoomStep = 1.2

	// FitPadding is the total padding removed from the container on each
	// axis before fitting.
	FitPadding = 100.0

	wheelDown = 0.9
	wheelUp   = 1.1
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Modifiers is a bit set of held keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// Controller owns zoom and pan. The zero value is not usable; call New.
type Controller struct {
	zoom      float64
	pan       geom.Point
	origin    geom.Point
	container geom.Size
	canvas    geom.Size

	// printArea is non-nil in product mode.
	printArea *geom.Rect

	panning  bool
	panStart geom.Point
}

// New creates a controller for a canvas of the given size. printArea is nil
// outside product mode.
func New(canvas geom.Size, printArea *geom.Rect) *Controller {
	c := &Controller{zoom: 1, canvas: canvas}
	if printArea != nil {
		pa := *printArea
		c.printArea = &pa
	}
	return c
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.zoom }

// Pan returns the current pan offset in screen pixels.
func (c *Controller) Pan() geom.Point { return c.pan }

// Canvas returns the logical canvas size.
func (c *Controller) Canvas() geom.Size { return c.canvas }

// PrintArea reports the print area in product mode.
func (c *Controller) PrintArea() (geom.Rect, bool) {
	if c.printArea == nil {
		return geom.Rect{}, false
	}
	return *c.printArea, true
}

// ProductMode reports whether a print area is configured.
func (c *Controller) ProductMode() bool { return c.printArea != nil }

// Panning reports whether a pan gesture is active.
func (c *Controller) Panning() bool { return c.panning }

// SetContainer records the size of the viewport the canvas is shown in.
func (c *Controller) SetContainer(s geom.Size) { c.container = s }

// Container returns the last recorded viewport size.
func (c *Controller) Container() geom.Size { return c.container }

// SetOrigin records where the untransformed canvas sits on screen.
func (c *Controller) SetOrigin(p geom.Point) { c.origin = p }

// SetView replaces zoom and pan directly. Zoom is clamped.
func (c *Controller) SetView(zoom float64, pan geom.Point) {
	c.zoom = clampZoom(zoom)
	c.pan = pan
}

// Transform returns the current screen/canvas mapping.
func (c *Controller) Transform() Transform {
	return Transform{Zoom: c.zoom, Pan: c.pan, Origin: c.origin}
}

// ZoomIn multiplies the zoom by ZoomStep.
func (c *Controller) ZoomIn() { c.zoom = clampZoom(c.zoom * ZoomStep) }

// ZoomOut divides the zoom by ZoomStep.
func (c *Controller) ZoomOut() { c.zoom = clampZoom(c.zoom / ZoomStep) }

// Wheel applies one wheel notch. It only zooms while control or meta is held
// and reports whether the event was consumed.
func (c *Controller) Wheel(deltaY float64, mods Modifiers) bool {
	if mods&(ModControl|ModMeta) == 0 {
		return false
	}
	f := wheelUp
	if deltaY > 0 {
		f = wheelDown
	}
	c.zoom = clampZoom(c.zoom * f)
	return true
}

// Reset returns to the full image view in product mode and to 1:1 otherwise.
func (c *Controller) Reset() {
	if c.ProductMode() {
		c.FitFullImage()
		return
	}
	c.zoom = 1
	c.pan = geom.Point{}
}

// FitFullImage shows the whole product canvas. This is the 0% reference.
// It does nothing outside product mode.
func (c *Controller) FitFullImage() {
	if !c.ProductMode() {
		return
	}
	c.zoom = clampZoom(c.fullImageZoom())
	c.pan = geom.Point{}
}

// FitPrintArea fills the container with the print area and centres it in
// the container, whose top-left is the screen origin. This is the 100%
// reference. It does nothing outside product mode.
func (c *Controller) FitPrintArea() {
	if !c.ProductMode() {
		return
	}
	z := clampZoom(c.printAreaZoom())
	center := c.printArea.Center().Mul(z)
	c.zoom = z
	c.pan = geom.Point{
		X: c.container.W/2 - c.origin.X - center.X,
		Y: c.container.H/2 - c.origin.Y - center.Y,
	}
}

// FitToScreen fits the print area in product mode and the whole canvas
// otherwise.
func (c *Controller) FitToScreen() {
	if c.ProductMode() {
		c.FitPrintArea()
		return
	}
	c.zoom = clampZoom(fitZoom(c.available(), c.canvas, 1))
	c.pan = geom.Point{}
}

// Percentage is the zoom shown to the user. In product mode it interpolates
// between the full image fit (0) and the print area fit (100).
func (c *Controller) Percentage() int {
	raw := int(math.Round(c.zoom * 100))
	if !c.ProductMode() {
		return raw
	}
	lo := clampZoom(c.fullImageZoom())
	hi := clampZoom(c.printAreaZoom())
	if hi == lo {
		return raw
	}
	pct := math.Round((c.zoom - lo) / (hi - lo) * 100)
	return int(geom.Clamp(pct, 0, 100))
}

// BeginPan starts a pan for a middle press or an alt+left press and reports
// whether the press was consumed.
func (c *Controller) BeginPan(p geom.Point, b Button, mods Modifiers) bool {
	if b != ButtonMiddle && !(b == ButtonLeft && mods&ModAlt != 0) {
		return false
	}
	c.panning = true
	c.panStart = p.Sub(c.pan)
	return true
}

// PanTo updates the pan while a pan gesture is active.
func (c *Controller) PanTo(p geom.Point) bool {
	if !c.panning {
		return false
	}
	c.pan = p.Sub(c.panStart)
	return true
}

// EndPan finishes any pan gesture.
func (c *Controller) EndPan() { c.panning = false }

func (c *Controller) available() geom.Size {
	return geom.Size{W: c.container.W - FitPadding, H: c.container.H - FitPadding}
}

func (c *Controller) fullImageZoom() float64 {
	return fitZoom(c.available(), c.canvas, 1)
}

func (c *Controller) printAreaZoom() float64 {
	if c.printArea == nil {
		return MaxZoom
	}
	return fitZoom(c.available(), c.printArea.Size(), MaxZoom)
}

func fitZoom(avail, content geom.Size, limit float64) float64 {
	if content.Empty() {
		return limit
	}
	return math.Min(math.Min(avail.W/content.W, avail.H/content.H), limit)
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return geom.Clamp(z, MinZoom, MaxZoom)
}
