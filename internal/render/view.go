package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/interact"
	"github.com/example/designstudio/internal/viewport"
)

// SafeAreaInset is the margin of the safe-area guide inside the print area.
const SafeAreaInset = 10

// Style holds the colours of the editor chrome.
type Style struct {
	Backdrop     color.RGBA
	Shadow       color.RGBA
	PrintArea    color.RGBA
	PrintAreaAlt color.RGBA
	SafeArea     color.RGBA
	Label        color.RGBA
	Selection    color.RGBA
	HandleFill   color.RGBA
	HandleStroke color.RGBA
}

// DefaultStyle matches the light editor theme.
func DefaultStyle() Style {
	return Style{
		Backdrop:     color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Shadow:       color.RGBA{0, 0, 0, 0x30},
		PrintArea:    color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		PrintAreaAlt: color.RGBA{0xff, 0xff, 0xff, 0xff},
		SafeArea:     color.RGBA{0x10, 0xb9, 0x81, 0xff},
		Label:        color.RGBA{0x1f, 0x29, 0x37, 0xff},
		Selection:    color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		HandleFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		HandleStroke: color.RGBA{0x3b, 0x82, 0xf6, 0xff},
	}
}

// View describes one frame of the editor surface.
type View struct {
	// Canvas is the 1:1 render of the design.
	Canvas    *image.RGBA
	Transform viewport.Transform
	// PrintArea, in canvas units, is outlined with its safe area when set.
	PrintArea  *geom.Rect
	PrintLabel string
	// Selected, in canvas units, gets an outline and resize handles.
	Selected *geom.Rect
}

// DrawView paints v into dst.
func DrawView(dst *image.RGBA, v View, st Style) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(st.Backdrop), image.Point{}, draw.Src)
	t := v.Transform
	if v.Canvas != nil {
		cb := v.Canvas.Bounds()
		screen := t.RectToScreen(geom.R(0, 0, float64(cb.Dx()), float64(cb.Dy()))).Image()
		drawShadow(dst, screen, ShadowRadius, ShadowOffset, st.Shadow)
		o := t.CanvasToScreen(geom.Point{})
		m := f64.Aff3{t.Zoom, 0, o.X, 0, t.Zoom, o.Y}
		xdraw.ApproxBiLinear.Transform(dst, m, v.Canvas, cb, draw.Src, nil)
	}
	if v.PrintArea != nil {
		pa := t.RectToScreen(*v.PrintArea).Image()
		drawDashedRect(dst, pa, 6, 2, st.PrintArea, st.PrintAreaAlt)
		safe := t.RectToScreen(v.PrintArea.Inset(SafeAreaInset)).Image()
		if !safe.Empty() {
			drawDashedRect(dst, safe, 3, 1, st.SafeArea, color.RGBA{})
		}
		if v.PrintLabel != "" {
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.Label), Face: basicfont.Face7x13,
				Dot: fixed.P(pa.Min.X, pa.Min.Y-6)}
			d.DrawString(v.PrintLabel)
		}
	}
	if v.Selected != nil {
		sel := t.RectToScreen(*v.Selected)
		drawRect(dst, sel.Image(), st.Selection, 2)
		for _, hr := range interact.HandleRects(sel) {
			r := hr.Rect.Image()
			draw.Draw(dst, r, image.NewUniform(st.HandleFill), image.Point{}, draw.Src)
			drawRect(dst, r, st.HandleStroke, 1)
		}
	}
}

// drawDashedLine draws an axis aligned dashed line alternating c1 and c2.
// Transparent dash colours leave gaps.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.RGBA) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length, step = -length, -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		if col.A == 0 {
			continue
		}
		for t := 0; t < thickness; t++ {
			if horiz {
				img.Set(x0+i*step, y0+t, col)
			} else {
				img.Set(x0+t, y0+i*step, col)
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.RGBA) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	u := image.NewUniform(col)
	for _, r := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick),
		image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y),
		image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y),
	} {
		draw.Draw(img, r.Intersect(img.Bounds()), u, image.Point{}, draw.Over)
	}
}
