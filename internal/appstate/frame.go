package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/render"
	"github.com/example/designstudio/internal/theme"
	"github.com/example/designstudio/internal/viewport"
)

// PaintState is everything one frame needs. It is built on the event loop
// and painted on another goroutine, so it shares nothing mutable with the
// session.
type PaintState struct {
	Width, Height int
	Scene         render.Scene
	Renderer      *render.Renderer
	View          render.View
	Style         render.Style
	Status        string
	StatusBg      color.RGBA
	StatusFg      color.RGBA
	Message       string
	MessageUntil  time.Time
}

// canvasOrigin is where the unzoomed canvas starts inside the window.
var canvasOrigin = geom.Pt(viewport.FitPadding/2, viewport.FitPadding/2)

// container is the canvas area of a window of the given size.
func container(width, height int) geom.Size {
	return geom.Sz(float64(width), float64(height-statusHeight))
}

// Snapshot captures the session for painting. An open text edit is shown
// with its uncommitted text and a caret.
func Snapshot(sess *editor.Session, th *theme.Theme, width, height int) PaintState {
	sc := sess.Scene()
	if id, text, ok := sess.Editing(); ok {
		for i := range sc.Objects {
			if sc.Objects[i].ID != id {
				continue
			}
			if t, ok := sc.Objects[i].Text(); ok {
				t.Text = text + "|"
			}
		}
	}
	v := render.View{Transform: sess.Viewport().Transform()}
	if p, ok := sess.Product(); ok {
		pa := p.PrintArea
		v.PrintArea = &pa
		v.PrintLabel = p.Info.PrintAreaDescription
		if v.PrintLabel == "" {
			v.PrintLabel = "Print area"
		}
	}
	if o, ok := sess.Object(sess.Selected()); ok {
		b := o.Bounds()
		v.Selected = &b
	}
	return PaintState{
		Width:    width,
		Height:   height,
		Scene:    sc,
		Renderer: sess.Renderer(),
		View:     v,
		Style:    th.Style(),
		Status:   statusText(sess),
		StatusBg: th.StatusBackground,
		StatusFg: th.Foreground,
	}
}

func statusText(sess *editor.Session) string {
	s := fmt.Sprintf("%s [%s]  zoom %d%%", sess.Name(), sess.Mode(), sess.ZoomPercentage())
	if id, _, ok := sess.Editing(); ok {
		return s + "  editing " + id + " (Enter commit, Esc cancel)"
	}
	if id := sess.Selected(); id != "" {
		if o, ok := sess.Object(id); ok {
			s += fmt.Sprintf("  %s %.0fx%.0f at %.0f,%.0f", id, o.Width, o.Height, o.X, o.Y)
		}
	}
	return s + "  (" + fmt.Sprint(len(sess.Objects())) + " objects)"
}

// DrawScene paints st into dst. It returns early with ctx's error when the
// frame is superseded.
func DrawScene(ctx context.Context, dst *image.RGBA, st PaintState) error {
	r := st.Renderer
	if r == nil {
		r = render.New()
	}
	canvas, err := r.Render(ctx, st.Scene)
	if err != nil {
		return err
	}
	v := st.View
	v.Canvas = canvas
	render.DrawView(dst, v, st.Style)
	if err := ctx.Err(); err != nil {
		return err
	}

	b := dst.Bounds()
	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(st.StatusBg), image.Point{}, draw.Src)
	text := st.Status
	if st.Message != "" && time.Now().Before(st.MessageUntil) {
		text = st.Message
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.StatusFg), Face: basicfont.Face7x13,
		Dot: fixed.P(bar.Min.X+8, bar.Max.Y-7)}
	d.DrawString(text)
	return nil
}

// RenderWindow draws the editor window for sess off screen at the given
// size, mounting the session first when needed.
func RenderWindow(ctx context.Context, sess *editor.Session, th *theme.Theme, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= statusHeight {
		return nil, fmt.Errorf("window size %dx%d too small", width, height)
	}
	if th == nil {
		th = theme.Default()
	}
	if !sess.Mounted() {
		sess.Mount(container(width, height), canvasOrigin)
	}
	sess.Frame()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := DrawScene(ctx, dst, Snapshot(sess, th, width, height)); err != nil {
		return nil, err
	}
	return dst, nil
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st PaintState) {
	b, err := s.NewBuffer(image.Point{st.Width, st.Height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if err := DrawScene(ctx, b.RGBA(), st); err != nil {
		if ctx.Err() == nil {
			log.Printf("paint: %v", err)
		}
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// shapeFor maps shape actions to shape kinds.
var shapeFor = map[string]design.ShapeKind{
	"rectangle": design.ShapeRectangle,
	"circle":    design.ShapeCircle,
	"triangle":  design.ShapeTriangle,
}
