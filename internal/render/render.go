// Package render rasterizes design objects. It produces the 1:1 canvas
// bitmap used for previews and exports, and composes that bitmap into the
// zoomed editor view together with guides and selection handles.
package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/icon"
	"github.com/example/designstudio/internal/textmeasure"
)

// ErrNoCanvas is returned when a scene has no drawable area.
var ErrNoCanvas = errors.New("canvas has no area")

// Scene is everything needed to paint one canvas.
type Scene struct {
	Canvas geom.Size
	// Background is an optional image source, a data URI or a file path,
	// stretched over the canvas before any object.
	Background string
	Objects    []design.Object
}

// Renderer paints scenes. A Renderer may be shared between goroutines.
type Renderer struct {
	fonts  *textmeasure.Library
	logger *log.Logger
	load   func(src string) (image.Image, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFonts sets the font library used for text objects.
func WithFonts(lib *textmeasure.Library) Option { return func(r *Renderer) { r.fonts = lib } }

// WithLogger sets where per-object failures are reported.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithImageLoader replaces the function that resolves image sources.
func WithImageLoader(fn func(src string) (image.Image, error)) Option {
	return func(r *Renderer) { r.load = fn }
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{logger: log.Default(), load: LoadImage}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render paints sc at 1:1 scale on an opaque white canvas. Objects are drawn
// in zIndex order; an object that cannot be drawn is logged and skipped.
func (r *Renderer) Render(ctx context.Context, sc Scene) (*image.RGBA, error) {
	if sc.Canvas.Empty() {
		return nil, ErrNoCanvas
	}
	bounds := image.Rect(0, 0, int(math.Ceil(sc.Canvas.W)), int(math.Ceil(sc.Canvas.H)))
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.White, image.Point{}, draw.Src)

	if sc.Background != "" {
		bg, err := r.load(sc.Background)
		if err != nil {
			r.logger.Printf("render background: %v", err)
		} else {
			xdraw.CatmullRom.Scale(dst, bounds, bg, bg.Bounds(), draw.Over, nil)
		}
	}

	objs := design.CloneAll(sc.Objects)
	sort.SliceStable(objs, func(i, j int) bool { return objs[i].ZIndex < objs[j].ZIndex })

	var m *textmeasure.Measurer
	for i := range objs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o := &objs[i]
		if o.Kind() == design.KindText && m == nil {
			m = r.measurer()
		}
		layer, err := r.layer(o, m)
		if err != nil {
			r.logger.Printf("render %s: %v", o.ID, err)
			continue
		}
		if layer != nil {
			composite(dst, layer, o)
		}
	}
	return dst, nil
}

func (r *Renderer) measurer() *textmeasure.Measurer {
	lib := r.fonts
	if lib == nil {
		var err error
		lib, err = textmeasure.Default()
		if err != nil {
			r.logger.Printf("render fonts: %v", err)
		}
	}
	return textmeasure.New(lib)
}

// layer paints o into an image of its own size with the origin at the
// object's top-left corner.
func (r *Renderer) layer(o *design.Object, m *textmeasure.Measurer) (*image.RGBA, error) {
	w, h := int(math.Round(o.Width)), int(math.Round(o.Height))
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	switch p := o.Payload.(type) {
	case *design.Shape:
		layer := image.NewRGBA(image.Rect(0, 0, w, h))
		drawShape(layer, p)
		return layer, nil
	case *design.Text:
		layer := image.NewRGBA(image.Rect(0, 0, w, h))
		if err := drawText(layer, m, p); err != nil {
			return nil, err
		}
		return layer, nil
	case *design.Image:
		if p.Source == "" {
			return nil, nil
		}
		src, err := r.load(p.Source)
		if err != nil {
			return nil, err
		}
		layer := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(layer, layer.Bounds(), src, src.Bounds(), draw.Over, nil)
		return layer, nil
	case *design.Icon:
		if p.Markup == "" {
			return nil, nil
		}
		return icon.Rasterize(icon.Tint(p.Markup, p.Color), w, h, 1)
	}
	return nil, nil
}

// composite draws layer onto dst at the object's position, applying its
// opacity and its rotation about the box centre.
func composite(dst *image.RGBA, layer *image.RGBA, o *design.Object) {
	alpha := geom.Clamp(o.Opacity, 0, 1)
	if alpha == 0 {
		return
	}
	if alpha < 1 {
		faded := image.NewRGBA(layer.Bounds())
		mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
		draw.DrawMask(faded, faded.Bounds(), layer, image.Point{}, mask, image.Point{}, draw.Src)
		layer = faded
	}
	deg := math.Mod(o.Rotation, 360)
	if deg == 0 {
		at := image.Pt(int(math.Round(o.X)), int(math.Round(o.Y)))
		draw.Draw(dst, layer.Bounds().Add(at), layer, image.Point{}, draw.Over)
		return
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	hw, hh := float64(layer.Bounds().Dx())/2, float64(layer.Bounds().Dy())/2
	cx, cy := o.X+o.Width/2, o.Y+o.Height/2
	m := f64.Aff3{
		cos, -sin, cx - cos*hw + sin*hh,
		sin, cos, cy - sin*hw - cos*hh,
	}
	xdraw.BiLinear.Transform(dst, m, layer, layer.Bounds(), draw.Over, nil)
}
