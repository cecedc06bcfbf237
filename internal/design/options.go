package design

import "github.com/example/designstudio/internal/geom"

// Option overrides part of a newly added object after its variant defaults
// have been applied.
type Option func(*Object)

// At places the object at p.
func At(p geom.Point) Option { return func(o *Object) { o.X, o.Y = p.X, p.Y } }

// WithSize sets the initial box. Text objects are re-measured afterwards.
func WithSize(s geom.Size) Option { return func(o *Object) { o.Width, o.Height = s.W, s.H } }

// WithRotation sets the cosmetic rotation in degrees.
func WithRotation(deg float64) Option { return func(o *Object) { o.Rotation = deg } }

// WithOpacity sets the opacity, clamped to [0,1].
func WithOpacity(a float64) Option {
	return func(o *Object) { o.Opacity = geom.Clamp(a, 0, 1) }
}

// WithText sets the content of a text object.
func WithText(s string) Option {
	return func(o *Object) {
		if t, ok := o.Text(); ok {
			t.Text = s
		}
	}
}

// WithFont sets family and size of a text object. Empty or zero values keep
// the default.
func WithFont(family string, size float64) Option {
	return func(o *Object) {
		t, ok := o.Text()
		if !ok {
			return
		}
		if family != "" {
			t.FontFamily = family
		}
		if size > 0 {
			t.FontSize = size
		}
	}
}

// WithColor sets the text colour or the icon tint.
func WithColor(c string) Option {
	return func(o *Object) {
		switch pl := o.Payload.(type) {
		case *Text:
			pl.Color = c
		case *Icon:
			pl.Color = c
		}
	}
}

// WithShape selects the shape kind.
func WithShape(k ShapeKind) Option {
	return func(o *Object) {
		if s, ok := o.Shape(); ok {
			s.ShapeKind = k
		}
	}
}

// WithFill sets shape fill and stroke colours. Empty values are ignored.
func WithFill(fill, stroke string) Option {
	return func(o *Object) {
		s, ok := o.Shape()
		if !ok {
			return
		}
		if fill != "" {
			s.FillColor = fill
		}
		if stroke != "" {
			s.StrokeColor = stroke
		}
	}
}

// WithImageSource sets the image data URI or path.
func WithImageSource(src string) Option {
	return func(o *Object) {
		if i, ok := o.Image(); ok {
			i.Source = src
		}
	}
}

// WithMarkup sets the vector markup of an icon.
func WithMarkup(markup string) Option {
	return func(o *Object) {
		if i, ok := o.Icon(); ok {
			i.Markup = markup
		}
	}
}
