// Package design holds the object model of a design: the placed objects, their
// variant payloads and the ordered store that mutates them.
package design

import (
	"fmt"

	"github.com/example/designstudio/internal/geom"
)

// Minimum box dimensions after any resize.
const (
	MinWidth  = 50
	MinHeight = 20
)

// Kind discriminates the object variants.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindShape Kind = "shape"
	KindIcon  Kind = "svg"
)

// ParseKind accepts the names used by catalogs and the CLI.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindText, KindImage, KindShape, KindIcon:
		return Kind(s), nil
	case "icon", "vector":
		return KindIcon, nil
	}
	return "", fmt.Errorf("unknown object kind %q", s)
}

// ShapeKind selects the outline drawn by a shape object.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeTriangle  ShapeKind = "triangle"
)

// Payload is the variant specific part of an object. The set of
// implementations is closed: *Text, *Image, *Shape and *Icon.
type Payload interface {
	Kind() Kind
	clone() Payload
}

// Text styles a single line of text.
type Text struct {
	Text           string
	FontSize       float64
	FontFamily     string
	FontWeight     string
	FontStyle      string
	TextDecoration string
	Color          string
	TextAlign      string
}

// Image references a bitmap by data URI or local path.
type Image struct {
	Source string
}

// Shape is a filled and stroked primitive.
type Shape struct {
	ShapeKind    ShapeKind
	FillColor    string
	StrokeColor  string
	StrokeWidth  float64
	BorderRadius float64
}

// Icon is vector markup tinted with Color wherever it says currentColor.
type Icon struct {
	Markup string
	Color  string
}

func (*Text) Kind() Kind  { return KindText }
func (*Image) Kind() Kind { return KindImage }
func (*Shape) Kind() Kind { return KindShape }
func (*Icon) Kind() Kind  { return KindIcon }

func (t *Text) clone() Payload  { c := *t; return &c }
func (i *Image) clone() Payload { c := *i; return &c }
func (s *Shape) clone() Payload { c := *s; return &c }
func (i *Icon) clone() Payload  { c := *i; return &c }

// Object is one unit placed on the canvas. Rotation is cosmetic and never
// takes part in hit testing, dragging or resizing.
type Object struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	Opacity  float64
	ZIndex   int
	Payload  Payload
}

// Kind returns the payload discriminant.
func (o *Object) Kind() Kind {
	if o.Payload == nil {
		return ""
	}
	return o.Payload.Kind()
}

// Bounds returns the unrotated box.
func (o *Object) Bounds() geom.Rect { return geom.R(o.X, o.Y, o.Width, o.Height) }

// SetBounds replaces position and size.
func (o *Object) SetBounds(r geom.Rect) {
	o.X, o.Y, o.Width, o.Height = r.X, r.Y, r.W, r.H
}

// Text returns the text payload if the object is a text object.
func (o *Object) Text() (*Text, bool) { t, ok := o.Payload.(*Text); return t, ok }

// Image returns the image payload if present.
func (o *Object) Image() (*Image, bool) { i, ok := o.Payload.(*Image); return i, ok }

// Shape returns the shape payload if present.
func (o *Object) Shape() (*Shape, bool) { s, ok := o.Payload.(*Shape); return s, ok }

// Icon returns the icon payload if present.
func (o *Object) Icon() (*Icon, bool) { i, ok := o.Payload.(*Icon); return i, ok }

// Clone returns a deep copy.
func (o *Object) Clone() Object {
	c := *o
	if c.Payload != nil {
		c.Payload = c.Payload.clone()
	}
	return c
}

// CloneAll deep copies a slice of objects.
func CloneAll(objs []Object) []Object {
	if objs == nil {
		return nil
	}
	out := make([]Object, len(objs))
	for i := range objs {
		out[i] = objs[i].Clone()
	}
	return out
}

// DefaultPayload returns the payload a freshly added object of kind k gets.
func DefaultPayload(k Kind) Payload {
	switch k {
	case KindText:
		return &Text{
			Text:           "Double click to edit",
			FontSize:       16,
			FontFamily:     "Arial",
			FontWeight:     "normal",
			FontStyle:      "normal",
			TextDecoration: "none",
			Color:          "#000000",
			TextAlign:      "left",
		}
	case KindShape:
		return &Shape{
			ShapeKind:    ShapeRectangle,
			FillColor:    "#3b82f6",
			StrokeColor:  "#1d4ed8",
			StrokeWidth:  2,
			BorderRadius: 0,
		}
	case KindImage:
		return &Image{}
	case KindIcon:
		return &Icon{Color: "#000000"}
	}
	return nil
}

// DefaultSize is the box an added object starts with before measurement or
// overrides.
func DefaultSize(k Kind) geom.Size {
	switch k {
	case KindText:
		return geom.Sz(200, 50)
	case KindIcon:
		return geom.Sz(100, 100)
	}
	return geom.Sz(150, 150)
}
