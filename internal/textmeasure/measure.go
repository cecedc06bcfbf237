package textmeasure

import (
	"errors"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
)

// Padding added around the measured content box.
const (
	PadX = 16
	PadY = 8
)

// DefaultSize is used when a text payload carries no usable font size.
const DefaultSize = 16

var errNoFont = errors.New("no font available")

type faceKey struct {
	font *opentype.Font
	size float64
}

// Measurer measures and supplies faces for text payloads. Faces are cached
// per font and size. A Measurer is safe for concurrent measuring, but faces
// returned by Face must only be used by one goroutine at a time.
type Measurer struct {
	lib   *Library
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// New returns a measurer backed by lib.
func New(lib *Library) *Measurer {
	return &Measurer{lib: lib, faces: map[faceKey]font.Face{}}
}

// Face returns the font face that renders t.
func (m *Measurer) Face(t *design.Text) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(t)
}

func (m *Measurer) face(t *design.Text) (font.Face, error) {
	if m.lib == nil {
		return nil, errNoFont
	}
	f := m.lib.Lookup(t.FontFamily, t.FontWeight, t.FontStyle)
	if f == nil {
		return nil, errNoFont
	}
	size := t.FontSize
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		size = DefaultSize
	}
	key := faceKey{f, size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// Extent returns the raw single-line advance width and the ascent and
// descent of the face selected by t.
func (m *Measurer) Extent(t *design.Text) (width, ascent, descent int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.face(t)
	if err != nil {
		return 0, 0, 0, err
	}
	width = font.MeasureString(face, t.Text).Ceil()
	metrics := face.Metrics()
	return width, metrics.Ascent.Ceil(), metrics.Descent.Ceil(), nil
}

// MeasureText returns the auto-size box of t: the content extent plus
// padding, floored at the minimum object size. Empty text yields the floor.
func (m *Measurer) MeasureText(t *design.Text) (geom.Size, error) {
	if t.Text == "" {
		return geom.Sz(design.MinWidth, design.MinHeight), nil
	}
	w, a, d, err := m.Extent(t)
	if err != nil {
		return geom.Size{}, err
	}
	return Box(float64(w), float64(a+d)), nil
}

// Box pads a content extent and applies the minimum object size.
func Box(w, h float64) geom.Size {
	return geom.Sz(math.Max(w+PadX, design.MinWidth), math.Max(h+PadY, design.MinHeight))
}
