package editor

import (
	"fmt"
	"os"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/clipboard"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/icon"
	"github.com/example/designstudio/internal/render"
)

// readClipboard is replaced in tests.
var readClipboard = clipboard.ReadImage

// placement returns a random default position: anywhere on a free canvas,
// inside the print area on a product.
func (s *Session) placement() geom.Point {
	rx, ry := s.rand(), s.rand()
	if pa, ok := s.view.PrintArea(); ok {
		return geom.Pt(pa.X+rx*(pa.W-100), pa.Y+ry*(pa.H-50))
	}
	return geom.Pt(rx*(s.canvas.W-200)+50, ry*(s.canvas.H-100)+50)
}

// AddObject places a new object of kind k with its variant defaults, then
// opts, and selects it.
func (s *Session) AddObject(k design.Kind, opts ...design.Option) design.Object {
	o := s.store.Add(k, s.placement(), opts...)
	s.exitEditUnless(o.ID)
	s.logger.Printf("session %s: added %s at %v", s.shortID(), o.ID, o.Bounds())
	return o
}

// AddText adds a text object. An empty string keeps the placeholder.
func (s *Session) AddText(text string, opts ...design.Option) design.Object {
	if text != "" {
		opts = append([]design.Option{design.WithText(text)}, opts...)
	}
	return s.AddObject(design.KindText, opts...)
}

// AddShape adds a shape of kind k.
func (s *Session) AddShape(k design.ShapeKind, opts ...design.Option) design.Object {
	return s.AddObject(design.KindShape, append([]design.Option{design.WithShape(k)}, opts...)...)
}

// AddIcon adds a vector icon tinted with col. Markup is stored verbatim
// unless the session sanitizes vectors.
func (s *Session) AddIcon(markup, col string, opts ...design.Option) (design.Object, error) {
	markup, err := s.acceptMarkup(markup)
	if err != nil {
		return design.Object{}, err
	}
	base := []design.Option{design.WithMarkup(markup)}
	if col != "" {
		base = append(base, design.WithColor(col))
	}
	return s.AddObject(design.KindIcon, append(base, opts...)...), nil
}

// AddCatalogIcon adds a named icon from c.
func (s *Session) AddCatalogIcon(c *catalog.Catalog, name, col string) (design.Object, error) {
	ic, err := c.Icon(name)
	if err != nil {
		return design.Object{}, err
	}
	return s.AddIcon(ic.Markup, col)
}

// AddImage adds an image object showing src, a data URI or local path.
func (s *Session) AddImage(src string, opts ...design.Option) design.Object {
	return s.AddObject(design.KindImage, append([]design.Option{design.WithImageSource(src)}, opts...)...)
}

// AddImageFile reads path fully and adds it as a data URI image.
func (s *Session) AddImageFile(path string, opts ...design.Option) (design.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return design.Object{}, fmt.Errorf("read image: %w", err)
	}
	return s.AddImage(render.EncodeDataURI(data), opts...), nil
}

// PasteImage adds the clipboard image as a new image object.
func (s *Session) PasteImage() (design.Object, error) {
	img, err := readClipboard()
	if err != nil {
		return design.Object{}, fmt.Errorf("paste image: %w", err)
	}
	uri, err := render.PNGDataURI(img)
	if err != nil {
		return design.Object{}, fmt.Errorf("paste image: %w", err)
	}
	return s.AddImage(uri), nil
}

// UpdateProperty changes one property of the selected object. Requests for
// any other id are ignored.
func (s *Session) UpdateProperty(id string, p design.Property, value any) error {
	if id == "" || id != s.store.Selected() {
		return nil
	}
	if p == design.PropMarkup {
		if markup, ok := value.(string); ok {
			clean, err := s.acceptMarkup(markup)
			if err != nil {
				return err
			}
			value = clean
		}
	}
	return s.store.UpdateProperty(id, p, value)
}

// UpdateSelected changes one property of the selected object, if any.
func (s *Session) UpdateSelected(p design.Property, value any) error {
	return s.UpdateProperty(s.store.Selected(), p, value)
}

// Delete removes id. Deleting a missing id is a no-op.
func (s *Session) Delete(id string) bool {
	if s.edit != nil && s.edit.id == id {
		s.edit = nil
	}
	if s.machine.Target() == id {
		s.machine.End()
	}
	return s.store.Delete(id)
}

// DeleteSelected removes the selected object.
func (s *Session) DeleteSelected() bool { return s.Delete(s.store.Selected()) }

// Select makes id the selection and leaves any text edit on another object.
func (s *Session) Select(id string) {
	s.exitEditUnless(id)
	s.store.Select(id)
}

// ClickCanvas handles a press on empty canvas: nothing stays selected or
// edited.
func (s *Session) ClickCanvas() {
	s.edit = nil
	s.store.ClearSelection()
}

// LoadTemplate replaces every object with the template's, as authored.
func (s *Session) LoadTemplate(t catalog.Template) {
	s.edit = nil
	s.machine.End()
	s.store.Load(t.Objects)
	s.logger.Printf("session %s: loaded template %s with %d objects", s.shortID(), t.ID, len(t.Objects))
}

func (s *Session) acceptMarkup(markup string) (string, error) {
	if !s.sanitize {
		return markup, nil
	}
	return icon.Sanitize(markup)
}

func (s *Session) shortID() string {
	if len(s.id) > 8 {
		return s.id[:8]
	}
	return s.id
}
