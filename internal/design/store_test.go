package design

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/example/designstudio/internal/geom"
)

// charMeasurer treats every rune as 10 units wide and a line as size*1.25 tall.
type charMeasurer struct {
	calls int
	err   error
}

func (m *charMeasurer) MeasureText(t *Text) (geom.Size, error) {
	m.calls++
	if m.err != nil {
		return geom.Size{}, m.err
	}
	w := float64(len([]rune(t.Text))) * 10
	h := 0.0
	if t.Text != "" {
		h = t.FontSize * 1.25
	}
	if t.FontWeight == "bold" {
		w *= 1.1
	}
	return geom.Sz(math.Max(w+16, MinWidth), math.Max(h+8, MinHeight)), nil
}

func TestAddAssignsIDsAndSelection(t *testing.T) {
	s := NewStore(&charMeasurer{}, nil)
	a := s.Add(KindShape, geom.Pt(10, 20))
	b := s.Add(KindIcon, geom.Pt(0, 0))
	if a.ID != "shape-1" || a.ZIndex != 1 {
		t.Fatalf("unexpected first object %s z=%d", a.ID, a.ZIndex)
	}
	if b.ID != "svg-2" || b.ZIndex != 2 {
		t.Fatalf("unexpected second object %s z=%d", b.ID, b.ZIndex)
	}
	if s.Selected() != "svg-2" {
		t.Fatalf("newest object should be selected, got %q", s.Selected())
	}
	if b.Width != 100 || b.Height != 100 {
		t.Fatalf("icon default size 100x100, got %vx%v", b.Width, b.Height)
	}
	sh, _ := a.Shape()
	if sh.ShapeKind != ShapeRectangle || sh.FillColor != "#3b82f6" || sh.StrokeColor != "#1d4ed8" || sh.StrokeWidth != 2 || sh.BorderRadius != 0 {
		t.Fatalf("unexpected shape defaults %+v", sh)
	}
}

func TestAddTextIsMeasured(t *testing.T) {
	m := &charMeasurer{}
	s := NewStore(m, nil)
	o := s.Add(KindText, geom.Pt(0, 0))
	tx, _ := o.Text()
	if tx.Text != "Double click to edit" || tx.FontSize != 16 || tx.FontFamily != "Arial" || tx.Color != "#000000" || tx.TextAlign != "left" {
		t.Fatalf("unexpected text defaults %+v", tx)
	}
	if o.Width != 216 || o.Height != 28 {
		t.Fatalf("expected measured 216x28, got %vx%v", o.Width, o.Height)
	}
}

func TestOverridesApplyAfterDefaults(t *testing.T) {
	s := NewStore(nil, nil)
	o := s.Add(KindShape, geom.Pt(0, 0), WithShape(ShapeCircle), WithSize(geom.Sz(80, 60)))
	sh, _ := o.Shape()
	if sh.ShapeKind != ShapeCircle {
		t.Fatalf("override lost, got %s", sh.ShapeKind)
	}
	if o.Width != 80 || o.Height != 60 {
		t.Fatalf("size override lost: %vx%v", o.Width, o.Height)
	}
}

func TestUpdatePropertyRemeasuresText(t *testing.T) {
	m := &charMeasurer{}
	s := NewStore(m, nil)
	o := s.Add(KindText, geom.Pt(0, 0))
	for _, tc := range []struct {
		p     Property
		value any
	}{
		{PropText, "Hi"},
		{PropFontSize, 40},
		{PropFontFamily, "Georgia"},
		{PropFontWeight, "bold"},
		{PropFontStyle, "italic"},
	} {
		before := m.calls
		if err := s.UpdateProperty(o.ID, tc.p, tc.value); err != nil {
			t.Fatalf("%s: %v", tc.p, err)
		}
		if m.calls != before+1 {
			t.Fatalf("%s should trigger measurement", tc.p)
		}
	}
	got, _ := s.Get(o.ID)
	tx, _ := got.Text()
	want, _ := m.MeasureText(tx)
	if got.Width != want.W || got.Height != want.H {
		t.Fatalf("box %vx%v, want %v", got.Width, got.Height, want)
	}

	before := m.calls
	if err := s.UpdateProperty(o.ID, PropColor, "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateProperty(o.ID, PropTextDecoration, "underline"); err != nil {
		t.Fatal(err)
	}
	if m.calls != before {
		t.Fatal("colour and decoration must not re-measure")
	}
}

func TestMeasurementFallback(t *testing.T) {
	m := &charMeasurer{}
	s := NewStore(m, nil)
	o := s.Add(KindText, geom.Pt(0, 0))
	m.err = errors.New("no measuring surface")
	if err := s.UpdateProperty(o.ID, PropText, "a much longer string than before"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(o.ID)
	if got.Width != o.Width || got.Height != o.Height {
		t.Fatalf("failed measurement should keep the old box, got %vx%v", got.Width, got.Height)
	}

	noMeasure := NewStore(nil, nil)
	txt := noMeasure.Add(KindText, geom.Pt(0, 0))
	if txt.Width != 200 || txt.Height != 50 {
		t.Fatalf("unmeasured text keeps default box, got %vx%v", txt.Width, txt.Height)
	}
}

func TestUpdatePropertyErrors(t *testing.T) {
	s := NewStore(nil, nil)
	o := s.Add(KindImage, geom.Pt(0, 0))
	if err := s.UpdateProperty(o.ID, PropFontSize, 12); !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
	if err := s.UpdateProperty(o.ID, PropOpacity, "lots"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if err := s.UpdateProperty("nope-9", PropOpacity, 0.5); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got %v", err)
	}
	if err := s.UpdateProperty(o.ID, PropOpacity, 7); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(o.ID)
	if got.Opacity != 1 {
		t.Fatalf("opacity should clamp to 1, got %v", got.Opacity)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewStore(nil, nil)
	o := s.Add(KindShape, geom.Pt(0, 0))
	if !s.Delete(o.ID) {
		t.Fatal("first delete should remove the object")
	}
	if s.Selected() != "" {
		t.Fatal("selection should clear when the selected object is deleted")
	}
	if s.Delete(o.ID) {
		t.Fatal("second delete should be a no-op")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestDeleteKeepsOtherSelection(t *testing.T) {
	s := NewStore(nil, nil)
	a := s.Add(KindShape, geom.Pt(0, 0))
	b := s.Add(KindShape, geom.Pt(0, 0))
	s.Delete(a.ID)
	if s.Selected() != b.ID {
		t.Fatalf("selection of %s should survive, got %q", b.ID, s.Selected())
	}
}

func TestLoadReplacesState(t *testing.T) {
	s := NewStore(nil, nil)
	s.Add(KindShape, geom.Pt(0, 0))
	s.Add(KindShape, geom.Pt(0, 0))
	s.Add(KindShape, geom.Pt(0, 0))

	tmpl := []Object{
		{ID: "bg-1", Width: 400, Height: 300, Opacity: 1, ZIndex: 1, Payload: &Shape{ShapeKind: ShapeRectangle, FillColor: "#fef3c7"}},
		{ID: "text-1", X: 100, Y: 120, Width: 200, Height: 60, Opacity: 1, ZIndex: 3, Payload: &Text{Text: "Happy Birthday!", FontSize: 24}},
	}
	s.Load(tmpl)
	if !reflect.DeepEqual(s.Objects(), tmpl) {
		t.Fatalf("loaded objects differ from template")
	}
	if s.Selected() != "" {
		t.Fatal("load should clear the selection")
	}
	next := s.Add(KindShape, geom.Pt(0, 0))
	if next.ID != "shape-3" {
		t.Fatalf("expected shape-3 after loading two objects, got %s", next.ID)
	}

	// The store must not alias the template.
	tx, _ := tmpl[1].Text()
	tx.Text = "changed"
	got, _ := s.Get("text-1")
	if gt, _ := got.Text(); gt.Text != "Happy Birthday!" {
		t.Fatal("store aliases template payloads")
	}
}

func TestPaintedOrder(t *testing.T) {
	s := NewStore(nil, nil)
	s.Load([]Object{
		{ID: "c", ZIndex: 3, Payload: &Image{}},
		{ID: "a", ZIndex: 1, Payload: &Image{}},
		{ID: "b", ZIndex: 1, Payload: &Image{}},
	})
	var ids []string
	for _, o := range s.Painted() {
		ids = append(ids, o.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected paint order %v", ids)
	}
}

func TestTextMinSize(t *testing.T) {
	m := &charMeasurer{}
	s := NewStore(m, nil)
	o := s.Add(KindText, geom.Pt(0, 0))
	if err := s.UpdateProperty(o.ID, PropWidth, 10); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(o.ID)
	if got.Width != 216 {
		t.Fatalf("text width should not drop below its measured box, got %v", got.Width)
	}
	shape := s.Add(KindShape, geom.Pt(0, 0))
	if s.MinSize(shape.ID) != geom.Sz(MinWidth, MinHeight) {
		t.Fatalf("shape floor should be the hard minimum")
	}
}
