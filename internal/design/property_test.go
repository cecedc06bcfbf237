package design

import (
	"errors"
	"math"
	"testing"
)

func TestSetShapeType(t *testing.T) {
	o := Object{Payload: DefaultPayload(KindShape)}
	if err := o.Set(PropShapeType, "triangle"); err != nil {
		t.Fatal(err)
	}
	if err := o.Set(PropShapeType, ShapeCircle); err != nil {
		t.Fatal(err)
	}
	if s, _ := o.Shape(); s.ShapeKind != ShapeCircle {
		t.Fatalf("got %s", s.ShapeKind)
	}
	if err := o.Set(PropShapeType, "hexagon"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSetNumericInputs(t *testing.T) {
	o := Object{Payload: DefaultPayload(KindImage)}
	for _, v := range []any{12, int64(12), float32(12), "12", 12.0} {
		o.X = 0
		if err := o.Set(PropX, v); err != nil {
			t.Fatalf("%T: %v", v, err)
		}
		if o.X != 12 {
			t.Fatalf("%T: x=%v", v, o.X)
		}
	}
	if err := o.Set(PropY, math.NaN()); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("NaN should be rejected, got %v", err)
	}
	if err := o.Set(PropOpacity, -3); err != nil || o.Opacity != 0 {
		t.Fatalf("opacity should clamp to 0, got %v (%v)", o.Opacity, err)
	}
}

func TestIconProperties(t *testing.T) {
	o := Object{Payload: DefaultPayload(KindIcon)}
	if err := o.Set(PropMarkup, `<svg viewBox="0 0 24 24"/>`); err != nil {
		t.Fatal(err)
	}
	if err := o.Set(PropColor, "#ff0000"); err != nil {
		t.Fatal(err)
	}
	ic, _ := o.Icon()
	if ic.Color != "#ff0000" || ic.Markup == "" {
		t.Fatalf("unexpected icon %+v", ic)
	}
	if err := o.Set(PropText, "x"); !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"text": KindText, "svg": KindIcon, "icon": KindIcon, "shape": KindShape, "image": KindImage} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("video"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRemeasures(t *testing.T) {
	for _, p := range []Property{PropText, PropFontSize, PropFontFamily, PropFontWeight, PropFontStyle} {
		if !p.Remeasures() {
			t.Fatalf("%s should re-measure", p)
		}
	}
	for _, p := range []Property{PropColor, PropTextAlign, PropTextDecoration, PropWidth} {
		if p.Remeasures() {
			t.Fatalf("%s should not re-measure", p)
		}
	}
}
