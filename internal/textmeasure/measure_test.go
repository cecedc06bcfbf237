package textmeasure

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/example/designstudio/internal/design"
)

func newMeasurer(t *testing.T) *Measurer {
	t.Helper()
	lib, err := Default()
	if err != nil {
		t.Fatalf("default library: %v", err)
	}
	return New(lib)
}

func text(s string, size float64) *design.Text {
	tx := design.DefaultPayload(design.KindText).(*design.Text)
	tx.Text = s
	tx.FontSize = size
	return tx
}

func TestEmptyTextYieldsFloor(t *testing.T) {
	m := newMeasurer(t)
	got, err := m.MeasureText(text("", 16))
	if err != nil {
		t.Fatal(err)
	}
	if got.W != design.MinWidth || got.H != design.MinHeight {
		t.Fatalf("expected floor 50x20, got %v", got)
	}
}

func TestPlaceholderBox(t *testing.T) {
	m := newMeasurer(t)
	tx := text("Double click to edit", 16)
	w, a, d, err := m.Extent(tx)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.MeasureText(tx)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != float64(w+PadX) || got.H != float64(a+d+PadY) {
		t.Fatalf("box %v does not match extent %d,%d+%d plus padding", got, w, a, d)
	}
	if got.W < design.MinWidth || got.H < design.MinHeight || got.W > 800 || got.H > 600 {
		t.Fatalf("placeholder box %v outside expected range", got)
	}
}

func TestShortTextIsFloored(t *testing.T) {
	m := newMeasurer(t)
	got, err := m.MeasureText(text("i", 8))
	if err != nil {
		t.Fatal(err)
	}
	if got.W != design.MinWidth || got.H != design.MinHeight {
		t.Fatalf("expected floor, got %v", got)
	}
}

func TestFontAttributesChangeExtent(t *testing.T) {
	m := newMeasurer(t)
	base, _ := m.MeasureText(text("Headline", 16))
	big, _ := m.MeasureText(text("Headline", 32))
	if big.W <= base.W || big.H <= base.H {
		t.Fatalf("32px box %v should exceed 16px box %v", big, base)
	}
	bold := text("Headline", 16)
	bold.FontWeight = "700"
	bb, _ := m.MeasureText(bold)
	if bb.W <= base.W {
		t.Fatalf("bold box %v should be wider than %v", bb, base)
	}
}

func TestCourierIsMonospaced(t *testing.T) {
	m := newMeasurer(t)
	narrow := text("iiiiii", 16)
	wide := text("WWWWWW", 16)
	narrow.FontFamily, wide.FontFamily = "Courier New", "Courier New"
	n, _, _, _ := m.Extent(narrow)
	w, _, _, _ := m.Extent(wide)
	if n != w {
		t.Fatalf("monospaced widths differ: %d vs %d", n, w)
	}
	narrow.FontFamily, wide.FontFamily = "Arial", "Arial"
	n, _, _, _ = m.Extent(narrow)
	w, _, _, _ = m.Extent(wide)
	if n >= w {
		t.Fatalf("proportional face should make iiiiii narrower than WWWWWW")
	}
}

func TestStyleKeywords(t *testing.T) {
	for _, w := range []string{"bold", "600", "900", "Bolder"} {
		if !IsBold(w) {
			t.Errorf("%q should be bold", w)
		}
	}
	for _, w := range []string{"normal", "400", "", "light"} {
		if IsBold(w) {
			t.Errorf("%q should not be bold", w)
		}
	}
	if !IsItalic("oblique") || IsItalic("normal") {
		t.Error("unexpected italic classification")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := NewLibrary()
	if err != nil {
		t.Fatal(err)
	}
	n, err := lib.LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 font, got %d", n)
	}
	if _, err := lib.LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestNilLibrary(t *testing.T) {
	m := New(nil)
	if _, err := m.MeasureText(text("x", 12)); err == nil {
		t.Fatal("expected error without a font library")
	}
}

func TestHas(t *testing.T) {
	lib, err := NewLibrary()
	if err != nil {
		t.Fatal(err)
	}
	for family, want := range map[string]bool{
		"Go":        true,
		"go mono":   true,
		"Arial":     false,
		"monospace": false,
	} {
		if got := lib.Has(family); got != want {
			t.Errorf("Has(%q) = %v, want %v", family, got, want)
		}
	}
}
