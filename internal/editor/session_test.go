package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/interact"
	"github.com/example/designstudio/internal/viewport"
)

// runeMeasurer treats every rune as 10 units wide and a line as size*1.25 tall.
type runeMeasurer struct{}

func (runeMeasurer) MeasureText(t *design.Text) (geom.Size, error) {
	w := float64(len([]rune(t.Text))) * 10
	h := 0.0
	if t.Text != "" {
		h = t.FontSize * 1.25
	}
	return geom.Sz(math.Max(w+16, design.MinWidth), math.Max(h+8, design.MinHeight)), nil
}

var quiet = log.New(io.Discard, "", 0)

var tshirt = catalog.Product{
	ID:        "tshirt-front",
	Name:      "T-Shirt Front",
	Canvas:    geom.Sz(500, 600),
	PrintArea: geom.R(180, 200, 200, 250),
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	base := []Option{WithMeasurer(runeMeasurer{}), WithLogger(quiet), WithRand(func() float64 { return 0 })}
	s := New(append(base, opts...)...)
	t.Cleanup(s.Close)
	return s
}

func TestFreeSessionAddText(t *testing.T) {
	s := newSession(t, WithRand(func() float64 { return 0.5 }))
	s.Mount(geom.Sz(1000, 800), geom.Point{})
	if s.Mode() != ModeFree || s.Canvas() != catalog.FreeCanvas {
		t.Fatalf("unexpected mode %v canvas %v", s.Mode(), s.Canvas())
	}
	if s.Viewport().Zoom() != 1 {
		t.Fatalf("free mount should keep zoom 1, got %v", s.Viewport().Zoom())
	}
	o := s.AddText("")
	if o.ID != "text-1" || o.ZIndex != 1 {
		t.Fatalf("unexpected object %s z=%d", o.ID, o.ZIndex)
	}
	if o.X != 350 || o.Y != 300 {
		t.Fatalf("unexpected placement %v", o.Bounds())
	}
	if o.Width != 216 || o.Height != 28 {
		t.Fatalf("text should be measured, got %vx%v", o.Width, o.Height)
	}
	if o.Width > s.Canvas().W || o.Height > s.Canvas().H {
		t.Fatalf("text larger than canvas")
	}
	if s.Selected() != o.ID {
		t.Fatalf("new object should be selected")
	}
}

func TestProductPlacementInsidePrintArea(t *testing.T) {
	for _, r := range []float64{0, 0.5, 0.999} {
		s := newSession(t, WithProduct(tshirt), WithRand(func() float64 { return r }))
		o := s.AddShape(design.ShapeCircle)
		if o.X < 180 || o.Y < 200 || o.X > 280 || o.Y > 400 {
			t.Fatalf("rand %v: placed outside print area at %v", r, o.Bounds())
		}
	}
}

func TestProductDragClampsToPrintArea(t *testing.T) {
	s := newSession(t, WithProduct(tshirt))
	s.Mount(geom.Sz(600, 700), geom.Point{})
	if s.Viewport().Zoom() != 1 {
		t.Fatalf("expected full image zoom 1, got %v", s.Viewport().Zoom())
	}
	o := s.AddShape(design.ShapeRectangle)
	if o.Bounds() != geom.R(180, 200, 150, 150) {
		t.Fatalf("unexpected start %v", o.Bounds())
	}
	s.ClickCanvas()
	s.PointerDown(geom.Pt(200, 220), viewport.ButtonLeft, 0)
	if s.Gesture() != interact.Dragging || s.Selected() != o.ID {
		t.Fatalf("expected drag of %s, got %v on %q", o.ID, s.Gesture(), s.Selected())
	}
	s.PointerMove(geom.Pt(1020, 1020))
	if !s.Frame() {
		t.Fatalf("frame should apply the move")
	}
	got, _ := s.Object(o.ID)
	if got.X != 230 || got.Y != 300 {
		t.Fatalf("expected clamp to (230,300), got (%v,%v)", got.X, got.Y)
	}
	s.PointerUp()
	if s.Gesture() != interact.Idle {
		t.Fatalf("pointer up should end the drag")
	}
}

func TestFreeDragClampsToCanvas(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	o := s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)))
	s.PointerDown(geom.Pt(110, 110), viewport.ButtonLeft, 0)
	s.PointerMove(geom.Pt(-500, 2000))
	s.Frame()
	got, _ := s.Object(o.ID)
	if got.X != 0 || got.Y != 450 {
		t.Fatalf("expected (0,450), got (%v,%v)", got.X, got.Y)
	}
}

func TestResizeNorthWest(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	o := s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)), design.WithSize(geom.Sz(50, 50)))
	s.PointerDown(geom.Pt(100, 100), viewport.ButtonLeft, 0)
	if s.Gesture() != interact.Resizing {
		t.Fatalf("expected resize, got %v", s.Gesture())
	}
	s.PointerMove(geom.Pt(90, 90))
	s.Frame()
	s.PointerUp()
	got, _ := s.Object(o.ID)
	if got.Bounds() != geom.R(90, 90, 60, 60) {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
}

func TestResizeRespectsFloorUnderZoom(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Pt(20, 10))
	s.Viewport().SetView(2, geom.Pt(-100, -50))
	o := s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)))
	se := s.Viewport().Transform().CanvasToScreen(geom.Pt(250, 250))
	s.PointerDown(se, viewport.ButtonLeft, 0)
	s.PointerMove(s.Viewport().Transform().CanvasToScreen(geom.Pt(0, 0)))
	s.Frame()
	got, _ := s.Object(o.ID)
	if got.Width < design.MinWidth || got.Height < design.MinHeight {
		t.Fatalf("floor violated: %v", got.Bounds())
	}
	if got.X != 100 || got.Y != 100 {
		t.Fatalf("se resize must keep the origin, got %v", got.Bounds())
	}
}

func TestMovesAreCoalesced(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	o := s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)))
	s.ClickCanvas()
	s.PointerDown(geom.Pt(150, 150), viewport.ButtonLeft, 0)
	for _, p := range []geom.Point{{X: 160, Y: 160}, {X: 170, Y: 170}, {X: 250, Y: 200}} {
		s.PointerMove(p)
	}
	if !s.Frame() {
		t.Fatalf("expected one update")
	}
	if s.Frame() {
		t.Fatalf("second frame should have nothing to apply")
	}
	got, _ := s.Object(o.ID)
	if got.X != 200 || got.Y != 150 {
		t.Fatalf("latest move should win, got (%v,%v)", got.X, got.Y)
	}
	s.PointerMove(geom.Pt(300, 300))
	s.PointerUp()
	s.Frame()
	got, _ = s.Object(o.ID)
	if got.X != 200 || got.Y != 150 {
		t.Fatalf("release should drop the pending move, got (%v,%v)", got.X, got.Y)
	}
}

func TestClickEmptyCanvasClearsSelection(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)))
	s.PointerDown(geom.Pt(700, 550), viewport.ButtonLeft, 0)
	if s.Selected() != "" || s.Gesture() != interact.Idle {
		t.Fatalf("miss should clear selection, got %q %v", s.Selected(), s.Gesture())
	}
}

func TestPanAndWheel(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	s.AddShape(design.ShapeRectangle, design.At(geom.Pt(100, 100)))
	s.PointerDown(geom.Pt(120, 120), viewport.ButtonLeft, viewport.ModAlt)
	if !s.Panning() || s.Gesture() != interact.Idle {
		t.Fatalf("alt+left should pan")
	}
	s.PointerMove(geom.Pt(150, 100))
	s.PointerUp()
	if s.Viewport().Pan() != geom.Pt(30, -20) {
		t.Fatalf("unexpected pan %v", s.Viewport().Pan())
	}
	if s.Wheel(1, 0) {
		t.Fatalf("wheel without modifier must not zoom")
	}
	if !s.Wheel(-1, viewport.ModControl) || math.Abs(s.Viewport().Zoom()-1.1) > 1e-9 {
		t.Fatalf("ctrl wheel up should zoom to 1.1, got %v", s.Viewport().Zoom())
	}
}

func TestZoomPercentageReferences(t *testing.T) {
	s := newSession(t, WithProduct(tshirt))
	s.Mount(geom.Sz(1200, 900), geom.Point{})
	if got := s.ZoomPercentage(); got != 0 {
		t.Fatalf("mount should start at 0%%, got %d", got)
	}
	s.FitPrintArea()
	if got := s.ZoomPercentage(); got != 100 {
		t.Fatalf("print area fit should be 100%%, got %d", got)
	}
	s.ResetZoom()
	if got := s.ZoomPercentage(); got != 0 {
		t.Fatalf("reset should return to 0%%, got %d", got)
	}
	s.Resize(geom.Sz(700, 800))
	if got := s.ZoomPercentage(); got != 0 {
		t.Fatalf("resize should refit the full image, got %d", got)
	}
}

func TestUpdatePropertyRequiresSelection(t *testing.T) {
	s := newSession(t)
	a := s.AddText("Hi")
	b := s.AddShape(design.ShapeRectangle)
	if err := s.UpdateProperty(a.ID, design.PropText, "Hello there"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Object(a.ID)
	if tx, _ := got.Text(); tx.Text != "Hi" {
		t.Fatalf("unselected object must not change, got %q", tx.Text)
	}
	if err := s.UpdateProperty(b.ID, design.PropFillColor, "#ff0000"); err != nil {
		t.Fatal(err)
	}
	s.Select(a.ID)
	if err := s.UpdateSelected(design.PropText, "Hello there"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Object(a.ID)
	if got.Width != 126 {
		t.Fatalf("text should be re-measured, got width %v", got.Width)
	}
	if err := s.UpdateSelected(design.PropStrokeWidth, 3); !errors.Is(err, design.ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newSession(t)
	o := s.AddText("x")
	if !s.Delete(o.ID) {
		t.Fatalf("first delete should remove the object")
	}
	if s.Delete(o.ID) {
		t.Fatalf("second delete should be a no-op")
	}
	if s.Selected() != "" {
		t.Fatalf("selection should be cleared")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	tpl := c.Templates[0]
	s := newSession(t, WithTemplate(tpl))
	if s.Mode() != ModeTemplate || s.Name() != tpl.Name {
		t.Fatalf("unexpected session %v %q", s.Mode(), s.Name())
	}
	s.AddShape(design.ShapeRectangle)
	s.LoadTemplate(tpl)
	got := s.Objects()
	if len(got) != len(tpl.Objects) {
		t.Fatalf("expected %d objects, got %d", len(tpl.Objects), len(got))
	}
	for i := range got {
		if got[i].ID != tpl.Objects[i].ID {
			t.Fatalf("object %d: id %s, want %s", i, got[i].ID, tpl.Objects[i].ID)
		}
	}
	if s.Selected() != "" {
		t.Fatalf("load should clear selection")
	}
	next := s.AddText("")
	want := fmt.Sprintf("text-%d", len(tpl.Objects)+1)
	if next.ID != want {
		t.Fatalf("expected %s, got %s", want, next.ID)
	}
}

func TestInlineTextEdit(t *testing.T) {
	s := newSession(t)
	s.Mount(geom.Sz(800, 600), geom.Point{})
	o := s.AddText("Hi", design.At(geom.Pt(100, 100)))
	other := s.AddShape(design.ShapeRectangle, design.At(geom.Pt(400, 300)))
	if !s.DoubleClick(geom.Pt(110, 110)) {
		t.Fatalf("double click should start editing")
	}
	if id, text, ok := s.Editing(); !ok || id != o.ID || text != "Hi" {
		t.Fatalf("unexpected edit %q %q %v", id, text, ok)
	}
	s.Backspace()
	s.Type("ello!")
	if err := s.CommitEdit(); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Object(o.ID)
	if tx, _ := got.Text(); tx.Text != "Hello!" || got.Width != 76 {
		t.Fatalf("commit should update and re-measure, got %q %v", tx.Text, got.Width)
	}

	if err := s.BeginEdit(o.ID); err != nil {
		t.Fatal(err)
	}
	s.Type(" discarded")
	s.CancelEdit()
	got, _ = s.Object(o.ID)
	if tx, _ := got.Text(); tx.Text != "Hello!" {
		t.Fatalf("cancel should discard, got %q", tx.Text)
	}

	s.BeginEdit(o.ID)
	s.Select(other.ID)
	if _, _, ok := s.Editing(); ok {
		t.Fatalf("selecting another object should exit the edit")
	}
	if err := s.BeginEdit(other.ID); !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}
	if err := s.BeginEdit("text-99"); !errors.Is(err, ErrNoObject) {
		t.Fatalf("expected ErrNoObject, got %v", err)
	}
}

const star = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="currentColor" d="M12 2l3 7h7l-6 4 2 7-6-4-6 4 2-7-6-4h7z"/></svg>`

func TestAddIconSanitizes(t *testing.T) {
	s := newSession(t, WithSanitizedMarkup(true))
	o, err := s.AddIcon(`<svg xmlns="http://www.w3.org/2000/svg" onload="x()"><script>x()</script><path d="M0 0h1v1z"/></svg>`, "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	ic, _ := o.Icon()
	if strings.Contains(ic.Markup, "script") || strings.Contains(ic.Markup, "onload") {
		t.Fatalf("markup not sanitized: %s", ic.Markup)
	}
	if ic.Color != "#ff0000" || o.Width != 100 || o.Height != 100 {
		t.Fatalf("unexpected icon %+v %v", ic, o.Bounds())
	}
	if _, err := s.AddIcon("<html/>", ""); err == nil {
		t.Fatalf("non svg markup should be rejected")
	}
	if err := s.UpdateSelected(design.PropMarkup, "<div/>"); err == nil {
		t.Fatalf("update with non svg markup should be rejected")
	}

	trusted := newSession(t)
	o, err = trusted.AddIcon("<not svg", "")
	if err != nil {
		t.Fatalf("markup should be stored verbatim without sanitizing: %v", err)
	}
	if ic, _ := o.Icon(); ic.Markup != "<not svg" {
		t.Fatalf("unexpected markup %q", ic.Markup)
	}
}

func TestAddCatalogIcon(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	s := newSession(t)
	o, err := s.AddCatalogIcon(c, "Star", "#123456")
	if err != nil {
		t.Fatal(err)
	}
	if o.Kind() != design.KindIcon {
		t.Fatalf("unexpected kind %s", o.Kind())
	}
	if _, err := s.AddCatalogIcon(c, "Nope", ""); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAddImageFileAndPaste(t *testing.T) {
	s := newSession(t)
	path := filepath.Join(t.TempDir(), "red.png")
	if err := os.WriteFile(path, pngBytes(t, color.RGBA{255, 0, 0, 255}), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := s.AddImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	im, _ := o.Image()
	if !strings.HasPrefix(im.Source, "data:image/png;base64,") || o.Width != 150 {
		t.Fatalf("unexpected image object %v %.30s", o.Bounds(), im.Source)
	}
	if _, err := s.AddImageFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("missing file should fail")
	}

	prev := readClipboard
	t.Cleanup(func() { readClipboard = prev })
	readClipboard = func() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil }
	if o, err := s.PasteImage(); err != nil || o.Kind() != design.KindImage {
		t.Fatalf("paste failed: %v", err)
	}
	readClipboard = func() (image.Image, error) { return nil, errors.New("empty") }
	if _, err := s.PasteImage(); err == nil {
		t.Fatalf("expected paste error")
	}
}

func TestRenderPreviewKeepsLastOnFailure(t *testing.T) {
	s := newSession(t)
	s.AddShape(design.ShapeRectangle, design.At(geom.Pt(10, 10)))
	p, err := s.RenderPreview(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Image.Bounds().Dx() != 800 || p.Image.Bounds().Dy() != 600 {
		t.Fatalf("preview should be 1:1, got %v", p.Image.Bounds())
	}
	if got := p.Image.RGBAAt(700, 500); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("uncovered pixels should be white, got %v", got)
	}
	if !strings.HasPrefix(p.DataURI, "data:image/png;base64,") {
		t.Fatalf("unexpected data URI prefix")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.RenderPreview(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	last, ok := s.LastPreview()
	if !ok || last.Image != p.Image {
		t.Fatalf("previous preview should be kept")
	}
}

func TestRequestPreviewAsync(t *testing.T) {
	s := New(WithMeasurer(runeMeasurer{}), WithLogger(quiet))
	s.AddText("async")
	done := make(chan error, 1)
	s.RequestPreview(context.Background(), func(_ Preview, err error) { done <- err })
	s.AddShape(design.ShapeTriangle)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, ok := s.LastPreview(); !ok {
		t.Fatalf("async preview should be recorded")
	}
	s.RequestPreview(context.Background(), func(_ Preview, err error) { done <- err })
	if err := <-done; !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSaveAndCopyPreview(t *testing.T) {
	s := newSession(t, WithProduct(tshirt))
	dir := t.TempDir()
	path, err := s.SavePreview(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), "t-shirt-front-") {
		t.Fatalf("unexpected export name %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 500 || cfg.Height != 600 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}

	var copied image.Image
	prev := writeClipboard
	t.Cleanup(func() { writeClipboard = prev })
	writeClipboard = func(img image.Image) error { copied = img; return nil }
	if err := s.CopyPreview(context.Background()); err != nil {
		t.Fatal(err)
	}
	if copied == nil {
		t.Fatalf("preview not copied")
	}
}

func TestFitPrintAreaCentresInWindow(t *testing.T) {
	s := newSession(t, WithProduct(tshirt))
	origin := geom.Pt(viewport.FitPadding/2, viewport.FitPadding/2)
	s.Mount(geom.Sz(1200, 800), origin)
	s.FitPrintArea()
	mid := s.Viewport().Transform().CanvasToScreen(tshirt.PrintArea.Center())
	if math.Abs(mid.X-600) > 1e-9 || math.Abs(mid.Y-400) > 1e-9 {
		t.Fatalf("print area centre at %v, want (600,400)", mid)
	}
	if got := s.ZoomPercentage(); got != 100 {
		t.Fatalf("print area fit read %d%%", got)
	}
}

func TestZoomReferencesInSmallWindow(t *testing.T) {
	s := newSession(t, WithProduct(tshirt))
	s.Mount(geom.Sz(150, 150), geom.Pt(viewport.FitPadding/2, viewport.FitPadding/2))
	if z := s.Viewport().Zoom(); z != viewport.MinZoom {
		t.Fatalf("expected mount to clamp the full fit to %v, got %v", viewport.MinZoom, z)
	}
	if got := s.ZoomPercentage(); got != 0 {
		t.Fatalf("full image fit read %d%%", got)
	}
	s.FitPrintArea()
	if got := s.ZoomPercentage(); got != 100 {
		t.Fatalf("print area fit read %d%%", got)
	}
	s.FitFullImage()
	if got := s.ZoomPercentage(); got != 0 {
		t.Fatalf("full image fit read %d%% after a print area fit", got)
	}
}
