package appstate

import (
	"context"
	"image"
	"image/color"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/theme"
	"github.com/example/designstudio/internal/viewport"
)

func TestActionFor(t *testing.T) {
	cases := []struct {
		ev   key.Event
		want string
	}{
		{key.Event{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}, "export"},
		{key.Event{Rune: 'T', Code: key.CodeT, Modifiers: key.ModShift}, "text"},
		{key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}, "zoomin"},
		{key.Event{Rune: -1, Code: key.CodeReturnEnter}, "edit"},
		{key.Event{Rune: '\r', Code: key.CodeReturnEnter}, "edit"},
		{key.Event{Rune: -1, Code: key.CodeDeleteForward}, "delete"},
		{key.Event{Rune: 'p', Code: key.CodeP}, "fitprint"},
		{key.Event{Rune: 'p', Code: key.CodeP, Modifiers: key.ModControl}, "preview"},
	}
	for _, c := range cases {
		got, ok := actionFor(c.ev)
		if !ok || got != c.want {
			t.Errorf("%+v: got %q (%v), want %q", c.ev, got, ok, c.want)
		}
	}
	if a, ok := actionFor(key.Event{Rune: 'z', Code: key.CodeZ}); ok {
		t.Errorf("unbound key matched %q", a)
	}
}

func TestShortcutsHaveHandlers(t *testing.T) {
	a := New(WithSession(editor.New(editor.WithLogger(log.New(io.Discard, "", 0)))))
	actions := a.actions(a.Session, nil, func(string) {})
	for _, sc := range Shortcuts {
		if sc.Action == "quit" {
			continue
		}
		if _, ok := actions[sc.Action]; !ok {
			t.Errorf("no handler for %s", sc.Action)
		}
	}
}

func TestInputMapping(t *testing.T) {
	if buttonOf(mouse.ButtonMiddle) != viewport.ButtonMiddle || buttonOf(mouse.ButtonWheelUp) != viewport.ButtonNone {
		t.Fatal("unexpected button mapping")
	}
	m := modsOf(key.ModControl | key.ModAlt)
	if m&viewport.ModControl == 0 || m&viewport.ModAlt == 0 || m&viewport.ModShift != 0 {
		t.Fatalf("unexpected modifiers %b", m)
	}
	if wheelDelta(mouse.Event{Button: mouse.ButtonWheelUp}) != -1 || wheelDelta(mouse.Event{Button: mouse.ButtonLeft}) != 0 {
		t.Fatal("unexpected wheel delta")
	}
}

func TestClickTracker(t *testing.T) {
	var c clickTracker
	now := time.Now()
	if c.press(geom.Pt(10, 10), now) {
		t.Fatal("first press is not a double click")
	}
	if !c.press(geom.Pt(12, 11), now.Add(200*time.Millisecond)) {
		t.Fatal("expected double click")
	}
	if c.press(geom.Pt(12, 11), now.Add(300*time.Millisecond)) {
		t.Fatal("a third press starts over")
	}
	if c.press(geom.Pt(40, 11), now.Add(400*time.Millisecond)) {
		t.Fatal("distant press is not a double click")
	}
	if c.press(geom.Pt(40, 11), now.Add(time.Second)) {
		t.Fatal("slow press is not a double click")
	}
}

func newProductSession(t *testing.T) *editor.Session {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	p, err := c.Product("tshirt-front")
	if err != nil {
		t.Fatal(err)
	}
	p.Background = ""
	s := editor.New(editor.WithProduct(p), editor.WithLogger(log.New(io.Discard, "", 0)),
		editor.WithRand(func() float64 { return 0 }))
	t.Cleanup(s.Close)
	return s
}

func TestSnapshotShowsEditBuffer(t *testing.T) {
	s := newProductSession(t)
	o := s.AddText("Hi")
	if err := s.BeginEdit(o.ID); err != nil {
		t.Fatal(err)
	}
	s.Type(" there")
	st := Snapshot(s, theme.Default(), 800, 600)
	tx, _ := st.Scene.Objects[0].Text()
	if tx.Text != "Hi there|" {
		t.Fatalf("unexpected edit text %q", tx.Text)
	}
	if got, _ := s.Object(o.ID); got.Payload.(*design.Text).Text != "Hi" {
		t.Fatal("snapshot must not change the session")
	}
	if st.View.PrintArea == nil || st.View.Selected == nil {
		t.Fatalf("expected print area and selection in view")
	}
	if !strings.Contains(st.Status, "editing "+o.ID) {
		t.Fatalf("unexpected status %q", st.Status)
	}
}

func TestDrawScene(t *testing.T) {
	s := newProductSession(t)
	s.Mount(container(800, 700), canvasOrigin)
	s.AddShape(design.ShapeRectangle, design.WithFill("#ff0000", "#ff0000"))
	th := theme.Default()
	st := Snapshot(s, th, 800, 700)
	dst := image.NewRGBA(image.Rect(0, 0, 800, 700))
	if err := DrawScene(context.Background(), dst, st); err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(790, 699); got != th.StatusBackground {
		t.Errorf("status bar colour %v, want %v", got, th.StatusBackground)
	}
	inside := s.Viewport().Transform().CanvasToScreen(geom.Pt(250, 270))
	if got := dst.RGBAAt(int(inside.X), int(inside.Y)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("shape pixel %v, want red", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := DrawScene(ctx, dst, st); err == nil {
		t.Error("cancelled frame should stop")
	}
}

func TestStatusText(t *testing.T) {
	s := newProductSession(t)
	s.Mount(container(1024, 768), canvasOrigin)
	if got := statusText(s); !strings.Contains(got, "zoom 0%") || !strings.Contains(got, "[product]") {
		t.Fatalf("unexpected status %q", got)
	}
	o := s.AddShape(design.ShapeCircle)
	if got := statusText(s); !strings.Contains(got, o.ID+" 150x150") {
		t.Fatalf("selection missing from %q", got)
	}
}

func TestRenderWindow(t *testing.T) {
	s := newProductSession(t)
	img, err := RenderWindow(context.Background(), s, nil, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if !s.Mounted() {
		t.Fatal("session should be mounted")
	}
	if got := img.RGBAAt(630, 479); got != theme.Default().StatusBackground {
		t.Errorf("status bar colour %v", got)
	}
	if _, err := RenderWindow(context.Background(), s, nil, 100, statusHeight); err == nil {
		t.Error("expected error for a window without canvas room")
	}
}
