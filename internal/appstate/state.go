package appstate

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/interact"
)

// messageEvent carries a status message from a background task to the
// event loop.
type messageEvent string

// Main runs the editor window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	sess := a.Session
	width, height := a.Size.X, a.Size.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height,
		Title:  ProgramTitle + " - " + sess.Name(),
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()
	defer sess.Close()

	sess.Mount(container(width, height), canvasOrigin)

	var message string
	var messageUntil time.Time
	setMessage := func(msg string) {
		message = msg
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	// Frames go through a one slot mailbox: a frame that has not started
	// painting is replaced by the newer one.
	frames := interact.NewLatest[PaintState]()
	var paintCancel context.CancelFunc
	var dropCount int
	var paintMu sync.Mutex
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case st := <-frames.C():
				ctx, cancel := context.WithCancel(context.Background())
				paintMu.Lock()
				paintCancel = cancel
				paintMu.Unlock()
				drawFrame(ctx, s, w, st)
				paintMu.Lock()
				paintCancel = nil
				if ctx.Err() == nil {
					dropCount = 0
				}
				paintMu.Unlock()
				cancel()
			case <-done:
				return
			}
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	actions := a.actions(sess, w, setMessage)
	var clicks clickTracker

	for {
		switch e := w.NextEvent().(type) {
		case messageEvent:
			setMessage(string(e))
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			sess.Resize(container(width, height))
			w.Send(paint.Event{})
		case paint.Event:
			sess.Frame()
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := Snapshot(sess, a.Theme, width, height)
			st.Message, st.MessageUntil = message, messageUntil
			frames.Offer(st)
		case mouse.Event:
			p := geom.Pt(float64(e.X), float64(e.Y))
			if d := wheelDelta(e); d != 0 {
				if sess.Wheel(d, modsOf(e.Modifiers)) {
					w.Send(paint.Event{})
				}
				continue
			}
			switch e.Direction {
			case mouse.DirPress:
				if int(e.Y) >= height-statusHeight {
					continue
				}
				if e.Button == mouse.ButtonLeft && clicks.press(p, time.Now()) && sess.DoubleClick(p) {
					w.Send(paint.Event{})
					continue
				}
				sess.PointerDown(p, buttonOf(e.Button), modsOf(e.Modifiers))
				w.Send(paint.Event{})
			case mouse.DirRelease:
				sess.PointerUp()
				w.Send(paint.Event{})
			case mouse.DirNone:
				if sess.PointerMove(p) {
					w.Send(paint.Event{})
				}
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if _, _, editing := sess.Editing(); editing {
				editKey(sess, e)
				w.Send(paint.Event{})
				continue
			}
			action, ok := actionFor(e)
			if !ok {
				continue
			}
			if action == "quit" {
				stopPaint()
				return
			}
			if fn, ok := actions[action]; ok {
				fn()
			}
			w.Send(paint.Event{})
		}
	}
}

// editKey feeds a key press to the inline text edit.
func editKey(sess *editor.Session, e key.Event) {
	switch e.Code {
	case key.CodeReturnEnter:
		if err := sess.CommitEdit(); err != nil {
			log.Printf("edit: %v", err)
		}
	case key.CodeEscape:
		sess.CancelEdit()
	case key.CodeDeleteBackspace:
		sess.Backspace()
	default:
		if e.Rune > 0 && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
			sess.Type(string(e.Rune))
		}
	}
}

// actions returns the handlers of the named shortcut actions.
func (a *AppState) actions(sess *editor.Session, w screen.Window, setMessage func(string)) map[string]func() {
	iconIdx := 0
	m := map[string]func(){
		"export": func() {
			path, err := sess.SavePreview(context.Background(), a.ExportDir)
			if err != nil {
				log.Printf("export: %v", err)
				setMessage("export failed: " + err.Error())
				return
			}
			a.Notifier.Export(path)
			setMessage(fmt.Sprintf("exported %s", path))
		},
		"copy": func() {
			if err := sess.CopyPreview(context.Background()); err != nil {
				log.Printf("copy: %v", err)
				setMessage("copy failed: " + err.Error())
				return
			}
			a.Notifier.Copy(sess.Name())
			setMessage("design copied to clipboard")
		},
		"paste": func() {
			o, err := sess.PasteImage()
			if err != nil {
				log.Printf("paste: %v", err)
				setMessage("paste failed: " + err.Error())
				return
			}
			setMessage("pasted " + o.ID)
		},
		"preview": func() {
			sess.RequestPreview(context.Background(), func(p editor.Preview, err error) {
				if err != nil {
					return
				}
				w.Send(messageEvent(fmt.Sprintf("preview ready %dx%d", p.Image.Bounds().Dx(), p.Image.Bounds().Dy())))
			})
		},
		"text": func() { sess.AddText("") },
		"icon": func() {
			if len(a.Catalog.Icons) == 0 {
				return
			}
			ic := a.Catalog.Icons[iconIdx%len(a.Catalog.Icons)]
			iconIdx++
			if _, err := sess.AddIcon(ic.Markup, ""); err != nil {
				log.Printf("icon %s: %v", ic.Name, err)
			}
		},
		"edit": func() {
			if id := sess.Selected(); id != "" {
				if err := sess.BeginEdit(id); err != nil {
					log.Printf("edit: %v", err)
				}
			}
		},
		"deselect": sess.ClickCanvas,
		"delete":   func() { sess.DeleteSelected() },
		"zoomin":   sess.ZoomIn,
		"zoomout":  sess.ZoomOut,
		"reset":    sess.ResetZoom,
		"fit":      sess.FitToScreen,
		"fitfull":  sess.FitFullImage,
		"fitprint": sess.FitPrintArea,
	}
	for name, k := range shapeFor {
		m[name] = func() { sess.AddShape(k) }
	}
	return m
}
