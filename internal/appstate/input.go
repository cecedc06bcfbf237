package appstate

import (
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/viewport"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// Shortcut binds an action name to its keys and a help label.
type Shortcut struct {
	Action string
	Label  string
	Keys   KeyboardShortcuts
}

// Shortcuts lists the editor key bindings.
var Shortcuts = []Shortcut{
	{"export", "Ctrl+S export PNG", shortcutList{{Rune: 's', Modifiers: key.ModControl}}},
	{"copy", "Ctrl+C copy PNG", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}},
	{"paste", "Ctrl+V paste image", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}},
	{"preview", "Ctrl+P refresh preview", shortcutList{{Rune: 'p', Modifiers: key.ModControl}}},
	{"text", "T add text", shortcutList{{Rune: 't'}}},
	{"rectangle", "R add rectangle", shortcutList{{Rune: 'r'}}},
	{"circle", "O add circle", shortcutList{{Rune: 'o'}}},
	{"triangle", "Y add triangle", shortcutList{{Rune: 'y'}}},
	{"icon", "I add icon", shortcutList{{Rune: 'i'}}},
	{"edit", "Enter edit text", shortcutList{{Code: key.CodeReturnEnter}}},
	{"deselect", "Esc deselect", shortcutList{{Code: key.CodeEscape}}},
	{"delete", "Del delete", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}},
	{"zoomin", "+ zoom in", shortcutList{{Rune: '+'}, {Rune: '='}}},
	{"zoomout", "- zoom out", shortcutList{{Rune: '-'}}},
	{"reset", "0 reset zoom", shortcutList{{Rune: '0'}}},
	{"fit", "F fit to screen", shortcutList{{Rune: 'f'}}},
	{"fitfull", "W whole product", shortcutList{{Rune: 'w'}}},
	{"fitprint", "P print area", shortcutList{{Rune: 'p'}}},
	{"quit", "Q quit", shortcutList{{Rune: 'q'}}},
}

var keyboardAction = func() map[KeyShortcut]string {
	m := map[KeyShortcut]string{}
	for _, sc := range Shortcuts {
		for _, k := range sc.Keys.KeyboardShortcuts() {
			m[k] = sc.Action
		}
	}
	return m
}()

// actionFor returns the action bound to a key press. Bindings by key code
// win over bindings by rune; shift is ignored when nothing matches with it.
func actionFor(e key.Event) (string, bool) {
	for _, mods := range []key.Modifiers{e.Modifiers, e.Modifiers &^ key.ModShift} {
		if a, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok && e.Code != key.CodeUnknown {
			return a, true
		}
		if e.Rune > 0 {
			if a, ok := keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
				return a, true
			}
		}
	}
	return "", false
}

// buttonOf maps a shiny mouse button.
func buttonOf(b mouse.Button) viewport.Button {
	switch b {
	case mouse.ButtonLeft:
		return viewport.ButtonLeft
	case mouse.ButtonMiddle:
		return viewport.ButtonMiddle
	case mouse.ButtonRight:
		return viewport.ButtonRight
	}
	return viewport.ButtonNone
}

// modsOf maps shiny modifiers.
func modsOf(m key.Modifiers) viewport.Modifiers {
	var out viewport.Modifiers
	if m&key.ModShift != 0 {
		out |= viewport.ModShift
	}
	if m&key.ModControl != 0 {
		out |= viewport.ModControl
	}
	if m&key.ModAlt != 0 {
		out |= viewport.ModAlt
	}
	if m&key.ModMeta != 0 {
		out |= viewport.ModMeta
	}
	return out
}

// wheelDelta returns the scroll direction of a wheel event: negative for
// up, positive for down and zero for anything else.
func wheelDelta(e mouse.Event) float64 {
	switch e.Button {
	case mouse.ButtonWheelUp:
		return -1
	case mouse.ButtonWheelDown:
		return 1
	}
	return 0
}

const (
	doubleClickTime     = 400 * time.Millisecond
	doubleClickDistance = 4
)

// clickTracker recognizes double clicks from successive presses.
type clickTracker struct {
	at  time.Time
	pos geom.Point
}

// press records a press and reports whether it completes a double click.
func (c *clickTracker) press(p geom.Point, now time.Time) bool {
	double := !c.at.IsZero() && now.Sub(c.at) <= doubleClickTime &&
		abs(p.X-c.pos.X) <= doubleClickDistance && abs(p.Y-c.pos.Y) <= doubleClickDistance
	if double {
		c.at = time.Time{}
		return true
	}
	c.at, c.pos = now, p
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
