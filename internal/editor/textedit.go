package editor

import (
	"errors"
	"fmt"

	"github.com/example/designstudio/internal/design"
)

// ErrNoObject is returned when an id names no object.
var ErrNoObject = errors.New("no such object")

// ErrNotText is returned when a text edit is requested on another kind.
var ErrNotText = errors.New("not a text object")

type textEdit struct {
	id  string
	buf []rune
}

// BeginEdit selects the text object id and opens an inline edit seeded with
// its current text.
func (s *Session) BeginEdit(id string) error {
	o, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, ErrNoObject)
	}
	t, ok := o.Text()
	if !ok {
		return fmt.Errorf("edit %s: %w", id, ErrNotText)
	}
	s.Select(id)
	s.edit = &textEdit{id: id, buf: []rune(t.Text)}
	return nil
}

// Editing returns the object being edited and the uncommitted text.
func (s *Session) Editing() (id, text string, ok bool) {
	if s.edit == nil {
		return "", "", false
	}
	return s.edit.id, string(s.edit.buf), true
}

// Type appends text to the edit buffer.
func (s *Session) Type(text string) {
	if s.edit == nil {
		return
	}
	s.edit.buf = append(s.edit.buf, []rune(text)...)
}

// Backspace removes the last rune of the edit buffer.
func (s *Session) Backspace() {
	if s.edit == nil || len(s.edit.buf) == 0 {
		return
	}
	s.edit.buf = s.edit.buf[:len(s.edit.buf)-1]
}

// CommitEdit writes the buffer to the object, re-measuring it, and closes
// the edit.
func (s *Session) CommitEdit() error {
	if s.edit == nil {
		return nil
	}
	e := s.edit
	s.edit = nil
	return s.UpdateProperty(e.id, design.PropText, string(e.buf))
}

// CancelEdit discards the buffer.
func (s *Session) CancelEdit() { s.edit = nil }

func (s *Session) exitEditUnless(id string) {
	if s.edit != nil && s.edit.id != id {
		s.edit = nil
	}
}
