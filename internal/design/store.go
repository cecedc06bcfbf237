package design

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/example/designstudio/internal/geom"
)

// TextMeasurer returns the auto-size box of a text payload, padding and floor
// included.
type TextMeasurer interface {
	MeasureText(t *Text) (geom.Size, error)
}

// Store is the ordered object list of one session together with the id
// counter and the current selection. It is not safe for concurrent use; a
// session owns it and mutates it from one event loop.
type Store struct {
	objects  []Object
	counter  int
	selected string
	measurer TextMeasurer
	logger   *log.Logger
}

// NewStore creates an empty store. m may be nil, in which case text objects
// keep whatever box they already have.
func NewStore(m TextMeasurer, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{measurer: m, logger: logger}
}

// Len returns the number of objects.
func (s *Store) Len() int { return len(s.objects) }

// Counter returns the id counter. The next added object gets suffix Counter()+1.
func (s *Store) Counter() int { return s.counter }

// Objects returns a deep copy of the objects in insertion order.
func (s *Store) Objects() []Object { return CloneAll(s.objects) }

// Painted returns a deep copy ordered for painting, lowest zIndex first.
// Objects with equal zIndex keep insertion order.
func (s *Store) Painted() []Object {
	out := CloneAll(s.objects)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Get returns a copy of the object with the given id.
func (s *Store) Get(id string) (Object, bool) {
	if o := s.find(id); o != nil {
		return o.Clone(), true
	}
	return Object{}, false
}

// Selected returns the selected id, or "" when nothing is selected.
func (s *Store) Selected() string { return s.selected }

// Select marks id as selected. Unknown ids clear the selection.
func (s *Store) Select(id string) {
	if s.find(id) == nil {
		s.selected = ""
		return
	}
	s.selected = id
}

// ClearSelection deselects everything.
func (s *Store) ClearSelection() { s.selected = "" }

// Add appends a new object of kind k at pos, applies the variant defaults,
// then opts, measures text, selects it and advances the counter.
func (s *Store) Add(k Kind, pos geom.Point, opts ...Option) Object {
	size := DefaultSize(k)
	o := Object{
		ID:      fmt.Sprintf("%s-%d", k, s.counter+1),
		X:       pos.X,
		Y:       pos.Y,
		Width:   size.W,
		Height:  size.H,
		Opacity: 1,
		ZIndex:  s.counter + 1,
		Payload: DefaultPayload(k),
	}
	for _, opt := range opts {
		opt(&o)
	}
	s.measure(&o)
	s.objects = append(s.objects, o)
	s.selected = o.ID
	s.counter++
	return o.Clone()
}

// UpdateProperty sets one property. Text objects are re-measured when the
// property affects their rendered extent. Unknown ids are ignored.
func (s *Store) UpdateProperty(id string, p Property, value any) error {
	o := s.find(id)
	if o == nil {
		return nil
	}
	updated := o.Clone()
	if err := updated.Set(p, value); err != nil {
		return err
	}
	if updated.Kind() == KindText {
		if p.Remeasures() {
			s.measure(&updated)
		} else if p == PropWidth || p == PropHeight {
			box := s.MinSize(id)
			updated.Width = math.Max(updated.Width, box.W)
			updated.Height = math.Max(updated.Height, box.H)
		}
	}
	*o = updated
	return nil
}

// SetBounds moves and resizes an object. Unknown ids are ignored.
func (s *Store) SetBounds(id string, r geom.Rect) bool {
	o := s.find(id)
	if o == nil {
		return false
	}
	o.SetBounds(r)
	return true
}

// MinSize is the smallest box a resize may produce for id: the hard floor,
// or for text the measured content box when that is larger.
func (s *Store) MinSize(id string) geom.Size {
	floor := geom.Sz(MinWidth, MinHeight)
	o := s.find(id)
	if o == nil || s.measurer == nil {
		return floor
	}
	t, ok := o.Text()
	if !ok {
		return floor
	}
	box, err := s.measurer.MeasureText(t)
	if err != nil {
		return floor
	}
	return geom.Sz(math.Max(floor.W, box.W), math.Max(floor.H, box.H))
}

// Delete removes id and clears the selection if it pointed there. Deleting a
// missing id is a no-op.
func (s *Store) Delete(id string) bool {
	for i := range s.objects {
		if s.objects[i].ID != id {
			continue
		}
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
		if s.selected == id {
			s.selected = ""
		}
		return true
	}
	return false
}

// Load replaces the whole object list with a deep copy of objs, as authored,
// clears the selection and resets the counter to len(objs).
func (s *Store) Load(objs []Object) {
	s.objects = CloneAll(objs)
	if s.objects == nil {
		s.objects = []Object{}
	}
	s.selected = ""
	s.counter = len(objs)
}

func (s *Store) measure(o *Object) {
	t, ok := o.Text()
	if !ok || s.measurer == nil {
		return
	}
	box, err := s.measurer.MeasureText(t)
	if err != nil {
		s.logger.Printf("measure %s: %v", o.ID, err)
		return
	}
	o.Width, o.Height = box.W, box.H
}

func (s *Store) find(id string) *Object {
	if id == "" {
		return nil
	}
	for i := range s.objects {
		if s.objects[i].ID == id {
			return &s.objects[i]
		}
	}
	return nil
}
