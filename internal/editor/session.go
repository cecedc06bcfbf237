// Package editor runs one design editing session. A Session owns the object
// store, the viewport, the pointer state machine, the selection and the
// inline text edit; it is created when an editor mounts and discarded with
// Close.
package editor

import (
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/interact"
	"github.com/example/designstudio/internal/render"
	"github.com/example/designstudio/internal/textmeasure"
	"github.com/example/designstudio/internal/viewport"
)

// Mode is what the session was started from.
type Mode int

const (
	ModeFree Mode = iota
	ModeProduct
	ModeTemplate
)

func (m Mode) String() string {
	switch m {
	case ModeProduct:
		return "product"
	case ModeTemplate:
		return "template"
	}
	return "free"
}

// Session is the single owner of an editor's state. Its methods must be
// called from one goroutine, the event loop; only preview rendering runs in
// the background.
type Session struct {
	id       string
	mode     Mode
	name     string
	canvas   geom.Size
	bg       string
	product  *catalog.Product
	template *catalog.Template

	store    *design.Store
	view     *viewport.Controller
	machine  *interact.Machine
	measurer design.TextMeasurer
	renderer *render.Renderer
	logger   *log.Logger
	rand     func() float64
	sanitize bool

	edit    *textEdit
	mounted bool

	mu      sync.Mutex
	preview *Preview
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithProduct starts the session on a product mockup. Placement and drags
// are confined to the product's print area.
func WithProduct(p catalog.Product) Option {
	return func(s *Session) { s.product = &p }
}

// WithTemplate starts the session with a copy of the template's objects.
func WithTemplate(t catalog.Template) Option {
	return func(s *Session) { s.template = &t }
}

// WithMeasurer replaces the text measurer. A nil measurer leaves text boxes
// at whatever size they already have.
func WithMeasurer(m design.TextMeasurer) Option {
	return func(s *Session) { s.measurer = m }
}

// WithLogger sets where recoverable failures are reported.
func WithLogger(l *log.Logger) Option { return func(s *Session) { s.logger = l } }

// WithRand replaces the source of placement randomness. fn returns values
// in [0,1).
func WithRand(fn func() float64) Option { return func(s *Session) { s.rand = fn } }

// WithSanitizedMarkup makes the session strip active content from vector
// markup before accepting it.
func WithSanitizedMarkup(on bool) Option { return func(s *Session) { s.sanitize = on } }

// WithRenderer sets the preview renderer.
func WithRenderer(r *render.Renderer) Option { return func(s *Session) { s.renderer = r } }

// New creates a session. Without WithProduct or WithTemplate it edits a
// blank free-form canvas.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		logger: log.Default(),
		rand:   rand.Float64,
	}
	var fonts *textmeasure.Library
	lib, err := textmeasure.Default()
	if err != nil {
		s.logger.Printf("fonts unavailable: %v", err)
	} else {
		fonts = lib
		s.measurer = textmeasure.New(lib)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.New(render.WithFonts(fonts), render.WithLogger(s.logger))
	}

	var printArea *geom.Rect
	switch {
	case s.product != nil:
		s.mode = ModeProduct
		s.name = s.product.Name
		s.canvas = s.product.Canvas
		s.bg = s.product.Background
		pa := s.product.PrintArea
		printArea = &pa
	case s.template != nil:
		s.mode = ModeTemplate
		s.name = s.template.Name
		s.canvas = catalog.FreeCanvas
	default:
		s.mode = ModeFree
		s.name = "Untitled design"
		s.canvas = catalog.FreeCanvas
	}
	s.store = design.NewStore(s.measurer, s.logger)
	if s.template != nil {
		s.store.Load(s.template.Objects)
	}
	s.view = viewport.New(s.canvas, printArea)
	s.machine = interact.NewMachine()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns what the session was started from.
func (s *Session) Mode() Mode { return s.mode }

// Name returns the product or template name, or a placeholder.
func (s *Session) Name() string { return s.name }

// Canvas returns the logical canvas size.
func (s *Session) Canvas() geom.Size { return s.canvas }

// Background returns the product background source, if any.
func (s *Session) Background() string { return s.bg }

// Product returns the product of a product session.
func (s *Session) Product() (catalog.Product, bool) {
	if s.product == nil {
		return catalog.Product{}, false
	}
	return *s.product, true
}

// Viewport exposes the zoom and pan controller.
func (s *Session) Viewport() *viewport.Controller { return s.view }

// Renderer returns the renderer used for previews.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Mounted reports whether Mount has been called.
func (s *Session) Mounted() bool { return s.mounted }

// Mount attaches the session to a container of the given size whose canvas
// area starts at origin. Product sessions start at the full image view.
func (s *Session) Mount(container geom.Size, origin geom.Point) {
	s.view.SetContainer(container)
	s.view.SetOrigin(origin)
	s.mounted = true
	s.view.FitFullImage()
}

// Resize reacts to a new container size. Product sessions re-fit the full
// image.
func (s *Session) Resize(container geom.Size) {
	s.view.SetContainer(container)
	s.view.FitFullImage()
}

// ZoomIn zooms in one step.
func (s *Session) ZoomIn() { s.view.ZoomIn() }

// ZoomOut zooms out one step.
func (s *Session) ZoomOut() { s.view.ZoomOut() }

// ResetZoom returns to the default view.
func (s *Session) ResetZoom() { s.view.Reset() }

// FitFullImage shows the whole product.
func (s *Session) FitFullImage() { s.view.FitFullImage() }

// FitPrintArea fills the view with the print area.
func (s *Session) FitPrintArea() { s.view.FitPrintArea() }

// FitToScreen fits the print area or, outside product mode, the canvas.
func (s *Session) FitToScreen() { s.view.FitToScreen() }

// ZoomPercentage is the zoom figure shown to the user.
func (s *Session) ZoomPercentage() int { return s.view.Percentage() }

// Objects returns a copy of the objects in paint order.
func (s *Session) Objects() []design.Object { return s.store.Painted() }

// Object returns a copy of one object.
func (s *Session) Object(id string) (design.Object, bool) { return s.store.Get(id) }

// Selected returns the selected object id or "".
func (s *Session) Selected() string { return s.store.Selected() }

// Counter returns the id counter of the store.
func (s *Session) Counter() int { return s.store.Counter() }

// limits returns the drag bounds and resize floor for id.
func (s *Session) limits(id string) interact.Limits {
	bounds := geom.RectOf(s.canvas)
	if pa, ok := s.view.PrintArea(); ok {
		bounds = pa
	}
	return interact.Limits{Bounds: bounds, Floor: s.store.MinSize(id)}
}
