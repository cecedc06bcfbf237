// Package appstate runs the desktop editor window. The window turns shiny
// events into editor session calls and paints the session off the event
// loop.
package appstate

import (
	"image"
	"sync"

	"golang.org/x/exp/shiny/driver"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/notify"
	"github.com/example/designstudio/internal/theme"
)

// ProgramTitle prefixes window titles.
const ProgramTitle = "DesignStudio"

// statusHeight is the height of the status bar under the canvas.
const statusHeight = 24

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// AppState holds the configuration of one editor window.
type AppState struct {
	Session   *editor.Session
	Theme     *theme.Theme
	Catalog   *catalog.Catalog
	Notifier  *notify.Notifier
	ExportDir string
	Size      image.Point

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the session edited by the window.
func WithSession(s *editor.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithCatalog sets the catalog icons are picked from.
func WithCatalog(c *catalog.Catalog) Option { return func(a *AppState) { a.Catalog = c } }

// WithNotifier sets the notifier used after exports and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithExportDir sets where Ctrl+S writes previews.
func WithExportDir(dir string) Option { return func(a *AppState) { a.ExportDir = dir } }

// WithWindowSize sets the initial window size.
func WithWindowSize(p image.Point) Option { return func(a *AppState) { a.Size = p } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options. Missing parts get
// defaults: a free-form session, the default theme and the embedded catalog.
func New(opts ...Option) *AppState {
	a := &AppState{Size: image.Pt(1024, 768), ExportDir: "."}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = editor.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Catalog == nil {
		if c, err := catalog.Default(); err == nil {
			a.Catalog = c
		} else {
			a.Catalog = &catalog.Catalog{}
		}
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }
