package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/designstudio/internal/catalog"
	"github.com/example/designstudio/internal/config"
	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/notify"
	"github.com/example/designstudio/internal/render"
	"github.com/example/designstudio/internal/textmeasure"
	"github.com/example/designstudio/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	stdout   io.Writer
	notifier *notify.Notifier
	config   *config.Config

	themeName    string
	exportAlerts bool
	copyAlerts   bool
	catalogPath  string
	fontDir      string
	exportDir    string
	sanitize     bool

	activeTheme *theme.Theme
	catalog     *catalog.Catalog
	fonts       *textmeasure.Library
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("designstudio", flag.ExitOnError),
		program:  "designstudio",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a preview")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying a preview")
	r.fs.StringVar(&r.catalogPath, "catalog", cfg.Catalog, "TOML catalog merged over the built-in products, templates and icons")
	r.fs.StringVar(&r.fontDir, "font-dir", cfg.FontDir, "directory of extra .ttf/.otf fonts")
	r.fs.StringVar(&r.exportDir, "export-dir", cfg.ExportDir, "directory previews are exported to")
	r.fs.BoolVar(&r.sanitize, "sanitize-vectors", cfg.SanitizeVectors, "strip scripts and event handlers from vector icons")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.resolveTheme()
	if err := r.loadResources(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "products", "templates", "icons", "fonts":
		cmd, err = parseListCmd(cmdName, subArgs, r)
	case "measure":
		cmd, err = parseMeasureCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("DESIGNSTUDIO_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// loadResources prepares the catalog and font library shared by every
// session the command creates.
func (r *root) loadResources() error {
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load built-in catalog: %w", err)
	}
	if r.catalogPath != "" {
		user, err := catalog.LoadFile(r.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog %s: %w", r.catalogPath, err)
		}
		cat.Merge(user)
	}
	r.catalog = cat

	lib, err := textmeasure.Default()
	if r.fontDir != "" {
		lib, err = textmeasure.NewLibrary()
	}
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	if r.fontDir != "" {
		n, err := lib.LoadDir(r.fontDir)
		if err != nil {
			return fmt.Errorf("load fonts from %s: %w", r.fontDir, err)
		}
		log.Printf("loaded %d fonts from %s", n, r.fontDir)
	}
	r.fonts = lib
	return nil
}

// newSession starts an editor session on a product, a template or, when
// both keys are empty, a free-form canvas.
func (r *root) newSession(productKey, templateKey string, opts ...editor.Option) (*editor.Session, error) {
	if productKey != "" && templateKey != "" {
		return nil, errors.New("-product and -template cannot be combined")
	}
	base := []editor.Option{editor.WithSanitizedMarkup(r.sanitize)}
	if r.fonts != nil {
		base = append(base,
			editor.WithMeasurer(textmeasure.New(r.fonts)),
			editor.WithRenderer(render.New(render.WithFonts(r.fonts))),
		)
	}
	switch {
	case productKey != "":
		p, err := r.catalog.Product(productKey)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", productKey, err)
		}
		base = append(base, editor.WithProduct(p))
	case templateKey != "":
		t, err := r.catalog.Template(templateKey)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", templateKey, err)
		}
		base = append(base, editor.WithTemplate(t))
	}
	return editor.New(append(base, opts...)...), nil
}

func (r *root) exportDirOrDefault() string {
	if strings.TrimSpace(r.exportDir) == "" {
		return "."
	}
	return r.exportDir
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
