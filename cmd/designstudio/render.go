package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/example/designstudio/internal/appstate"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/editor"
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/render"
)

// addSpec is one -add argument.
type addSpec struct {
	kind  string
	value string
	at    *geom.Point
}

// renderStep is either an object to add or a property to set on the
// object added before it.
type renderStep struct {
	add   *addSpec
	prop  design.Property
	value string
}

func parseAddSpec(s string) (addSpec, error) {
	kind, value, _ := strings.Cut(s, ":")
	a := addSpec{kind: strings.ToLower(strings.TrimSpace(kind)), value: value}
	if i := strings.LastIndex(a.value, "@"); i >= 0 {
		if p, ok := parsePoint(a.value[i+1:]); ok {
			a.at = &p
			a.value = a.value[:i]
		}
	}
	switch a.kind {
	case "text", "paste":
	case "shape":
		switch design.ShapeKind(a.value) {
		case design.ShapeRectangle, design.ShapeCircle, design.ShapeTriangle:
		default:
			return a, fmt.Errorf("unknown shape %q", a.value)
		}
	case "icon", "image":
		if a.value == "" {
			return a, fmt.Errorf("%s needs a value", a.kind)
		}
	default:
		return a, fmt.Errorf("unknown object kind %q", a.kind)
	}
	return a, nil
}

func parsePoint(s string) (geom.Point, bool) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return geom.Point{}, false
	}
	return geom.Pt(x, y), true
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

type addFlag struct{ steps *[]renderStep }

func (f addFlag) String() string { return "" }

func (f addFlag) Set(s string) error {
	a, err := parseAddSpec(s)
	if err != nil {
		return err
	}
	*f.steps = append(*f.steps, renderStep{add: &a})
	return nil
}

type setFlag struct{ steps *[]renderStep }

func (f setFlag) String() string { return "" }

func (f setFlag) Set(s string) error {
	if len(*f.steps) == 0 {
		return errors.New("-set must follow an -add")
	}
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("property %q is not key=value", s)
	}
	*f.steps = append(*f.steps, renderStep{prop: design.Property(strings.TrimSpace(key)), value: value})
	return nil
}

type renderCmd struct {
	*root
	fs       *flag.FlagSet
	product  string
	template string
	output   string
	view     string
	seed     uint64
	copy     bool
	steps    []renderStep
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.product, "product", "", "product id or name to design on")
	fs.StringVar(&c.template, "template", "", "template id or name to start from")
	fs.StringVar(&c.output, "o", "", "output PNG file or directory, - for stdout (default export dir)")
	fs.StringVar(&c.view, "view", "", "render the editor window at WIDTHxHEIGHT instead of the canvas")
	fs.Uint64Var(&c.seed, "seed", 0, "seed for object placement, 0 for random")
	fs.BoolVar(&c.copy, "copy", false, "also copy the preview to the clipboard")
	fs.Var(addFlag{&c.steps}, "add", "add an object: kind:value[@x,y] (repeatable)")
	fs.Var(setFlag{&c.steps}, "set", "set key=value on the last added object (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.product != "" && c.template != "" {
		return nil, errors.New("-product and -template cannot be combined")
	}
	if c.view != "" {
		if _, _, err := parseSize(c.view); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []editor.Option
	if c.seed != 0 {
		opts = append(opts, editor.WithRand(rand.New(rand.NewPCG(c.seed, c.seed)).Float64))
	}
	sess, err := c.newSession(c.product, c.template, opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	last := ""
	for _, step := range c.steps {
		if step.add != nil {
			o, err := c.add(sess, *step.add)
			if err != nil {
				return err
			}
			last = o.ID
			continue
		}
		if err := sess.UpdateProperty(last, step.prop, step.value); err != nil {
			return fmt.Errorf("set %s on %s: %w", step.prop, last, err)
		}
	}

	if c.view != "" {
		w, h, _ := parseSize(c.view)
		img, err := appstate.RenderWindow(ctx, sess, c.activeTheme, w, h)
		if err != nil {
			return err
		}
		out := c.output
		if out == "" {
			out = "-"
		}
		return c.writePNG(out, img)
	}

	if c.output == "-" {
		p, err := sess.RenderPreview(ctx)
		if err != nil {
			return err
		}
		if err := render.EncodePNG(c.out(), p.Image); err != nil {
			return err
		}
	} else {
		path := c.output
		if path == "" {
			path = c.exportDirOrDefault()
		}
		saved, err := sess.SavePreview(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out(), saved)
		c.notifier.Export(saved)
	}

	if c.copy {
		if err := sess.CopyPreview(ctx); err != nil {
			return err
		}
		c.notifier.Copy(sess.Name())
	}
	return nil
}

func (c *renderCmd) add(sess *editor.Session, a addSpec) (design.Object, error) {
	var opts []design.Option
	if a.at != nil {
		opts = append(opts, design.At(*a.at))
	}
	switch a.kind {
	case "text":
		return sess.AddText(a.value, opts...), nil
	case "shape":
		return sess.AddShape(design.ShapeKind(a.value), opts...), nil
	case "icon":
		markup, err := c.iconMarkup(a.value)
		if err != nil {
			return design.Object{}, err
		}
		return sess.AddIcon(markup, "", opts...)
	case "image":
		return sess.AddImageFile(a.value, opts...)
	case "paste":
		return sess.PasteImage()
	}
	return design.Object{}, fmt.Errorf("unknown object kind %q", a.kind)
}

// iconMarkup resolves a catalog icon name or reads an .svg file.
func (c *renderCmd) iconMarkup(value string) (string, error) {
	if strings.HasSuffix(strings.ToLower(value), ".svg") {
		data, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("read icon: %w", err)
		}
		return string(data), nil
	}
	ic, err := c.catalog.Icon(value)
	if err != nil {
		return "", fmt.Errorf("icon %q: %w", value, err)
	}
	return ic.Markup, nil
}

func (c *renderCmd) writePNG(path string, img image.Image) error {
	if path == "-" {
		return render.EncodePNG(c.out(), img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(c.out(), path)
	return nil
}
