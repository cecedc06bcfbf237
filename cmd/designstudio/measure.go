package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/textmeasure"
)

type measureCmd struct {
	*root
	fs     *flag.FlagSet
	family string
	size   float64
	weight string
	style  string
	text   string
}

func (c *measureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseMeasureCmd(args []string, r *root) (*measureCmd, error) {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	c := &measureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.family, "font", "Arial", "font family")
	fs.Float64Var(&c.size, "size", textmeasure.DefaultSize, "font size in canvas units")
	fs.StringVar(&c.weight, "weight", "normal", "font weight (normal or bold)")
	fs.StringVar(&c.style, "style", "normal", "font style (normal or italic)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	if c.size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", c.size)
	}
	c.text = strings.Join(fs.Args(), " ")
	return c, nil
}

func (c *measureCmd) Run() error {
	t := design.DefaultPayload(design.KindText).(*design.Text)
	t.Text = c.text
	t.FontFamily = c.family
	t.FontSize = c.size
	t.FontWeight = c.weight
	t.FontStyle = c.style

	lib := c.fonts
	if lib == nil {
		var err error
		if lib, err = textmeasure.Default(); err != nil {
			return err
		}
	}
	box, err := textmeasure.New(lib).MeasureText(t)
	if err != nil {
		return fmt.Errorf("measure %q: %w", c.text, err)
	}
	fmt.Fprintf(c.out(), "%.0fx%.0f\n", box.W, box.H)
	return nil
}
