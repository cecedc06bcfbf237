package main

import (
	"flag"
	"fmt"
	"text/tabwriter"
)

type listCmd struct {
	*root
	fs   *flag.FlagSet
	kind string
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseListCmd(kind string, args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	c := &listCmd{root: r, fs: fs, kind: kind}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *listCmd) Run() error {
	tw := tabwriter.NewWriter(c.out(), 0, 4, 2, ' ', 0)
	switch c.kind {
	case "products":
		fmt.Fprintln(tw, "ID\tNAME\tCANVAS\tPRINT AREA\tSIZE")
		for _, p := range c.catalog.Products {
			pa := p.PrintArea
			fmt.Fprintf(tw, "%s\t%s\t%.0fx%.0f\t%.0fx%.0f at %.0f,%.0f\t%s\n",
				p.ID, p.Name, p.Canvas.W, p.Canvas.H, pa.W, pa.H, pa.X, pa.Y, p.Info.MaxPrintSize)
		}
	case "templates":
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tOBJECTS")
		for _, t := range c.catalog.Templates {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Category, len(t.Objects))
		}
	case "icons":
		for _, ic := range c.catalog.Icons {
			fmt.Fprintln(tw, ic.Name)
		}
	case "fonts":
		fmt.Fprintln(tw, "FAMILY\tFACE")
		for _, f := range c.catalog.Fonts {
			face := "fallback"
			if c.fonts != nil && c.fonts.Has(f) {
				face = "installed"
			}
			fmt.Fprintf(tw, "%s\t%s\n", f, face)
		}
	default:
		return &UsageError{of: c}
	}
	return tw.Flush()
}
