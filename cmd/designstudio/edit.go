package main

import (
	"flag"
	"image"

	"github.com/example/designstudio/internal/appstate"
	"github.com/example/designstudio/internal/display"
)

var (
	defaultWindow = image.Pt(1024, 768)
	minimumWindow = image.Pt(640, 480)
)

type editCmd struct {
	*root
	fs       *flag.FlagSet
	product  string
	template string
	monitor  string
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.product, "product", "", "product id or name to design on")
	fs.StringVar(&c.template, "template", "", "template id or name to start from")
	fs.StringVar(&c.monitor, "monitor", "", "monitor index or name used to size the window (default primary)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	sess, err := c.newSession(c.product, c.template)
	if err != nil {
		return err
	}
	st := appstate.New(
		appstate.WithSession(sess),
		appstate.WithTheme(c.activeTheme),
		appstate.WithCatalog(c.catalog),
		appstate.WithNotifier(c.notifier),
		appstate.WithExportDir(c.exportDirOrDefault()),
		appstate.WithWindowSize(display.WindowSize(c.monitor, defaultWindow, minimumWindow)),
	)
	st.Run()
	return nil
}
