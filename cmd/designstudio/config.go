package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/designstudio/internal/config"
)

type configCmd struct {
	*root
	fs   *flag.FlagSet
	path string
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.path, "file", "", "file to save to (default the loaded config file)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) != 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.out(), c.effective().String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective is the loaded configuration with the global flags applied, so
// `-theme dark config save` persists the dark theme.
func (c *configCmd) effective() *config.Config {
	cfg := *c.config
	if c.themeName != "" {
		cfg.Theme = c.themeName
	}
	cfg.ExportDir = c.exportDir
	cfg.Catalog = c.catalogPath
	cfg.FontDir = c.fontDir
	cfg.SanitizeVectors = c.sanitize
	cfg.Notify = config.Notify{Export: c.exportAlerts, Copy: c.copyAlerts}
	return &cfg
}

func (c *configCmd) runSave() error {
	path := c.path
	if path == "" {
		path = config.NewLoader(version, configPathOverride).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	if _, err := f.WriteString(c.effective().String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
