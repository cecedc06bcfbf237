// Package config reads and writes the user's RC file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/designstudio/internal/colorutil"
	"github.com/example/designstudio/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme           string
	ExportDir       string
	Catalog         string
	FontDir         string
	SanitizeVectors bool
	Notify          Notify
	Themes          map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Empty allows fallback to env/default
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	for _, kv := range [][2]string{
		{"theme", c.Theme},
		{"export_dir", c.ExportDir},
		{"catalog", c.Catalog},
		{"font_dir", c.FontDir},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	fmt.Fprintf(&sb, "sanitize_vectors = %v\n", c.SanitizeVectors)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, strings.ToUpper(colorutil.Hex(f.Color)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
