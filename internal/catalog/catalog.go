// Package catalog provides the products, templates, sample icons and font
// families an editor session can start from. Catalogs are TOML documents; a
// default catalog is embedded.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
)

//go:embed defaults/catalog.toml
var defaults embed.FS

// ErrNotFound is returned when a lookup matches no entry.
var ErrNotFound = errors.New("not found")

// FreeCanvas is the canvas of free-form and template designs.
var FreeCanvas = geom.Sz(800, 600)

// ProductInfo is descriptive metadata shown next to a product.
type ProductInfo struct {
	Type                 string
	PrintAreaDescription string
	MaxPrintSize         string
	DPI                  int
}

// Product is a printable item: a canvas with a background and the region
// that may carry artwork.
type Product struct {
	ID         string
	Name       string
	Background string
	Canvas     geom.Size
	PrintArea  geom.Rect
	Info       ProductInfo
}

// Template is a named starting design.
type Template struct {
	ID        string
	Name      string
	Category  string
	Thumbnail string
	Objects   []design.Object
}

// Icon is a sample vector icon.
type Icon struct {
	Name   string
	Markup string
}

// Catalog groups everything a session can be started from.
type Catalog struct {
	Products  []Product
	Templates []Template
	Icons     []Icon
	Fonts     []string
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	data, err := defaults.ReadFile("defaults/catalog.toml")
	if err != nil {
		return nil, err
	}
	return Load(bytes.NewReader(data))
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load parses a TOML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	if err := decode(r, &fc); err != nil {
		return nil, err
	}
	return fc.catalog()
}

// Merge adds the entries of o to c. Entries with an id (or icon name) that
// already exists replace the existing entry. Fonts are appended without
// duplicates.
func (c *Catalog) Merge(o *Catalog) {
	for _, p := range o.Products {
		if i := c.productIndex(p.ID); i >= 0 {
			c.Products[i] = p
		} else {
			c.Products = append(c.Products, p)
		}
	}
	for _, t := range o.Templates {
		if i := c.templateIndex(t.ID); i >= 0 {
			c.Templates[i] = t
		} else {
			c.Templates = append(c.Templates, t)
		}
	}
	for _, ic := range o.Icons {
		if i := c.iconIndex(ic.Name); i >= 0 {
			c.Icons[i] = ic
		} else {
			c.Icons = append(c.Icons, ic)
		}
	}
	for _, f := range o.Fonts {
		if !c.HasFont(f) {
			c.Fonts = append(c.Fonts, f)
		}
	}
}

// Product finds a product by id or, ignoring case, by name.
func (c *Catalog) Product(key string) (Product, error) {
	if i := c.productIndex(key); i >= 0 {
		return c.Products[i], nil
	}
	for _, p := range c.Products {
		if strings.EqualFold(p.Name, key) {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %q: %w", key, ErrNotFound)
}

// Template finds a template by id or name. The objects of the result are a
// deep copy.
func (c *Catalog) Template(key string) (Template, error) {
	i := c.templateIndex(key)
	if i < 0 {
		for j, t := range c.Templates {
			if strings.EqualFold(t.Name, key) {
				i = j
				break
			}
		}
	}
	if i < 0 {
		return Template{}, fmt.Errorf("template %q: %w", key, ErrNotFound)
	}
	t := c.Templates[i]
	t.Objects = design.CloneAll(t.Objects)
	return t, nil
}

// Icon finds a sample icon by name, ignoring case.
func (c *Catalog) Icon(name string) (Icon, error) {
	if i := c.iconIndex(name); i >= 0 {
		return c.Icons[i], nil
	}
	return Icon{}, fmt.Errorf("icon %q: %w", name, ErrNotFound)
}

// HasFont reports whether family is listed, ignoring case.
func (c *Catalog) HasFont(family string) bool {
	for _, f := range c.Fonts {
		if strings.EqualFold(f, family) {
			return true
		}
	}
	return false
}

func (c *Catalog) productIndex(id string) int {
	for i, p := range c.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) templateIndex(id string) int {
	for i, t := range c.Templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) iconIndex(name string) int {
	for i, ic := range c.Icons {
		if strings.EqualFold(ic.Name, name) {
			return i
		}
	}
	return -1
}
