// Package textmeasure sizes single-line text boxes with real font metrics.
package textmeasure

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Families every library can resolve without extra font files.
const (
	FamilySans = "Go"
	FamilyMono = "Go Mono"
)

// monoAliases are CSS family names that fall back to the monospaced face.
var monoAliases = map[string]bool{
	"courier new": true,
	"courier":     true,
	"monospace":   true,
	"consolas":    true,
	"menlo":       true,
}

type variant struct {
	family string
	bold   bool
	italic bool
}

// Library holds parsed fonts by family and variant. It is safe for
// concurrent use.
type Library struct {
	mu    sync.RWMutex
	fonts map[variant]*opentype.Font
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// Default returns the shared library holding the bundled Go fonts.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = NewLibrary()
	})
	return defaultLib, defaultErr
}

// NewLibrary parses the bundled Go fonts into a fresh library.
func NewLibrary() (*Library, error) {
	l := &Library{fonts: map[variant]*opentype.Font{}}
	builtin := []struct {
		family       string
		bold, italic bool
		ttf          []byte
	}{
		{FamilySans, false, false, goregular.TTF},
		{FamilySans, true, false, gobold.TTF},
		{FamilySans, false, true, goitalic.TTF},
		{FamilySans, true, true, gobolditalic.TTF},
		{FamilyMono, false, false, gomono.TTF},
		{FamilyMono, true, false, gomonobold.TTF},
		{FamilyMono, false, true, gomonoitalic.TTF},
		{FamilyMono, true, true, gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		f, err := opentype.Parse(b.ttf)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", b.family, err)
		}
		l.Register(b.family, b.bold, b.italic, f)
	}
	return l, nil
}

// Register adds f under family for the given variant, replacing any font
// already registered there.
func (l *Library) Register(family string, bold, italic bool, f *opentype.Font) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fonts[variant{strings.ToLower(family), bold, italic}] = f
}

// LoadDir registers every .ttf and .otf file in dir using the family and
// subfamily recorded in the font's name table. It returns how many fonts
// were added.
func (l *Library) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read font dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return n, fmt.Errorf("read font %s: %w", path, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return n, fmt.Errorf("parse font %s: %w", path, err)
		}
		family, err := f.Name(nil, sfnt.NameIDFamily)
		if err != nil || family == "" {
			family = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		sub, _ := f.Name(nil, sfnt.NameIDSubfamily)
		sub = strings.ToLower(sub)
		l.Register(family, strings.Contains(sub, "bold"), strings.Contains(sub, "italic") || strings.Contains(sub, "oblique"), f)
		n++
	}
	return n, nil
}

// Has reports whether family has a registered regular face of its own,
// rather than resolving through a fallback.
func (l *Library) Has(family string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.fonts[variant{candidates(family)[0], false, false}]
	return ok
}

// Lookup resolves a CSS style family, weight and style to a parsed font.
// Unknown families fall back to the sans or mono Go fonts, and a missing
// variant falls back to the regular face of the same family.
func (l *Library) Lookup(family, weight, style string) *opentype.Font {
	bold, italic := IsBold(weight), IsItalic(style)
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, fam := range candidates(family) {
		if f, ok := l.fonts[variant{fam, bold, italic}]; ok {
			return f
		}
		if f, ok := l.fonts[variant{fam, false, false}]; ok && i == 0 {
			return f
		}
	}
	return l.fonts[variant{strings.ToLower(FamilySans), false, false}]
}

func candidates(family string) []string {
	fam := strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
	if monoAliases[fam] {
		return []string{fam, strings.ToLower(FamilyMono)}
	}
	return []string{fam, strings.ToLower(FamilySans)}
}

// IsBold reports whether a CSS font-weight selects a bold face.
func IsBold(weight string) bool {
	switch strings.ToLower(weight) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// IsItalic reports whether a CSS font-style selects a slanted face.
func IsItalic(style string) bool {
	switch strings.ToLower(style) {
	case "italic", "oblique":
		return true
	}
	return false
}
