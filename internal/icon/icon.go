// Package icon prepares vector icon markup for display: colour tinting,
// optional sanitizing and rasterizing.
package icon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"regexp"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrUnsafeMarkup is returned by Sanitize for markup that is not an svg
// document.
var ErrUnsafeMarkup = errors.New("unsafe vector markup")

var currentColor = regexp.MustCompile(`(?i)currentcolor`)

// Tint replaces every currentColor reference with col. Markup without the
// keyword is returned unchanged.
func Tint(markup, col string) string {
	if col == "" {
		return markup
	}
	return currentColor.ReplaceAllLiteralString(markup, col)
}

// dropped elements are removed with their whole subtree.
var dropped = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"embed":         true,
	"object":        true,
}

// Sanitize re-serializes markup without scripts, foreign content, event
// handler attributes, javascript: links, comments and directives. The root
// element must be svg.
func Sanitize(markup string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	var out bytes.Buffer
	skip := 0
	root := false
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !root {
				if !strings.EqualFold(t.Name.Local, "svg") {
					return "", fmt.Errorf("%w: root element %q", ErrUnsafeMarkup, t.Name.Local)
				}
				root = true
			}
			if skip > 0 || dropped[strings.ToLower(t.Name.Local)] {
				skip++
				continue
			}
			out.WriteByte('<')
			out.WriteString(qname(t.Name))
			for _, a := range t.Attr {
				if unsafeAttr(a) {
					continue
				}
				out.WriteByte(' ')
				out.WriteString(qname(a.Name))
				out.WriteString(`="`)
				xml.EscapeText(&out, []byte(a.Value))
				out.WriteByte('"')
			}
			out.WriteByte('>')
		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			out.WriteString("</")
			out.WriteString(qname(t.Name))
			out.WriteByte('>')
		case xml.CharData:
			if skip == 0 && root {
				xml.EscapeText(&out, t)
			}
		}
	}
	if !root {
		return "", fmt.Errorf("%w: no svg element", ErrUnsafeMarkup)
	}
	return out.String(), nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func unsafeAttr(a xml.Attr) bool {
	name := strings.ToLower(a.Name.Local)
	if strings.HasPrefix(name, "on") {
		return true
	}
	if name == "href" || name == "src" {
		v := strings.ToLower(strings.TrimSpace(a.Value))
		return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "data:text/html")
	}
	return false
}

// Rasterize draws markup scaled into a w by h image.
func Rasterize(markup string, w, h int, opacity float64) (img *image.RGBA, err error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize icon: empty target %dx%d", w, h)
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("rasterize icon: %v", r)
		}
	}()
	ic, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}
	if ic.ViewBox.W <= 0 || ic.ViewBox.H <= 0 {
		ic.ViewBox.X, ic.ViewBox.Y = 0, 0
		ic.ViewBox.W, ic.ViewBox.H = float64(w), float64(h)
	}
	ic.SetTarget(0, 0, float64(w), float64(h))
	img = image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	ic.Draw(raster, opacity)
	return img, nil
}
