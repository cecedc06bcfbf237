// Package theme holds the colours of the editor window chrome.
package theme

import (
	"image/color"

	"github.com/example/designstudio/internal/render"
)

// Theme defines the colour palette of the editor window.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Backdrop around the canvas
	Foreground color.RGBA // Status bar text

	StatusBackground color.RGBA
	CanvasShadow     color.RGBA

	// Guides
	PrintArea    color.RGBA // Dashed print-area outline
	PrintAreaAlt color.RGBA // Alternate dash colour
	SafeArea     color.RGBA
	Label        color.RGBA

	// Selection
	Selection    color.RGBA
	HandleFill   color.RGBA
	HandleStroke color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Foreground:       color.RGBA{0x1f, 0x29, 0x37, 0xff},
		StatusBackground: color.RGBA{0xff, 0xff, 0xff, 0xff},
		CanvasShadow:     color.RGBA{0, 0, 0, 0x30},
		PrintArea:        color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		PrintAreaAlt:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		SafeArea:         color.RGBA{0x10, 0xb9, 0x81, 0xff},
		Label:            color.RGBA{0x1f, 0x29, 0x37, 0xff},
		Selection:        color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		HandleFill:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		HandleStroke:     color.RGBA{0x3b, 0x82, 0xf6, 0xff},
	}
}

// Style returns the render colours for the editor surface.
func (t *Theme) Style() render.Style {
	return render.Style{
		Backdrop:     t.Background,
		Shadow:       t.CanvasShadow,
		PrintArea:    t.PrintArea,
		PrintAreaAlt: t.PrintAreaAlt,
		SafeArea:     t.SafeArea,
		Label:        t.Label,
		Selection:    t.Selection,
		HandleFill:   t.HandleFill,
		HandleStroke: t.HandleStroke,
	}
}
