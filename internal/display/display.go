// Package display describes the monitors the editor window may open on.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var errNoMonitors = errors.New("no monitors available")

// Monitor describes an individual monitor in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// listMonitors is replaced in tests.
var listMonitors = queryMonitors

// Monitors lists the connected monitors.
func Monitors() ([]Monitor, error) {
	mons, err := listMonitors()
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, errNoMonitors
	}
	return mons, nil
}

// Find resolves a selector: "" or "primary" for the primary monitor, an
// index with optional '#', or part of a monitor name.
func Find(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// WindowSize picks an editor window size: 80% of the selected monitor but
// at least least, or fallback when no monitor can be queried.
func WindowSize(selector string, fallback, least image.Point) image.Point {
	mons, err := Monitors()
	if err != nil {
		return fallback
	}
	mon, err := Find(mons, selector)
	if err != nil {
		return fallback
	}
	size := image.Pt(mon.Rect.Dx()*4/5, mon.Rect.Dy()*4/5)
	size.X = max(size.X, least.X)
	size.Y = max(size.Y, least.Y)
	return size
}
