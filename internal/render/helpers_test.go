package render

import (
	"github.com/example/designstudio/internal/geom"
	"github.com/example/designstudio/internal/viewport"
)

func viewportAt(zoom float64, origin geom.Point) viewport.Transform {
	return viewport.Transform{Zoom: zoom, Origin: origin}
}
