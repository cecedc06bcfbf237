package viewport

import (
	"math"
	"testing"

	"github.com/example/designstudio/internal/geom"
)

func TestTransformRoundTrip(t *testing.T) {
	tests := []Transform{
		{Zoom: 1},
		{Zoom: 0.5, Pan: geom.Pt(40, -12)},
		{Zoom: 2.75, Pan: geom.Pt(-300, 125), Origin: geom.Pt(48, 24)},
		{Zoom: 0.1, Origin: geom.Pt(10, 10)},
	}
	points := []geom.Point{{}, geom.Pt(1, 1), geom.Pt(123.5, 987.25), geom.Pt(-40, 600)}
	for _, tr := range tests {
		for _, p := range points {
			back := tr.ScreenToCanvas(tr.CanvasToScreen(p))
			if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
				t.Fatalf("%+v: round trip of %v gave %v", tr, p, back)
			}
		}
	}
}

func TestScreenToCanvasFormula(t *testing.T) {
	tr := Transform{Zoom: 2, Pan: geom.Pt(10, 20), Origin: geom.Pt(100, 50)}
	got := tr.ScreenToCanvas(geom.Pt(210, 170))
	want := geom.Pt(50, 50)
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRectToScreen(t *testing.T) {
	tr := Transform{Zoom: 2, Pan: geom.Pt(5, 5)}
	got := tr.RectToScreen(geom.R(10, 10, 20, 30))
	if got != geom.R(25, 25, 40, 60) {
		t.Fatalf("unexpected rect %v", got)
	}
}
