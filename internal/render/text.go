package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/designstudio/internal/colorutil"
	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/textmeasure"
)

// drawText paints a single line into dst, sized to the text box, using the
// same padding the measurer adds.
func drawText(dst *image.RGBA, m *textmeasure.Measurer, t *design.Text) error {
	if t.Text == "" {
		return nil
	}
	face, err := m.Face(t)
	if err != nil {
		return err
	}
	adv := font.MeasureString(face, t.Text)
	metrics := face.Metrics()
	w := dst.Bounds().Dx()

	x := fixed.I(textmeasure.PadX / 2)
	switch t.TextAlign {
	case "center":
		x = (fixed.I(w) - adv) / 2
	case "right":
		x = fixed.I(w-textmeasure.PadX/2) - adv
	}
	baseline := fixed.I(textmeasure.PadY/2) + metrics.Ascent
	src := image.NewUniform(colorutil.ParseOr(t.Color, color.RGBA{A: 255}))
	d := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: fixed.Point26_6{X: x, Y: baseline}}
	d.DrawString(t.Text)

	thick := int(t.FontSize/14 + 0.5)
	if thick < 1 {
		thick = 1
	}
	var y int
	switch t.TextDecoration {
	case "underline":
		y = baseline.Ceil() + (metrics.Descent.Ceil()+1)/3
	case "line-through":
		y = baseline.Ceil() - metrics.XHeight.Ceil()/2
	default:
		return nil
	}
	line := image.Rect(x.Floor(), y, (x + adv).Ceil(), y+thick)
	draw.Draw(dst, line, src, image.Point{}, draw.Over)
	return nil
}
