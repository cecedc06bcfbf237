package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Soft shadow drawn under the canvas in the editor view.
const ShadowRadius = 8

// ShadowOffset moves the canvas shadow down and to the right.
var ShadowOffset = image.Pt(4, 4)

// drawShadow composites a blurred copy of rect, moved by offset, onto dst.
// Only the part that can reach dst is blurred, so zoomed canvases far
// larger than the window stay cheap.
func drawShadow(dst *image.RGBA, rect image.Rectangle, radius int, offset image.Point, col color.RGBA) {
	if rect.Empty() || col.A == 0 {
		return
	}
	if radius < 0 {
		radius = 0
	}
	body := rect.Add(offset)
	area := body.Inset(-radius).Intersect(dst.Bounds().Inset(-radius))
	if area.Empty() {
		return
	}
	mask := image.NewGray(area.Sub(area.Min))
	draw.Draw(mask, body.Intersect(area).Sub(area.Min), image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)
	draw.DrawMask(dst, area, image.NewUniform(col), image.Point{}, blurred, image.Point{}, draw.Over)
}

// blurGray is a separable box blur. Windows are clamped at the edges.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
