package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionMargin = 6

// drawCaption writes text on a dark strip along the bottom edge.
func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	if b.Dy() < lineHeight+2*captionMargin {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 240, G: 240, B: 235, A: 255}),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	strip := image.Rect(b.Min.X, b.Max.Y-lineHeight-2*captionMargin, min(b.Max.X, b.Min.X+width+2*captionMargin), b.Max.Y)
	shadeRect(img, strip)

	d.Dot = fixed.P(b.Min.X+captionMargin, b.Max.Y-captionMargin-m.Descent.Ceil())
	d.DrawString(text)
}

func shadeRect(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 255})
		}
	}
}
