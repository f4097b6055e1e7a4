package text

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// inkBox returns the pixel-aligned ink rectangle of s relative to the pen
// origin on the baseline.
func inkBox(s string, face font.Face) image.Rectangle {
	b, _ := font.BoundString(face, s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// Measure returns the width and height of the ink drawn for s, without
// drawing it.
func Measure(s string, face font.Face) (w, h int) {
	r := inkBox(s, face)
	return r.Dx(), r.Dy()
}

// Render draws s in black on a transparent block sized exactly as
// [Measure] reports, with the ink's top-left corner at the origin.
func Render(s string, face font.Face) image.Image {
	r := inkBox(s, face)
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawString(s, float64(-r.Min.X), float64(-r.Min.Y))
	return dc.Image()
}
