package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultThreshold is the luminance below which a pixel counts as ink.
const DefaultThreshold = 250

// InkBounds returns the smallest rectangle containing every pixel whose
// luminance is below threshold. Alpha is ignored. The rectangle is in the
// coordinate space of img. ok is false when img contains no ink.
func InkBounds(img image.Image, threshold uint8) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	gray := imaging.Grayscale(img) // rebased to (0,0)

	minX, minY := b.Dx(), b.Dy()
	maxX, maxY := -1, -1
	for y := 0; y < gray.Rect.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+gray.Rect.Dx()*4]
		for x := 0; x < gray.Rect.Dx(); x++ {
			if row[x*4] >= threshold {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Add(b.Min), true
}

// CropToInk crops img to its ink bounding box grown by pad pixels on every
// side and clamped to the image bounds. An image without ink is returned
// unchanged.
func CropToInk(img image.Image, pad int, threshold uint8) image.Image {
	box, ok := InkBounds(img, threshold)
	if !ok {
		return img
	}
	box = box.Inset(-pad).Intersect(img.Bounds())
	return imaging.Crop(img, box)
}
