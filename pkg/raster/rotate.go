package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// Rotation is a quarter-turn choice applied to a block or a whole canvas.
type Rotation string

// Supported rotations.
const (
	RotateNone Rotation = "none"
	RotateCW   Rotation = "cw"
	RotateCCW  Rotation = "ccw"
)

// ParseRotation parses a rotation name case-insensitively. The empty string
// means RotateNone.
func ParseRotation(s string) (Rotation, error) {
	switch r := Rotation(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RotateNone, nil
	case RotateNone, RotateCW, RotateCCW:
		return r, nil
	default:
		return "", fmt.Errorf("invalid rotation: %q (must be one of: none, cw, ccw)", s)
	}
}

// String implements fmt.Stringer.
func (r Rotation) String() string { return string(r) }

// MarshalText implements encoding.TextMarshaler.
func (r Rotation) MarshalText() ([]byte, error) {
	if r == "" {
		return []byte(RotateNone), nil
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rotation) UnmarshalText(b []byte) error {
	v, err := ParseRotation(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Rotate turns img by a quarter turn in the given direction, swapping its
// width and height. RotateNone returns img as is.
func Rotate(img image.Image, r Rotation) image.Image {
	switch r {
	case RotateCW:
		return imaging.Rotate270(img)
	case RotateCCW:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// Flatten composites img over an opaque background and returns a fully
// opaque RGBA image anchored at (0,0). PNG encoders write such images
// without an alpha channel.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
