package barcode

import (
	"fmt"
	"image"
	"image/color"

	boombuler "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/binlabel/pkg/geometry"
)

// Geometry is the physical layout of one symbol. Lengths are millimetres.
type Geometry struct {
	ModuleWidth  float64
	ModuleHeight float64
	QuietZone    float64
	DPI          int
}

// FromConfig builds a Geometry from a configured barcode at dpi.
func FromConfig(b geometry.Barcode, dpi int) Geometry {
	return Geometry{
		ModuleWidth:  b.ModuleWidth,
		ModuleHeight: b.ModuleHeight,
		QuietZone:    b.QuietZone,
		DPI:          dpi,
	}
}

// Encoder turns a payload into a barcode raster. Implementations must
// report infeasible geometry as *GeometryError and must not return it for
// any other failure.
type Encoder interface {
	Encode(payload string, g Geometry) (image.Image, error)
}

// Code128 encodes Code128 symbols, black bars on white with no human
// readable text, using github.com/boombuler/barcode.
type Code128 struct{}

// Encode implements Encoder. The raster is quiet zone + symbol + quiet zone
// wide and exactly one module height tall.
func (Code128) Encode(payload string, g Geometry) (image.Image, error) {
	modulePx := geometry.MMToPx(g.ModuleWidth, g.DPI)
	quietPx := geometry.MMToPx(g.QuietZone, g.DPI)
	heightPx := geometry.MMToPx(g.ModuleHeight, g.DPI)

	if modulePx < 1 {
		return nil, &GeometryError{Payload: payload, Geometry: g, Reason: "module width is below one pixel"}
	}
	if quietPx < 1 {
		return nil, &GeometryError{Payload: payload, Geometry: g, Reason: "quiet zone is below one pixel"}
	}
	if heightPx < 1 {
		return nil, fmt.Errorf("module height %.3fmm is below one pixel at %ddpi", g.ModuleHeight, g.DPI)
	}

	symbol, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}

	modules := symbol.Bounds().Dx()
	bars, err := boombuler.Scale(symbol, modules*modulePx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("scale code128: %w", err)
	}

	out := imaging.New(modules*modulePx+2*quietPx, heightPx, color.White)
	return imaging.Paste(out, bars, image.Pt(quietPx, 0)), nil
}

var _ Encoder = Code128{}
