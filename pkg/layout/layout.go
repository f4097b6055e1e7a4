// Package layout places the label elements on the canvas.
//
// Layout is pure integer geometry: it takes the pixel geometry of the
// template and the sizes of already rendered elements and returns where
// each element goes. Nothing is scaled or truncated; an element wider than
// its column is still centred and overflows evenly on both sides, and a
// left stack taller than the canvas starts above it.
//
// All halving uses floor division so negative slack rounds the same way
// for every element.
package layout

import (
	"fmt"
	"image"

	"github.com/matzehuels/binlabel/pkg/geometry"
)

// Element identifies a placed block.
type Element int

// Elements in compositing order.
const (
	PartText Element = iota
	PartBarcode
	QtyText
	QtyBarcode
	BinBlock
)

var elementNames = [...]string{"part text", "part barcode", "qty text", "qty barcode", "bin block"}

// String implements fmt.Stringer.
func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Size is a block size in pixels.
type Size struct {
	W, H int
}

// SizeOf returns the size of img.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{W: b.Dx(), H: b.Dy()}
}

// Inputs are the measured sizes of everything on the label. BinBlock is
// the bin block after rotation.
type Inputs struct {
	PartText    Size
	PartBarcode Size
	QtyText     Size
	QtyBarcode  Size
	BinBlock    Size
}

// Placement is an element and its absolute rectangle on the canvas.
type Placement struct {
	Element Element
	Rect    image.Rectangle
}

// Layout is the result of Compute.
type Layout struct {
	// Placements are in compositing order: the left column top to bottom,
	// then the bin block.
	Placements []Placement
	// StackTop is the y of the first left-column element; it may be
	// negative.
	StackTop int
	// StackHeight is the total height of the left column including gaps.
	StackHeight int
}

// Rect returns the rectangle of e, if placed.
func (l Layout) Rect(e Element) (image.Rectangle, bool) {
	for _, p := range l.Placements {
		if p.Element == e {
			return p.Rect, true
		}
	}
	return image.Rectangle{}, false
}

// Compute places the four left-column elements as a vertically centred
// stack and the bin block centred in the right column.
func Compute(px geometry.Pixels, in Inputs) Layout {
	stack := []struct {
		e   Element
		s   Size
		gap int // gap below the element
	}{
		{PartText, in.PartText, px.GapPartTextToBar},
		{PartBarcode, in.PartBarcode, px.GapPartBarToQtyText},
		{QtyText, in.QtyText, px.GapQtyTextToBar},
		{QtyBarcode, in.QtyBarcode, 0},
	}

	var height int
	for _, item := range stack {
		height += item.s.H + item.gap
	}

	l := Layout{
		Placements:  make([]Placement, 0, len(stack)+1),
		StackTop:    floorHalf(px.Height - height),
		StackHeight: height,
	}

	y := l.StackTop
	for _, item := range stack {
		x := px.LeftX + floorHalf(px.LeftColWidth-item.s.W)
		l.Placements = append(l.Placements, Placement{
			Element: item.e,
			Rect:    image.Rect(x, y, x+item.s.W, y+item.s.H),
		})
		y += item.s.H + item.gap
	}

	bx := px.RightX + floorHalf(px.RightColWidth-in.BinBlock.W)
	by := floorHalf(px.Height - in.BinBlock.H)
	l.Placements = append(l.Placements, Placement{
		Element: BinBlock,
		Rect:    image.Rect(bx, by, bx+in.BinBlock.W, by+in.BinBlock.H),
	})
	return l
}

// Block is the arrangement of the bin text above the bin barcode before
// rotation. Text and Barcode are offsets inside the block.
type Block struct {
	Size    Size
	Text    image.Point
	Barcode image.Point
}

// Stack arranges text above barcode separated by gap, both horizontally
// centred on the wider of the two.
func Stack(text, barcode Size, gap int) Block {
	w := max(text.W, barcode.W)
	return Block{
		Size:    Size{W: w, H: text.H + gap + barcode.H},
		Text:    image.Pt(floorHalf(w-text.W), 0),
		Barcode: image.Pt(floorHalf(w-barcode.W), text.H+gap),
	}
}

// floorHalf is n/2 rounded toward negative infinity.
func floorHalf(n int) int {
	return n >> 1
}
