package geometry

import "math"

// Pixels is the pixel geometry derived from a Config. Physical lengths are
// truncated toward zero, so 0.08in at 203dpi is 16px.
type Pixels struct {
	Width, Height int

	Margin int
	ColGap int

	GapPartTextToBar    int
	GapPartBarToQtyText int
	GapQtyTextToBar     int
	GapBinTextToBar     int

	UsableWidth   int
	LeftColWidth  int
	RightColWidth int
	LeftX         int
	RightX        int
}

// Pixels derives the pixel geometry of the canvas and its two columns.
func (c Config) Pixels() Pixels {
	in := func(v float64) int { return int(v * float64(c.DPI)) }

	p := Pixels{
		Width:  in(c.LabelWidthIn),
		Height: in(c.LabelHeightIn),
		Margin: in(c.MarginIn),
		ColGap: in(c.ColGapIn),

		GapPartTextToBar:    in(c.GapPartTextToBarIn),
		GapPartBarToQtyText: in(c.GapPartBarToQtyTextIn),
		GapQtyTextToBar:     in(c.GapQtyTextToBarIn),
		GapBinTextToBar:     in(c.GapBinTextToBarIn),
	}
	p.UsableWidth = p.Width - 2*p.Margin
	p.RightColWidth = int(float64(p.UsableWidth) * c.RightColFrac)
	p.LeftColWidth = p.UsableWidth - p.RightColWidth - p.ColGap
	p.LeftX = p.Margin
	p.RightX = p.LeftX + p.LeftColWidth + p.ColGap
	return p
}

// MMToPx converts millimetres to whole pixels at dpi, rounding to nearest.
func MMToPx(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / mmPerInch))
}
