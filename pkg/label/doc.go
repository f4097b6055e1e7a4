// Package label produces a finished bin label.
//
// A [Generator] runs the whole pipeline for one [Spec]: load fonts, draw the
// texts, render the three barcodes, arrange and rotate the bin block, lay
// out the canvas, composite, apply the optional print rotation and save an
// opaque PNG. Any failure aborts the label; nothing is written to the
// output path unless the image is complete.
//
// # Usage
//
//	g := label.New(geometry.Default(), label.WithLogger(logger))
//	res, err := g.Generate(label.Spec{Part: "ADS1115", Qty: "25", Bin: "S04"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Path, res.Width, res.Height)
//
// A Generator holds only immutable values. Separate goroutines or
// processes may generate labels at the same time as long as their output
// paths differ.
package label
