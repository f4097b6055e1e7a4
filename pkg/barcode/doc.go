// Package barcode renders Code128 symbols for the label and recovers from
// infeasible symbol geometry.
//
// # Encoders
//
// An [Encoder] maps a payload and a [Geometry] to a raster. It is the only
// place that talks to the symbol library, and it is responsible for
// classifying failures: geometry the symbology cannot draw is reported as
// a *[GeometryError], anything else as a plain error. [Code128] is the
// default encoder, built on github.com/boombuler/barcode.
//
// # Adaptive rendering
//
// [Renderer] clamps module width and quiet zone to configured minimums,
// then calls the encoder up to a fixed number of times. Only a
// *GeometryError triggers another attempt, with module width and quiet
// zone relaxed by fixed increments. Every other error ends rendering at
// once. Successful renders are cropped to their ink bounds so that layout
// sees a tight block regardless of encoder padding.
//
//	r := barcode.NewRenderer(barcode.Code128{}, cfg, logger)
//	img, err := r.Render("ADS1115", barcode.FromConfig(cfg.Part, cfg.DPI))
package barcode
