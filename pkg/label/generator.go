package label

import (
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"github.com/matzehuels/binlabel/pkg/barcode"
	"github.com/matzehuels/binlabel/pkg/errors"
	"github.com/matzehuels/binlabel/pkg/geometry"
	"github.com/matzehuels/binlabel/pkg/layout"
	"github.com/matzehuels/binlabel/pkg/observability"
	"github.com/matzehuels/binlabel/pkg/raster"
	"github.com/matzehuels/binlabel/pkg/text"
)

// Generator composes and saves labels for one configuration.
type Generator struct {
	cfg     geometry.Config
	encoder barcode.Encoder
	fonts   []text.Source
	logger  *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithEncoder replaces the Code128 encoder.
func WithEncoder(enc barcode.Encoder) Option {
	return func(g *Generator) { g.encoder = enc }
}

// WithFontSources replaces the font candidates. The built-in face remains
// the final fallback.
func WithFontSources(sources ...text.Source) Option {
	return func(g *Generator) { g.fonts = sources }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New returns a Generator for cfg. cfg is used as given; call
// cfg.Validate first when it comes from user input.
func New(cfg geometry.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:     cfg,
		encoder: barcode.Code128{},
		fonts:   text.DefaultSources(true),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return g
}

// Config returns the geometry the Generator was built with.
func (g *Generator) Config() geometry.Config { return g.cfg }

// element is a rendered block waiting for placement.
type element struct {
	img  image.Image
	kind layout.Element
}

// Compose renders spec into an opaque image. Bin and Out defaults are
// applied first. The canvas is rotated when the configuration asks for a
// print rotation.
func (g *Generator) Compose(spec Spec) (*image.RGBA, error) {
	start := time.Now()
	img, err := g.compose(spec.WithDefaults())
	observability.Label().OnCompose(spec.Part, time.Since(start), err)
	return img, err
}

func (g *Generator) compose(spec Spec) (*image.RGBA, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	px := g.cfg.Pixels()
	fonts := text.Loader{Sources: g.fonts, Logger: g.logger}
	renderer := barcode.NewRenderer(g.encoder, g.cfg, g.logger)

	partFace, partFont := fonts.Load(g.cfg.Fonts.Part)
	qtyFace, _ := fonts.Load(g.cfg.Fonts.Qty)
	binFace, _ := fonts.Load(g.cfg.Fonts.Bin)
	g.logger.Debug("fonts ready", "part", partFont)

	partBar, err := renderer.Render(spec.Part, barcode.FromConfig(g.cfg.Part, g.cfg.DPI))
	if err != nil {
		return nil, err
	}
	qtyBar, err := renderer.Render(spec.Qty, barcode.FromConfig(g.cfg.Qty, g.cfg.DPI))
	if err != nil {
		return nil, err
	}
	binBlock, err := g.binBlock(spec.Bin, binFace, renderer)
	if err != nil {
		return nil, err
	}

	elements := []element{
		{text.Render(spec.Part, partFace), layout.PartText},
		{partBar, layout.PartBarcode},
		{text.Render(spec.Qty, qtyFace), layout.QtyText},
		{qtyBar, layout.QtyBarcode},
		{binBlock, layout.BinBlock},
	}

	l := layout.Compute(px, layout.Inputs{
		PartText:    layout.SizeOf(elements[0].img),
		PartBarcode: layout.SizeOf(elements[1].img),
		QtyText:     layout.SizeOf(elements[2].img),
		QtyBarcode:  layout.SizeOf(elements[3].img),
		BinBlock:    layout.SizeOf(elements[4].img),
	})
	g.logger.Debug("layout computed", "stack_top", l.StackTop, "stack_height", l.StackHeight)

	canvas := imaging.New(px.Width, px.Height, color.White)
	for _, el := range elements {
		r, ok := l.Rect(el.kind)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "no placement for %s", el.kind)
		}
		canvas = imaging.Overlay(canvas, el.img, r.Min, 1.0)
	}

	out := raster.Rotate(canvas, g.cfg.PrintRotation)
	return raster.Flatten(out, color.White), nil
}

// binBlock draws the bin text above its barcode on a transparent block and
// turns it by the configured bin rotation.
func (g *Generator) binBlock(bin string, face font.Face, renderer *barcode.Renderer) (image.Image, error) {
	bar, err := renderer.Render(bin, barcode.FromConfig(g.cfg.Bin, g.cfg.DPI))
	if err != nil {
		return nil, err
	}
	txt := text.Render(bin, face)

	arr := layout.Stack(layout.SizeOf(txt), layout.SizeOf(bar), g.cfg.Pixels().GapBinTextToBar)
	block := imaging.New(arr.Size.W, arr.Size.H, color.Transparent)
	block = imaging.Overlay(block, txt, arr.Text, 1.0)
	block = imaging.Overlay(block, bar, arr.Barcode, 1.0)
	return raster.Rotate(block, g.cfg.BinRotation), nil
}
