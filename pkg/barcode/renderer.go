package barcode

import (
	"errors"
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/binlabel/pkg/geometry"
	"github.com/matzehuels/binlabel/pkg/observability"
	"github.com/matzehuels/binlabel/pkg/raster"
)

// Renderer renders barcodes with bounded geometry relaxation.
type Renderer struct {
	encoder Encoder
	retry   geometry.Retry
	crop    geometry.Crop
	logger  *log.Logger
}

// NewRenderer returns a Renderer using the retry and crop settings of cfg.
// A nil logger discards output.
func NewRenderer(enc Encoder, cfg geometry.Config, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{
		encoder: enc,
		retry:   cfg.Retry,
		crop:    cfg.Crop,
		logger:  logger,
	}
}

// Render draws payload at g. Module width and quiet zone are raised to the
// configured minimums before the first attempt; module height is used as
// given. On *GeometryError both are bumped and the encoder is tried again,
// up to the configured number of attempts. The result is cropped to its
// ink bounds when cropping is enabled.
//
// Failures are returned as *RenderError.
func (r *Renderer) Render(payload string, g Geometry) (image.Image, error) {
	g.ModuleWidth = max(g.ModuleWidth, r.retry.MinModuleWidth)
	g.QuietZone = max(g.QuietZone, r.retry.MinQuietZone)

	hooks := observability.Barcode()
	var lastErr error
	for attempt := 1; attempt <= r.retry.Attempts; attempt++ {
		r.logger.Debug("rendering barcode", "payload", payload, "attempt", attempt,
			"module_width", g.ModuleWidth, "quiet_zone", g.QuietZone)

		img, err := r.encoder.Encode(payload, g)
		hooks.OnAttempt(payload, attempt, g.ModuleWidth, g.QuietZone, err)
		if err == nil {
			if r.crop.Enabled {
				img = raster.CropToInk(img, r.crop.PadPx, uint8(r.crop.Threshold))
			}
			return img, nil
		}

		lastErr = err
		var geomErr *GeometryError
		if !errors.As(err, &geomErr) {
			return nil, &RenderError{Payload: payload, Attempts: attempt, Cause: err}
		}

		g.ModuleWidth += r.retry.BumpModuleWidth
		g.QuietZone += r.retry.BumpQuietZone
		if attempt < r.retry.Attempts {
			r.logger.Warn("barcode geometry infeasible, relaxing", "payload", payload,
				"attempt", attempt, "module_width", g.ModuleWidth, "quiet_zone", g.QuietZone)
		}
	}
	return nil, &RenderError{Payload: payload, Attempts: r.retry.Attempts, Cause: lastErr}
}
