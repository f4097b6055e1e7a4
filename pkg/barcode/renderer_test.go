package barcode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	binerrors "github.com/matzehuels/binlabel/pkg/errors"
	"github.com/matzehuels/binlabel/pkg/geometry"
	"github.com/matzehuels/binlabel/pkg/raster"
)

// scriptedEncoder fails with the queued errors before delegating.
type scriptedEncoder struct {
	errs  []error
	next  Encoder
	calls []Geometry
}

func (s *scriptedEncoder) Encode(payload string, g Geometry) (image.Image, error) {
	s.calls = append(s.calls, g)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	if s.next == nil {
		return imaging.New(10, 4, color.Black), nil
	}
	return s.next.Encode(payload, g)
}

func geomErr() error { return &GeometryError{Payload: "x", Reason: "test"} }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRenderClampsBeforeFirstAttempt(t *testing.T) {
	enc := &scriptedEncoder{}
	r := NewRenderer(enc, geometry.Default(), nil)

	_, err := r.Render("S04", Geometry{ModuleWidth: 0.01, ModuleHeight: 0.5, QuietZone: 0.1, DPI: 203})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(enc.calls) != 1 {
		t.Fatalf("encoder called %d times, want 1", len(enc.calls))
	}
	got := enc.calls[0]
	if !approx(got.ModuleWidth, 0.15) || !approx(got.QuietZone, 0.60) {
		t.Errorf("first attempt geometry = %+v, want module 0.15 quiet 0.60", got)
	}
	if got.ModuleHeight != 0.5 {
		t.Errorf("module height = %g, want 0.5 (never clamped)", got.ModuleHeight)
	}
}

func TestRenderClampMakesInfeasibleGeometryDrawable(t *testing.T) {
	g := Geometry{ModuleWidth: 0.05, ModuleHeight: 7, QuietZone: 0.05, DPI: 203}

	// Unclamped, the encoder rejects the geometry outright.
	if _, err := (Code128{}).Encode("ADS1115", g); err == nil {
		t.Fatal("unclamped geometry should be infeasible")
	}

	cfg := geometry.Default()
	cfg.Retry.Attempts = 1
	img, err := NewRenderer(Code128{}, cfg, nil).Render("ADS1115", g)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, ok := raster.InkBounds(img, raster.DefaultThreshold); !ok {
		t.Error("rendered barcode has no ink")
	}
}

func TestRenderRetriesGeometryErrors(t *testing.T) {
	enc := &scriptedEncoder{errs: []error{geomErr(), geomErr()}}
	r := NewRenderer(enc, geometry.Default(), nil)

	if _, err := r.Render("S04", defaultGeometry()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantWidths := []float64{0.42, 0.44, 0.46}
	wantQuiet := []float64{2.0, 2.1, 2.2}
	if len(enc.calls) != len(wantWidths) {
		t.Fatalf("encoder called %d times, want %d", len(enc.calls), len(wantWidths))
	}
	for i, g := range enc.calls {
		if !approx(g.ModuleWidth, wantWidths[i]) || !approx(g.QuietZone, wantQuiet[i]) {
			t.Errorf("attempt %d geometry = %+v, want module %g quiet %g", i+1, g, wantWidths[i], wantQuiet[i])
		}
	}
}

func TestRenderDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("unsupported character")
	enc := &scriptedEncoder{errs: []error{boom}}
	r := NewRenderer(enc, geometry.Default(), nil)

	_, err := r.Render("S04", defaultGeometry())
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Render() error = %v, want *RenderError", err)
	}
	if renderErr.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", renderErr.Attempts)
	}
	if !errors.Is(err, boom) {
		t.Error("RenderError should wrap the encoder error")
	}
	if len(enc.calls) != 1 {
		t.Errorf("encoder called %d times, want 1", len(enc.calls))
	}
	if !binerrors.Is(err, binerrors.ErrCodeBarcodeRender) {
		t.Errorf("code = %q, want BARCODE_RENDER", binerrors.GetCode(err))
	}
}

func TestRenderExhaustsAttempts(t *testing.T) {
	enc := &scriptedEncoder{errs: []error{geomErr(), geomErr(), geomErr(), geomErr(), geomErr()}}
	r := NewRenderer(enc, geometry.Default(), nil)

	_, err := r.Render("S04", defaultGeometry())
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Render() error = %v, want *RenderError", err)
	}
	if renderErr.Attempts != 4 || len(enc.calls) != 4 {
		t.Errorf("attempts = %d, calls = %d, want 4 and 4", renderErr.Attempts, len(enc.calls))
	}
	var last *GeometryError
	if !errors.As(err, &last) {
		t.Error("RenderError should carry the last geometry error")
	}
}

func TestRenderCropsToInk(t *testing.T) {
	uncropped, err := Code128{}.Encode("ADS1115", defaultGeometry())
	if err != nil {
		t.Fatal(err)
	}

	img, err := NewRenderer(Code128{}, geometry.Default(), nil).Render("ADS1115", defaultGeometry())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// Quiet zones (16px each) shrink to the 2px crop padding; height has no slack.
	if got, want := img.Bounds().Dx(), uncropped.Bounds().Dx()-32+4; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got := img.Bounds().Dy(); got != 56 {
		t.Errorf("height = %d, want 56", got)
	}
}

func TestRenderWithoutCrop(t *testing.T) {
	cfg := geometry.Default()
	cfg.Crop.Enabled = false

	img, err := NewRenderer(Code128{}, cfg, nil).Render("25", FromConfig(cfg.Qty, cfg.DPI))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if isInk(img, 0, 0) {
		t.Error("uncropped barcode should keep its quiet zone")
	}
}

func TestRenderPayloads(t *testing.T) {
	r := NewRenderer(Code128{}, geometry.Default(), nil)
	for _, payload := range []string{"A", "25", "S04", "ADS1115", "part-42/rev.B", strings.Repeat("AB12", 10)} {
		t.Run(payload, func(t *testing.T) {
			img, err := r.Render(payload, defaultGeometry())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
				t.Fatalf("empty image %v", img.Bounds())
			}
			if _, ok := raster.InkBounds(img, raster.DefaultThreshold); !ok {
				t.Error("rendered barcode has no ink")
			}
		})
	}
}

func TestRenderLongPayloadAfterRetry(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

	cfg := geometry.Default()
	cfg.DPI = 72
	enc := &scriptedEncoder{next: Code128{}}
	payload := strings.Repeat("A1", 20)

	// 0.42mm is still a whole pixel at 72dpi; start from a narrow module
	// that the clamp raises to 0.15mm, which is not.
	g := Geometry{ModuleWidth: 0.1, ModuleHeight: 7, QuietZone: 2, DPI: cfg.DPI}
	img, err := NewRenderer(enc, cfg, logger).Render(payload, g)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(enc.calls) < 2 {
		t.Errorf("encoder called %d times, want at least one retry", len(enc.calls))
	}
	if img.Bounds().Empty() {
		t.Error("Render() returned an empty image")
	}
	if !strings.Contains(logs.String(), "relaxing") {
		t.Errorf("retry was not logged:\n%s", logs.String())
	}
}

func TestRenderFailsAtUnreachableResolution(t *testing.T) {
	cfg := geometry.Default()
	cfg.DPI = 30

	_, err := NewRenderer(Code128{}, cfg, nil).Render("S04", Geometry{ModuleWidth: 0.1, ModuleHeight: 7, QuietZone: 2, DPI: 30})
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Render() error = %v, want *RenderError", err)
	}
	if renderErr.Attempts != cfg.Retry.Attempts {
		t.Errorf("Attempts = %d, want %d", renderErr.Attempts, cfg.Retry.Attempts)
	}
}
