// Package geometry defines the label geometry: the physical constants of the
// single label template and the pixel values derived from them.
//
// A Config is an immutable value. It is built once per invocation, from
// [Default] optionally overlaid with a TOML profile via [Load], and passed
// by value into every render and layout step.
package geometry

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/binlabel/pkg/errors"
	"github.com/matzehuels/binlabel/pkg/raster"
)

// mmPerInch converts barcode geometry, which is given in millimetres.
const mmPerInch = 25.4

// Barcode holds the per-symbol geometry in millimetres.
type Barcode struct {
	ModuleWidth  float64 `toml:"module_width"`
	ModuleHeight float64 `toml:"module_height"`
	QuietZone    float64 `toml:"quiet_zone"`
}

// Fonts holds font sizes in pixels.
type Fonts struct {
	Part float64 `toml:"part"`
	Qty  float64 `toml:"qty"`
	Bin  float64 `toml:"bin"`
}

// Crop controls ink-bounds cropping of rendered barcodes.
type Crop struct {
	Enabled   bool `toml:"enabled"`
	Threshold int  `toml:"threshold"`
	PadPx     int  `toml:"pad_px"`
}

// Retry controls adaptive barcode rendering. Minimums and bumps are in
// millimetres.
type Retry struct {
	MinModuleWidth  float64 `toml:"min_module_width"`
	MinQuietZone    float64 `toml:"min_quiet_zone"`
	Attempts        int     `toml:"attempts"`
	BumpModuleWidth float64 `toml:"bump_module_width"`
	BumpQuietZone   float64 `toml:"bump_quiet_zone"`
}

// Config is the complete label geometry. Lengths suffixed In are inches.
type Config struct {
	LabelWidthIn  float64 `toml:"label_width_in"`
	LabelHeightIn float64 `toml:"label_height_in"`
	DPI           int     `toml:"dpi"`

	MarginIn     float64 `toml:"margin_in"`
	RightColFrac float64 `toml:"right_col_frac"`
	ColGapIn     float64 `toml:"col_gap_in"`

	GapPartTextToBarIn    float64 `toml:"gap_part_text_to_bar_in"`
	GapPartBarToQtyTextIn float64 `toml:"gap_part_bar_to_qty_text_in"`
	GapQtyTextToBarIn     float64 `toml:"gap_qty_text_to_bar_in"`
	GapBinTextToBarIn     float64 `toml:"gap_bin_text_to_bar_in"`

	Fonts Fonts   `toml:"fonts"`
	Part  Barcode `toml:"part"`
	Qty   Barcode `toml:"qty"`
	Bin   Barcode `toml:"bin"`
	Crop  Crop    `toml:"crop"`
	Retry Retry   `toml:"retry"`

	// BinRotation turns the composed bin block before placement.
	BinRotation raster.Rotation `toml:"bin_rotation"`
	// PrintRotation turns the finished canvas for printers whose feed
	// orientation differs from the design orientation.
	PrintRotation raster.Rotation `toml:"print_rotation"`
}

// Default returns the 3" x 1" landscape template at 203 dpi.
func Default() Config {
	return Config{
		LabelWidthIn:  3.0,
		LabelHeightIn: 1.0,
		DPI:           203,

		MarginIn:     0.08,
		RightColFrac: 0.28,
		ColGapIn:     0.06,

		GapPartTextToBarIn:    0.03,
		GapPartBarToQtyTextIn: 0.05,
		GapQtyTextToBarIn:     0.03,
		GapBinTextToBarIn:     0.02,

		Fonts: Fonts{Part: 24, Qty: 26, Bin: 22},
		Part:  Barcode{ModuleWidth: 0.42, ModuleHeight: 7.0, QuietZone: 2.0},
		Qty:   Barcode{ModuleWidth: 0.42, ModuleHeight: 6.0, QuietZone: 2.0},
		Bin:   Barcode{ModuleWidth: 0.42, ModuleHeight: 7.0, QuietZone: 2.0},
		Crop:  Crop{Enabled: true, Threshold: raster.DefaultThreshold, PadPx: 2},
		Retry: Retry{
			MinModuleWidth:  0.15,
			MinQuietZone:    0.60,
			Attempts:        4,
			BumpModuleWidth: 0.02,
			BumpQuietZone:   0.10,
		},

		BinRotation:   raster.RotateCCW,
		PrintRotation: raster.RotateNone,
	}
}

// Load reads a TOML profile from r and overlays it on [Default]. Keys that
// do not belong to Config are rejected so that typos do not pass silently.
// The result is validated.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode profile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in profile: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load for a profile on disk.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open profile")
	}
	defer f.Close()
	return Load(f)
}

// Encode writes cfg as a TOML profile.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks that the configuration describes a drawable label.
// Module height is deliberately left unchecked beyond being finite.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	switch {
	case c.DPI <= 0:
		return invalid("dpi must be positive, got %d", c.DPI)
	case c.LabelWidthIn <= 0 || c.LabelHeightIn <= 0:
		return invalid("label size must be positive, got %gx%g in", c.LabelWidthIn, c.LabelHeightIn)
	case c.RightColFrac <= 0 || c.RightColFrac >= 1:
		return invalid("right_col_frac must be in (0, 1), got %g", c.RightColFrac)
	case c.MarginIn < 0 || c.ColGapIn < 0:
		return invalid("margins and column gap cannot be negative")
	case c.GapPartTextToBarIn < 0 || c.GapPartBarToQtyTextIn < 0 || c.GapQtyTextToBarIn < 0 || c.GapBinTextToBarIn < 0:
		return invalid("element gaps cannot be negative")
	case c.Fonts.Part <= 0 || c.Fonts.Qty <= 0 || c.Fonts.Bin <= 0:
		return invalid("font sizes must be positive")
	case c.Crop.Threshold < 0 || c.Crop.Threshold > 255:
		return invalid("crop threshold must be within 0..255, got %d", c.Crop.Threshold)
	case c.Crop.PadPx < 0:
		return invalid("crop pad cannot be negative, got %d", c.Crop.PadPx)
	case c.Retry.Attempts < 1:
		return invalid("retry attempts must be at least 1, got %d", c.Retry.Attempts)
	case c.Retry.BumpModuleWidth < 0 || c.Retry.BumpQuietZone < 0:
		return invalid("retry bumps cannot be negative")
	}

	for name, b := range map[string]Barcode{"part": c.Part, "qty": c.Qty, "bin": c.Bin} {
		if math.IsNaN(b.ModuleWidth) || math.IsNaN(b.ModuleHeight) || math.IsNaN(b.QuietZone) ||
			math.IsInf(b.ModuleHeight, 0) {
			return invalid("%s barcode geometry is not a number", name)
		}
	}

	usable := c.Pixels().UsableWidth
	if usable <= 0 {
		return invalid("margins leave no usable width")
	}

	for name, r := range map[string]raster.Rotation{"bin_rotation": c.BinRotation, "print_rotation": c.PrintRotation} {
		if _, err := raster.ParseRotation(string(r)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		}
	}
	return nil
}

// String returns a short human summary, e.g. "3x1in @ 203dpi".
func (c Config) String() string {
	return fmt.Sprintf("%gx%gin @ %ddpi", c.LabelWidthIn, c.LabelHeightIn, c.DPI)
}
