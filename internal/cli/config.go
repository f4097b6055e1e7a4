package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/binlabel/pkg/errors"
	"github.com/matzehuels/binlabel/pkg/geometry"
	"github.com/matzehuels/binlabel/pkg/raster"
)

// profileOpts are the geometry overrides shared by generate and config.
// Flags win over the profile, which wins over the defaults.
type profileOpts struct {
	path   string
	rotate string
	dpi    int
	noCrop bool
}

func (o *profileOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.path, "config", "c", "", "TOML geometry profile")
	f.StringVar(&o.rotate, "rotate", "", "print rotation: none, cw, ccw")
	f.IntVar(&o.dpi, "dpi", 0, "printer resolution (overrides profile)")
	f.BoolVar(&o.noCrop, "no-crop", false, "keep barcode quiet zones instead of cropping to ink")
}

// resolve builds the effective configuration. Only flags the user actually
// set override the profile.
func (o *profileOpts) resolve(cmd *cobra.Command) (geometry.Config, error) {
	cfg := geometry.Default()
	if o.path != "" {
		loaded, err := geometry.LoadFile(o.path)
		if err != nil {
			return geometry.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("rotate") {
		r, err := raster.ParseRotation(o.rotate)
		if err != nil {
			return geometry.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--rotate")
		}
		cfg.PrintRotation = r
	}
	if f.Changed("dpi") {
		cfg.DPI = o.dpi
	}
	if o.noCrop {
		cfg.Crop.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return geometry.Config{}, err
	}
	return cfg, nil
}

// configCommand prints the effective configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var opts profileOpts

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective label geometry as TOML",
		Long: `Print the label geometry that generate would use, after applying the
profile and flag overrides. The output is a valid profile:

  binlabel config --dpi 300 > printer300.toml
  binlabel generate --config printer300.toml --part ADS1115 --qty 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("effective config", "geometry", cfg.String())
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	opts.addFlags(cmd)
	return cmd
}
