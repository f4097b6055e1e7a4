package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/binlabel/pkg/label"
)

type generateOpts struct {
	part    string
	qty     string
	bin     string
	out     string
	profile profileOpts
}

// generateCommand renders one label to PNG.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a label PNG",
		Long: `Render a 3" x 1" label with Code128 barcodes for the part number and
quantity on the left and the bin location, turned a quarter, on the right.

The output defaults to label_<part>_<qty>.png in the current directory.`,
		Example: `  binlabel generate --part ADS1115 --qty 25
  binlabel generate --part LM358 --qty 100 --bin A12 --rotate cw -o out/lm358.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.part, "part", "", "part number (required)")
	f.StringVar(&opts.qty, "qty", "", "quantity (required)")
	f.StringVar(&opts.bin, "bin", label.DefaultBin, "bin location")
	f.StringVarP(&opts.out, "out", "o", "", "output file (default label_<part>_<qty>.png)")
	cmd.MarkFlagRequired("part")
	cmd.MarkFlagRequired("qty")
	opts.profile.addFlags(cmd)

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := opts.profile.resolve(cmd)
	if err != nil {
		return err
	}
	logger.Debug("geometry", "label", cfg.String(), "print_rotation", cfg.PrintRotation, "crop", cfg.Crop.Enabled)

	prog := newProgress(logger)
	res, err := label.New(cfg, label.WithLogger(logger)).Generate(label.Spec{
		Part: opts.part,
		Qty:  opts.qty,
		Bin:  opts.bin,
		Out:  opts.out,
	})
	if err != nil {
		return err
	}
	prog.done("Rendered label", "part", opts.part, "qty", opts.qty)

	w := cmd.OutOrStdout()
	printSuccess(w, "Wrote label %s", StyleNumber.Render(fmt.Sprintf("(%dx%dpx @ %ddpi)", res.Width, res.Height, res.DPI)))
	printFile(w, res.Path)
	printKeyValue(w, "sha256", res.SHA256[:12])
	return nil
}
