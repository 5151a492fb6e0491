package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/feature"
	recordio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/pipeline"
)

// cropCommand creates the crop command, which writes the part of a record
// inside a coordinate window.
func (c *CLI) cropCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "crop [input] [start:end]",
		Short: "Cut a record down to a coordinate window",
		Long: `Cut a record down to a coordinate window.

Features overlapping the window are kept and clipped to it; coordinates stay
absolute, so a feature at 1200 in the input is still at 1200 in the output.
The result is written as JSON or YAML (chosen by the output extension) and
can be used as input to every other command.`,
		Example: `  featuremap crop pUC19.gb 200:1400 -o lac.yaml
  featuremap crop genome.gff 10000..25000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Crop = args[1]
			return c.runCrop(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .yaml (default: <input>.<start>-<end>.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Circular, "circular", false, "force circular topology")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "TOML theme controlling colors, labels and filtering")

	return cmd
}

func (c *CLI) runCrop(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	rng, err := feature.ParseRange(opts.Crop)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rec, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	if output == "-" {
		return recordio.WriteYAML(rec, stdout)
	}
	if output == "" {
		output = fmt.Sprintf("%s.%d-%d.json", basePath("", opts.Input), rng.Start, rng.End)
	}
	if err := recordio.Export(rec, output); err != nil {
		return err
	}

	printSuccess("Cropped to %s", rng)
	printFile(output)
	printDetail("%d features", len(rec.Features))
	return nil
}
