package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/pipeline"
	"github.com/matzehuels/featuremap/pkg/render/overlap"
)

// overlapsCommand creates the overlaps command, which draws the feature
// overlap graph behind a layout.
func (c *CLI) overlapsCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		noCache  bool
		scale    float64
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "overlaps [input]",
		Short: "Draw the feature overlap graph with Graphviz",
		Long: `Draw the feature overlap graph with Graphviz.

Every feature becomes a node; two nodes are joined when the features occupy
intersecting intervals and so can never share a level. Nodes are ranked by
the level they were assigned. The output type follows the -o extension:
.svg (default), .png or .dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runOverlaps(cmd.Context(), opts, output, detailed, scale, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.overlaps.svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show coordinates, strand and level on nodes")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLoadFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.PointWidth, "point-width", opts.PointWidth, "drawn width of zero-length features")

	return cmd
}

func (c *CLI) runOverlaps(ctx context.Context, opts pipeline.Options, output string, detailed bool, scale float64, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// labels do not affect levels
	opts.NoLabels = true
	plan, rec, _, err := c.computePlan(ctx, runner, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", opts.Input) + ".overlaps.svg"
	}
	dot := overlap.ToDOT(plan, overlap.Options{Detailed: detailed})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = overlap.RenderSVG(ctx, dot)
	case ".png":
		data, err = overlap.RenderPNG(ctx, dot, scale)
	default:
		return fmt.Errorf("unsupported output type %q (use .svg, .png or .dot)", ext)
	}
	if err != nil {
		return fmt.Errorf("render overlap graph: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Overlap graph complete")
	printFile(output)
	printStats(len(rec.Features), plan.NumLevels, 0, false)
	return nil
}
