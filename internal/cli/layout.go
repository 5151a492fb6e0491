package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layout plans.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Compute the layout plan of a record",
		Long: `Compute the layout plan of a record.

The plan lists the level of every feature, the drawn segments of features
that wrap around the origin of circular records, and the row and position of
every label. It is written as JSON (the same document as 'render -f json'
without the record) and can be consumed by other drawing tools.

Labels that could not be placed are reported as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if err := applyFlagOrigin(cmd, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLoadFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the record, computes the plan, and writes it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	plan, rec, cacheHit, err := c.computePlan(ctx, runner, opts)
	if err != nil {
		return err
	}

	data, err := layout.MarshalPlan(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if output == "-" {
		_, err = stdout.Write(append(data, '\n'))
		return err
	}
	if output == "" {
		output = basePath("", opts.Input) + ".layout.json"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(rec.Features), plan.NumLevels, plan.NumLabelRows, cacheHit)
	for _, w := range plan.Warnings {
		printWarning("%s", w.String())
	}
	printNewline()
	printNextStep("Render", appName+" render "+opts.Input)

	return nil
}

// computePlan runs the load and layout stages behind a spinner. cacheHit
// is true when both stages were served from the cache.
func (c *CLI) computePlan(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*layout.Plan, *feature.Record, bool, error) {
	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	rec, loadHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, nil, false, fmt.Errorf("load: %w", err)
	}
	plan, layoutHit, err := runner.LayoutWithCacheInfo(ctx, rec, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, nil, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, nil, false, ctx.Err()
	}
	return plan, rec, loadHit && layoutHit, nil
}
