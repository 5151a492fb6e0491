package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/pipeline"
	"github.com/matzehuels/featuremap/pkg/publish"
)

// renderFlags holds render command flags that are not pipeline options.
type renderFlags struct {
	output  string // output file (single format) or base path
	formats string // comma-separated formats
	upload  string // s3://bucket/prefix
	noCache bool
	watch   bool
}

// renderCommand creates the render command: load, lay out and draw a record.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Draw a feature map to SVG, PNG, PDF or JSON",
		Long: `Draw a feature map from an annotated record.

The input is a GenBank, GFF3 or BED file, or a record document written by
'crop' or 'store get' (.json, .yaml). Features are stacked on levels so that
no two overlapping features share one, and labels are packed into rows.

Results are cached, so re-rendering with different drawing options skips
parsing and layout. With --watch the map is redrawn whenever the input,
theme or track files change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(flags.formats)
			if err := validateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			if err := applyFlagOrigin(cmd, &opts); err != nil {
				return err
			}
			if flags.watch {
				return c.watchRender(cmd.Context(), opts, flags)
			}
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.upload, "upload", "", "also upload outputs to s3://bucket/prefix")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "redraw when input files change")
	addLoadFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts)

	return cmd
}

// runRender executes the pipeline once and writes its outputs.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return c.render(ctx, runner, opts, flags)
}

func (c *CLI) render(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, flags renderFlags) error {
	spinner := newSpinner(ctx, "Rendering "+filepath.Base(opts.Input)+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, flags.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", displayName(result, opts.Input))
	for _, p := range paths {
		printFile(p)
	}
	info := result.CacheInfo
	printStats(result.Stats.FeatureCount, result.Stats.NumLevels, result.Stats.LabelRows, info.LoadHit && info.LayoutHit && info.RenderHit)
	if result.Stats.Warnings > 0 {
		printWarning("%d labels did not fit", result.Stats.Warnings)
	}

	if flags.upload != "" {
		return c.upload(ctx, flags.upload, filepath.Base(basePath(flags.output, opts.Input)), result.Artifacts)
	}
	return nil
}

// watchRender renders once and again on every change to the input, theme or
// track files until ctx is cancelled.
func (c *CLI) watchRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.render(ctx, runner, opts, flags); err != nil {
		printError("%v", err)
	}

	paths := append([]string{opts.Input}, opts.Tracks...)
	if opts.Theme != "" {
		paths = append(paths, opts.Theme)
	}
	printInfo("Watching %d files, press Ctrl+C to stop", len(paths))

	err = watchFiles(ctx, paths, defaultDebounce, func() error {
		p := newProgress(c.Logger)
		if err := c.render(ctx, runner, opts, flags); err != nil {
			return err
		}
		p.done("Re-rendered " + filepath.Base(opts.Input))
		return nil
	}, func(err error) {
		printError("%v", err)
	})
	if errors.Is(err, context.Canceled) {
		printNewline()
		return nil
	}
	return err
}

// upload publishes artifacts under name to the bucket in rawURL.
func (c *CLI) upload(ctx context.Context, rawURL, name string, artifacts map[string][]byte) error {
	cfg, err := publish.ParseURL(rawURL)
	if err != nil {
		return err
	}
	pub, err := publish.New(ctx, cfg.WithEnv(), c.Logger)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Uploading to "+cfg.Bucket+"...")
	spinner.Start()
	urls, err := pub.Upload(ctx, name, artifacts)
	if err != nil {
		spinner.StopWithError("Upload failed")
		return err
	}
	spinner.Stop()

	printSuccess("Uploaded %d files", len(urls))
	for _, u := range urls {
		printDetail("%s", StyleLink.Render(u))
	}
	return nil
}

// displayName returns the record name, or the input file name for
// unnamed records.
func displayName(result *pipeline.Result, input string) string {
	if result.Record != nil && result.Record.Name != "" {
		return result.Record.Name
	}
	return filepath.Base(input)
}
