package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/pipeline"
)

// addLoadFlags binds the record loading flags shared by every command that
// reads an input file.
func addLoadFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Crop, "crop", "", "crop to a coordinate window, e.g. 1000:5000")
	cmd.Flags().BoolVar(&opts.Circular, "circular", false, "force circular topology")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "TOML theme controlling colors, labels and filtering")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reparse the input even when cached")
}

// addLayoutFlags binds the layout engine flags.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing width (linear) or circumference (circular)")
	cmd.Flags().Float64Var(&opts.PointWidth, "point-width", opts.PointWidth, "drawn width of zero-length features")
	cmd.Flags().Float64Var(&opts.LabelSpacing, "label-spacing", opts.LabelSpacing, "minimum gap between labels")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", opts.FontSize, "label font size used for measurement")
	cmd.Flags().Float64Var(&opts.RingRadius, "ring-radius", opts.RingRadius, "inner ring radius in level units (circular)")
	cmd.Flags().BoolVar(&opts.InlineLabels, "inline-labels", false, "draw labels inside features when they fit")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "do not place labels")
	cmd.Flags().Int("origin", 0, "coordinate drawn at the top of circular maps (default: first index)")
}

// addRenderFlags binds the drawing flags.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), outline")
	cmd.Flags().Float64Var(&opts.LevelPixels, "level-pixels", opts.LevelPixels, "pixel height of one level")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", opts.Ticks, "approximate number of ruler ticks (linear)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().StringArrayVar(&opts.Tracks, "track", nil, "bedGraph signal track drawn below the map (repeatable)")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "omit the record name")
}

// applyFlagOrigin copies --origin into opts when it was given.
func applyFlagOrigin(cmd *cobra.Command, opts *pipeline.Options) error {
	if !cmd.Flags().Changed("origin") {
		return nil
	}
	origin, err := cmd.Flags().GetInt("origin")
	if err != nil {
		return err
	}
	opts.Origin = &origin
	return nil
}
