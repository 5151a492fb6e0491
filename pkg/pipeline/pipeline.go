// Package pipeline provides the load → layout → render pipeline for
// featuremap.
//
// The CLI and the HTTP server both drive maps through this package so that
// defaults, validation and caching behave the same at every entry point.
//
// # Stages
//
//  1. Load: read an annotation file (GenBank, GFF3, BED) or a record
//     document (JSON, YAML), translate it into a [feature.Record] and
//     optionally crop it.
//  2. Layout: assign levels and place labels ([layout.Plan]).
//  3. Render: draw the plan in one or more formats (SVG, PNG, PDF, JSON).
//
// Each stage can run on its own or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "pUC19.gb",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/cache"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/sink"
	"github.com/matzehuels/featuremap/pkg/render/styles"
	"github.com/matzehuels/featuremap/pkg/translate"
)

// Defaults shared by the CLI and the server.
const (
	DefaultWidth        = layout.DefaultWidth
	DefaultPointWidth   = layout.DefaultPointWidth
	DefaultLabelSpacing = layout.DefaultLabelSpacing
	DefaultFontSize     = layout.DefaultFontSize
	DefaultRingRadius   = layout.DefaultRingRadius
	DefaultLevelPixels  = sink.DefaultLevelPixels
	DefaultTicks        = sink.DefaultTicks
	DefaultScale        = sink.DefaultScale
	DefaultStyle        = "simple"
)

// Format constants for output formats.
const (
	FormatSVG  = string(sink.FormatSVG)
	FormatPNG  = string(sink.FormatPNG)
	FormatPDF  = string(sink.FormatPDF)
	FormatJSON = string(sink.FormatJSON)
)

// Options configures a pipeline run. It is decoded from API requests and
// filled from CLI flags.
type Options struct {
	// Load options
	Input    string          `json:"input,omitempty"`
	Record   *feature.Record `json:"record,omitempty" validate:"-"`
	Circular bool            `json:"circular,omitempty"`
	Theme    string          `json:"theme,omitempty"` // path to a TOML theme
	Crop     string          `json:"crop,omitempty"`  // "start:end"
	Refresh  bool            `json:"refresh,omitempty"`

	// Layout options
	Width        float64 `json:"width,omitempty" validate:"gte=0"`
	PointWidth   float64 `json:"point_width,omitempty" validate:"gte=0"`
	LabelSpacing float64 `json:"label_spacing,omitempty" validate:"gte=0"`
	FontSize     float64 `json:"font_size,omitempty" validate:"gte=0"`
	NoLabels     bool    `json:"no_labels,omitempty"`
	InlineLabels bool    `json:"inline_labels,omitempty"`
	RingRadius   float64 `json:"ring_radius,omitempty" validate:"gte=0"`
	Origin       *int    `json:"origin,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty" validate:"dive,oneof=svg png pdf json"`
	Style       string   `json:"style,omitempty" validate:"omitempty,oneof=simple outline"`
	LevelPixels float64  `json:"level_pixels,omitempty" validate:"gte=0"`
	Ticks       int      `json:"ticks,omitempty" validate:"gte=0"`
	Scale       float64  `json:"scale,omitempty" validate:"gte=0,lte=8"`
	Tracks      []string `json:"tracks,omitempty"` // bedGraph paths
	NoTitle     bool     `json:"no_title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-" validate:"-"`
	Hooks  translate.Hooks `json:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Record     *feature.Record
	RecordHash string
	Plan       *layout.Plan
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FeatureCount int
	NumLevels    int
	LabelRows    int
	Warnings     int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

var validate = validator.New()

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := sink.ParseFormat(format)
	return err
}

// ValidateStyle checks that a style is known.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown style %q (want simple or outline)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Record == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input or record is required")
	}
	if o.Input != "" && o.Record == nil {
		if _, ok := annotation.DetectFormat(o.Input); !ok && !isRecordDocument(o.Input) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"unrecognized input %q (want .gb, .gbk, .gff, .gff3, .bed, .json or .yaml)", o.Input)
		}
	}
	if o.Crop != "" {
		if _, err := feature.ParseRange(o.Crop); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.PointWidth == 0 {
		o.PointWidth = DefaultPointWidth
	}
	if o.LabelSpacing == 0 {
		o.LabelSpacing = DefaultLabelSpacing
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.RingRadius == 0 {
		o.RingRadius = DefaultRingRadius
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout options")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.LevelPixels == 0 {
		o.LevelPixels = DefaultLevelPixels
	}
	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid render options")
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts the layout fields to engine options.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithWidth(o.Width),
		layout.WithPointWidth(o.PointWidth),
		layout.WithLabelSpacing(o.LabelSpacing),
		layout.WithLabels(!o.NoLabels),
		layout.WithInlineLabels(o.InlineLabels),
		layout.WithRingRadius(o.RingRadius),
		layout.WithMeasurer(layout.HeuristicMeasurer{CharWidth: layout.DefaultCharWidth, FontSize: o.FontSize}),
	}
	if o.Origin != nil {
		opts = append(opts, layout.WithOrigin(*o.Origin))
	}
	return opts
}

// RenderOptions converts the render fields to sink options.
func (o *Options) RenderOptions(tracks []*annotation.Track) []sink.Option {
	style, _ := styles.ByName(o.Style)
	opts := []sink.Option{
		sink.WithStyle(style),
		sink.WithLevelPixels(o.LevelPixels),
		sink.WithFontSize(o.FontSize),
		sink.WithTicks(o.Ticks),
		sink.WithScale(o.Scale),
	}
	if len(tracks) > 0 {
		opts = append(opts, sink.WithTracks(tracks...))
	}
	if o.NoTitle {
		opts = append(opts, sink.WithoutTitle())
	}
	return opts
}

// RecordKeyOpts returns cache key options for loading.
func (o *Options) RecordKeyOpts(themeHash string) cache.RecordKeyOpts {
	return cache.RecordKeyOpts{ThemeHash: themeHash, Circular: o.Circular, Crop: o.Crop}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        o.Width,
		PointWidth:   o.PointWidth,
		LabelSpacing: o.LabelSpacing,
		FontSize:     o.FontSize,
		Labels:       !o.NoLabels,
		InlineLabels: o.InlineLabels,
		RingRadius:   o.RingRadius,
		Origin:       o.Origin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string, trackHashes []string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		LevelPixels: o.LevelPixels,
		Ticks:       o.Ticks,
		Title:       !o.NoTitle,
		TrackHashes: trackHashes,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
