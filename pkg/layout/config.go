package layout

import (
	"github.com/matzehuels/featuremap/pkg/errors"
)

// Default configuration values.
const (
	DefaultWidth        = 800.0 // drawing units spanned by the sequence axis
	DefaultLevelHeight  = 1.0
	DefaultPointWidth   = 1.0 // sequence units blocked by a point feature
	DefaultLabelSpacing = 4.0 // drawing units of padding per label
	DefaultRingRadius   = 10.0
)

// Config holds layout parameters. Build one with [New] and [Option]s rather
// than directly, so that defaults are applied.
type Config struct {
	Width        float64  `json:"width"`
	LevelHeight  float64  `json:"level_height"`
	PointWidth   float64  `json:"point_width"`
	LabelSpacing float64  `json:"label_spacing"`
	Labels       bool     `json:"labels"`
	InlineLabels bool     `json:"inline_labels"`
	RingRadius   float64  `json:"ring_radius"`
	Origin       *int     `json:"origin,omitempty"`
	Measurer     Measurer `json:"-"`
}

// DefaultConfig returns the configuration used by New with no options.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		LevelHeight:  DefaultLevelHeight,
		PointWidth:   DefaultPointWidth,
		LabelSpacing: DefaultLabelSpacing,
		Labels:       true,
		RingRadius:   DefaultRingRadius,
		Measurer:     DefaultMeasurer(),
	}
}

// Validate reports configuration values that cannot produce a layout.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %g", c.Width)
	case c.LevelHeight <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "level height must be positive, got %g", c.LevelHeight)
	case c.PointWidth <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "point width must be positive, got %g", c.PointWidth)
	case c.LabelSpacing < 0:
		return errors.New(errors.ErrCodeInvalidInput, "label spacing must not be negative, got %g", c.LabelSpacing)
	case c.RingRadius < 0:
		return errors.New(errors.ErrCodeInvalidInput, "ring radius must not be negative, got %g", c.RingRadius)
	}
	return nil
}

// Option configures an [Engine].
type Option func(*Config)

// WithWidth sets the drawing width of the sequence axis.
func WithWidth(w float64) Option { return func(c *Config) { c.Width = w } }

// WithLevelHeight sets the height of one level in level units.
func WithLevelHeight(h float64) Option { return func(c *Config) { c.LevelHeight = h } }

// WithPointWidth sets how much sequence a point feature blocks on its level.
func WithPointWidth(w float64) Option { return func(c *Config) { c.PointWidth = w } }

// WithLabelSpacing sets the padding added to every label box, in drawing units.
func WithLabelSpacing(px float64) Option { return func(c *Config) { c.LabelSpacing = px } }

// WithMeasurer sets the text measurer used to size labels.
func WithMeasurer(m Measurer) Option { return func(c *Config) { c.Measurer = m } }

// WithLabels turns label placement on or off.
func WithLabels(enabled bool) Option { return func(c *Config) { c.Labels = enabled } }

// WithInlineLabels draws labels that fit inside their glyph on the glyph.
func WithInlineLabels(enabled bool) Option { return func(c *Config) { c.InlineLabels = enabled } }

// WithRingRadius sets the inner radius of circular maps in level units.
func WithRingRadius(r float64) Option { return func(c *Config) { c.RingRadius = r } }

// WithOrigin overrides the record's origin: the coordinate drawn at the top
// of circular maps.
func WithOrigin(pos int) Option {
	return func(c *Config) { c.Origin = &pos }
}

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
