package layout

import (
	"math"

	"github.com/matzehuels/featuremap/pkg/feature"
)

// Engine computes layout plans. It holds only configuration and may be
// shared between goroutines.
type Engine struct {
	cfg Config
}

// New returns an engine configured by opts on top of [DefaultConfig].
func New(opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Measurer == nil {
		cfg.Measurer = DefaultMeasurer()
	}
	return &Engine{cfg: cfg}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// ComputeLayout computes a layout plan for rec with the default engine.
func ComputeLayout(rec *feature.Record, opts ...Option) (*Plan, error) {
	return New(opts...).ComputeLayout(rec)
}

// ComputeLayout validates rec and computes its plan. The record is not
// modified, and equal records always produce equal plans.
//
// It fails with ErrCodeOutOfRangeFeature if any feature lies outside the
// record bounds; nothing is laid out in that case. Oversized labels do not
// fail the call and are reported in Plan.Warnings instead.
func (e *Engine) ComputeLayout(rec *feature.Record) (*Plan, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	norm, err := rec.Normalized()
	if err != nil {
		return nil, err
	}

	bounds := norm.Bounds()
	circular := norm.Topology == feature.Circular
	levels, numLevels := AssignLevels(norm.Features, norm.Topology, bounds, e.cfg.PointWidth)

	plan := &Plan{
		Name:        norm.Name,
		Topology:    norm.Topology,
		Bounds:      bounds,
		Origin:      norm.Origin,
		Width:       e.cfg.Width,
		LevelHeight: e.cfg.LevelHeight,
		PointWidth:  e.cfg.PointWidth,
		NumLevels:   numLevels,
		Glyphs:      make([]Glyph, len(norm.Features)),
	}
	if circular {
		plan.RingRadius = e.cfg.RingRadius
		if e.cfg.Origin != nil {
			plan.Origin = wrapInt(*e.cfg.Origin, bounds)
		}
	}

	for i, f := range norm.Features {
		plan.Glyphs[i] = Glyph{
			Index:    i,
			Feature:  f,
			Level:    levels[i],
			Shape:    ShapeFor(f.Strand),
			Segments: segments(f, bounds, circular),
		}
	}

	if e.cfg.Labels {
		plan.Labels, plan.Warnings = PlaceLabels(norm.Features, levels, numLevels, norm.Topology, bounds, LabelConfig{
			Measurer:      e.cfg.Measurer,
			UnitsPerPixel: e.unitsPerPixel(bounds, numLevels, circular),
			Spacing:       e.cfg.LabelSpacing,
			Inline:        e.cfg.InlineLabels,
		})
		plan.NumLabelRows = labelRows(plan.Labels)
	}

	rows := plan.NumLevels + plan.NumLabelRows
	if circular {
		plan.Bands = make([]Band, rows)
		for lvl := range rows {
			inner := (e.cfg.RingRadius + float64(lvl)) * e.cfg.LevelHeight
			plan.Bands[lvl] = Band{Level: lvl, Inner: inner, Outer: inner + e.cfg.LevelHeight, Labels: lvl >= numLevels}
		}
		plan.TotalHeight = 2 * (e.cfg.RingRadius + float64(rows)) * e.cfg.LevelHeight
	} else {
		plan.TotalHeight = float64(rows) * e.cfg.LevelHeight
	}
	return plan, nil
}

// unitsPerPixel converts label widths to sequence units. Linear axes span
// Width drawing units. Circular labels are measured along the ring just
// outside the feature bands, with the whole map assumed to fit in Width.
func (e *Engine) unitsPerPixel(bounds feature.Range, numLevels int, circular bool) float64 {
	length := float64(bounds.Len())
	if !circular {
		return length / e.cfg.Width
	}
	ring := e.cfg.RingRadius + float64(numLevels)
	radiusPx := e.cfg.Width / 2 * ring / (ring + 1)
	if radiusPx <= 0 {
		return length / e.cfg.Width
	}
	return length / (2 * math.Pi * radiusPx)
}

// segments returns the drawn pieces of f in 5' to 3' order of the sequence
// axis: one piece, or two when f crosses the origin of a circular record.
func segments(f feature.Feature, bounds feature.Range, circular bool) []feature.Range {
	if !circular || f.End <= bounds.End {
		return []feature.Range{f.Span()}
	}
	return []feature.Range{
		{Start: f.Start, End: bounds.End},
		{Start: bounds.Start, End: f.End - bounds.Len()},
	}
}

func wrapInt(x int, bounds feature.Range) int {
	off := (x - bounds.Start) % bounds.Len()
	if off < 0 {
		off += bounds.Len()
	}
	return bounds.Start + off
}
