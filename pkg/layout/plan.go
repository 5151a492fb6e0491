package layout

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// Shape is the glyph drawn for a feature.
type Shape string

const (
	ShapeArrowRight Shape = "arrow-right"
	ShapeArrowLeft  Shape = "arrow-left"
	ShapeBox        Shape = "box"
)

// ShapeFor returns the glyph shape for a strand.
func ShapeFor(s feature.Strand) Shape {
	switch s {
	case feature.Forward:
		return ShapeArrowRight
	case feature.Reverse:
		return ShapeArrowLeft
	default:
		return ShapeBox
	}
}

// Glyph is a feature placed on a level.
//
// Segments holds one range, or two for a feature crossing the origin of a
// circular record (tail piece first). Renderers draw every segment, put an
// arrow head only on the segment holding the feature's 3' end (the last
// segment for arrow-right, the first for arrow-left) and label the glyph
// once.
type Glyph struct {
	Index    int             `json:"index"`
	Feature  feature.Feature `json:"feature"`
	Level    int             `json:"level"`
	Shape    Shape           `json:"shape"`
	Segments []feature.Range `json:"segments"`
}

// Band is a concentric ring of a circular plan, in level units.
type Band struct {
	Level  int     `json:"level"`
	Inner  float64 `json:"inner"`
	Outer  float64 `json:"outer"`
	Labels bool    `json:"labels,omitempty"`
}

// Plan is a complete, renderable layout.
type Plan struct {
	Name         string           `json:"name,omitempty"`
	Topology     feature.Topology `json:"topology"`
	Bounds       feature.Range    `json:"bounds"`
	Origin       int              `json:"origin"`
	Width        float64          `json:"width"`
	LevelHeight  float64          `json:"level_height"`
	PointWidth   float64          `json:"point_width"`
	RingRadius   float64          `json:"ring_radius,omitempty"`
	NumLevels    int              `json:"num_levels"`
	NumLabelRows int              `json:"num_label_rows"`
	TotalHeight  float64          `json:"total_height"`
	Glyphs       []Glyph          `json:"glyphs"`
	Labels       []LabelPlacement `json:"labels"`
	Bands        []Band           `json:"bands,omitempty"`
	Warnings     []Warning        `json:"warnings,omitempty"`
}

// IsCircular reports whether the plan is drawn as a circle.
func (p *Plan) IsCircular() bool { return p.Topology == feature.Circular }

// Levels returns the level of every glyph, in feature order.
func (p *Plan) Levels() []int {
	out := make([]int, len(p.Glyphs))
	for i, g := range p.Glyphs {
		out[i] = g.Level
	}
	return out
}

// X maps a sequence coordinate to a horizontal drawing coordinate on a
// linear plan.
func (p *Plan) X(pos float64) float64 {
	return (pos - float64(p.Bounds.Start)) / float64(p.Bounds.Len()) * p.Width
}

// Angle maps a sequence coordinate to an angle on a circular plan, in
// radians clockwise from the top, with the origin at zero.
func (p *Plan) Angle(pos float64) float64 {
	frac := (pos - float64(p.Origin)) / float64(p.Bounds.Len())
	frac -= math.Floor(frac)
	return 2 * math.Pi * frac
}

// Radius returns the middle radius of a level on a circular plan, in level
// units.
func (p *Plan) Radius(level int) float64 {
	return (p.RingRadius + float64(level) + 0.5) * p.LevelHeight
}

// GlyphBox returns the drawing box of one glyph segment on a linear plan.
// Level 0 sits at the bottom.
func (p *Plan) GlyphBox(g Glyph, seg feature.Range) Box {
	lo := float64(seg.Start)
	hi := max(float64(seg.End), lo+p.PointWidth)
	bottom := float64(g.Level) * p.LevelHeight
	return Box{Left: p.X(lo), Right: p.X(hi), Bottom: bottom, Top: bottom + p.LevelHeight}
}

// LabelBox returns the drawing box of a label on a linear plan.
func (p *Plan) LabelBox(l LabelPlacement) Box {
	bottom := float64(l.Level) * p.LevelHeight
	return Box{Left: p.X(l.Left), Right: p.X(l.Right), Bottom: bottom, Top: bottom + p.LevelHeight}
}

// Validate checks that no two glyphs on a level overlap and that no two
// labels on a row collide.
func (p *Plan) Validate() error {
	first, period := circle(p.Topology, p.Bounds)
	for i, a := range p.Glyphs {
		if a.Level < 0 || a.Level >= p.NumLevels {
			return errors.New(errors.ErrCodeInternal, "glyph %d has level %d outside [0,%d)", i, a.Level, p.NumLevels)
		}
		sa := occupancy(a.Feature, p.PointWidth, i)
		for j := i + 1; j < len(p.Glyphs); j++ {
			b := p.Glyphs[j]
			if a.Level == b.Level && overlaps(sa, occupancy(b.Feature, p.PointWidth, j), first, period) {
				return errors.New(errors.ErrCodeInternal, "glyphs %d and %d overlap on level %d", i, j, a.Level)
			}
		}
	}
	for i, a := range p.Labels {
		if a.Inline {
			continue
		}
		for j := i + 1; j < len(p.Labels); j++ {
			b := p.Labels[j]
			if b.Inline || a.Row != b.Row {
				continue
			}
			if overlaps(span{lo: a.Left, hi: a.Right}, span{lo: b.Left, hi: b.Right}, first, period) {
				return errors.New(errors.ErrCodeInternal, "labels %q and %q collide on row %d", a.Text, b.Text, a.Row)
			}
		}
	}
	return nil
}

// MarshalPlan encodes a plan as JSON.
func MarshalPlan(p *Plan) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalPlan decodes a plan produced by [MarshalPlan].
func UnmarshalPlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode layout plan")
	}
	return &p, nil
}
