package layout

import (
	"fmt"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// LabelConfig controls [PlaceLabels].
type LabelConfig struct {
	Measurer      Measurer // nil uses DefaultMeasurer
	UnitsPerPixel float64  // sequence units per drawing unit; <= 0 means 1
	Spacing       float64  // drawing units of padding added to every box
	Inline        bool     // draw labels that fit inside their glyph inline
}

// LabelPlacement is the computed position of one feature label.
//
// Left, Right and Anchor are sequence coordinates. Row counts label rows
// from the top of the feature levels, and Level is the absolute row
// (number of feature levels + Row). Inline labels sit on their feature's
// level and have Row -1.
type LabelPlacement struct {
	Feature      int     `json:"feature"`
	Text         string  `json:"text"`
	FeatureLevel int     `json:"feature_level"`
	Row          int     `json:"row"`
	Level        int     `json:"level"`
	Anchor       float64 `json:"anchor"`
	Left         float64 `json:"left"`
	Right        float64 `json:"right"`
	Width        float64 `json:"width"` // measured width in drawing units, without spacing
	Inline       bool    `json:"inline,omitempty"`
	Overflow     bool    `json:"overflow,omitempty"`
}

// Warning is a non-fatal problem found while computing a layout.
type Warning struct {
	Code    errors.Code `json:"code"`
	Feature int         `json:"feature"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: feature %d: %s", w.Code, w.Feature, w.Message)
}

// PlaceLabels computes label positions for the labelled features visible
// in the visible range. levels and numLevels come from [AssignLevels].
//
// Each label is anchored at the midpoint of the visible part of its
// feature. On linear records a box that would stick out of the visible
// range is pushed back inside; a box wider than the whole range stays
// centered and is reported with an ErrCodeLabelOverflow warning. Boxes are
// then packed into rows like feature levels, so labels on one row never
// collide and the row count is minimal on linear records.
//
// Placements are returned in feature order.
func PlaceLabels(features []feature.Feature, levels []int, numLevels int, topology feature.Topology, visible feature.Range, cfg LabelConfig) ([]LabelPlacement, []Warning) {
	m := cfg.Measurer
	if m == nil {
		m = DefaultMeasurer()
	}
	upp := cfg.UnitsPerPixel
	if upp <= 0 {
		upp = 1
	}
	circular := topology == feature.Circular
	first, period := circle(topology, visible)
	extent := float64(visible.Len())

	var (
		placed   []LabelPlacement
		spans    []span
		warnings []Warning
	)
	for i, f := range features {
		if !f.HasLabel() {
			continue
		}
		part, ok := f.Span(), true
		if !circular {
			part, ok = part.Intersect(visible)
		}
		if !ok {
			continue
		}

		px := m.Measure(f.Label)
		w := (px + cfg.Spacing) * upp
		lp := LabelPlacement{
			Feature:      i,
			Text:         f.Label,
			FeatureLevel: levels[i],
			Width:        px,
			Anchor:       part.Mid(),
		}

		if cfg.Inline && w <= float64(part.Len()) {
			lp.Inline, lp.Row, lp.Level = true, -1, levels[i]
			lp.Left, lp.Right = lp.Anchor-w/2, lp.Anchor+w/2
			if circular {
				lp.Anchor = wrapFloat(lp.Anchor, first, period)
				lp.Left = wrapFloat(lp.Left, first, period)
				lp.Right = lp.Left + w
			}
			placed = append(placed, lp)
			continue
		}

		if w > extent {
			lp.Overflow = true
			warnings = append(warnings, Warning{
				Code:    errors.ErrCodeLabelOverflow,
				Feature: i,
				Message: fmt.Sprintf("label %q (%.0f units) is wider than the visible range (%.0f units)", f.Label, w, extent),
			})
			if circular {
				w = extent
			}
		}

		lp.Left = lp.Anchor - w/2
		switch {
		case circular:
			lp.Left = wrapFloat(lp.Left, first, period)
		case lp.Overflow:
		case lp.Left < first:
			lp.Left = first
		case lp.Left+w > first+extent:
			lp.Left = first + extent - w
		}
		lp.Right = lp.Left + w
		if circular {
			lp.Anchor = wrapFloat(lp.Anchor, first, period)
		} else {
			lp.Anchor = (lp.Left + lp.Right) / 2
		}

		spans = append(spans, span{lo: lp.Left, hi: lp.Right, idx: len(placed)})
		placed = append(placed, lp)
	}

	rows := make([]int, len(placed))
	pack(spans, first, period, rows)
	for _, s := range spans {
		placed[s.idx].Row = rows[s.idx]
		placed[s.idx].Level = numLevels + rows[s.idx]
	}
	return placed, warnings
}

// labelRows returns the number of label rows used by placements.
func labelRows(placements []LabelPlacement) int {
	n := 0
	for _, p := range placements {
		if !p.Inline {
			n = max(n, p.Row+1)
		}
	}
	return n
}
