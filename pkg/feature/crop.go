package feature

import (
	"slices"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Crop returns a new record restricted to the closed range rng.
//
// Features entirely outside rng are dropped. Features partially inside are
// clipped to rng and keep their label and style; a feature that only touches
// rng becomes a point feature at the boundary. The source record is never
// modified and the returned features share no state with it.
//
// The result keeps absolute coordinates: its FirstIndex is rng.Start and its
// Length is rng.Len(). Cropping a linear record, or a circular record to
// anything but its full domain, yields a linear record.
//
// On circular records rng.Start > rng.End selects the arc that passes through
// the origin. The result is expressed in unrolled coordinates, running from
// rng.Start to rng.End+Length. A feature that the crop cuts into two disjoint
// pieces becomes two features; only the first one keeps the label.
//
// Records cropped from a circle remember its length in Period, so the same
// wrapped range can be applied to them again: Start > End is then read in
// the unrolled coordinates of the source circle.
//
// Crop fails with ErrCodeInvalidCropRange if rng is empty, inverted on a
// linear record, or outside the record's bounds.
func (r *Record) Crop(rng Range) (*Record, error) {
	if err := r.validateShape(); err != nil {
		return nil, err
	}
	if r.Topology == Linear && r.Period > 0 && rng.Start > rng.End {
		rng.End += r.Period
	}
	b := r.Bounds()
	if !b.Contains(rng.Start) || !b.Contains(rng.End) {
		return nil, errors.New(errors.ErrCodeInvalidCropRange,
			"crop range %s is outside record bounds %s", rng, b)
	}

	window := rng
	switch {
	case rng.Start == rng.End:
		return nil, errors.New(errors.ErrCodeInvalidCropRange, "crop range %s is empty", rng)
	case rng.Start > rng.End && r.Topology == Linear:
		return nil, errors.New(errors.ErrCodeInvalidCropRange, "crop range %s is inverted", rng)
	case rng.Start > rng.End:
		window.End += r.Length
	case r.Topology == Circular && rng == b:
		return r.Clone(), nil
	}

	shifts := []int{0}
	if r.Topology == Circular {
		shifts = []int{-r.Length, 0, r.Length}
	}

	out := &Record{
		Name:       r.Name,
		FirstIndex: window.Start,
		Length:     window.Len(),
		Topology:   Linear,
		Period:     r.Period,
	}
	if r.Topology == Circular {
		out.Period = r.Length
	}
	for _, f := range r.Features {
		out.Features = append(out.Features, clipFeature(f, window, shifts)...)
	}
	return out, nil
}

// clipFeature intersects f, shifted by each of shifts, with window.
// Zero-width touches are kept only when nothing wider survives.
func clipFeature(f Feature, window Range, shifts []int) []Feature {
	var pieces []Range
	for _, k := range shifts {
		if p, ok := window.Intersect(Range{Start: f.Start + k, End: f.End + k}); ok {
			pieces = append(pieces, p)
		}
	}
	if len(pieces) == 0 {
		return nil
	}
	if slices.ContainsFunc(pieces, func(p Range) bool { return !p.Empty() }) {
		pieces = slices.DeleteFunc(pieces, func(p Range) bool { return p.Empty() })
	} else {
		pieces = pieces[:1]
	}
	slices.SortFunc(pieces, func(a, b Range) int { return a.Start - b.Start })

	out := make([]Feature, len(pieces))
	for i, p := range pieces {
		c := f.Clone()
		c.Start, c.End = p.Start, p.End
		if i > 0 {
			c.Label = ""
		}
		out[i] = c
	}
	return out
}
