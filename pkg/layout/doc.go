// Package layout computes feature-map layouts: which vertical level each
// feature glyph sits on and where its label goes.
//
// # Overview
//
// A layout is computed in two passes over a [feature.Record]:
//
//  1. [AssignLevels] packs features into the fewest levels such that no two
//     features on the same level overlap.
//  2. [PlaceLabels] packs label boxes into rows stacked above the feature
//     levels so that no two labels on the same row collide.
//
// [Engine.ComputeLayout] runs both passes and returns a [Plan] that a
// renderer can draw without further geometry decisions.
//
// # Packing
//
// Both passes use the same greedy interval-colouring strategy. Items are
// sorted by left edge (ties by right edge, then input order) and each one
// goes to the lowest row whose rightmost occupied coordinate is at or before
// its left edge. Occupancy is half-open, so features that merely touch may
// share a level. On linear records this is optimal: the number of rows
// equals the largest set of mutually overlapping items.
//
// On circular records, items crossing the origin are split into a head and
// a tail piece that share one row. Crossing items all overlap at the origin,
// so they are packed first, one row each; the rest are packed first-fit
// around them. Circular-arc colouring is NP-hard in general and this pass is
// not guaranteed to be minimal there.
//
// # Point Features
//
// A point feature (Start == End) occupies [Start, Start+PointWidth) so that
// adjacent point features never share a level. PointWidth is in sequence
// units and configurable with [WithPointWidth].
//
// # Text Measurement
//
// Label widths come from an injected [Measurer]. [HeuristicMeasurer] uses a
// fixed per-character advance; [FaceMeasurer] measures with a real font face
// from golang.org/x/image/font.
//
// # Concurrency
//
// Layout has no shared mutable state. An [Engine] may be used from several
// goroutines at once provided its Measurer is safe for concurrent use, which
// both bundled measurers are.
package layout
