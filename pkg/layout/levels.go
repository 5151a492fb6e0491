package layout

import (
	"github.com/matzehuels/featuremap/pkg/feature"
)

// AssignLevels packs features into levels so that no two features on the
// same level overlap. It returns the level of each feature (indexed like
// features) and the number of levels used.
//
// Features must already be valid for the topology and bounds, as produced
// by [feature.NewRecord]; circular features are expected in normalized form.
// A point feature blocks [Start, Start+pointWidth); pointWidth <= 0 falls
// back to [DefaultPointWidth].
//
// The result depends only on the inputs: equal features in equal order
// always produce equal levels.
func AssignLevels(features []feature.Feature, topology feature.Topology, bounds feature.Range, pointWidth float64) ([]int, int) {
	if pointWidth <= 0 {
		pointWidth = DefaultPointWidth
	}
	spans := make([]span, len(features))
	for i, f := range features {
		spans[i] = occupancy(f, pointWidth, i)
	}
	levels := make([]int, len(features))
	first, period := circle(topology, bounds)
	n := pack(spans, first, period, levels)
	return levels, n
}

// occupancy is the stretch of sequence a feature blocks on its level.
func occupancy(f feature.Feature, pointWidth float64, idx int) span {
	lo := float64(f.Start)
	return span{lo: lo, hi: max(float64(f.End), lo+pointWidth), idx: idx}
}

// circle returns the packer's circle parameters; period is zero for linear
// records.
func circle(topology feature.Topology, bounds feature.Range) (first, period float64) {
	first = float64(bounds.Start)
	if topology == feature.Circular {
		period = float64(bounds.Len())
	}
	return first, period
}

// Edge is an overlap between the features at indexes A and B (A < B).
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// OverlapGraph returns every pair of features whose occupancies overlap,
// using the same rules as [AssignLevels]. Edges are ordered by A then B.
func OverlapGraph(features []feature.Feature, topology feature.Topology, bounds feature.Range, pointWidth float64) []Edge {
	if pointWidth <= 0 {
		pointWidth = DefaultPointWidth
	}
	first, period := circle(topology, bounds)
	var edges []Edge
	for i := range features {
		a := occupancy(features[i], pointWidth, i)
		for j := i + 1; j < len(features); j++ {
			if overlaps(a, occupancy(features[j], pointWidth, j), first, period) {
				edges = append(edges, Edge{A: i, B: j})
			}
		}
	}
	return edges
}
