// Package overlap renders the feature overlap graph with Graphviz.
//
// Each feature is a node and two nodes are joined when their occupancy
// intervals intersect, the exact conflict relation the level assigner
// packs against. Nodes on the same level share a rank, so a picture of the
// graph shows at a glance why features were pushed to separate levels.
//
//	dot := overlap.ToDOT(plan, overlap.Options{Detailed: true})
//	svg, err := overlap.RenderSVG(ctx, dot)
package overlap
