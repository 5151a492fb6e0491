// Package render turns layout plans into pictures.
//
// # Overview
//
// The rendering pipeline takes a [layout.Plan] and writes it in one of
// several formats:
//
//   - SVG, for linear and circular maps (in [sink])
//   - PNG, rasterized natively with gg (in [sink])
//   - PDF, converted from SVG by rsvg-convert ([ToPDF])
//   - JSON, the plan itself for other renderers (in [sink])
//
// Visual appearance is controlled by [styles]. The [overlap] subpackage
// draws the feature overlap graph with Graphviz, a debugging aid that
// shows why features landed on separate levels.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(plan)
//	pdf, err := render.ToPDF(svg)
//
// [layout.Plan]: github.com/matzehuels/featuremap/pkg/layout.Plan
// [sink]: github.com/matzehuels/featuremap/pkg/render/sink
// [styles]: github.com/matzehuels/featuremap/pkg/render/styles
// [overlap]: github.com/matzehuels/featuremap/pkg/render/overlap
package render
