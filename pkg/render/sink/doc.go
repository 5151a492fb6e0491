// Package sink writes layout plans as SVG, PNG, PDF or JSON.
//
// All raster and vector sinks share one scene builder, so a PNG and an SVG
// of the same plan agree to the pixel on where every glyph, label, tick and
// signal bar sits. Linear plans stack levels upward from a ruler, with
// bedGraph signal tracks below it. Circular plans draw levels as
// concentric bands outside a backbone circle, with the origin at the top
// and signal tracks inside.
//
// # Options
//
// The same [Option] values configure every sink:
//
//	svg := sink.RenderSVG(plan, sink.WithStyle(styles.Outline{}), sink.WithTicks(8))
//	png, err := sink.RenderPNG(plan, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(plan, sink.WithTracks(track))
//
// PNG output is rasterized in-process with gg. PDF output goes through
// rsvg-convert, see [render.ToPDF].
//
// [render.ToPDF]: github.com/matzehuels/featuremap/pkg/render.ToPDF
package sink
