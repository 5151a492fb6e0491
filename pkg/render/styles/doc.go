// Package styles controls how feature map primitives are written as SVG.
//
// A [Style] receives fully positioned primitives (glyph outlines as
// polygons, label anchors, leader lines) from the sink package and decides
// colors, strokes and fonts. Two styles are provided:
//
//   - [Simple]: glyphs filled with their feature color and a darker outline.
//   - [Outline]: white glyphs stroked in their feature color, for print.
//
// The color helpers ([ParseHex], [Darken], [ContrastText]) are shared with
// the raster sink so PNG output matches the SVG palette.
package styles
