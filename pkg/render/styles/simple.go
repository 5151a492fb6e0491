package styles

import (
	"bytes"
	"fmt"
)

// Simple fills glyphs with their feature color.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text { font-family: %s; }</style>\n", FontFamily)
}

func (Simple) RenderGlyph(buf *bytes.Buffer, g Glyph) {
	fill := g.Color
	if fill == "" {
		fill = DefaultColor
	}
	dash := ""
	if g.Dashed {
		dash = ` stroke-dasharray="4,2"`
	}
	fmt.Fprintf(buf, `  <path id="%s" class="glyph" data-kind="%s" d="%s" fill="%s" stroke="%s" stroke-width="1"%s>`,
		EscapeXML(g.ID), EscapeXML(g.Kind), PathData(g.Polygons), EscapeXML(fill), Darken(fill, 0.35), dash)
	if g.Label != "" {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(g.Label))
	}
	buf.WriteString("</path>\n")
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	if l.Inline {
		renderText(buf, l, ContrastText(l.Color))
		return
	}
	renderLeader(buf, l, "#888")
	renderText(buf, l, "#222")
}
