package styles

import (
	"bytes"
	"fmt"
)

// Outline draws white glyphs stroked in their feature color.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text { font-family: %s; } .glyph { stroke-width: 1.5; }</style>\n", FontFamily)
}

func (Outline) RenderGlyph(buf *bytes.Buffer, g Glyph) {
	stroke := g.Color
	if stroke == "" {
		stroke = DefaultColor
	}
	dash := ""
	if g.Dashed {
		dash = ` stroke-dasharray="4,2"`
	}
	fmt.Fprintf(buf, `  <path id="%s" class="glyph" data-kind="%s" d="%s" fill="white" stroke="%s"%s/>`+"\n",
		EscapeXML(g.ID), EscapeXML(g.Kind), PathData(g.Polygons), EscapeXML(stroke), dash)
}

func (Outline) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLeader(buf, l, "#bbb")
	renderText(buf, l, "#000")
}
