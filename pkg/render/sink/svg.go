package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

const (
	inkColor    = "#444"
	signalColor = "#9a9a9a"
)

// RenderSVG renders the plan as a standalone SVG document.
func RenderSVG(p *layout.Plan, opts ...Option) []byte {
	r := newRenderer(opts...)
	s := r.build(p)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	r.style.RenderDefs(&buf)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	for _, c := range s.circles {
		fmt.Fprintf(&buf, `  <circle class="backbone" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			c.cx, c.cy, c.r, inkColor)
	}
	for _, l := range s.lines {
		fmt.Fprintf(&buf, `  <line class="axis" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2, inkColor)
	}
	for i, bars := range s.bars {
		if len(bars) == 0 {
			continue
		}
		fmt.Fprintf(&buf, `  <path class="signal" data-track="%d" d="%s" fill="%s"/>`+"\n", i, styles.PathData(bars), signalColor)
	}
	for _, t := range s.texts {
		fmt.Fprintf(&buf, `  <text class="%s" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" fill="%s">%s</text>`+"\n",
			t.class, t.x, t.y, t.size, t.anchor, inkColor, styles.EscapeXML(t.s))
	}
	for _, g := range s.glyphs {
		r.style.RenderGlyph(&buf, g)
	}
	for _, l := range s.labels {
		r.style.RenderLabel(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
