package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

// basicfont.Face7x13 is 13px tall; text is scaled to the font size.
const faceHeight = 13.0

// RenderPNG rasterizes the plan. Unlike PDF it needs no external tools.
func RenderPNG(p *layout.Plan, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := r.build(p)

	dc := gg.NewContext(int(math.Ceil(s.width*r.scale)), int(math.Ceil(s.height*r.scale)))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)
	ink, _ := styles.ParseHex(inkColor)
	signal, _ := styles.ParseHex(signalColor)

	dc.SetColor(ink)
	dc.SetLineWidth(1.5)
	for _, c := range s.circles {
		dc.DrawCircle(c.cx, c.cy, c.r)
		dc.Stroke()
	}
	dc.SetLineWidth(1)
	for _, l := range s.lines {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	dc.SetColor(signal)
	for _, bars := range s.bars {
		fillPolygons(dc, bars)
	}

	dc.SetColor(ink)
	for _, t := range s.texts {
		drawText(dc, t.s, t.x, t.y, t.size, anchorX(t.anchor), 0)
	}

	outline := r.style.Name() == "outline"
	for _, g := range s.glyphs {
		drawGlyph(dc, g, outline)
	}

	leader, _ := styles.ParseHex("#888")
	for _, l := range s.labels {
		if l.Leader != nil {
			dc.SetColor(leader)
			dc.SetLineWidth(0.75)
			dc.DrawLine(l.Leader.X1, l.Leader.Y1, l.Leader.X2, l.Leader.Y2)
			dc.Stroke()
		}
		fill := "#222"
		if l.Inline && !outline {
			fill = styles.ContrastText(l.Color)
		}
		c, _ := styles.ParseHex(fill)
		dc.SetColor(c)
		drawText(dc, l.Text, l.X, l.Y, l.FontSize, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawGlyph(dc *gg.Context, g styles.Glyph, outline bool) {
	c, ok := styles.ParseHex(g.Color)
	if !ok {
		c, _ = styles.ParseHex(styles.DefaultColor)
	}
	stroke, _ := styles.ParseHex(styles.Darken(styles.Hex(c), 0.35))
	if outline {
		stroke = c
		c = color.RGBA{255, 255, 255, 255}
	}
	tracePolygons(dc, g.Polygons)
	dc.SetColor(c)
	dc.FillPreserve()
	if g.Dashed {
		dc.SetDash(4, 2)
	}
	dc.SetColor(stroke)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.SetDash()
}

func fillPolygons(dc *gg.Context, polys [][]styles.Point) {
	tracePolygons(dc, polys)
	dc.Fill()
}

func tracePolygons(dc *gg.Context, polys [][]styles.Point) {
	for _, poly := range polys {
		dc.NewSubPath()
		for i, pt := range poly {
			if i == 0 {
				dc.MoveTo(pt.X, pt.Y)
			} else {
				dc.LineTo(pt.X, pt.Y)
			}
		}
		dc.ClosePath()
	}
}

// drawText draws s scaled to size; y is the baseline when ay is 0 and the
// vertical center when ay is 0.5.
func drawText(dc *gg.Context, s string, x, y, size, ax, ay float64) {
	k := size / faceHeight
	dc.Push()
	dc.ScaleAbout(k, k, x, y)
	dc.DrawStringAnchored(s, x, y, ax, ay)
	dc.Pop()
}

func anchorX(anchor string) float64 {
	switch anchor {
	case "middle":
		return 0.5
	case "end":
		return 1
	}
	return 0
}
