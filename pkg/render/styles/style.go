package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// Style defines the visual appearance of a feature map.
type Style interface {
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderGlyph writes one feature glyph.
	RenderGlyph(buf *bytes.Buffer, g Glyph)
	// RenderLabel writes a label and its leader line.
	RenderLabel(buf *bytes.Buffer, l Label)
	// Name identifies the style in options and JSON output.
	Name() string
}

// Point is a drawing coordinate.
type Point struct{ X, Y float64 }

// Glyph is a positioned feature outline. Features crossing the origin of a
// circular map have one polygon per segment.
type Glyph struct {
	ID       string
	Index    int
	Kind     string
	Label    string
	Color    string // fill color, "#rrggbb" or a CSS name
	Dashed   bool
	Polygons [][]Point
}

// Label is a positioned label text.
type Label struct {
	Feature  int
	Text     string
	X, Y     float64 // text anchor (middle, baseline at Y + FontSize/3)
	FontSize float64
	Inline   bool   // drawn over its glyph
	Color    string // glyph color, used for inline contrast
	Leader   *Line  // nil for inline labels
}

// Line is a straight segment.
type Line struct{ X1, Y1, X2, Y2 float64 }

// PathData returns SVG path data for closed polygons.
func PathData(polys [][]Point) string {
	var sb strings.Builder
	for _, poly := range polys {
		for i, p := range poly {
			if i == 0 {
				fmt.Fprintf(&sb, "M%.2f,%.2f", p.X, p.Y)
			} else {
				fmt.Fprintf(&sb, " L%.2f,%.2f", p.X, p.Y)
			}
		}
		if len(poly) > 0 {
			sb.WriteString(" Z ")
		}
	}
	return strings.TrimSpace(sb.String())
}

// ByName returns the style registered under name; the empty name is
// [Simple].
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "outline":
		return Outline{}, true
	}
	return nil, false
}

func renderText(buf *bytes.Buffer, l Label, fill string) {
	fmt.Fprintf(buf, `  <text class="label" data-feature="%d" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" fill="%s">%s</text>`+"\n",
		l.Feature, l.X, l.Y+l.FontSize/3, l.FontSize, fill, EscapeXML(l.Text))
}

func renderLeader(buf *bytes.Buffer, l Label, stroke string) {
	if l.Leader == nil {
		return
	}
	fmt.Fprintf(buf, `  <line class="leader" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.75"/>`+"\n",
		l.Leader.X1, l.Leader.Y1, l.Leader.X2, l.Leader.Y2, stroke)
}
