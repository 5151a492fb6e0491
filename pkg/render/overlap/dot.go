package overlap

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

// Options configures overlap graph rendering.
type Options struct {
	// Detailed adds coordinates, strand and level to node labels.
	Detailed bool
}

// ToDOT converts the overlaps of a plan's features to Graphviz DOT.
func ToDOT(p *layout.Plan, opts Options) string {
	features := make([]featureOf, len(p.Glyphs))
	for i, g := range p.Glyphs {
		features[i] = featureOf{g: g}
	}
	edges := layout.OverlapGraph(glyphFeatures(p), p.Topology, p.Bounds, p.PointWidth)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("\n")

	byLevel := make([][]int, p.NumLevels)
	for _, f := range features {
		fmt.Fprintf(&buf, "  %s [%s];\n", f.id(), strings.Join(f.attrs(opts.Detailed), ", "))
		if f.g.Level >= 0 && f.g.Level < p.NumLevels {
			byLevel[f.g.Level] = append(byLevel[f.g.Level], f.g.Index)
		}
	}

	buf.WriteString("\n")
	for lvl, ids := range byLevel {
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph level%d { rank=same;", lvl)
		for _, id := range ids {
			fmt.Fprintf(&buf, " f%d;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  f%d -- f%d;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type featureOf struct{ g layout.Glyph }

func (f featureOf) id() string { return fmt.Sprintf("f%d", f.g.Index) }

func (f featureOf) label(detailed bool) string {
	name := f.g.Feature.Label
	if name == "" {
		name = fmt.Sprintf("#%d", f.g.Index)
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\n%d..%d %s\nlevel %d", name, f.g.Feature.Start, f.g.Feature.End, f.g.Feature.Strand, f.g.Level)
}

func (f featureOf) attrs(detailed bool) []string {
	fill := f.g.Feature.Color
	if _, ok := styles.ParseHex(fill); !ok {
		fill = styles.DefaultColor
	}
	return []string{
		fmt.Sprintf("label=%q", f.label(detailed)),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("fontcolor=%q", styles.ContrastText(fill)),
	}
}

func glyphFeatures(p *layout.Plan) []feature.Feature {
	out := make([]feature.Feature, len(p.Glyphs))
	for i, g := range p.Glyphs {
		out[i] = g.Feature
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, "png", scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
