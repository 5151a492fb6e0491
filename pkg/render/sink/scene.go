package sink

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

const (
	glyphFill = 0.65 // glyph height as a fraction of the level height
	arcStep   = math.Pi / 90
)

type text struct {
	s      string
	x, y   float64
	anchor string // SVG text-anchor
	class  string
	size   float64
}

type circle struct{ cx, cy, r float64 }

// scene is a plan positioned on a canvas, independent of output format.
type scene struct {
	width, height float64
	circles       []circle
	lines         []styles.Line
	bars          [][][]styles.Point // per track
	texts         []text
	glyphs        []styles.Glyph
	labels        []styles.Label
}

func (r *renderer) build(p *layout.Plan) *scene {
	if p.IsCircular() {
		return r.buildCircular(p)
	}
	return r.buildLinear(p)
}

// =============================================================================
// Linear
// =============================================================================

func (r *renderer) buildLinear(p *layout.Plan) *scene {
	s := &scene{width: p.Width + 2*margin}
	top := margin
	if r.title && p.Name != "" {
		s.texts = append(s.texts, text{s: p.Name, x: margin, y: top, anchor: "start", class: "title", size: r.fontSize * 1.3})
		top += r.fontSize * 1.6
	}

	rows := p.NumLevels + p.NumLabelRows
	base := top + float64(rows)*r.levelPx
	x := func(pos float64) float64 { return margin + p.X(pos) }
	cy := func(level int) float64 { return base - (float64(level)+0.5)*r.levelPx }
	head := r.levelPx * 0.5

	for _, g := range p.Glyphs {
		h := r.levelPx * glyphFill * thickness(g.Feature)
		polys := make([][]styles.Point, 0, len(g.Segments))
		for i, seg := range g.Segments {
			b := p.GlyphBox(g, seg)
			polys = append(polys, arrow(margin+b.Left, margin+b.Right, cy(g.Level), h, segmentShape(g, i), head))
		}
		s.glyphs = append(s.glyphs, glyphOf(g, polys))
	}

	for _, lp := range p.Labels {
		g := p.Glyphs[lp.Feature]
		l := styles.Label{Feature: lp.Feature, Text: lp.Text, FontSize: r.fontSize, Color: g.Feature.Color, X: x((lp.Left + lp.Right) / 2)}
		if lp.Inline {
			l.Inline, l.Y = true, cy(lp.FeatureLevel)
		} else {
			l.Y = cy(lp.Level)
			h := r.levelPx * glyphFill * thickness(g.Feature)
			l.Leader = &styles.Line{X1: x(visibleMid(g, p.Bounds)), Y1: cy(lp.FeatureLevel) - h/2, X2: l.X, Y2: l.Y + r.fontSize/2}
		}
		s.labels = append(s.labels, l)
	}

	axisY := base + 4
	s.lines = append(s.lines, styles.Line{X1: x(float64(p.Bounds.Start)), Y1: axisY, X2: x(float64(p.Bounds.End)), Y2: axisY})
	cursor := axisY + 8
	if r.ticks > 0 {
		for _, t := range p.Ticks(r.ticks) {
			tx := x(float64(t))
			s.lines = append(s.lines, styles.Line{X1: tx, Y1: axisY, X2: tx, Y2: axisY + 5})
			s.texts = append(s.texts, text{s: humanize.Comma(int64(t)), x: tx, y: axisY + 5 + r.fontSize, anchor: "middle", class: "tick", size: r.fontSize * 0.9})
		}
		cursor = axisY + 5 + r.fontSize + 8
	}

	for _, t := range r.tracks {
		if t == nil {
			continue
		}
		t = t.Crop(p.Bounds)
		s.texts = append(s.texts, text{s: t.Name, x: margin, y: cursor + r.fontSize*0.9, anchor: "start", class: "track", size: r.fontSize * 0.9})
		baseline := cursor + r.fontSize + 4 + r.trackPx
		s.lines = append(s.lines, styles.Line{X1: x(float64(p.Bounds.Start)), Y1: baseline, X2: x(float64(p.Bounds.End)), Y2: baseline})
		var bars [][]styles.Point
		if mx := t.Max(); mx > 0 {
			for _, pt := range t.Points {
				if pt.Value <= 0 {
					continue
				}
				h := pt.Value / mx * r.trackPx
				x0, x1 := x(float64(pt.Start)), x(float64(pt.End))
				bars = append(bars, []styles.Point{{X: x0, Y: baseline - h}, {X: x1, Y: baseline - h}, {X: x1, Y: baseline}, {X: x0, Y: baseline}})
			}
		}
		s.bars = append(s.bars, bars)
		cursor = baseline + 8
	}

	s.height = cursor + margin
	return s
}

// arrow returns the outline of a glyph segment between x0 and x1.
func arrow(x0, x1, cy, h float64, shape layout.Shape, head float64) []styles.Point {
	top, bot := cy-h/2, cy+h/2
	head = min(head, x1-x0)
	switch shape {
	case layout.ShapeArrowRight:
		return []styles.Point{{X: x0, Y: top}, {X: x1 - head, Y: top}, {X: x1, Y: cy}, {X: x1 - head, Y: bot}, {X: x0, Y: bot}}
	case layout.ShapeArrowLeft:
		return []styles.Point{{X: x1, Y: top}, {X: x0 + head, Y: top}, {X: x0, Y: cy}, {X: x0 + head, Y: bot}, {X: x1, Y: bot}}
	}
	return []styles.Point{{X: x0, Y: top}, {X: x1, Y: top}, {X: x1, Y: bot}, {X: x0, Y: bot}}
}

// visibleMid is the middle of the part of a glyph inside bounds.
func visibleMid(g layout.Glyph, bounds feature.Range) float64 {
	if part, ok := g.Feature.Span().Intersect(bounds); ok {
		return part.Mid()
	}
	return g.Feature.Span().Mid()
}

// =============================================================================
// Circular
// =============================================================================

func (r *renderer) buildCircular(p *layout.Plan) *scene {
	rows := p.NumLevels + p.NumLabelRows
	ring := p.RingRadius + float64(p.NumLevels)
	// px per layout unit; the first label row lands where the engine
	// measured label widths.
	unit := p.Width / 2 / ((ring + 1) * p.LevelHeight)
	outer := (p.RingRadius+float64(rows))*p.LevelHeight*unit + r.fontSize
	half := max(p.Width/2, outer)

	s := &scene{width: 2 * (half + margin), height: 2 * (half + margin)}
	cx, cy := s.width/2, s.height/2
	polar := func(theta, rad float64) styles.Point {
		return styles.Point{X: cx + rad*math.Sin(theta), Y: cy - rad*math.Cos(theta)}
	}
	length := float64(p.Bounds.Len())
	backbone := (p.RingRadius - 0.25) * p.LevelHeight * unit

	s.circles = append(s.circles, circle{cx, cy, backbone})
	o0, o1 := polar(0, backbone-8), polar(0, backbone+8)
	s.lines = append(s.lines, styles.Line{X1: o0.X, Y1: o0.Y, X2: o1.X, Y2: o1.Y})
	if r.ticks > 0 {
		for _, t := range p.Ticks(r.ticks) {
			if t == p.Bounds.End {
				continue
			}
			th := p.Angle(float64(t))
			a, b := polar(th, backbone), polar(th, backbone-5)
			s.lines = append(s.lines, styles.Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
			at := polar(th, backbone-5-r.fontSize)
			s.texts = append(s.texts, text{s: humanize.Comma(int64(t)), x: at.X, y: at.Y, anchor: "middle", class: "tick", size: r.fontSize * 0.9})
		}
	}
	if r.title {
		if p.Name != "" {
			s.texts = append(s.texts, text{s: p.Name, x: cx, y: cy, anchor: "middle", class: "title", size: r.fontSize * 1.3})
		}
		s.texts = append(s.texts, text{s: humanize.Comma(int64(length)) + " bp", x: cx, y: cy + r.fontSize*1.5, anchor: "middle", class: "subtitle", size: r.fontSize})
	}

	head := r.levelPx * 0.5
	for _, g := range p.Glyphs {
		rm := p.Radius(g.Level) * unit
		ht := p.LevelHeight * unit * glyphFill * thickness(g.Feature) / 2
		polys := make([][]styles.Point, 0, len(g.Segments))
		for i, seg := range g.Segments {
			width := float64(seg.Len())
			if len(g.Segments) == 1 {
				width = max(width, p.PointWidth)
			}
			sweep := 2 * math.Pi * width / length
			polys = append(polys, sector(polar, p.Angle(float64(seg.Start)), sweep, rm, ht, segmentShape(g, i), min(head/rm, sweep)))
		}
		s.glyphs = append(s.glyphs, glyphOf(g, polys))
	}

	for _, lp := range p.Labels {
		g := p.Glyphs[lp.Feature]
		th := p.Angle((lp.Left + lp.Right) / 2)
		l := styles.Label{Feature: lp.Feature, Text: lp.Text, FontSize: r.fontSize, Color: g.Feature.Color}
		if lp.Inline {
			pt := polar(th, p.Radius(lp.FeatureLevel)*unit)
			l.X, l.Y, l.Inline = pt.X, pt.Y, true
		} else {
			rad := p.Radius(lp.Level) * unit
			pt := polar(th, rad)
			l.X, l.Y = pt.X, pt.Y
			ht := p.LevelHeight * unit * glyphFill * thickness(g.Feature) / 2
			from := polar(p.Angle(lp.Anchor), p.Radius(lp.FeatureLevel)*unit+ht)
			to := polar(th, rad-r.fontSize/2)
			l.Leader = &styles.Line{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y}
		}
		s.labels = append(s.labels, l)
	}

	trackH := r.trackPx * 0.6
	inner := backbone - 2*r.fontSize - 6
	for _, t := range r.tracks {
		if t == nil {
			continue
		}
		if inner-trackH <= 0 {
			break
		}
		t = t.Crop(p.Bounds)
		base := inner - trackH
		s.circles = append(s.circles, circle{cx, cy, base})
		var bars [][]styles.Point
		if mx := t.Max(); mx > 0 {
			for _, pt := range t.Points {
				if pt.Value <= 0 || pt.End <= pt.Start {
					continue
				}
				h := pt.Value / mx * trackH
				sweep := 2 * math.Pi * float64(pt.End-pt.Start) / length
				bars = append(bars, sector(polar, p.Angle(float64(pt.Start)), sweep, base+h/2, h/2, layout.ShapeBox, 0))
			}
		}
		s.bars = append(s.bars, bars)
		inner = base - 6
	}
	return s
}

// sector returns the outline of an annular sector starting at angle a0,
// with an arrow head of headAng radians for arrow shapes.
func sector(polar func(theta, rad float64) styles.Point, a0, sweep, rm, ht float64, shape layout.Shape, headAng float64) []styles.Point {
	inner, outer := rm-ht, rm+ht
	a1 := a0 + sweep
	lo, hi := a0, a1
	switch shape {
	case layout.ShapeArrowRight:
		hi = a1 - headAng
	case layout.ShapeArrowLeft:
		lo = a0 + headAng
	}
	pts := arc(polar, lo, hi, outer)
	if shape == layout.ShapeArrowRight {
		pts = append(pts, polar(a1, rm))
	}
	pts = append(pts, arc(polar, hi, lo, inner)...)
	if shape == layout.ShapeArrowLeft {
		pts = append(pts, polar(a0, rm))
	}
	return pts
}

func arc(polar func(theta, rad float64) styles.Point, from, to, rad float64) []styles.Point {
	n := max(1, int(math.Ceil(math.Abs(to-from)/arcStep)))
	pts := make([]styles.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, polar(from+(to-from)*float64(i)/float64(n), rad))
	}
	return pts
}

// =============================================================================
// Shared
// =============================================================================

// segmentShape puts the arrow head on the segment holding the 3' end.
func segmentShape(g layout.Glyph, i int) layout.Shape {
	switch {
	case g.Shape == layout.ShapeArrowRight && i == len(g.Segments)-1:
		return layout.ShapeArrowRight
	case g.Shape == layout.ShapeArrowLeft && i == 0:
		return layout.ShapeArrowLeft
	}
	return layout.ShapeBox
}

func thickness(f feature.Feature) float64 {
	if f.Thickness <= 0 {
		return 1
	}
	return min(f.Thickness, 1.4)
}

func glyphOf(g layout.Glyph, polys [][]styles.Point) styles.Glyph {
	return styles.Glyph{
		ID:       fmt.Sprintf("feature-%d", g.Index),
		Index:    g.Index,
		Kind:     g.Feature.Kind,
		Label:    g.Feature.Label,
		Color:    g.Feature.Color,
		Dashed:   g.Feature.Attrs["linestyle"] == "dashed",
		Polygons: polys,
	}
}
