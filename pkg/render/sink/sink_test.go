package sink

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

func linearPlan(t *testing.T) *layout.Plan {
	t.Helper()
	rec, err := feature.NewRecord(1000, feature.Linear, []feature.Feature{
		{Start: 10, End: 300, Strand: feature.Forward, Label: "lacZ", Color: "#ffcc00"},
		{Start: 200, End: 500, Strand: feature.Reverse, Label: "bla & co"},
		{Start: 600, End: 600, Label: "site"},
	}, feature.WithName("pTest"))
	require.NoError(t, err)
	p, err := layout.ComputeLayout(rec)
	require.NoError(t, err)
	return p
}

func circularPlan(t *testing.T) *layout.Plan {
	t.Helper()
	rec, err := feature.NewRecord(1000, feature.Circular, []feature.Feature{
		{Start: 900, End: 100, Strand: feature.Forward, Label: "ori"},
		{Start: 300, End: 400, Strand: feature.Reverse, Label: "amp"},
	}, feature.WithName("pCirc"))
	require.NoError(t, err)
	p, err := layout.ComputeLayout(rec)
	require.NoError(t, err)
	return p
}

func signalTrack() *annotation.Track {
	return &annotation.Track{Name: "coverage", Points: []annotation.Signal{
		{Start: 0, End: 100, Value: 2},
		{Start: 100, End: 200, Value: 4},
		{Start: 200, End: 300, Value: 0},
	}}
}

func TestRenderSVGLinear(t *testing.T) {
	svg := string(RenderSVG(linearPlan(t), WithTracks(signalTrack())))

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Equal(t, 3, strings.Count(svg, `class="glyph"`))
	assert.Contains(t, svg, `id="feature-0"`)
	assert.Contains(t, svg, `fill="#ffcc00"`)
	assert.Contains(t, svg, `>bla &amp; co</text>`)
	assert.Contains(t, svg, `class="title"`)
	assert.Contains(t, svg, `>pTest</text>`)
	assert.Contains(t, svg, `>1,000</text>`, "ruler labels use thousands separators")
	assert.Contains(t, svg, `class="signal"`)
	assert.Contains(t, svg, `>coverage</text>`)
}

func TestRenderSVGOptions(t *testing.T) {
	p := linearPlan(t)

	plain := string(RenderSVG(p, WithoutTitle(), WithTicks(0)))
	assert.NotContains(t, plain, `class="title"`)
	assert.NotContains(t, plain, `class="tick"`)

	outline := string(RenderSVG(p, WithStyle(styles.Outline{})))
	assert.Contains(t, outline, `fill="white" stroke="#ffcc00"`)

	taller := newRenderer(WithLevelPixels(40)).build(p)
	shorter := newRenderer(WithLevelPixels(10)).build(p)
	assert.Greater(t, taller.height, shorter.height)
}

func TestLinearSceneGeometry(t *testing.T) {
	p := linearPlan(t)
	s := newRenderer(WithoutTitle()).build(p)

	require.Len(t, s.glyphs, 3)
	lacZ := s.glyphs[0].Polygons[0]
	require.Len(t, lacZ, 5, "forward features are arrows")
	assert.InDelta(t, margin+p.X(10), lacZ[0].X, 1e-9)
	assert.InDelta(t, margin+p.X(300), lacZ[2].X, 1e-9, "the tip sits on the 3' end")

	bla := s.glyphs[1].Polygons[0]
	assert.InDelta(t, margin+p.X(200), bla[2].X, 1e-9, "reverse arrows point left")

	site := s.glyphs[2].Polygons[0]
	require.Len(t, site, 4, "strandless features are boxes")
	assert.Greater(t, site[1].X, site[0].X, "point features keep a visible width")

	for _, l := range s.labels {
		if l.Leader != nil {
			assert.Less(t, l.Leader.Y2, l.Leader.Y1+1e-9, "labels sit above their features")
		}
	}
	assert.InDelta(t, p.Width+2*margin, s.width, 1e-9)
}

func TestCircularScene(t *testing.T) {
	p := circularPlan(t)
	s := newRenderer().build(p)

	assert.Equal(t, s.width, s.height)
	require.Len(t, s.glyphs, 2)
	assert.Len(t, s.glyphs[0].Polygons, 2, "the origin-crossing feature is drawn in two pieces")
	assert.Len(t, s.glyphs[1].Polygons, 1)
	require.NotEmpty(t, s.circles)

	// Every glyph point lies outside the backbone.
	cx, cy, backbone := s.circles[0].cx, s.circles[0].cy, s.circles[0].r
	for _, g := range s.glyphs {
		for _, poly := range g.Polygons {
			for _, pt := range poly {
				assert.Greater(t, math.Hypot(pt.X-cx, pt.Y-cy), backbone)
			}
		}
	}

	svg := string(RenderSVG(p, WithTracks(signalTrack())))
	assert.Contains(t, svg, `class="backbone"`)
	assert.Contains(t, svg, `>1,000 bp</text>`)
	assert.Contains(t, svg, `class="signal"`)
}

func TestSector(t *testing.T) {
	polar := func(theta, rad float64) styles.Point {
		return styles.Point{X: rad * math.Sin(theta), Y: -rad * math.Cos(theta)}
	}
	pts := sector(polar, 0, math.Pi/2, 10, 1, layout.ShapeArrowRight, 0.1)

	tip := polar(math.Pi/2, 10)
	found := false
	for _, pt := range pts {
		if math.Abs(pt.X-tip.X) < 1e-9 && math.Abs(pt.Y-tip.Y) < 1e-9 {
			found = true
		}
		r := math.Hypot(pt.X, pt.Y)
		assert.True(t, r >= 9-1e-9 && r <= 11+1e-9, "point at radius %v", r)
	}
	assert.True(t, found, "arrow tip missing")
}

func TestSegmentShape(t *testing.T) {
	g := layout.Glyph{Shape: layout.ShapeArrowRight, Segments: make([]feature.Range, 2)}
	assert.Equal(t, layout.ShapeBox, segmentShape(g, 0))
	assert.Equal(t, layout.ShapeArrowRight, segmentShape(g, 1))

	g.Shape = layout.ShapeArrowLeft
	assert.Equal(t, layout.ShapeArrowLeft, segmentShape(g, 0))
	assert.Equal(t, layout.ShapeBox, segmentShape(g, 1))
}

func TestRenderPNG(t *testing.T) {
	for name, p := range map[string]*layout.Plan{"linear": linearPlan(t), "circular": circularPlan(t)} {
		t.Run(name, func(t *testing.T) {
			data, err := RenderPNG(p, WithScale(1), WithTracks(signalTrack()))
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			s := newRenderer(WithTracks(signalTrack())).build(p)
			assert.Equal(t, int(math.Ceil(s.width)), img.Bounds().Dx())
			assert.Equal(t, int(math.Ceil(s.height)), img.Bounds().Dy())
		})
	}
}

func TestRenderJSON(t *testing.T) {
	p := linearPlan(t)
	data, err := RenderJSON(p, WithStyle(styles.Outline{}), WithTracks(signalTrack()))
	require.NoError(t, err)

	doc, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "outline", doc.Style)
	assert.Equal(t, p.Levels(), doc.Plan.Levels())
	assert.Len(t, doc.Plan.Labels, len(p.Labels))
	require.Len(t, doc.Tracks, 1)
	assert.Equal(t, "coverage", doc.Tracks[0].Name)

	_, err = ParseJSON([]byte(`{"style":"simple"}`))
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
}

func TestRenderDispatch(t *testing.T) {
	p := linearPlan(t)

	out, err := Render(p, FormatSVG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("<svg")))

	_, err = Render(p, Format("gif"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	f, err := ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType())
	_, err = ParseFormat("bmp")
	assert.Error(t, err)
}
