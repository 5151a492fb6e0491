package layout

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// tenPerChar measures every rune as 10 drawing units.
var tenPerChar = MeasureFunc(func(s string) float64 { return float64(len([]rune(s))) * 10 })

func place(t *testing.T, feats []feature.Feature, visible feature.Range, cfg LabelConfig) ([]LabelPlacement, []Warning) {
	t.Helper()
	levels, n := AssignLevels(feats, feature.Linear, feature.Range{Start: 0, End: 100}, 1)
	if cfg.Measurer == nil {
		cfg.Measurer = tenPerChar
	}
	return PlaceLabels(feats, levels, n, feature.Linear, visible, cfg)
}

func TestPlaceLabelsRows(t *testing.T) {
	feats := []feature.Feature{
		{Start: 0, End: 10, Label: "a"},
		{Start: 10, End: 20, Label: "b"},
		{Start: 0, End: 20, Label: "c"},
		{Start: 50, End: 60},
	}
	placed, warnings := place(t, feats, feature.Range{Start: 0, End: 100}, LabelConfig{})
	require.Empty(t, warnings)
	require.Len(t, placed, 3)

	// levels: a=0, b=0 (touching), c=1; two feature levels
	assert.Equal(t, []int{0, 1, 2}, []int{placed[0].Feature, placed[1].Feature, placed[2].Feature})
	assert.Equal(t, 0, placed[0].Row)
	assert.Equal(t, 0, placed[1].Row)
	assert.Equal(t, 1, placed[2].Row)
	assert.Equal(t, 2, placed[0].Level)
	assert.Equal(t, 3, placed[2].Level)
	assert.Equal(t, 1, placed[2].FeatureLevel)
	assert.InDelta(t, 5.0, placed[0].Anchor, 1e-9)
	assert.InDelta(t, 15.0, placed[1].Anchor, 1e-9)
}

func TestPlaceLabelsClipping(t *testing.T) {
	visible := feature.Range{Start: 0, End: 100}
	tests := []struct {
		name        string
		feat        feature.Feature
		left, right float64
		overflow    bool
	}{
		{"centered", feature.Feature{Start: 40, End: 60, Label: "x"}, 45, 55, false},
		{"pushed right", feature.Feature{Start: 0, End: 2, Label: "x"}, 0, 10, false},
		{"pushed left", feature.Feature{Start: 98, End: 100, Label: "x"}, 90, 100, false},
		{"overflow stays centered", feature.Feature{Start: 40, End: 60, Label: strings.Repeat("x", 20)}, -50, 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed, warnings := place(t, []feature.Feature{tt.feat}, visible, LabelConfig{})
			require.Len(t, placed, 1)
			p := placed[0]
			assert.InDelta(t, tt.left, p.Left, 1e-9)
			assert.InDelta(t, tt.right, p.Right, 1e-9)
			assert.InDelta(t, (tt.left+tt.right)/2, p.Anchor, 1e-9)
			assert.Equal(t, tt.overflow, p.Overflow)
			if tt.overflow {
				require.Len(t, warnings, 1)
				assert.Equal(t, errors.ErrCodeLabelOverflow, warnings[0].Code)
				assert.Equal(t, 0, warnings[0].Feature)
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestPlaceLabelsVisiblePortion(t *testing.T) {
	feats := []feature.Feature{
		{Start: 30, End: 70, Label: "ab"},
		{Start: 80, End: 90, Label: "hidden"},
	}
	placed, _ := place(t, feats, feature.Range{Start: 0, End: 50}, LabelConfig{})
	require.Len(t, placed, 1)
	assert.Equal(t, 0, placed[0].Feature)
	assert.InDelta(t, 40.0, placed[0].Anchor, 1e-9)
}

func TestPlaceLabelsSpacingAndScale(t *testing.T) {
	feats := []feature.Feature{{Start: 40, End: 60, Label: "ab"}}
	placed, _ := place(t, feats, feature.Range{Start: 0, End: 100}, LabelConfig{UnitsPerPixel: 0.5, Spacing: 4})
	require.Len(t, placed, 1)
	// (20px + 4px) * 0.5 units/px = 12 units
	assert.InDelta(t, 12.0, placed[0].Right-placed[0].Left, 1e-9)
	assert.InDelta(t, 20.0, placed[0].Width, 1e-9)
}

func TestPlaceLabelsInline(t *testing.T) {
	feats := []feature.Feature{
		{Start: 0, End: 50, Label: "fits"},
		{Start: 60, End: 65, Label: "too long"},
	}
	placed, _ := place(t, feats, feature.Range{Start: 0, End: 100}, LabelConfig{Inline: true})
	require.Len(t, placed, 2)

	assert.True(t, placed[0].Inline)
	assert.Equal(t, -1, placed[0].Row)
	assert.Equal(t, placed[0].FeatureLevel, placed[0].Level)

	assert.False(t, placed[1].Inline)
	assert.Equal(t, 0, placed[1].Row)
	assert.Equal(t, 1, labelRows(placed))
}

func TestPlaceLabelsCircular(t *testing.T) {
	rec, err := feature.NewRecord(100, feature.Circular, []feature.Feature{
		{Start: 95, End: 5, Label: "ori"},
		{Start: 0, End: 2, Label: "x"},
		{Start: 50, End: 52, Label: "y"},
	})
	require.NoError(t, err)
	levels, n := AssignLevels(rec.Features, rec.Topology, rec.Bounds(), 1)

	placed, warnings := PlaceLabels(rec.Features, levels, n, rec.Topology, rec.Bounds(), LabelConfig{Measurer: tenPerChar})
	require.Empty(t, warnings)
	require.Len(t, placed, 3)

	// "ori" is centered on the origin and wraps; "x" collides with it
	assert.InDelta(t, 0.0, placed[0].Anchor, 1e-9)
	assert.InDelta(t, 85.0, placed[0].Left, 1e-9)
	assert.NotEqual(t, placed[0].Row, placed[1].Row)
	assert.Equal(t, 0, placed[2].Row)
}

func TestPlaceLabelsProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	visible := feature.Range{Start: 0, End: 100}

	for iter := range 200 {
		feats := randomFeatures(rng, 100, 1+rng.IntN(10))
		for i := range feats {
			if rng.IntN(4) > 0 {
				feats[i].Label = strings.Repeat("g", 1+rng.IntN(4))
			}
		}
		placed, _ := place(t, feats, visible, LabelConfig{Spacing: 2})

		boxes := make([]feature.Feature, len(placed))
		for i, p := range placed {
			for j := i + 1; j < len(placed); j++ {
				q := placed[j]
				if p.Row == q.Row {
					require.False(t, p.Left < q.Right && q.Left < p.Right,
						"iter %d: labels %v and %v collide on row %d", iter, p, q, p.Row)
				}
			}
			boxes[i] = feature.Feature{Start: int(p.Left * 10), End: int(p.Right * 10)}
		}

		// boxes are on a 0.1 grid: scale to integers for the clique check
		edges := OverlapGraph(boxes, feature.Linear, feature.Range{Start: 0, End: 1000}, 1)
		require.Equal(t, maxClique(len(boxes), edges), labelRows(placed), "iter %d: label rows not minimal", iter)
	}
}
