package overlap

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
)

func testPlan(t *testing.T) *layout.Plan {
	t.Helper()
	rec, err := feature.NewRecord(100, feature.Linear, []feature.Feature{
		{Start: 0, End: 50, Strand: feature.Forward, Label: "a", Color: "#ff0000"},
		{Start: 40, End: 60, Label: "b"},
		{Start: 70, End: 90},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := layout.ComputeLayout(rec)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testPlan(t), Options{})

	for _, want := range []string{
		"graph G {",
		`f0 [label="a", fillcolor="#ff0000", fontcolor="#fff"]`,
		`f2 [label="#2"`,
		"f0 -- f1;",
		"rank=same;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "f1 -- f2") || strings.Contains(dot, "f0 -- f2") {
		t.Errorf("ToDOT() has an edge for disjoint features:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testPlan(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="a\n0..50 +\nlevel 0"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testPlan(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() did not normalize the svg header")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox(no viewBox) = %q", got)
	}
}
