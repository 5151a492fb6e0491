package feature

import (
	"fmt"
	"testing"
)

func TestDraftIsAValue(t *testing.T) {
	base := NewDraft(10, 20).WithLabel("orig").WithAttr("k", "v")
	changed := base.WithLabel("new").WithAttr("k", "w").Grow(5, 5)

	if base.Label() != "orig" || base.Attr("k") != "v" || base.Start() != 10 {
		t.Errorf("base draft was modified: %+v", base.Build())
	}
	if changed.Start() != 5 || changed.End() != 25 || changed.Attr("k") != "w" {
		t.Errorf("changed draft = %+v", changed.Build())
	}
}

func TestDraftBuild(t *testing.T) {
	f := NewDraft(0, 100).
		WithStrand(Forward).
		WithLabel("bla").
		ClearLabel().
		WithColor("#ffcccc").
		WithThickness(12).
		WithKind("CDS").
		Build()

	want := Feature{Start: 0, End: 100, Strand: Forward, Color: "#ffcccc", Thickness: 12, Kind: "CDS"}
	if f.String() != want.String() || f.Color != want.Color || f.Thickness != want.Thickness || f.Kind != want.Kind {
		t.Errorf("Build() = %+v, want %+v", f, want)
	}
	if f.HasLabel() {
		t.Error("ClearLabel() did not remove the label")
	}
}

func ExampleDraft() {
	d := NewDraft(20, 500).WithStrand(Forward).WithLabel("Gene 1")
	// customization code extends the feature and recolors it
	d = d.Grow(0, 100).WithColor("#ccccff")
	fmt.Println(d.Build())
	// Output: Gene 1[20,600]+
}
