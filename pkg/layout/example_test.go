package layout_test

import (
	"fmt"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
)

func Example() {
	rec, err := feature.NewRecord(40, feature.Linear, []feature.Feature{
		{Start: 0, End: 10, Label: "A"},
		{Start: 5, End: 15, Label: "B"},
		{Start: 20, End: 30, Label: "C"},
	})
	if err != nil {
		panic(err)
	}

	plan, err := layout.ComputeLayout(rec)
	if err != nil {
		panic(err)
	}
	for _, g := range plan.Glyphs {
		fmt.Printf("%s level %d\n", g.Feature.Label, g.Level)
	}
	fmt.Println("levels:", plan.NumLevels)
	// Output:
	// A level 0
	// B level 1
	// C level 0
	// levels: 2
}

func ExampleAssignLevels() {
	rec, _ := feature.NewRecord(100, feature.Circular, []feature.Feature{
		{Start: 95, End: 10},
		{Start: 0, End: 5},
	})
	levels, n := layout.AssignLevels(rec.Features, rec.Topology, rec.Bounds(), 1)
	fmt.Println(levels, n)
	// Output: [0 1] 2
}
