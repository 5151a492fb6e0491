package pipeline

import (
	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
)

// ComputeLayout runs the layout engine on rec with the options' layout
// settings.
func ComputeLayout(rec *feature.Record, opts Options) (*layout.Plan, error) {
	opts.SetLayoutDefaults()
	return layout.New(opts.LayoutOptions()...).ComputeLayout(rec)
}
