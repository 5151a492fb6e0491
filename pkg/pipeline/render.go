package pipeline

import (
	"fmt"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/sink"
)

// RenderPlan draws p in every requested format.
func RenderPlan(p *layout.Plan, tracks []*annotation.Track, opts Options) (map[string][]byte, error) {
	sinkOpts := opts.RenderOptions(tracks)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		format, err := sink.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		data, err := sink.Render(p, format, sinkOpts...)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}
