package sink

import (
	"encoding/json"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/layout"
)

// Document is the JSON sink output: the plan plus the canvas it would be
// drawn on, so other renderers can reproduce the picture.
type Document struct {
	Style  string              `json:"style"`
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Plan   *layout.Plan        `json:"plan"`
	Tracks []*annotation.Track `json:"tracks,omitempty"`
}

// RenderJSON renders the plan as an indented JSON [Document].
func RenderJSON(p *layout.Plan, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := r.build(p)

	doc := Document{Style: r.style.Name(), Width: s.width, Height: s.height, Plan: p}
	for _, t := range r.tracks {
		if t != nil {
			doc.Tracks = append(doc.Tracks, t.Crop(p.Bounds))
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode plan document")
	}
	return data, nil
}

// ParseJSON reads a [Document] written by [RenderJSON].
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode plan document")
	}
	if doc.Plan == nil {
		return nil, errors.New(errors.ErrCodeParse, "plan document has no plan")
	}
	return &doc, nil
}
