package translate

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// Translator converts annotation records using a set of hooks.
type Translator struct {
	Hooks  Hooks
	Logger *log.Logger
}

// New returns a translator. Nil hooks use DefaultHooks with the default
// theme; a nil logger discards output.
func New(hooks Hooks, logger *log.Logger) *Translator {
	if hooks == nil {
		hooks = DefaultHooks{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Translator{Hooks: hooks, Logger: logger}
}

// TranslateFeature converts one annotation feature. The hooks are consulted
// in order: FeatureColor and FeatureLabel seed the draft, TranslateFeature
// adjusts it.
func (t *Translator) TranslateFeature(f annotation.Feature) feature.Feature {
	d := feature.NewDraft(f.Start, f.End).
		WithStrand(f.Strand).
		WithKind(f.Type).
		WithColor(t.Hooks.FeatureColor(f)).
		WithLabel(t.Hooks.FeatureLabel(f))
	return t.Hooks.TranslateFeature(f, d).Build()
}

// TranslateRecord filters and converts every feature of rec and returns a
// validated record. Extra options are applied after the ones derived from
// rec.
func (t *Translator) TranslateRecord(rec *annotation.Record, opts ...feature.RecordOption) (*feature.Record, error) {
	kept := t.Hooks.FilterFeatures(rec.Features)
	features := make([]feature.Feature, len(kept))
	for i, f := range kept {
		features[i] = t.TranslateFeature(f)
	}

	topology := feature.Linear
	if rec.Circular {
		topology = feature.Circular
	}
	opts = append([]feature.RecordOption{feature.WithName(rec.ID)}, opts...)
	out, err := feature.NewRecord(rec.Length, topology, features, opts...)
	if err != nil {
		return nil, err
	}

	t.Logger.Debug("translated record",
		"id", rec.ID,
		"features", len(features),
		"filtered", len(rec.Features)-len(kept),
		"topology", topology)
	return out, nil
}
