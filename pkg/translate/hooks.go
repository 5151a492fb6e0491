package translate

import (
	"slices"
	"strings"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// Hooks customizes how annotation features become map features.
type Hooks interface {
	// FeatureColor returns the fill color of a feature.
	FeatureColor(f annotation.Feature) string
	// FeatureLabel returns the label text; "" draws no label.
	FeatureLabel(f annotation.Feature) string
	// FilterFeatures returns the features to draw.
	FilterFeatures(fs []annotation.Feature) []annotation.Feature
	// TranslateFeature adjusts the draft seeded from f.
	TranslateFeature(f annotation.Feature, d feature.Draft) feature.Draft
}

// DefaultHooks implements [Hooks] from a theme. A nil Theme uses
// DefaultTheme.
type DefaultHooks struct {
	Theme *Theme
}

func (h DefaultHooks) theme() *Theme {
	if h.Theme == nil {
		return defaultTheme
	}
	return h.Theme
}

var defaultTheme = DefaultTheme()

// colorQualifiers are checked, in order, before the theme.
var colorQualifiers = []string{"color", "colour", "ApEinfo_fwdcolor"}

// FeatureColor prefers a color qualifier on the feature, then the theme's
// color for the feature type, then the theme default.
func (h DefaultHooks) FeatureColor(f annotation.Feature) string {
	if f.Strand == feature.Reverse {
		if c := f.Qualifier("ApEinfo_revcolor"); c != "" {
			return c
		}
	}
	for _, q := range colorQualifiers {
		if c := f.Qualifier(q); c != "" {
			return c
		}
	}
	t := h.theme()
	if c, ok := t.Colors[f.Type]; ok {
		return c
	}
	if t.DefaultColor != "" {
		return t.DefaultColor
	}
	return DefaultColor
}

// FeatureLabel returns the first non-empty qualifier among the theme's
// label fields, truncated to the theme's maximum length. Unlabeled kinds
// get no label.
func (h DefaultHooks) FeatureLabel(f annotation.Feature) string {
	t := h.theme()
	if t.unlabeled(f.Type) {
		return ""
	}
	for _, key := range t.LabelFields {
		if v := strings.TrimSpace(f.Qualifier(key)); v != "" {
			return t.truncate(v)
		}
	}
	return ""
}

// FilterFeatures drops the theme's ignored kinds.
func (h DefaultHooks) FilterFeatures(fs []annotation.Feature) []annotation.Feature {
	t := h.theme()
	return slices.DeleteFunc(slices.Clone(fs), func(f annotation.Feature) bool {
		return t.ignores(f.Type)
	})
}

// TranslateFeature applies the theme thickness and otherwise returns d.
func (h DefaultHooks) TranslateFeature(f annotation.Feature, d feature.Draft) feature.Draft {
	t := h.theme()
	if th, ok := t.Thickness[f.Type]; ok {
		return d.WithThickness(th)
	}
	if t.DefaultThickness > 0 {
		return d.WithThickness(t.DefaultThickness)
	}
	return d
}
