// Package translate turns parsed annotation records into feature records.
//
// A [Translator] walks the annotation features and asks its [Hooks] four
// questions: which features to keep, what color and label each gets, and
// how to adjust the resulting draft. [DefaultHooks] answers them from a
// [Theme]; custom strategies embed DefaultHooks and override only the
// methods they care about:
//
//	type myHooks struct{ translate.DefaultHooks }
//
//	func (myHooks) FeatureColor(f annotation.Feature) string {
//	    if f.Type == "CDS" {
//	        return "blue"
//	    }
//	    return "gold"
//	}
//
// Hooks never mutate features in place. TranslateFeature receives a
// [feature.Draft] and returns a new one, which the translator freezes into
// the record.
package translate
