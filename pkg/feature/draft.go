package feature

import "maps"

// Draft is a feature under construction. Translation hooks receive a draft
// seeded from the annotation and return an updated one; the translator
// freezes it with [Draft.Build].
//
// Drafts are values. Every With* method returns a new draft and leaves the
// receiver untouched, so a hook can never corrupt a draft it was handed.
type Draft struct {
	f Feature
}

// NewDraft starts a strandless, unlabeled draft over [start, end].
func NewDraft(start, end int) Draft {
	return Draft{f: Feature{Start: start, End: end}}
}

// DraftOf starts a draft from an existing feature.
func DraftOf(f Feature) Draft {
	return Draft{f: f.Clone()}
}

func (d Draft) Start() int             { return d.f.Start }
func (d Draft) End() int               { return d.f.End }
func (d Draft) Strand() Strand         { return d.f.Strand }
func (d Draft) Label() string          { return d.f.Label }
func (d Draft) Color() string          { return d.f.Color }
func (d Draft) Kind() string           { return d.f.Kind }
func (d Draft) Thickness() float64     { return d.f.Thickness }
func (d Draft) Attr(key string) string { return d.f.Attrs[key] }

// WithBounds replaces the coordinates.
func (d Draft) WithBounds(start, end int) Draft {
	d.f.Start, d.f.End = start, end
	return d
}

// Grow extends the feature by left units before Start and right units after
// End. Negative values shrink it.
func (d Draft) Grow(left, right int) Draft {
	d.f.Start -= left
	d.f.End += right
	return d
}

func (d Draft) WithStrand(s Strand) Draft {
	d.f.Strand = s
	return d
}

func (d Draft) WithLabel(label string) Draft {
	d.f.Label = label
	return d
}

// ClearLabel removes the label so none is drawn.
func (d Draft) ClearLabel() Draft {
	d.f.Label = ""
	return d
}

func (d Draft) WithColor(color string) Draft {
	d.f.Color = color
	return d
}

func (d Draft) WithThickness(t float64) Draft {
	d.f.Thickness = t
	return d
}

func (d Draft) WithKind(kind string) Draft {
	d.f.Kind = kind
	return d
}

// WithAttr sets a style attribute. The attribute map is copied on write.
func (d Draft) WithAttr(key, value string) Draft {
	attrs := make(map[string]string, len(d.f.Attrs)+1)
	maps.Copy(attrs, d.f.Attrs)
	attrs[key] = value
	d.f.Attrs = attrs
	return d
}

// Build freezes the draft into a Feature.
func (d Draft) Build() Feature {
	return d.f.Clone()
}
