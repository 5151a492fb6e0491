package feature

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Feature is one annotated interval on a sequence.
//
// Color, Thickness and Attrs are style information carried opaquely to the
// renderer. Kind is the annotation type ("CDS", "promoter", ...); the layout
// engine never interprets it.
type Feature struct {
	Start     int               `json:"start" yaml:"start"`
	End       int               `json:"end" yaml:"end"`
	Strand    Strand            `json:"strand" yaml:"strand"`
	Label     string            `json:"label,omitempty" yaml:"label,omitempty"`
	Color     string            `json:"color,omitempty" yaml:"color,omitempty"`
	Thickness float64           `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Kind      string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// IsPoint reports whether the feature has zero width.
func (f Feature) IsPoint() bool { return f.Start == f.End }

// HasLabel reports whether a label should be drawn for the feature.
func (f Feature) HasLabel() bool { return f.Label != "" }

// Len returns End - Start.
func (f Feature) Len() int { return f.End - f.Start }

// Span returns the feature's closed coordinate range.
func (f Feature) Span() Range { return Range{Start: f.Start, End: f.End} }

// Clone returns a copy that shares no mutable state with f.
func (f Feature) Clone() Feature {
	f.Attrs = maps.Clone(f.Attrs)
	return f
}

func (f Feature) String() string {
	if f.Label != "" {
		return fmt.Sprintf("%s[%d,%d]%s", f.Label, f.Start, f.End, f.Strand)
	}
	return fmt.Sprintf("[%d,%d]%s", f.Start, f.End, f.Strand)
}

// Range is a closed coordinate interval [Start, End].
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns End - Start. It is negative for inverted ranges.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers no sequence (zero width or inverted).
func (r Range) Empty() bool { return r.End <= r.Start }

// Contains reports whether x lies in [Start, End].
func (r Range) Contains(x int) bool { return x >= r.Start && x <= r.End }

// Covers reports whether o lies entirely inside r.
func (r Range) Covers(o Range) bool { return o.Start >= r.Start && o.End <= r.End }

// Intersect returns the closed intersection of r and o. Ranges that only
// touch intersect in a single point.
func (r Range) Intersect(o Range) (Range, bool) {
	out := Range{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.Start > out.End {
		return Range{}, false
	}
	return out, true
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 { return float64(r.Start+r.End) / 2 }

func (r Range) String() string { return fmt.Sprintf("%d:%d", r.Start, r.End) }

// ParseRange parses "a:b", "a..b" or "a-b" into a Range. It does not check
// that the range is non-empty; that depends on the record it is applied to.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{"..", ":", "-"} {
		// skip a leading minus sign so "-5:10" is not split on it
		i := strings.Index(s[min(1, len(s)):], sep)
		if i < 0 {
			continue
		}
		i += min(1, len(s))
		a, errA := strconv.Atoi(strings.TrimSpace(s[:i]))
		b, errB := strconv.Atoi(strings.TrimSpace(s[i+len(sep):]))
		if errA != nil || errB != nil {
			break
		}
		return Range{Start: a, End: b}, nil
	}
	return Range{}, errors.New(errors.ErrCodeInvalidCropRange, "invalid range %q (want start:end)", s)
}
