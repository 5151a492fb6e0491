package feature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Record is an ordered sequence of features on a sequence of a given length.
//
// Feature order is translation order; nothing requires it to be sorted, and
// layout results are reported per index into Features.
type Record struct {
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	FirstIndex int       `json:"first_index,omitempty" yaml:"first_index,omitempty"`
	Length     int       `json:"length" yaml:"length"`
	Topology   Topology  `json:"topology" yaml:"topology"`
	Origin     int       `json:"origin,omitempty" yaml:"origin,omitempty"` // circular: coordinate drawn at the top
	Period     int       `json:"period,omitempty" yaml:"period,omitempty"` // linear crop of a circle: the circle's length
	Features   []Feature `json:"features" yaml:"features"`
}

// RecordOption configures optional record fields in [NewRecord].
type RecordOption func(*Record)

// WithName sets the record name.
func WithName(name string) RecordOption {
	return func(r *Record) { r.Name = name }
}

// WithFirstIndex sets the coordinate of the first position. Cropped records
// use it to keep absolute coordinates.
func WithFirstIndex(first int) RecordOption {
	return func(r *Record) { r.FirstIndex = first }
}

// WithOrigin sets the coordinate drawn at angle zero on circular maps.
func WithOrigin(origin int) RecordOption {
	return func(r *Record) { r.Origin = origin }
}

// NewRecord builds a normalized, validated record. The features are copied.
//
// Circular records accept features that cross the origin written either
// with End < Start or with End past the end of the domain; both are
// normalized to Start inside the domain and End = Start + span. Linear
// records reject any coordinate outside [FirstIndex, FirstIndex+Length]
// with ErrCodeOutOfRangeFeature.
func NewRecord(length int, topology Topology, features []Feature, opts ...RecordOption) (*Record, error) {
	r := &Record{Length: length, Topology: topology, Features: features}
	for _, opt := range opts {
		opt(r)
	}
	return r.Normalized()
}

// Bounds returns the closed coordinate domain of the record.
func (r *Record) Bounds() Range {
	return Range{Start: r.FirstIndex, End: r.FirstIndex + r.Length}
}

// IsCircular reports whether the record wraps.
func (r *Record) IsCircular() bool { return r.Topology == Circular }

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := *r
	out.Features = make([]Feature, len(r.Features))
	for i, f := range r.Features {
		out.Features[i] = f.Clone()
	}
	return &out
}

// Normalized returns a validated copy of the record with circular
// coordinates reduced into the domain. The receiver is not modified.
func (r *Record) Normalized() (*Record, error) {
	if err := r.validateShape(); err != nil {
		return nil, err
	}
	out := r.Clone()
	if out.Topology == Circular {
		out.Origin = out.wrap(out.Origin)
		for i := range out.Features {
			f := &out.Features[i]
			if f.End < f.Start {
				f.End += out.Length
			}
			if span := f.End - f.Start; span > out.Length {
				return nil, errors.New(errors.ErrCodeOutOfRangeFeature,
					"feature %d [%d,%d] is longer than the sequence (%d)", i, f.Start, f.End, out.Length)
			}
			shift := out.wrap(f.Start) - f.Start
			f.Start += shift
			f.End += shift
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the record invariants without modifying anything. It
// fails on the first offending feature.
func (r *Record) Validate() error {
	if err := r.validateShape(); err != nil {
		return err
	}
	b := r.Bounds()
	for i, f := range r.Features {
		ok := false
		switch r.Topology {
		case Linear:
			ok = f.Start >= b.Start && f.Start <= f.End && f.End <= b.End
		case Circular:
			ok = f.Start >= b.Start && f.Start < b.End && f.Start <= f.End && f.End <= f.Start+r.Length
		}
		if !ok {
			return errors.New(errors.ErrCodeOutOfRangeFeature,
				"feature %d [%d,%d] is outside %s record bounds [%d,%d]", i, f.Start, f.End, r.Topology, b.Start, b.End)
		}
	}
	return nil
}

func (r *Record) validateShape() error {
	if r.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "record length must be positive, got %d", r.Length)
	}
	if r.Topology != Linear && r.Topology != Circular {
		return errors.New(errors.ErrCodeInvalidTopology, "invalid topology %d", uint8(r.Topology))
	}
	if r.Period < 0 || (r.Period > 0 && r.Period < r.Length) {
		return errors.New(errors.ErrCodeInvalidInput, "record period %d is shorter than length %d", r.Period, r.Length)
	}
	return nil
}

// wrap reduces x modulo Length into [FirstIndex, FirstIndex+Length).
func (r *Record) wrap(x int) int {
	off := (x - r.FirstIndex) % r.Length
	if off < 0 {
		off += r.Length
	}
	return r.FirstIndex + off
}

// Wraps reports whether f crosses the end of the domain (circular only).
func (r *Record) Wraps(f Feature) bool {
	return r.Topology == Circular && f.End > r.FirstIndex+r.Length
}

// Hash returns a stable content hash of the record, suitable for cache keys.
func (r *Record) Hash() string {
	data, _ := json.Marshal(r)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
