package feature

import (
	"fmt"
	"strings"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Strand is the orientation of a feature on the sequence.
type Strand int8

// Strand values. The numeric values follow the usual +1/-1/0 convention.
const (
	Reverse    Strand = -1
	Strandless Strand = 0
	Forward    Strand = 1
)

// ParseStrand parses the common textual spellings of a strand:
// "+", "-", ".", "1", "-1", "0", "forward", "reverse" and "none".
// The empty string is strandless.
func ParseStrand(s string) (Strand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "1", "+1", "forward", "fwd", "plus":
		return Forward, nil
	case "-", "-1", "reverse", "rev", "minus":
		return Reverse, nil
	case ".", "0", "", "none", "?":
		return Strandless, nil
	}
	return Strandless, errors.New(errors.ErrCodeInvalidInput, "invalid strand %q", s)
}

// String returns "+", "-" or ".".
func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// MarshalText implements encoding.TextMarshaler (used by JSON and YAML).
func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strand) UnmarshalText(b []byte) error {
	v, err := ParseStrand(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Topology is the shape of a record's coordinate space.
type Topology uint8

const (
	Linear Topology = iota
	Circular
)

// ParseTopology accepts "linear" and "circular" (case-insensitive).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return Linear, nil
	case "circular":
		return Circular, nil
	}
	return Linear, errors.New(errors.ErrCodeInvalidTopology, "invalid topology %q", s)
}

func (t Topology) String() string {
	switch t {
	case Linear:
		return "linear"
	case Circular:
		return "circular"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if t != Linear && t != Circular {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "invalid topology %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
