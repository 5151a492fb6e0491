package feature

import (
	"encoding/json"
	"testing"
)

func TestParseStrand(t *testing.T) {
	tests := []struct {
		in      string
		want    Strand
		wantErr bool
	}{
		{"+", Forward, false},
		{"1", Forward, false},
		{"forward", Forward, false},
		{"-", Reverse, false},
		{"-1", Reverse, false},
		{"Reverse", Reverse, false},
		{".", Strandless, false},
		{"", Strandless, false},
		{"0", Strandless, false},
		{"sideways", Strandless, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrand(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrand(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStrand(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFeatureJSON(t *testing.T) {
	f := Feature{Start: 5, End: 20, Strand: Reverse, Label: "lacZ", Attrs: map[string]string{"linestyle": "dashed"}}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"start":5,"end":20,"strand":"-","label":"lacZ","attrs":{"linestyle":"dashed"}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Feature
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Strand != Reverse || back.Attrs["linestyle"] != "dashed" {
		t.Errorf("Unmarshal() = %+v", back)
	}
}

func TestTopologyText(t *testing.T) {
	var top Topology
	if err := top.UnmarshalText([]byte("Circular")); err != nil || top != Circular {
		t.Errorf("UnmarshalText(Circular) = %v, %v", top, err)
	}
	if err := top.UnmarshalText([]byte("moebius")); err == nil {
		t.Error("UnmarshalText(moebius) expected error")
	}
	if _, err := Topology(7).MarshalText(); err == nil {
		t.Error("MarshalText(7) expected error")
	}
}

func TestFeatureClone(t *testing.T) {
	f := Feature{Start: 1, End: 2, Attrs: map[string]string{"a": "1"}}
	c := f.Clone()
	c.Attrs["a"] = "2"
	if f.Attrs["a"] != "1" {
		t.Error("Clone() shares Attrs with the original")
	}
}

func TestRangeIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Range
		want   Range
		wantOK bool
	}{
		{"overlap", Range{0, 10}, Range{5, 15}, Range{5, 10}, true},
		{"contained", Range{0, 10}, Range{2, 3}, Range{2, 3}, true},
		{"touch", Range{0, 10}, Range{10, 20}, Range{10, 10}, true},
		{"disjoint", Range{0, 10}, Range{11, 20}, Range{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersect() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{"0:10", Range{0, 10}, false},
		{"100..250", Range{100, 250}, false},
		{"5-15", Range{5, 15}, false},
		{"-5:10", Range{-5, 10}, false},
		{" 90 : 10 ", Range{90, 10}, false},
		{"abc", Range{}, true},
		{"1:x", Range{}, true},
		{"", Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
