package translate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

func qual(kv ...string) map[string][]string {
	q := make(map[string][]string)
	for i := 0; i+1 < len(kv); i += 2 {
		q[kv[i]] = append(q[kv[i]], kv[i+1])
	}
	return q
}

func sampleRecord() *annotation.Record {
	return &annotation.Record{
		ID:       "pDEMO",
		Length:   1000,
		Circular: true,
		Features: []annotation.Feature{
			{Type: "source", Start: 0, End: 1000, Strand: feature.Forward},
			{Type: "CDS", Start: 100, End: 400, Strand: feature.Forward, Qualifiers: qual("gene", "lacZ")},
			{Type: "terminator", Start: 450, End: 480, Strand: feature.Reverse, Qualifiers: qual("label", "rrnB T1 terminator")},
			{Type: "restriction_site", Start: 500, End: 500, Qualifiers: qual("label", "EcoRI")},
			{Type: "restriction_site", Start: 600, End: 600, Qualifiers: qual("label", "BamHI")},
			{Type: "rep_origin", Start: 950, End: 50, Strand: feature.Forward, Qualifiers: qual("label", "ori", "color", "#00ff00")},
			{Type: "origin", Start: 700, End: 720},
		},
	}
}

func TestDefaultHooks(t *testing.T) {
	rec, err := New(nil, nil).TranslateRecord(sampleRecord())
	if err != nil {
		t.Fatalf("TranslateRecord: %v", err)
	}
	if rec.Name != "pDEMO" || rec.Topology != feature.Circular || rec.Length != 1000 {
		t.Fatalf("record = %s %s %d", rec.Name, rec.Topology, rec.Length)
	}
	if len(rec.Features) != 6 {
		t.Fatalf("got %d features, want 6 (source dropped)", len(rec.Features))
	}

	cds := rec.Features[0]
	if cds.Label != "lacZ" || cds.Color != DefaultColor || cds.Kind != "CDS" || cds.Strand != feature.Forward {
		t.Errorf("CDS = %+v", cds)
	}
	ori := rec.Features[4]
	if ori.Color != "#00ff00" || ori.Start != 950 || ori.End != 1050 {
		t.Errorf("ori = %+v", ori)
	}
	if rec.Features[5].HasLabel() {
		t.Errorf("unlabeled origin got label %q", rec.Features[5].Label)
	}
}

func TestThemeHooks(t *testing.T) {
	theme, err := LoadTheme("testdata/theme.toml")
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	rec, err := New(DefaultHooks{Theme: theme}, nil).TranslateRecord(sampleRecord())
	if err != nil {
		t.Fatalf("TranslateRecord: %v", err)
	}

	byKind := func(kind string) feature.Feature {
		for _, f := range rec.Features {
			if f.Kind == kind {
				return f
			}
		}
		t.Fatalf("no %s feature", kind)
		return feature.Feature{}
	}

	if c := byKind("CDS").Color; c != "#ffd700" {
		t.Errorf("CDS color = %q", c)
	}
	if l := byKind("terminator").Label; l != "rrnB T.." {
		t.Errorf("terminator label = %q, want truncated", l)
	}
	if l := byKind("restriction_site").Label; l != "" {
		t.Errorf("restriction site label = %q, want none", l)
	}
	if th := byKind("rep_origin").Thickness; th != 0.4 {
		t.Errorf("rep_origin thickness = %v", th)
	}
	if c := byKind("origin").Color; c != "#cccccc" {
		t.Errorf("origin color = %q", c)
	}
	// theme keeps the default label fields and ignored kinds
	if len(rec.Features) != 6 {
		t.Errorf("got %d features, want 6", len(rec.Features))
	}
}

func TestParseThemeErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "default_color = "},
		{"bad color", `default_color = "#12345z"`},
		{"bad kind color", "[colors]\nCDS = \"not a color\""},
		{"negative length", "max_label_length = -1"},
		{"negative thickness", "[thickness]\nCDS = -2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTheme([]byte(tt.toml)); !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("ParseTheme() error = %v, want INVALID_THEME", err)
			}
		})
	}
}

func TestLoadThemeMissing(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadTheme() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTranslateRecordInvalid(t *testing.T) {
	rec := &annotation.Record{ID: "x", Length: 100, Features: []annotation.Feature{{Type: "gene", Start: 90, End: 120}}}
	_, err := New(nil, nil).TranslateRecord(rec)
	if !errors.Is(err, errors.ErrCodeOutOfRangeFeature) {
		t.Errorf("TranslateRecord() error = %v, want OUT_OF_RANGE_FEATURE", err)
	}
}

// newFeatureHooks colors terminators green, CDS blue and everything else
// gold, hides restriction sites other than BamHI, and widens origin marks.
type newFeatureHooks struct {
	DefaultHooks
}

func (newFeatureHooks) FeatureColor(f annotation.Feature) string {
	switch f.Type {
	case "CDS":
		return "blue"
	case "terminator":
		return "green"
	}
	return "gold"
}

func (h newFeatureHooks) FeatureLabel(f annotation.Feature) string {
	switch f.Type {
	case "restriction_site", "misc_feature":
		return ""
	case "CDS":
		return "CDS here"
	}
	return h.DefaultHooks.FeatureLabel(f)
}

func (newFeatureHooks) FilterFeatures(fs []annotation.Feature) []annotation.Feature {
	var out []annotation.Feature
	for _, f := range fs {
		if f.Type != "restriction_site" || strings.Contains(f.Qualifier("label"), "BamHI") {
			out = append(out, f)
		}
	}
	return out
}

func (newFeatureHooks) TranslateFeature(f annotation.Feature, d feature.Draft) feature.Draft {
	if f.Type == "origin" {
		return d.WithColor("yellow").WithThickness(0.4).Grow(80, 80)
	}
	if d.Label() == "rrnB T1 terminator" {
		return d.WithStrand(feature.Strandless).ClearLabel()
	}
	return d
}

func TestCustomHooks(t *testing.T) {
	rec, err := New(newFeatureHooks{}, nil).TranslateRecord(sampleRecord())
	if err != nil {
		t.Fatalf("TranslateRecord: %v", err)
	}

	var got []string
	for _, f := range rec.Features {
		got = append(got, fmt.Sprintf("%s:%s:%s:%d-%d", f.Kind, f.Color, f.Label, f.Start, f.End))
	}
	want := []string{
		"source:gold::0-1000",
		"CDS:blue:CDS here:100-400",
		"terminator:green::450-480",
		"restriction_site:gold::600-600",
		"rep_origin:gold:ori:950-1050",
		"origin:yellow::620-800",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("features:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if rec.Features[2].Strand != feature.Strandless {
		t.Error("terminator strand was not cleared")
	}
}

func TestTranslateGenBankFile(t *testing.T) {
	src, err := annotation.Open(filepath.Join("..", "annotation", "testdata", "plasmid.gb"))
	if err != nil {
		t.Fatalf("annotation.Open: %v", err)
	}
	rec, err := New(nil, nil).TranslateRecord(src)
	if err != nil {
		t.Fatalf("TranslateRecord: %v", err)
	}
	// source dropped; ori crosses the origin
	if len(rec.Features) != 5 || !rec.Wraps(rec.Features[2]) {
		t.Errorf("features = %v", rec.Features)
	}
}

func TestLoadThemeKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.toml")
	if err := os.WriteFile(path, []byte("label_fields = [\"product\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if len(theme.LabelFields) != 1 || theme.DefaultColor != DefaultColor {
		t.Errorf("theme = %+v", theme)
	}
}
