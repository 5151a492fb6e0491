package annotation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

func TestReadGenBank(t *testing.T) {
	rec, err := Open("testdata/plasmid.gb")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rec.ID != "pDEMO" || rec.Length != 120 || !rec.Circular {
		t.Fatalf("header = %q %d circular=%v", rec.ID, rec.Length, rec.Circular)
	}

	tests := []struct {
		typ        string
		start, end int
		strand     feature.Strand
	}{
		{"source", 0, 120, feature.Forward},
		{"promoter", 9, 30, feature.Reverse},
		{"CDS", 34, 90, feature.Forward},
		{"rep_origin", 109, 8, feature.Forward},
		{"misc_feature", 94, 100, feature.Forward},
		{"restriction_site", 60, 60, feature.Forward},
	}
	if len(rec.Features) != len(tests) {
		t.Fatalf("got %d features, want %d", len(rec.Features), len(tests))
	}
	for i, tt := range tests {
		f := rec.Features[i]
		if f.Type != tt.typ || f.Start != tt.start || f.End != tt.end || f.Strand != tt.strand {
			t.Errorf("feature %d = %s %d..%d %v, want %s %d..%d %v",
				i, f.Type, f.Start, f.End, f.Strand, tt.typ, tt.start, tt.end, tt.strand)
		}
	}

	cds := rec.Features[2]
	if got := cds.Qualifier("product"); got != "beta-galactosidase alpha fragment" {
		t.Errorf("product = %q", got)
	}
	if !cds.Has("pseudo") {
		t.Error("flag qualifier /pseudo was dropped")
	}
	if got := rec.Features[1].Qualifier("label"); got != "lac promoter" {
		t.Errorf("label = %q", got)
	}
}

func TestReadGenBankLengthFromOrigin(t *testing.T) {
	in := "LOCUS       x\nFEATURES             Location/Qualifiers\n     gene            1..5\nORIGIN\n        1 acgtacgtac\n//\n"
	rec, err := ReadGenBank(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadGenBank: %v", err)
	}
	if rec.Length != 10 || rec.Circular {
		t.Errorf("Length = %d circular=%v, want 10 linear", rec.Length, rec.Circular)
	}
}

func TestApplyLocation(t *testing.T) {
	tests := []struct {
		loc        string
		circular   bool
		start, end int
		strand     feature.Strand
	}{
		{"1..10", false, 0, 10, feature.Forward},
		{"complement(join(1..10,20..30))", false, 0, 30, feature.Reverse},
		{"join(complement(20..30),complement(1..10))", false, 0, 30, feature.Reverse},
		{"join(90..100,1..5)", true, 89, 5, feature.Forward},
		{"join(90..100,1..5)", false, 0, 100, feature.Forward},
		{"7", false, 6, 7, feature.Forward},
		{"order(1..4, 8..9)", false, 0, 9, feature.Forward},
	}

	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			var f Feature
			if err := applyLocation(&f, tt.loc, tt.circular); err != nil {
				t.Fatalf("applyLocation: %v", err)
			}
			if f.Start != tt.start || f.End != tt.end || f.Strand != tt.strand {
				t.Errorf("applyLocation(%q) = %d..%d %v, want %d..%d %v",
					tt.loc, f.Start, f.End, f.Strand, tt.start, tt.end, tt.strand)
			}
		})
	}

	var f Feature
	if err := applyLocation(&f, "x..y", false); err == nil {
		t.Error("applyLocation(x..y) expected error")
	}
}

func TestReadGFF(t *testing.T) {
	rec, err := Open("testdata/sample.gff3")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rec.ID != "chrP" || rec.Length != 500 || !rec.Circular {
		t.Fatalf("header = %q %d circular=%v", rec.ID, rec.Length, rec.Circular)
	}
	if len(rec.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(rec.Features))
	}

	cds := rec.Features[2]
	if cds.Start != 299 || cds.End != 450 || cds.Strand != feature.Reverse {
		t.Errorf("CDS = %d..%d %v", cds.Start, cds.End, cds.Strand)
	}
	if cds.Qualifier("label") != "my cds" {
		t.Errorf("label = %q, want %q", cds.Qualifier("label"), "my cds")
	}
	if got := cds.Qualifiers["Note"]; len(got) != 2 || got[1] != "b" {
		t.Errorf("Note = %v", got)
	}
}

func TestReadGFFErrors(t *testing.T) {
	_, err := ReadGFF(strings.NewReader("chr\tsrc\tgene\t1\t10\n"))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("ReadGFF(short line) error = %v, want PARSE_ERROR", err)
	}
	_, err = ReadGFF(strings.NewReader("chr\tsrc\tgene\ta\t10\t.\t+\t.\t.\n"))
	if !errors.Is(err, errors.ErrCodeParse) || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("ReadGFF(bad coordinate) error = %v", err)
	}
}

func TestReadBED(t *testing.T) {
	rec, err := Open("testdata/sites.bed")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rec.ID != "chr1" || rec.Length != 90 || len(rec.Features) != 3 {
		t.Fatalf("record = %+v", rec)
	}
	if f := rec.Features[0]; f.Start != 10 || f.End != 20 || f.Qualifier("label") != "siteA" || f.Strand != feature.Forward {
		t.Errorf("feature 0 = %+v", f)
	}
	if f := rec.Features[1]; f.Has("label") || f.Strand != feature.Reverse {
		t.Errorf("feature 1 = %+v", f)
	}
	if f := rec.Features[2]; f.Strand != feature.Strandless {
		t.Errorf("feature 2 strand = %v", f.Strand)
	}
}

func TestBedGraph(t *testing.T) {
	track, err := OpenTrack("testdata/signal.bedgraph")
	if err != nil {
		t.Fatalf("OpenTrack: %v", err)
	}
	if track.Name != "signal 1" || len(track.Points) != 3 {
		t.Fatalf("track = %+v", track)
	}
	if track.Max() != 4 || track.Min() != 0.25 {
		t.Errorf("Max/Min = %v/%v", track.Max(), track.Min())
	}

	cropped := track.Crop(feature.Range{Start: 5, End: 20})
	want := []Signal{{Start: 5, End: 10, Value: 1.5}, {Start: 10, End: 20, Value: 4}}
	if len(cropped.Points) != len(want) {
		t.Fatalf("Crop() = %+v, want %+v", cropped.Points, want)
	}
	for i := range want {
		if cropped.Points[i] != want[i] {
			t.Errorf("Crop()[%d] = %+v, want %+v", i, cropped.Points[i], want[i])
		}
	}
	if (&Track{}).Max() != 0 {
		t.Error("empty track Max() != 0")
	}
}

func TestOpenTrackNamedAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage.bdg")
	if err := os.WriteFile(path, []byte("chr1\t0\t5\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	track, err := OpenTrack(path)
	if err != nil {
		t.Fatalf("OpenTrack: %v", err)
	}
	if track.Name != "coverage" {
		t.Errorf("Name = %q, want coverage", track.Name)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open("testdata/missing.gb"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Open(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Open("testdata/readme.txt"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Open(txt) error = %v, want UNSUPPORTED", err)
	}
}
