package annotation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// Feature is one annotated interval as found in the source file.
type Feature struct {
	Type       string              `json:"type"`
	Start      int                 `json:"start"`
	End        int                 `json:"end"`
	Strand     feature.Strand      `json:"strand"`
	Qualifiers map[string][]string `json:"qualifiers,omitempty"`
}

// Qualifier returns the first value of key, or "".
func (f Feature) Qualifier(key string) string {
	if v := f.Qualifiers[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether the qualifier key is present.
func (f Feature) Has(key string) bool {
	_, ok := f.Qualifiers[key]
	return ok
}

func (f *Feature) add(key, value string) {
	if f.Qualifiers == nil {
		f.Qualifiers = make(map[string][]string)
	}
	f.Qualifiers[key] = append(f.Qualifiers[key], value)
}

// Record is a parsed annotation file.
type Record struct {
	ID       string    `json:"id"`
	Length   int       `json:"length"`
	Circular bool      `json:"circular"`
	Features []Feature `json:"features"`
}

// Format identifies an annotation file format.
type Format string

const (
	FormatGenBank  Format = "genbank"
	FormatGFF      Format = "gff"
	FormatBED      Format = "bed"
	FormatBedGraph Format = "bedgraph"
)

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gb", ".gbk", ".genbank", ".gbff":
		return FormatGenBank, true
	case ".gff", ".gff3":
		return FormatGFF, true
	case ".bed":
		return FormatBED, true
	case ".bedgraph", ".bdg":
		return FormatBedGraph, true
	}
	return "", false
}

// Open reads an annotation record from path, choosing the reader by file
// extension.
func Open(path string) (*Record, error) {
	format, ok := DetectFormat(path)
	if !ok || format == FormatBedGraph {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported annotation file: %s", path)
	}
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec *Record
	switch format {
	case FormatGenBank:
		rec, err = ReadGenBank(f)
	case FormatGFF:
		rec, err = ReadGFF(f)
	case FormatBED:
		rec, err = ReadBED(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return rec, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

func parseError(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeParse, "line %d: %s", line, fmt.Sprintf(format, args...))
}
