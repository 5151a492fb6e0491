package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// Format is a record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// ReadJSON decodes and normalizes a JSON record from r. It does not close r.
func ReadJSON(r io.Reader) (*feature.Record, error) {
	var rec feature.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode record")
	}
	return rec.Normalized()
}

// ReadYAML decodes and normalizes a YAML record from r.
func ReadYAML(r io.Reader) (*feature.Record, error) {
	var rec feature.Record
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode record")
	}
	return rec.Normalized()
}

// Read decodes a record in the given format.
func Read(r io.Reader, format Format) (*feature.Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown record format %q", format)
}

// Import reads a record file, choosing the decoder by extension.
func Import(path string) (*feature.Record, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown record file type: %s", path)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return rec, nil
}
