package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// WriteJSON encodes rec as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(rec *feature.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes rec as YAML.
func WriteYAML(rec *feature.Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes rec in the given format.
func Write(rec *feature.Record, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(rec, w)
	case FormatYAML:
		return WriteYAML(rec, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown record format %q", format)
}

// Export writes rec to path, choosing the encoder by extension.
func Export(rec *feature.Record, path string) error {
	format, ok := FormatFor(path)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown record file type: %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(rec, f, format)
}
