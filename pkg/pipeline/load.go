package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/feature"
	recordio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/translate"
)

// isRecordDocument reports whether path names a JSON or YAML record rather
// than an annotation file.
func isRecordDocument(path string) bool {
	_, ok := recordio.FormatFor(path)
	return ok
}

// Load reads opts.Input (or takes opts.Record), translates annotation files
// through the configured hooks, forces circular topology when requested and
// applies the crop window.
func Load(ctx context.Context, opts Options) (*feature.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := loadRecord(opts)
	if err != nil {
		return nil, err
	}
	if opts.Circular && !rec.IsCircular() {
		circ := rec.Clone()
		circ.Topology = feature.Circular
		if rec, err = circ.Normalized(); err != nil {
			return nil, err
		}
	}
	if opts.Crop != "" {
		rng, err := feature.ParseRange(opts.Crop)
		if err != nil {
			return nil, err
		}
		if rec, err = rec.Crop(rng); err != nil {
			return nil, fmt.Errorf("crop %s: %w", opts.Crop, err)
		}
	}
	return rec, nil
}

func loadRecord(opts Options) (*feature.Record, error) {
	if opts.Record != nil {
		return opts.Record.Normalized()
	}
	if isRecordDocument(opts.Input) {
		return recordio.Import(opts.Input)
	}

	ann, err := annotation.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	if opts.Circular {
		ann.Circular = true
	}
	hooks, err := opts.hooks()
	if err != nil {
		return nil, err
	}
	return translate.New(hooks, opts.Logger).TranslateRecord(ann)
}

// hooks returns opts.Hooks, or the default hooks over opts.Theme.
func (o *Options) hooks() (translate.Hooks, error) {
	if o.Hooks != nil {
		return o.Hooks, nil
	}
	if o.Theme == "" {
		return translate.DefaultHooks{}, nil
	}
	theme, err := translate.LoadTheme(o.Theme)
	if err != nil {
		return nil, err
	}
	return translate.DefaultHooks{Theme: theme}, nil
}

// LoadTracks reads bedGraph signal tracks. When rec was cropped, each track
// is cut to the record's bounds.
func LoadTracks(paths []string, rec *feature.Record) ([]*annotation.Track, error) {
	tracks := make([]*annotation.Track, 0, len(paths))
	for _, p := range paths {
		t, err := annotation.OpenTrack(p)
		if err != nil {
			return nil, err
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
		if rec != nil {
			t = t.Crop(rec.Bounds())
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
