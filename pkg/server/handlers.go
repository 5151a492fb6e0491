package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/featuremap/pkg/buildinfo"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
	recordio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/pipeline"
	"github.com/matzehuels/featuremap/pkg/render/sink"
	"github.com/matzehuels/featuremap/pkg/store"
)

var validate = validator.New()

// MapRequest is the body of the /v1/layout, /v1/crop and /v1/render routes.
type MapRequest struct {
	Record  *feature.Record  `json:"record" validate:"required"`
	Crop    *feature.Range   `json:"crop,omitempty"`
	Options pipeline.Options `json:"options"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*MapRequest, error) {
	var req MapRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode request")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}
	return &req, nil
}

// options turns request options into pipeline options for rec. File-backed
// inputs (input, theme, tracks) are never honored over HTTP.
func (s *Server) options(r *http.Request, base pipeline.Options, rec *feature.Record, crop *feature.Range) pipeline.Options {
	opts := base
	opts.Input = ""
	opts.Theme = ""
	opts.Tracks = nil
	opts.Hooks = nil
	opts.Record = rec
	if crop != nil {
		opts.Crop = fmt.Sprintf("%d:%d", crop.Start, crop.End)
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Current()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.layout(r, s.options(r, req.Options, req.Record, req.Crop))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePlan(w, r, plan)
}

func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Crop == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "crop is required"))
		return
	}
	rec, err := s.runner.Load(r.Context(), s.options(r, req.Options, req.Record, req.Crop))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, s.options(r, req.Options, req.Record, req.Crop))
}

// layout loads and lays out the record in opts.
func (s *Server) layout(r *http.Request, opts pipeline.Options) (*layout.Plan, error) {
	rec, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		return nil, err
	}
	return s.runner.Layout(r.Context(), rec, opts)
}

// render lays out and draws the record in opts in the format named by the
// "format" query parameter (default svg).
func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	f, err := sink.ParseFormat(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	plan, err := s.layout(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), plan, nil, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Levels", strconv.Itoa(plan.NumLevels))
	w.Header().Set("X-Label-Rows", strconv.Itoa(plan.NumLabelRows))
	writeBytes(w, http.StatusOK, f.ContentType(), artifacts[format])
}

func (s *Server) writePlan(w http.ResponseWriter, r *http.Request, plan *layout.Plan) {
	data, err := layout.MarshalPlan(plan)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode plan"))
		return
	}
	writeBytes(w, http.StatusOK, "application/json", data)
}

// =============================================================================
// Stored records
// =============================================================================

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": entries})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handlePutRecord accepts a JSON record, or YAML when the content type
// says so.
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := recordio.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = recordio.FormatYAML
	}
	rec, err := recordio.Read(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if rec.Name == "" {
		rec.Name = name
	}
	if err := s.cfg.Store.Put(r.Context(), name, rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":     name,
		"topology": rec.Topology,
		"length":   rec.Length,
		"features": len(rec.Features),
	})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.storedOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.layout(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePlan(w, r, plan)
}

func (s *Server) handleRecordRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.storedOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, opts)
}

// storedOptions loads the named record and reads layout options from the
// query string.
func (s *Server) storedOptions(r *http.Request) (pipeline.Options, error) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return pipeline.Options{}, err
	}
	base, err := queryOptions(r.URL.Query())
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := s.options(r, base, rec, nil)
	opts.Crop = base.Crop
	return opts, nil
}

// queryOptions parses the layout and render options accepted as query
// parameters.
func queryOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error
	parseFloat := func(key string, dst *float64) {
		if v := q.Get(key); v != "" && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s", key)
			}
		}
	}
	parseBool := func(key string, dst *bool) {
		if v := q.Get(key); v != "" && err == nil {
			if *dst, err = strconv.ParseBool(v); err != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s", key)
			}
		}
	}
	parseFloat("width", &opts.Width)
	parseFloat("font_size", &opts.FontSize)
	parseFloat("level_pixels", &opts.LevelPixels)
	parseBool("circular", &opts.Circular)
	parseBool("inline_labels", &opts.InlineLabels)
	parseBool("no_labels", &opts.NoLabels)
	if v := q.Get("origin"); v != "" && err == nil {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = errors.Wrap(errors.ErrCodeInvalidInput, perr, "invalid origin")
		}
		opts.Origin = &n
	}
	opts.Crop = q.Get("crop")
	opts.Style = q.Get("style")
	return opts, err
}
