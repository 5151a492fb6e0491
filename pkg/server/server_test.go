package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/observability"
	"github.com/matzehuels/featuremap/pkg/store"
)

const recordJSON = `{
  "name": "pDEMO",
  "length": 100,
  "topology": "circular",
  "features": [
    {"start": 90, "end": 10, "strand": "+", "label": "ori"},
    {"start": 20, "end": 40, "strand": "-", "label": "bla"},
    {"start": 30, "end": 60, "strand": "+", "label": "lacZ"}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	reg := prometheus.NewRegistry()
	observability.NewPrometheus(reg).Register()
	t.Cleanup(observability.Reset)

	srv := New(Config{Store: st, Gather: reg, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthAndRequestID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a uuid request id")

	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, id, resp2.Header.Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/layout", "application/json",
		`{"record": `+recordJSON+`, "options": {"width": 600}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	plan, err := layout.UnmarshalPlan(data)
	require.NoError(t, err)
	assert.Equal(t, feature.Circular, plan.Topology)
	assert.Len(t, plan.Glyphs, 3)
	assert.GreaterOrEqual(t, plan.NumLevels, 2, "bla and lacZ overlap")
	assert.NoError(t, plan.Validate())
}

func TestCrop(t *testing.T) {
	ts, _ := newTestServer(t)

	linear := strings.Replace(recordJSON, `"circular"`, `"linear"`, 1)
	linear = strings.Replace(linear, `"start": 90, "end": 10`, `"start": 80, "end": 95`, 1)
	resp := do(t, http.MethodPost, ts.URL+"/v1/crop", "application/json",
		`{"record": `+linear+`, "crop": {"start": 25, "end": 50}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec feature.Record
	decodeBody(t, resp, &rec)
	assert.Equal(t, 25, rec.FirstIndex)
	assert.Equal(t, 25, rec.Length)
	assert.Len(t, rec.Features, 2)

	resp = do(t, http.MethodPost, ts.URL+"/v1/crop", "application/json", `{"record": `+linear+`}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{"record": ` + recordJSON + `}`

	resp := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Levels"))
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg")))

	resp = do(t, http.MethodPost, ts.URL+"/v1/render?format=png", "application/json", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodPost, ts.URL+"/v1/render?format=gif", "application/json", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e errorBody
	decodeBody(t, resp, &e)
	assert.Equal(t, "INVALID_FORMAT", e.Code)
}

func TestRequestErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"record":`, http.StatusBadRequest, "PARSE_ERROR"},
		{"missing record", `{"options": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"out of range", `{"record": {"length": 10, "features": [{"start": 2, "end": 30}]}}`, http.StatusBadRequest, "OUT_OF_RANGE_FEATURE"},
		{"bad crop", `{"record": {"length": 10}, "crop": {"start": 8, "end": 2}}`, http.StatusBadRequest, "INVALID_CROP_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/layout", "application/json", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var e errorBody
			decodeBody(t, resp, &e)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.RequestID)
		})
	}
}

func TestStoredRecords(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/v1/records/pDEMO", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, ts.URL+"/v1/records/pDEMO", "application/json", recordJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	yamlRecord := "length: 50\nfeatures:\n  - {start: 5, end: 20, strand: \"-\", label: x}\n"
	resp = do(t, http.MethodPut, ts.URL+"/v1/records/small", "application/yaml", yamlRecord)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/records", "", "")
	var list struct {
		Records []store.Entry `json:"records"`
	}
	decodeBody(t, resp, &list)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "pDEMO", list.Records[0].Name)
	assert.Equal(t, "small", list.Records[1].Name)

	resp = do(t, http.MethodGet, ts.URL+"/v1/records/small", "", "")
	var rec feature.Record
	decodeBody(t, resp, &rec)
	assert.Equal(t, "small", rec.Name)
	assert.Equal(t, feature.Reverse, rec.Features[0].Strand)

	resp = do(t, http.MethodGet, ts.URL+"/v1/records/pDEMO/layout?width=500&inline_labels=true", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	plan, err := layout.UnmarshalPlan(data)
	require.NoError(t, err)
	assert.Equal(t, 500.0, plan.Width)

	resp = do(t, http.MethodGet, ts.URL+"/v1/records/pDEMO/render?format=json", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodGet, ts.URL+"/v1/records/pDEMO/layout?width=wide", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, ts.URL+"/v1/records/pDEMO", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, ts.URL+"/v1/records/pDEMO", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, ts.URL+"/v1/records/bad..name", "application/json", recordJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	do(t, http.MethodPost, ts.URL+"/v1/layout", "application/json", `{"record": `+recordJSON+`}`)
	resp := do(t, http.MethodGet, ts.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "featuremap_http_requests_total")
	assert.Contains(t, string(data), `route="/v1/layout"`)
}

func TestRecordsDisabledWithoutStore(t *testing.T) {
	srv := New(Config{Logger: log.New(io.Discard), Gather: prometheus.NewRegistry()})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/v1/records", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotFoundRoute(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/v2/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var e errorBody
	decodeBody(t, resp, &e)
	assert.Equal(t, "NOT_FOUND", e.Code)
}
