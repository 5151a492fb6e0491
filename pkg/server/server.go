// Package server exposes the feature map pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                     liveness and build info
//	GET    /metrics                     Prometheus metrics
//	POST   /v1/layout                   record → layout plan
//	POST   /v1/crop                     record → cropped record
//	POST   /v1/render?format=svg        record → rendered map
//	GET    /v1/records                  list stored records
//	GET    /v1/records/{name}           fetch a stored record
//	PUT    /v1/records/{name}           store a record
//	DELETE /v1/records/{name}           delete a stored record
//	GET    /v1/records/{name}/layout    layout of a stored record
//	GET    /v1/records/{name}/render    render a stored record
//
// Errors are JSON objects {"code": ..., "message": ...}; the status is
// derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/pipeline"
	"github.com/matzehuels/featuremap/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 32 << 20

// RecordStore is the subset of [store.Store] used by the record routes.
type RecordStore interface {
	Put(ctx context.Context, name string, rec *feature.Record) error
	Get(ctx context.Context, name string) (*feature.Record, error)
	List(ctx context.Context) ([]store.Entry, error)
	Delete(ctx context.Context, name string) error
}

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  RecordStore         // nil disables the /v1/records routes
	Gather prometheus.Gatherer // nil serves the default registry
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Gather == nil {
		cfg.Gather = prometheus.DefaultGatherer
	}
	s := &Server{cfg: cfg, runner: cfg.Runner, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gather, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/crop", s.handleCrop)
		r.Post("/render", s.handleRender)

		if s.cfg.Store != nil {
			r.Get("/records", s.handleListRecords)
			r.Route("/records/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetRecord)
				r.Put("/", s.handlePutRecord)
				r.Delete("/", s.handleDeleteRecord)
				r.Get("/layout", s.handleRecordLayout)
				r.Get("/render", s.handleRecordRender)
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorStatus(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
