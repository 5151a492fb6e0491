package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "featuremap"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	features      prometheus.Histogram
	levels        *prometheus.HistogramVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"stage", "kind"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Pipeline stage failures",
		}, []string{"stage"}),
		features: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "features",
			Help:      "Features per laid out record",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		levels: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "rows",
			Help:      "Feature levels and label rows per plan",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
		}, []string{"kind"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes",
		}, []string{"stage", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"stage"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(p.stageDuration, p.stageErrors, p.features, p.levels,
			p.cacheEvents, p.cacheBytes, p.requests, p.latency)
	}
	return p
}

// Register installs p as the pipeline, cache and server hooks.
func (p *Prometheus) Register() {
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetServerHooks(p)
}

func (p *Prometheus) finish(stage, kind string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(stage, kind).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	p.finish("load", format, d, err)
}

func (p *Prometheus) OnLayoutStart(_ context.Context, _ string, features int) {
	p.features.Observe(float64(features))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, topology string, levels, labelRows int, d time.Duration, err error) {
	p.finish("layout", topology, d, err)
	if err == nil {
		p.levels.WithLabelValues("levels").Observe(float64(levels))
		p.levels.WithLabelValues("label_rows").Observe(float64(labelRows))
	}
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	p.finish("render", strings.Join(formats, ","), d, err)
}

func (p *Prometheus) OnCacheHit(_ context.Context, stage string) {
	p.cacheEvents.WithLabelValues(stage, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, stage string) {
	p.cacheEvents.WithLabelValues(stage, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, stage string, size int) {
	p.cacheEvents.WithLabelValues(stage, "set").Inc()
	p.cacheBytes.WithLabelValues(stage).Add(float64(size))
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ ServerHooks   = (*Prometheus)(nil)
)
