package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/cache"
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/observability"
)

// Stage names reported to cache hooks.
const (
	StageLoad   = "load"
	StageLayout = "layout"
	StageRender = "render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	rec, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Record = rec
	result.RecordHash = rec.Hash()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.FeatureCount = len(rec.Features)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded record",
		"name", rec.Name,
		"topology", rec.Topology,
		"features", len(rec.Features),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	plan, layoutHit, err := r.LayoutWithCacheInfo(ctx, rec, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NumLevels = plan.NumLevels
	result.Stats.LabelRows = plan.NumLabelRows
	result.Stats.Warnings = len(plan.Warnings)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"levels", plan.NumLevels,
		"label_rows", plan.NumLabelRows,
		"duration", result.Stats.LayoutTime)
	for _, w := range plan.Warnings {
		r.Logger.Warn(w.String())
	}

	// Stage 3: Render
	renderStart := time.Now()
	tracks, err := LoadTracks(opts.Tracks, rec)
	if err != nil {
		return nil, fmt.Errorf("tracks: %w", err)
	}
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, plan, tracks, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the record with caching and returns cache hit info.
// Loads driven by custom translation hooks are never cached, since the
// hooks cannot be hashed.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*feature.Record, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	source := opts.Input
	if opts.Record != nil {
		source = "record"
	}
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	cacheKey, cacheable := r.recordKey(opts)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var rec feature.Record
			if err := json.Unmarshal(data, &rec); err == nil {
				observability.Cache().OnCacheHit(ctx, StageLoad)
				hooks.OnLoadComplete(ctx, source, len(rec.Features), time.Since(start), nil)
				return &rec, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, StageLoad)
	}

	rec, err := Load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLoadComplete(ctx, source, len(rec.Features), time.Since(start), nil)

	if cacheable {
		if data, err := json.Marshal(rec); err == nil {
			r.set(ctx, StageLoad, cacheKey, data, cache.RecordTTL)
		}
	}
	return rec, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*feature.Record, error) {
	rec, _, err := r.LoadWithCacheInfo(ctx, opts)
	return rec, err
}

// recordKey hashes the input file and theme. It reports false when the
// load cannot be keyed.
func (r *Runner) recordKey(opts Options) (string, bool) {
	if opts.Hooks != nil {
		return "", false
	}
	var inputHash string
	if opts.Record != nil {
		inputHash = opts.Record.Hash()
	} else {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return "", false
		}
		inputHash = cache.Hash(data)
	}
	var themeHash string
	if opts.Theme != "" {
		data, err := os.ReadFile(opts.Theme)
		if err != nil {
			return "", false
		}
		themeHash = cache.Hash(data)
	}
	return r.Keyer.RecordKey(inputHash, opts.RecordKeyOpts(themeHash)), true
}

// LayoutWithCacheInfo computes a plan with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, rec *feature.Record, opts Options) (*layout.Plan, bool, error) {
	if rec == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "record is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	topology := rec.Topology.String()
	hooks.OnLayoutStart(ctx, topology, len(rec.Features))
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(rec.Hash(), opts.LayoutKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if plan, err := layout.UnmarshalPlan(data); err == nil {
			observability.Cache().OnCacheHit(ctx, StageLayout)
			hooks.OnLayoutComplete(ctx, topology, plan.NumLevels, plan.NumLabelRows, time.Since(start), nil)
			return plan, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, StageLayout)

	plan, err := ComputeLayout(rec, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, topology, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, topology, plan.NumLevels, plan.NumLabelRows, time.Since(start), nil)

	if data, err := layout.MarshalPlan(plan); err == nil {
		r.set(ctx, StageLayout, cacheKey, data, cache.LayoutTTL)
	}
	return plan, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, rec *feature.Record, opts Options) (*layout.Plan, error) {
	plan, _, err := r.LayoutWithCacheInfo(ctx, rec, opts)
	return plan, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *layout.Plan, tracks []*annotation.Track, opts Options) (map[string][]byte, bool, error) {
	if plan == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "plan is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	planData, err := layout.MarshalPlan(plan)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData)
	trackHashes, err := hashTracks(tracks)
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format, trackHashes))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, StageRender)
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, StageRender)

	rendered, err := RenderPlan(plan, tracks, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format, trackHashes))
		r.set(ctx, StageRender, key, data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, plan *layout.Plan, tracks []*annotation.Track, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, tracks, opts)
	return artifacts, err
}

func hashTracks(tracks []*annotation.Track) ([]string, error) {
	if len(tracks) == 0 {
		return nil, nil
	}
	hashes := make([]string, len(tracks))
	for i, t := range tracks {
		data, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("serialize track %q: %w", t.Name, err)
		}
		hashes[i] = cache.Hash(data)
	}
	return hashes, nil
}

// set stores data and reports it to the cache hooks. Cache write failures
// are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, stage, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "stage", stage, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, stage, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
