package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sfeldkamp/quadrant/pkg/cache"
	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/observability"
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
	"github.com/sfeldkamp/quadrant/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	items, err := r.Load(ctx, opts)
	if err != nil {
		return nil, wrapStage(err, "load")
	}
	result.Items = items
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ItemCount = len(items)

	// Content hash for cache keys and API responses
	if data, err := json.Marshal(items); err == nil {
		result.ItemsHash = cache.Hash(data)
	}

	r.Logger.Info("loaded items",
		"count", len(items),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	placed, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		return nil, wrapStage(err, "layout")
	}
	result.Placed = placed
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	for _, p := range placed {
		if p.Unresolved {
			result.Stats.Unresolved++
		}
	}

	r.Logger.Info("computed layout",
		"items", len(placed),
		"unresolved", result.Stats.Unresolved,
		"duration", result.Stats.LayoutTime)

	result.Summary = chart.Summarize(items, opts.EffectiveConfig())

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, placed, items, opts)
	if err != nil {
		return nil, wrapStage(err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the item list for opts: inline items as-is, otherwise from
// the file or URL in Source. URL fetches are cached by the source client,
// not by the runner's cache.
func (r *Runner) Load(ctx context.Context, opts Options) ([]radar.Item, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if opts.Items != nil {
		return opts.Items, nil
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)

	var items []radar.Item
	var err error
	if opts.Refresh && opts.Client != nil {
		items, err = opts.Client.FetchItems(ctx, opts.Source, true)
	} else {
		items, err = source.Load(ctx, opts.Client, opts.Source)
	}

	observability.Pipeline().OnLoadComplete(ctx, opts.Source, len(items), time.Since(start), err)
	return items, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, items []radar.Item, opts Options) ([]radar.PlacedItem, bool, error) {
	r.applyLogger(&opts)

	itemsData, err := json.Marshal(items)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize items for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(itemsData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []radar.PlacedItem
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Undecodable entries fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(items))

	engine, err := layout.NewEngine(opts.EffectiveConfig(), layout.WithLogger(opts.Logger))
	if err != nil {
		return nil, false, err
	}
	placed := engine.Layout(items)

	unresolved := 0
	for _, p := range placed {
		if p.Unresolved {
			unresolved++
		}
	}
	observability.Pipeline().OnLayoutComplete(ctx, len(items), unresolved, time.Since(start))

	// Cache the result
	if data, err := json.Marshal(placed); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return placed, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, items []radar.Item, opts Options) ([]radar.PlacedItem, error) {
	placed, _, err := r.ComputeLayoutWithCacheInfo(ctx, items, opts)
	return placed, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, placed []radar.PlacedItem, items []radar.Item, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(placed)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats
	rendered, err := renderFromLayout(ctx, placed, items, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultArtifactTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, placed []radar.PlacedItem, items []radar.Item, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, placed, items, opts)
	return artifacts, err
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

// wrapStage annotates a stage failure while keeping the original error
// code, so API handlers can still map it to a status.
func wrapStage(err error, stage string) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", stage)
}
