// Package pipeline provides the core radar pipeline for quadrant.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the item list from a file, URL, or inline payload
//  2. Layout: Compute deterministic positions for every item
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "items.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	items, err := runner.Load(ctx, opts)
//
//	// Layout with existing items
//	placed, err := runner.ComputeLayout(ctx, items, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, placed, items, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sfeldkamp/quadrant/pkg/cache"
	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/source"
)

// DefaultScale is the default raster scale factor for PNG output.
const DefaultScale = 1.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for the radar pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string       `json:"source,omitempty"` // file path or HTTP(S) URL
	Items   []radar.Item `json:"items,omitempty"`  // inline item list, bypasses Source
	Refresh bool         `json:"refresh,omitempty"`

	// Layout options. A nil Config uses the package defaults; a partial
	// Config is completed with [radar.Config.ApplyDefaults].
	Config *radar.Config `json:"config,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	ShowLegend bool     `json:"show_legend,omitempty"`
	ShowCharts bool     `json:"show_charts,omitempty"`
	Hover      bool     `json:"hover,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG raster scale

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Client *source.Client `json:"-"` // HTTP client for URL sources

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Items is the loaded item list, in source order.
	Items []radar.Item

	// ItemsHash is the content hash of the item list.
	ItemsHash string

	// Placed is the computed layout, ordered like Items.
	Placed []radar.PlacedItem

	// Summary is the derived distribution data.
	Summary chart.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	Unresolved int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && o.Items == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source or items is required")
	}
	if o.Source != "" && strings.HasPrefix(o.Source, "http") {
		if err := errors.ValidateURL(o.Source); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// EffectiveConfig returns the layout configuration in effect: the explicit
// Config completed with defaults, or the package defaults when none is set.
func (o *Options) EffectiveConfig() radar.Config {
	if o.Config == nil {
		return radar.DefaultConfig()
	}
	cfg := *o.Config
	cfg.ApplyDefaults()
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.EffectiveConfig()
	return cache.LayoutKeyOpts{
		Radius:          cfg.Radius,
		CenterX:         cfg.CenterX,
		CenterY:         cfg.CenterY,
		StartAngle:      cfg.StartAngle,
		Categories:      joinKeys(cfg.Categories),
		Levels:          joinKeys(cfg.Levels),
		SectorPadding:   cfg.SectorPadding,
		RingPadding:     cfg.RingPadding,
		MinDistance:     cfg.MinDistance,
		MaxAttempts:     cfg.MaxAttempts,
		RelaxIterations: cfg.RelaxIterations,
		RelaxStrength:   cfg.RelaxStrength,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Title:      o.Title,
		ShowLegend: o.ShowLegend,
		ShowCharts: o.ShowCharts,
		Hover:      o.Hover,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func joinKeys(labels []string) string {
	keys := make([]string, len(labels))
	for i, l := range labels {
		keys[i] = radar.NormalizeKey(l)
	}
	return strings.Join(keys, ",")
}
