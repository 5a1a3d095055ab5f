// Package cache provides expiring key-value caching for the quadrant
// pipeline: upstream item fetches, computed layouts, and rendered
// artifacts.
//
// The [Cache] interface has three implementations:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for the HTTP server
//   - [NullCache]: no-op, for tests and --no-cache runs
//
// Keys are produced by a [Keyer] so every component that caches agrees on
// the key scheme, and multi-tenant deployments can prefix with
// [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default TTLs per key family. Layouts and artifacts are pure functions of
// their inputs, so their entries never go stale — the TTL only bounds disk
// growth. Item lists come from a live upstream and expire quickly.
const (
	// DefaultItemsTTL is how long fetched item lists stay fresh.
	DefaultItemsTTL = 15 * time.Minute

	// DefaultLayoutTTL is how long computed layouts are kept.
	DefaultLayoutTTL = 24 * time.Hour

	// DefaultArtifactTTL is how long rendered artifacts are kept.
	DefaultArtifactTTL = 24 * time.Hour
)

// Cache is the expiring key-value store used across the pipeline.
//
// Implementations must treat expired entries as misses. A nil data slice
// with hit=false and err=nil is a plain miss; errors are reserved for
// storage failures.
type Cache interface {
	// Get retrieves a value. hit reports whether a fresh entry existed.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// LayoutKeyOpts carries every input that changes layout output. Two
// requests with equal item hashes and equal opts may share a cached
// layout byte-for-byte.
type LayoutKeyOpts struct {
	Radius          float64 `json:"radius"`
	CenterX         float64 `json:"center_x"`
	CenterY         float64 `json:"center_y"`
	StartAngle      float64 `json:"start_angle"`
	Categories      string  `json:"categories"` // joined normalized keys
	Levels          string  `json:"levels"`
	SectorPadding   float64 `json:"sector_padding"`
	RingPadding     float64 `json:"ring_padding"`
	MinDistance     float64 `json:"min_distance"`
	MaxAttempts     int     `json:"max_attempts"`
	RelaxIterations int     `json:"relax_iterations"`
	RelaxStrength   float64 `json:"relax_strength"`
}

// ArtifactKeyOpts carries every input that changes rendered output for a
// given layout.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Title      string  `json:"title,omitempty"`
	ShowLegend bool    `json:"show_legend"`
	ShowCharts bool    `json:"show_charts"`
	Hover      bool    `json:"hover"`
	Scale      float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ItemsKey identifies an upstream item list by its source.
	ItemsKey(source string) string

	// LayoutKey identifies a computed layout by item hash and options.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact by layout hash and options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ItemsKey generates a key for upstream item list caching.
func (k *DefaultKeyer) ItemsKey(source string) string {
	return "items:" + Hash([]byte(source))
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
