package layout

import (
	"math"

	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/radar"
)

// Sector is a bounded angular range, in radians. End is always greater
// than Start; sectors from one Resolver partition [StartAngle,
// StartAngle+2π) exactly once.
type Sector struct {
	Start float64
	End   float64
}

// Span returns the angular width of the sector.
func (s Sector) Span() float64 { return s.End - s.Start }

// Mid returns the angular midpoint of the sector.
func (s Sector) Mid() float64 { return (s.Start + s.End) / 2 }

// Band is a bounded radial range. Bands from one Resolver nest
// concentrically without gaps or overlaps, innermost level first.
type Band struct {
	Inner float64
	Outer float64
}

// Width returns the radial width of the band.
func (b Band) Width() float64 { return b.Outer - b.Inner }

// Resolver maps normalized category and level keys to their sector and
// band geometry. Build one with NewResolver from a validated config; all
// lookups after that are cheap map reads.
type Resolver struct {
	cfg     radar.Config
	sectors map[string]Sector
	bands   map[string]Band

	sectorOrder []Sector
	bandOrder   []Band
}

// NewResolver builds a Resolver from cfg. The configuration is validated
// first; an invalid configuration is the only error this package ever
// returns, and it surfaces here, once, at construction time.
func NewResolver(cfg radar.Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		cfg:     cfg,
		sectors: make(map[string]Sector, len(cfg.Categories)),
		bands:   make(map[string]Band, len(cfg.Levels)),
	}

	bounds := cfg.SectorBounds
	if len(bounds) == 0 {
		bounds = evenSplits(len(cfg.Categories), 2*math.Pi)
	}
	for i, cat := range cfg.Categories {
		s := Sector{
			Start: cfg.StartAngle + bounds[i],
			End:   cfg.StartAngle + bounds[i+1],
		}
		r.sectors[radar.NormalizeKey(cat)] = s
		r.sectorOrder = append(r.sectorOrder, s)
	}

	radii := cfg.RingRadii
	if len(radii) == 0 {
		radii = evenSplits(len(cfg.Levels), cfg.Radius)
	}
	for i, lvl := range cfg.Levels {
		b := Band{Inner: radii[i], Outer: radii[i+1]}
		r.bands[radar.NormalizeKey(lvl)] = b
		r.bandOrder = append(r.bandOrder, b)
	}

	return r, nil
}

// Sector resolves a category label to its angular sector.
// Unknown categories return an UNRESOLVED_CATEGORY error; by contract the
// caller treats that as non-fatal and places the item at the center.
func (r *Resolver) Sector(category string) (Sector, error) {
	s, ok := r.sectors[radar.NormalizeKey(category)]
	if !ok {
		return Sector{}, errors.New(errors.ErrCodeUnresolvedCategory,
			"no sector configured for category %q", category)
	}
	return s, nil
}

// Band resolves a level label to its radial band.
// Unknown levels return an UNRESOLVED_LEVEL error with the same non-fatal
// contract as Sector.
func (r *Resolver) Band(level string) (Band, error) {
	b, ok := r.bands[radar.NormalizeKey(level)]
	if !ok {
		return Band{}, errors.New(errors.ErrCodeUnresolvedLevel,
			"no ring configured for level %q", level)
	}
	return b, nil
}

// Sectors returns all sectors in category order. Render sinks use this to
// draw the quadrant divider lines.
func (r *Resolver) Sectors() []Sector {
	return append([]Sector(nil), r.sectorOrder...)
}

// Bands returns all bands in level order, innermost first. Render sinks
// use this to draw the ring guides.
func (r *Resolver) Bands() []Band {
	return append([]Band(nil), r.bandOrder...)
}

// Config returns the validated configuration the resolver was built from.
func (r *Resolver) Config() radar.Config { return r.cfg }

// evenSplits returns n+1 boundaries evenly dividing [0, total].
func evenSplits(n int, total float64) []float64 {
	out := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		out[i] = total * float64(i) / float64(n)
	}
	out[n] = total
	return out
}
