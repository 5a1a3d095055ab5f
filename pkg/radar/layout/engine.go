package layout

import (
	"github.com/charmbracelet/log"

	"github.com/sfeldkamp/quadrant/pkg/radar"
)

// Engine computes radar layouts. It is stateless between calls: every
// Layout invocation starts with empty sibling sets and rebuilds the whole
// placement from its input, so the same items always land on the same
// coordinates.
//
// An Engine is safe for concurrent use; all mutable state lives in the
// per-call working set.
type Engine struct {
	resolver *Resolver
	cfg      radar.Config
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-item diagnostics (unresolved
// classifications log at debug level). Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an Engine for the given configuration. The config is
// validated up front; this is the only call in the package that can fail,
// per the fail-fast contract for configuration errors.
func NewEngine(cfg radar.Config, opts ...Option) (*Engine, error) {
	resolver, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		resolver: resolver,
		cfg:      resolver.Config(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Resolver returns the engine's sector/band resolver, e.g. for render
// sinks that need the guide geometry.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Config returns the validated configuration in effect.
func (e *Engine) Config() radar.Config { return e.cfg }

// group is the per-call working set for one (category, level) region.
type group struct {
	sector Sector
	band   Band
	count  int     // total items in this group
	next   int     // index the next item of this group receives
	placed []Point // siblings placed so far, in input order
}

// Layout places every item and returns the annotated list.
//
// Output order matches input order item-for-item. Grouping by normalized
// (category, level) happens internally: each item is placed against only
// the siblings of its own group that were placed earlier in this call.
// Items whose category or level does not resolve are placed at the center
// with Unresolved set instead of aborting the batch.
func (e *Engine) Layout(items []radar.Item) []radar.PlacedItem {
	groups := make(map[string]*group)

	// First pass: resolve groups and count members, so the sampler can
	// spread n items across n angular slots.
	for _, it := range items {
		key := it.Key()
		g, ok := groups[key]
		if !ok {
			sector, serr := e.resolver.Sector(it.Category)
			band, berr := e.resolver.Band(it.Level)
			if serr != nil || berr != nil {
				groups[key] = nil // unresolved marker
				continue
			}
			g = &group{sector: sector, band: band}
			groups[key] = g
		}
		if g != nil {
			g.count++
		}
	}

	// Second pass: place in input order.
	out := make([]radar.PlacedItem, len(items))
	for i, it := range items {
		out[i].Item = it

		g := groups[it.Key()]
		if g == nil {
			// Unresolved category or level: exact center, zero radius.
			out[i].X = e.cfg.CenterX
			out[i].Y = e.cfg.CenterY
			out[i].Unresolved = true
			e.logger.Debug("unresolved classification, placing at center",
				"item", it.Name, "category", it.Category, "level", it.Level)
			continue
		}

		s := &sampler{
			cx:         e.cfg.CenterX,
			cy:         e.cfg.CenterY,
			sector:     g.sector,
			band:       g.band,
			seed:       Seed(it.Name),
			index:      g.next,
			count:      g.count,
			angularPad: e.cfg.SectorPadding,
			radialPad:  e.cfg.RingPadding,
		}
		g.next++

		p := place(s, g.placed, e.cfg.MinDistance, e.cfg.MaxAttempts)
		if e.cfg.RelaxIterations > 0 && minDistanceTo(p, g.placed) < e.cfg.MinDistance {
			p = relax(s, p, g.placed, e.cfg.MinDistance, e.cfg.RelaxIterations, e.cfg.RelaxStrength)
		}

		g.placed = append(g.placed, p)
		out[i].X = p.X
		out[i].Y = p.Y
	}

	return out
}
