// Package layout assigns deterministic 2D positions to radar items.
//
// Every item is placed inside the annulus sector ("ring within quadrant")
// that its category and maturity level resolve to. The engine is a pure
// function: the same item list and configuration always produce
// byte-identical coordinates, with no stored state and no real randomness.
//
// # Pipeline
//
// Placement runs in three stages per item:
//
//  1. Resolve: map (category, level) to a bounded angular sector and a
//     bounded radial band ([Resolver]).
//  2. Sample: derive a candidate point from a seed computed off the item
//     name, biased toward an even angular spread and a filled band
//     ([sampler]).
//  3. Collide: accept the first candidate far enough from the siblings
//     already placed in the same region, retrying a bounded number of
//     times and falling back to the best candidate seen; optionally smooth
//     the worst cases with a bounded repulsion pass ([place], [relax]).
//
// Density degrades gracefully: when a region is too crowded to honor the
// minimum separation, dots crowd together visually but the layout never
// fails and never loops unboundedly.
//
// # Usage
//
//	cfg := radar.DefaultConfig()
//	eng, err := layout.NewEngine(cfg)
//	if err != nil {
//	    return err // invalid configuration is the only fatal path
//	}
//	placed := eng.Layout(items)
package layout
