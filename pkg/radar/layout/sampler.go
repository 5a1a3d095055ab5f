package layout

import "math"

// Point is a position in the radar's 2D space.
type Point struct {
	X float64
	Y float64
}

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// sampler produces candidate positions for one item inside its annulus
// sector. A sampler is bound to the item's region, seed, and position
// within its group; successive attempts perturb the seed stream offset so
// retries explore different candidates while staying deterministic.
type sampler struct {
	cx, cy float64 // circle center
	sector Sector
	band   Band

	seed  int64
	index int // item's position within its group, in input order
	count int // total items in the group

	angularPad float64
	radialPad  float64
}

// candidate returns the candidate point for the given attempt number.
//
// The angular component interpolates the item's index across the padded
// sector so consecutive items stay roughly angularly ordered, then adds a
// bounded jitter of at most one index slot. The radial component fills the
// padded band area-uniformly (square-root interpolation) so dots neither
// pile up at the inner edge nor hug the outer one.
func (s *sampler) candidate(attempt int) Point {
	a0 := s.sector.Start + s.angularPad
	a1 := s.sector.End - s.angularPad
	span := a1 - a0

	// Two stream values per attempt: one angular, one radial.
	ua := Stream(s.seed, 2*attempt)
	ur := Stream(s.seed, 2*attempt+1)

	var angle float64
	if s.count <= 1 {
		// Single item: near the midpoint with small jitter, instead of
		// the degenerate index/count formula.
		angle = s.sector.Mid() + (ua-0.5)*span*0.25
	} else {
		slot := span / float64(s.count)
		base := a0 + slot*(float64(s.index)+0.5)
		angle = base + (ua-0.5)*slot
	}

	r0 := s.band.Inner + s.radialPad
	r1 := s.band.Outer - s.radialPad
	if r1 < r0 {
		// Padding consumed the whole band; collapse to its middle.
		r0 = (s.band.Inner + s.band.Outer) / 2
		r1 = r0
	}
	radius := math.Sqrt(lerp(r0*r0, r1*r1, ur))

	return Point{
		X: s.cx + radius*math.Cos(angle),
		Y: s.cy + radius*math.Sin(angle),
	}
}

// clamp projects p back into the sampler's padded region: the angle into
// the padded sector and the radius into the padded band. Used by the
// relaxation pass, which may push points across a boundary.
func (s *sampler) clamp(p Point) Point {
	dx := p.X - s.cx
	dy := p.Y - s.cy

	a0 := s.sector.Start + s.angularPad
	a1 := s.sector.End - s.angularPad
	r0 := s.band.Inner + s.radialPad
	r1 := s.band.Outer - s.radialPad
	if r1 < r0 {
		r0 = (s.band.Inner + s.band.Outer) / 2
		r1 = r0
	}

	radius := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)

	// Re-project the angle into [a0, a1], accounting for 2π wrapping:
	// shift into the sector's frame, then snap to the nearer edge if out.
	rel := math.Mod(angle-a0, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	if rel > a1-a0 {
		if rel-(a1-a0) < 2*math.Pi-rel {
			angle = a1
		} else {
			angle = a0
		}
	} else {
		angle = a0 + rel
	}

	radius = math.Max(r0, math.Min(r1, radius))

	return Point{
		X: s.cx + radius*math.Cos(angle),
		Y: s.cy + radius*math.Sin(angle),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
