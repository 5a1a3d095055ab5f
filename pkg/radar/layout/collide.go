package layout

import "math"

// place runs the bounded collision-avoidance loop for one item.
//
// For each attempt it asks the sampler for a candidate and measures the
// minimum distance to every sibling already placed in the same region. The
// first candidate clearing minDistance is accepted immediately; otherwise
// the candidate with the largest minimum distance wins after maxAttempts.
//
// place never fails: under extreme density the best-seen candidate may sit
// closer than minDistance to a neighbor, which is the accepted degradation
// mode. Termination is guaranteed by the attempt bound alone.
func place(s *sampler, siblings []Point, minDistance float64, maxAttempts int) Point {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	best := s.candidate(0)
	if len(siblings) == 0 {
		return best
	}

	bestClearance := math.Inf(-1)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		cand := s.candidate(attempt)
		clearance := minDistanceTo(cand, siblings)
		if clearance >= minDistance {
			return cand
		}
		if clearance > bestClearance {
			bestClearance = clearance
			best = cand
		}
	}
	return best
}

// relax smooths a crowded placement with a bounded repulsion pass.
//
// Each iteration sums a displacement pushing p away from every sibling
// closer than twice minDistance, with magnitude growing as the gap shrinks
// and capped at strength*minDistance, then re-clamps p into its sector and
// band. Clamping after every iteration is what keeps the pass from ever
// leaking a point across a quadrant divider or ring boundary.
//
// The pass stops early once p clears minDistance from all siblings.
func relax(s *sampler, p Point, siblings []Point, minDistance float64, iterations int, strength float64) Point {
	if iterations <= 0 || strength <= 0 || len(siblings) == 0 {
		return p
	}

	influence := 2 * minDistance
	maxStep := strength * minDistance

	for range iterations {
		if minDistanceTo(p, siblings) >= minDistance {
			break
		}

		var fx, fy float64
		for _, sib := range siblings {
			dx := p.X - sib.X
			dy := p.Y - sib.Y
			d := math.Hypot(dx, dy)
			if d >= influence {
				continue
			}
			if d < 1e-9 {
				// Coincident points have no direction; nudge along a
				// fixed axis and let clamping sort it out.
				dx, dy, d = 1, 0, 1
			}
			// Inverse-distance magnitude, capped below.
			mag := math.Min(maxStep, strength*influence/d)
			fx += dx / d * mag
			fy += dy / d * mag
		}

		step := math.Hypot(fx, fy)
		if step > maxStep {
			fx *= maxStep / step
			fy *= maxStep / step
		}

		p = s.clamp(Point{X: p.X + fx, Y: p.Y + fy})
	}

	return p
}

// minDistanceTo returns the smallest distance from p to any of the points.
func minDistanceTo(p Point, points []Point) float64 {
	min := math.Inf(1)
	for _, q := range points {
		if d := dist(p, q); d < min {
			min = d
		}
	}
	return min
}
