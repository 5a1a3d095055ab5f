package layout

import (
	"math"
	"testing"
)

func testSampler(name string, index, count int) *sampler {
	return &sampler{
		sector:     Sector{Start: 0, End: math.Pi / 2},
		band:       Band{Inner: 150, Outer: 225},
		seed:       Seed(name),
		index:      index,
		count:      count,
		angularPad: 0.035,
		radialPad:  6,
	}
}

func TestCandidateDeterministicPerAttempt(t *testing.T) {
	s := testSampler("Rust", 0, 3)
	for attempt := 0; attempt < 10; attempt++ {
		p1 := s.candidate(attempt)
		p2 := s.candidate(attempt)
		if p1 != p2 {
			t.Fatalf("attempt %d not deterministic: %+v vs %+v", attempt, p1, p2)
		}
	}
}

func TestCandidateVariesByAttempt(t *testing.T) {
	s := testSampler("Rust", 0, 3)
	base := s.candidate(0)
	varied := false
	for attempt := 1; attempt < 5; attempt++ {
		if s.candidate(attempt) != base {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("retry attempts should produce different candidates")
	}
}

func TestCandidateRespectsMargins(t *testing.T) {
	for _, name := range []string{"Rust", "Go", "Kafka", "Terraform", "k9s"} {
		s := testSampler(name, 1, 4)
		for attempt := 0; attempt < 30; attempt++ {
			p := s.candidate(attempt)
			r := math.Hypot(p.X, p.Y)
			if r < s.band.Inner+s.radialPad-1e-9 || r > s.band.Outer-s.radialPad+1e-9 {
				t.Fatalf("%s attempt %d: radius %v violates radial margin", name, attempt, r)
			}
			a := math.Atan2(p.Y, p.X)
			if a < s.sector.Start+s.angularPad-1e-9 || a > s.sector.End-s.angularPad+1e-9 {
				t.Fatalf("%s attempt %d: angle %v violates angular margin", name, attempt, a)
			}
		}
	}
}

func TestCandidateAngularOrdering(t *testing.T) {
	// Items in index order should be roughly angularly ordered: with
	// jitter bounded to one slot, index i+2 always sits beyond index i.
	const count = 8
	angles := make([]float64, count)
	for i := 0; i < count; i++ {
		s := testSampler("fixed-name", i, count)
		p := s.candidate(0)
		angles[i] = math.Atan2(p.Y, p.X)
	}
	for i := 0; i+2 < count; i++ {
		if angles[i] >= angles[i+2] {
			t.Errorf("angular order broken: index %d at %v, index %d at %v",
				i, angles[i], i+2, angles[i+2])
		}
	}
}

func TestPlaceAcceptsClearCandidate(t *testing.T) {
	s := testSampler("Rust", 0, 1)
	got := place(s, nil, 20, 24)
	if got != s.candidate(0) {
		t.Error("with no siblings the first candidate should be accepted")
	}
}

func TestPlaceAvoidsSibling(t *testing.T) {
	s := testSampler("Rust", 0, 1)
	// Plant a sibling exactly on the first candidate to force retries.
	sibling := s.candidate(0)
	got := place(s, []Point{sibling}, 10, 24)
	if d := dist(got, sibling); d < 10 {
		t.Errorf("placement only %v from sibling, want ≥ 10", d)
	}
}

func TestPlaceBoundedDegradation(t *testing.T) {
	s := testSampler("Rust", 0, 1)
	// Saturate the region so the threshold is unattainable; place must
	// still return the best candidate rather than failing or spinning.
	var siblings []Point
	for i := 0; i < 200; i++ {
		siblings = append(siblings, testSampler("crowd", i, 200).candidate(0))
	}
	got := place(s, siblings, 1000, 10)

	r := math.Hypot(got.X, got.Y)
	if r < s.band.Inner || r > s.band.Outer {
		t.Errorf("degraded placement left the band: radius %v", r)
	}
	best := minDistanceTo(got, siblings)
	for attempt := 0; attempt < 10; attempt++ {
		if c := minDistanceTo(s.candidate(attempt), siblings); c > best+1e-9 {
			t.Errorf("attempt %d had clearance %v, better than returned %v", attempt, c, best)
		}
	}
}

func TestRelaxImprovesClearance(t *testing.T) {
	s := testSampler("Rust", 0, 1)
	p := s.candidate(0)
	sibling := Point{X: p.X + 1, Y: p.Y}

	relaxed := relax(s, p, []Point{sibling}, 12, 8, 0.5)
	if dist(relaxed, sibling) <= dist(p, sibling) {
		t.Errorf("relaxation did not increase clearance: %v vs %v",
			dist(relaxed, sibling), dist(p, sibling))
	}
}

func TestRelaxStaysInRegion(t *testing.T) {
	s := testSampler("Rust", 0, 1)
	p := s.candidate(0)

	// Siblings on every side, strength large enough to shove the point
	// across a boundary without the per-iteration clamp.
	siblings := []Point{
		{X: p.X + 5, Y: p.Y}, {X: p.X - 5, Y: p.Y},
		{X: p.X, Y: p.Y + 5}, {X: p.X, Y: p.Y - 4},
	}
	relaxed := relax(s, p, siblings, 50, 16, 2.0)

	r := math.Hypot(relaxed.X, relaxed.Y)
	if r < s.band.Inner+s.radialPad-1e-6 || r > s.band.Outer-s.radialPad+1e-6 {
		t.Errorf("relaxed point left its band: radius %v", r)
	}
	a := math.Atan2(relaxed.Y, relaxed.X)
	if a < s.sector.Start+s.angularPad-1e-6 || a > s.sector.End-s.angularPad+1e-6 {
		t.Errorf("relaxed point left its sector: angle %v", a)
	}
}

func TestClampWrapsAngle(t *testing.T) {
	// A point just below the positive x-axis is outside a [0, π/2]
	// sector; the nearest edge through the 2π wrap is Start, not End.
	s := testSampler("Rust", 0, 1)
	p := s.clamp(Point{X: 180, Y: -10})
	a := math.Atan2(p.Y, p.X)
	if math.Abs(a-(s.sector.Start+s.angularPad)) > 1e-9 {
		t.Errorf("clamped angle %v, want sector start edge %v", a, s.sector.Start+s.angularPad)
	}
}
