package layout

import "math"

// Trigonometric hash constants. The exact values are folklore from shader
// one-liners; any irrational-looking multipliers work, what matters is that
// Stream is a pure function of (seed, index).
const (
	hashAngleMul = 12.9898
	hashIndexMul = 78.233
	hashScale    = 43758.5453123
)

// Seed derives a reproducible numeric seed from an item name: the sum of
// its rune values. Order-independent across calls, stable across processes,
// and cheap. Not a quality hash — it only has to make identically named
// items land identically and differently named items scatter.
func Seed(name string) int64 {
	var sum int64
	for _, r := range name {
		sum += int64(r)
	}
	return sum
}

// Stream returns the index-th value of the reproducible pseudo-random
// stream keyed by seed, in [0, 1). Calling Stream(s, k) always returns the
// same value for the same (s, k).
//
// This is a determinism device, not a statistical generator: uniformity
// and unpredictability are explicitly not required, only reproducible,
// visually scattered values.
func Stream(seed int64, index int) float64 {
	v := math.Sin(float64(seed)*hashAngleMul+float64(index)*hashIndexMul) * hashScale
	f := v - math.Floor(v)
	// Guard the open interval: f can round up to exactly 1.0.
	if f >= 1 {
		f = math.Nextafter(1, 0)
	}
	return f
}
