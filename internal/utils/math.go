package utils

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Overlap returns the part of [a0,a1) that lies inside [b0,b1). The span
// is empty when lo >= hi.
func Overlap(a0, a1, b0, b1 float64) (lo, hi float64) {
	return math.Max(a0, b0), math.Min(a1, b1)
}
