package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// UnitEpsilon is the tolerance used when checking that a vector is normalized.
const UnitEpsilon = 1e-6

func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UnitLength reports whether v has length 1 within UnitEpsilon.
func UnitLength(v cp.Vector) bool {
	return ApproxEqual(v.LengthSq(), 1, 2*UnitEpsilon)
}
