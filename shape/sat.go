package shape

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/common"
)

// MPVEpsilon is the shortest push vector still counted as a collision.
// Anything shorter is boundary contact.
const MPVEpsilon = 1e-7

var unitX = cp.Vector{X: 1, Y: 0}

// Project returns the interval covered by s on a unit axis.
func Project(s Shape, axis cp.Vector) (float64, float64) {
	if !common.UnitLength(axis) {
		panic("shape: projection axis is not normalized")
	}
	switch s.kind {
	case KindCircle:
		c := s.circle.Center.Dot(axis)
		return c - s.circle.Radius, c + s.circle.Radius
	case KindPolygon:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range s.poly.points {
			d := p.Dot(axis)
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
		return lo, hi
	default:
		panic("shape: unknown kind " + s.kind.String())
	}
}

// Axes returns the candidate separating axes that self contributes against
// other. Every axis points outward from self.
func Axes(self, other Shape) []cp.Vector {
	switch self.kind {
	case KindCircle:
		center := self.circle.Center
		switch other.kind {
		case KindCircle:
			d := other.circle.Center.Sub(center)
			if d.LengthSq() == 0 {
				return []cp.Vector{unitX}
			}
			return []cp.Vector{d.Normalize()}
		case KindPolygon:
			axes := make([]cp.Vector, 0, len(other.poly.points))
			for _, v := range other.poly.points {
				d := v.Sub(center)
				if d.LengthSq() == 0 {
					continue
				}
				axes = append(axes, d.Normalize())
			}
			return axes
		default:
			panic("shape: unknown kind " + other.kind.String())
		}
	case KindPolygon:
		return self.poly.normals
	default:
		panic("shape: unknown kind " + self.kind.String())
	}
}

// Collide runs the separating axis test between self and other. On a hit it
// returns the minimum push vector: the shortest displacement that moves
// other out of self.
func Collide(self, other Shape) (cp.Vector, bool) {
	best := math.Inf(1)
	var bestAxis cp.Vector

	for _, axis := range Axes(self, other) {
		overlap := Overlap(self, other, axis)
		if overlap <= 0 {
			return cp.Vector{}, false
		}
		if overlap < best {
			best, bestAxis = overlap, axis
		}
	}
	for _, axis := range Axes(other, self) {
		axis = axis.Neg()
		overlap := Overlap(self, other, axis)
		if overlap <= 0 {
			return cp.Vector{}, false
		}
		if overlap < best {
			best, bestAxis = overlap, axis
		}
	}

	if math.IsInf(best, 1) {
		return cp.Vector{}, false
	}
	mpv := bestAxis.Mult(best)
	if mpv.Length() < MPVEpsilon {
		return cp.Vector{}, false
	}
	return mpv, true
}

// Overlap returns how far the projections of a and b on axis overlap.
// Zero or less means axis separates them.
func Overlap(a, b Shape, axis cp.Vector) float64 {
	aMin, aMax := Project(a, axis)
	bMin, bMax := Project(b, axis)
	return math.Min(aMax, bMax) - math.Max(aMin, bMin)
}
