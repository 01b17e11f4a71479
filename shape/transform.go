package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transform places a local-space shape in the world. Points are scaled,
// rotated counter-clockwise by Rotation radians and then translated.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translation returns the transform's position as a vector.
func (t Transform) Translation() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

// Translate moves the transform by d.
func (t *Transform) Translate(d cp.Vector) {
	t.X += d.X
	t.Y += d.Y
}

// UniformScale returns the scale factor and whether both axes agree.
func (t Transform) UniformScale() (float64, bool) {
	return t.ScaleX, t.ScaleX == t.ScaleY
}

// Apply maps a local point into world space.
func (t Transform) Apply(p cp.Vector) cp.Vector {
	scaled := cp.Vector{X: p.X * t.ScaleX, Y: p.Y * t.ScaleY}
	if t.Rotation != 0 {
		sin, cos := math.Sincos(t.Rotation)
		scaled = cp.Vector{
			X: scaled.X*cos - scaled.Y*sin,
			Y: scaled.X*sin + scaled.Y*cos,
		}
	}
	return scaled.Add(t.Translation())
}
