package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// BoundingBox is the axis-aligned extent of a collider's world shapes.
type BoundingBox struct {
	Min cp.Vector
	Max cp.Vector
}

func FromMinMax(lo, hi cp.Vector) BoundingBox {
	return BoundingBox{Min: lo, Max: hi}
}

// Collides reports whether the boxes overlap on both axes. Touching edges
// count as overlap.
func (b BoundingBox) Collides(other BoundingBox) bool {
	return segmentsIntersect(b.Min.X, b.Max.X, other.Min.X, other.Max.X) &&
		segmentsIntersect(b.Min.Y, b.Max.Y, other.Min.Y, other.Max.Y)
}

func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// BB converts the box to a chipmunk bounding box.
func (b BoundingBox) BB() cp.BB {
	return cp.BB{L: b.Min.X, B: b.Min.Y, R: b.Max.X, T: b.Max.Y}
}

// segmentsIntersect tests the closed intervals [a1, a2] and [b1, b2].
func segmentsIntersect(a1, a2, b1, b2 float64) bool {
	if a1 > a2 || b1 > b2 {
		panic(fmt.Sprintf("physics: inverted interval [%v, %v] / [%v, %v]", a1, a2, b1, b2))
	}
	return a1 <= b2 && b1 <= a2
}
