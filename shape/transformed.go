package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transformed couples an immutable local-space shape with its world-space
// copy. The current shape is always the last transform passed to Update
// applied to the original.
type Transformed struct {
	original Shape
	current  Shape
}

func NewTransformed(original Shape) Transformed {
	return Transformed{original: original.clone(), current: original.clone()}
}

func (t *Transformed) Original() Shape {
	return t.original
}

func (t *Transformed) Current() Shape {
	return t.current
}

// Update recomputes the world shape from tr and returns its min and max
// corners.
func (t *Transformed) Update(tr Transform) (cp.Vector, cp.Vector) {
	if t.original.kind != t.current.kind {
		panic("shape: transformed shape variant mismatch: " + t.original.kind.String() + " vs " + t.current.kind.String())
	}

	if tr.ScaleX == 0 || tr.ScaleY == 0 {
		panic("shape: zero scale collapses the shape")
	}

	minPoint := cp.Vector{X: math.Inf(1), Y: math.Inf(1)}
	maxPoint := cp.Vector{X: math.Inf(-1), Y: math.Inf(-1)}

	switch t.original.kind {
	case KindCircle:
		scale, uniform := tr.UniformScale()
		if !uniform {
			panic("shape: scaling a circle into an ellipse is not supported")
		}
		c := &t.current.circle
		c.Radius = t.original.circle.Radius * math.Abs(scale)
		c.Center = tr.Apply(t.original.circle.Center)
		r := cp.Vector{X: c.Radius, Y: c.Radius}
		minPoint = c.Center.Sub(r)
		maxPoint = c.Center.Add(r)
	case KindPolygon:
		src := t.original.poly.points
		dst := &t.current.poly
		if len(src) == 0 || len(src) != len(dst.points) {
			panic("shape: transformed polygon lost its points")
		}
		for i, p := range src {
			q := tr.Apply(p)
			dst.points[i] = q
			UpdateMinPoint(&minPoint, q)
			UpdateMaxPoint(&maxPoint, q)
		}
		dst.updateEdges()
		dst.updateNormals()
		if tr.ScaleX*tr.ScaleY < 0 {
			// a mirror flips the winding, so the -90° normals face inward
			for i := range dst.normals {
				dst.normals[i] = dst.normals[i].Neg()
			}
		}
	default:
		panic("shape: unknown kind " + t.original.kind.String())
	}
	return minPoint, maxPoint
}

func UpdateMinPoint(minPoint *cp.Vector, p cp.Vector) {
	if p.X < minPoint.X {
		minPoint.X = p.X
	}
	if p.Y < minPoint.Y {
		minPoint.Y = p.Y
	}
}

func UpdateMaxPoint(maxPoint *cp.Vector, p cp.Vector) {
	if p.X > maxPoint.X {
		maxPoint.X = p.X
	}
	if p.Y > maxPoint.Y {
		maxPoint.Y = p.Y
	}
}
