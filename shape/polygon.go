package shape

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// ConvexityEpsilon bounds how far the total turning angle of a convex
// polygon may drift from 2π.
const ConvexityEpsilon = 1e-6

// Polygon is a convex polygon with counter-clockwise points. Edges and
// outward normals are derived from the points and share their indexing:
// edges[i] runs from points[i] to points[i+1].
type Polygon struct {
	points  []cp.Vector
	edges   []cp.Vector
	normals []cp.Vector
}

func newPolygon(points []cp.Vector) (Polygon, error) {
	if len(points) == 0 {
		return Polygon{}, ErrEmptyPolygon
	}
	poly := Polygon{
		points:  append([]cp.Vector(nil), points...),
		edges:   make([]cp.Vector, len(points)),
		normals: make([]cp.Vector, len(points)),
	}
	poly.updateEdges()
	for i, e := range poly.edges {
		if e.LengthSq() == 0 && len(poly.points) > 1 {
			return Polygon{}, fmt.Errorf("%w: points %d and %d coincide", ErrDegenerateEdge, i, (i+1)%len(poly.points))
		}
	}
	if IsConvex(poly.edges) {
		poly.updateNormals()
		return poly, nil
	}

	// clockwise input is fine, flip it once
	for i, j := 0, len(poly.points)-1; i < j; i, j = i+1, j-1 {
		poly.points[i], poly.points[j] = poly.points[j], poly.points[i]
	}
	poly.updateEdges()
	if !IsConvex(poly.edges) {
		return Polygon{}, fmt.Errorf("%w: %d points", ErrNotConvex, len(poly.points))
	}
	poly.updateNormals()
	return poly, nil
}

// IsConvex reports whether the cyclic edge list describes a convex polygon
// wound counter-clockwise: no right turns, and the turning angles add up to
// one full revolution.
func IsConvex(edges []cp.Vector) bool {
	if len(edges) == 0 {
		return false
	}
	total := 0.0
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		cross := e.Cross(next)
		if cross < 0 {
			return false
		}
		// a reversing edge has cross -0, and Atan2(-0, x<0) is -π
		if cross == 0 {
			cross = 0
		}
		total += math.Atan2(cross, e.Dot(next))
	}
	return math.Abs(total-2*math.Pi) <= ConvexityEpsilon
}

func (p *Polygon) updateEdges() {
	n := len(p.points)
	for i, start := range p.points {
		p.edges[i] = p.points[(i+1)%n].Sub(start)
	}
}

// updateNormals rotates every edge by -90°, which points outward for a
// counter-clockwise polygon.
func (p *Polygon) updateNormals() {
	for i, e := range p.edges {
		p.normals[i] = e.ReversePerp().Normalize()
	}
}

func (p Polygon) Points() []cp.Vector {
	return p.points
}

func (p Polygon) Edges() []cp.Vector {
	return p.edges
}

func (p Polygon) Normals() []cp.Vector {
	return p.normals
}

func (p Polygon) clone() Polygon {
	return Polygon{
		points:  append([]cp.Vector(nil), p.points...),
		edges:   append([]cp.Vector(nil), p.edges...),
		normals: append([]cp.Vector(nil), p.normals...),
	}
}
