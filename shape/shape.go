// Package shape implements the convex collision primitives (circles and
// convex polygons), their world-space transform cache and the separating
// axis test between them.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var (
	ErrInvalidRadius  = errors.New("shape: circle radius must be positive and finite")
	ErrEmptyPolygon   = errors.New("shape: polygon has no points")
	ErrDegenerateEdge = errors.New("shape: polygon has a zero-length edge")
	ErrNotConvex      = errors.New("shape: polygon is not convex")
)

// Kind tags the variant held by a Shape.
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Circle is a disc around Center.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Shape is either a circle or a convex polygon. The zero value is invalid;
// build shapes with NewCircle or NewPolygon.
type Shape struct {
	kind   Kind
	circle Circle
	poly   Polygon
}

func NewCircle(center cp.Vector, radius float64) (Shape, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Shape{}, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return Shape{kind: KindCircle, circle: Circle{Center: center, Radius: radius}}, nil
}

// NewPolygon builds a convex polygon. Points that wind clockwise are
// reversed; anything still not convex after that is rejected.
func NewPolygon(points []cp.Vector) (Shape, error) {
	poly, err := newPolygon(points)
	if err != nil {
		return Shape{}, err
	}
	return Shape{kind: KindPolygon, poly: poly}, nil
}

func MustCircle(center cp.Vector, radius float64) Shape {
	s, err := NewCircle(center, radius)
	if err != nil {
		panic(err)
	}
	return s
}

func MustPolygon(points ...cp.Vector) Shape {
	s, err := NewPolygon(points)
	if err != nil {
		panic(err)
	}
	return s
}

// Box returns an axis-aligned rectangle centered on center.
func Box(center cp.Vector, halfW, halfH float64) (Shape, error) {
	return NewPolygon([]cp.Vector{
		{X: center.X - halfW, Y: center.Y - halfH},
		{X: center.X + halfW, Y: center.Y - halfH},
		{X: center.X + halfW, Y: center.Y + halfH},
		{X: center.X - halfW, Y: center.Y + halfH},
	})
}

func (s Shape) Kind() Kind {
	return s.kind
}

// Circle returns the circle variant. It panics on a polygon.
func (s Shape) Circle() Circle {
	if s.kind != KindCircle {
		panic("shape: Circle called on " + s.kind.String())
	}
	return s.circle
}

// Polygon returns the polygon variant. It panics on a circle.
func (s Shape) Polygon() Polygon {
	if s.kind != KindPolygon {
		panic("shape: Polygon called on " + s.kind.String())
	}
	return s.poly
}

// Center returns the circle center or the polygon's vertex average.
func (s Shape) Center() cp.Vector {
	switch s.kind {
	case KindCircle:
		return s.circle.Center
	case KindPolygon:
		var sum cp.Vector
		for _, p := range s.poly.points {
			sum = sum.Add(p)
		}
		return sum.Mult(1 / float64(len(s.poly.points)))
	default:
		panic("shape: unknown kind " + s.kind.String())
	}
}

// clone returns a copy that shares no slices with s.
func (s Shape) clone() Shape {
	switch s.kind {
	case KindCircle:
		return s
	case KindPolygon:
		return Shape{kind: KindPolygon, poly: s.poly.clone()}
	default:
		panic("shape: unknown kind " + s.kind.String())
	}
}
