package physics

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/shape"
)

var ErrNoShapes = errors.New("physics: collider needs at least one shape")

// Collision is one contact recorded during a step. MPV pushes Entity's
// collider out of the collider that recorded it.
type Collision struct {
	Entity ecs.Entity
	MPV    cp.Vector
}

// Collider is a set of shapes that move together with an entity's
// transform. Solid colliders push dynamic objects out and bounce them;
// nonsolid ones only record contacts.
type Collider struct {
	shapes     []shape.Transformed
	solid      bool
	bounds     BoundingBox
	collisions []Collision
}

func NewCollider(shapes []shape.Shape, solid bool) (*Collider, error) {
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	c := &Collider{
		shapes: make([]shape.Transformed, len(shapes)),
		solid:  solid,
	}
	for i, s := range shapes {
		c.shapes[i] = shape.NewTransformed(s)
	}
	c.Update(shape.Identity())
	return c, nil
}

func NewSolidCollider(shapes ...shape.Shape) (*Collider, error) {
	return NewCollider(shapes, true)
}

func NewNonsolidCollider(shapes ...shape.Shape) (*Collider, error) {
	return NewCollider(shapes, false)
}

func (c *Collider) Solid() bool {
	return c.solid
}

func (c *Collider) BoundingBox() BoundingBox {
	return c.bounds
}

// Shapes returns the world-space shapes as of the last Update.
func (c *Collider) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(c.shapes))
	for i := range c.shapes {
		out[i] = c.shapes[i].Current()
	}
	return out
}

// Update moves every shape to t, refreshes the bounding box and forgets the
// previous step's collisions.
func (c *Collider) Update(t shape.Transform) {
	var lo, hi cp.Vector
	for i := range c.shapes {
		sMin, sMax := c.shapes[i].Update(t)
		if i == 0 {
			lo, hi = sMin, sMax
			continue
		}
		shape.UpdateMinPoint(&lo, sMin)
		shape.UpdateMaxPoint(&hi, sMax)
	}
	c.bounds = FromMinMax(lo, hi)
	c.collisions = c.collisions[:0]
}

// ProcessCollision runs SAT over every pair of shapes. Of the colliding
// pairs, the longest MPV wins. The MPV pushes other out of c.
func (c *Collider) ProcessCollision(other *Collider) (cp.Vector, bool) {
	var best cp.Vector
	bestLen := -1.0
	for i := range c.shapes {
		self := c.shapes[i].Current()
		for j := range other.shapes {
			mpv, ok := shape.Collide(self, other.shapes[j].Current())
			if !ok {
				continue
			}
			if l := mpv.LengthSq(); l > bestLen {
				best, bestLen = mpv, l
			}
		}
	}
	return best, bestLen >= 0
}

func (c *Collider) AddRecentCollision(e ecs.Entity, mpv cp.Vector) {
	c.collisions = append(c.collisions, Collision{Entity: e, MPV: mpv})
}

// RecentCollisions returns a copy of the collisions recorded since the last
// Update.
func (c *Collider) RecentCollisions() []Collision {
	if len(c.collisions) == 0 {
		return nil
	}
	out := make([]Collision, len(c.collisions))
	copy(out, c.collisions)
	return out
}
