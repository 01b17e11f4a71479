package component

import "github.com/milk9111/rigid2d/shape"

// Transform is the world placement of an entity. Collider shapes are
// transformed by it every step.
type Transform = shape.Transform

var TransformComponent = NewComponent[Transform]()
