package physics

import "github.com/milk9111/rigid2d/ecs/component"

var (
	ColliderComponent      = component.NewComponent[Collider]()
	DynamicObjectComponent = component.NewComponent[DynamicObject]()
)
