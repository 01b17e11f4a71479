package component

import "image/color"

// DebugDraw picks the outline color debug views use for an entity's
// collider.
type DebugDraw struct {
	Color color.Color
}

var DebugDrawComponent = NewComponent[DebugDraw]()
