package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/shape"
	"golang.org/x/image/colornames"
)

const (
	strokeWidth    = 1.5
	velocityScale  = 0.25
	debugDotSize   = 4
	axisTickLength = 0.25
)

// camera maps world units (y up) to screen pixels (y down).
type camera struct {
	x, y          float64
	zoom          float64
	width, height float64
}

func fitCamera(bb cp.BB, width, height, margin float64) camera {
	w := math.Max(bb.R-bb.L, 1)
	h := math.Max(bb.T-bb.B, 1)
	return camera{
		x:      (bb.L + bb.R) / 2,
		y:      (bb.B + bb.T) / 2,
		zoom:   math.Min(width/w, height/h) * margin,
		width:  width,
		height: height,
	}
}

func (c camera) toScreen(p cp.Vector) (float32, float32) {
	sx := (p.X-c.x)*c.zoom + c.width/2
	sy := c.height/2 - (p.Y-c.y)*c.zoom
	return float32(sx), float32(sy)
}

// worldBounds merges the bounding boxes of every collider.
func worldBounds(w *ecs.World) (cp.BB, bool) {
	var out cp.BB
	found := false
	ecs.ForEach(w, physics.ColliderComponent.Kind(), func(_ ecs.Entity, col *physics.Collider) {
		bb := col.BoundingBox().BB()
		if !found {
			out, found = bb, true
			return
		}
		out.L = math.Min(out.L, bb.L)
		out.B = math.Min(out.B, bb.B)
		out.R = math.Max(out.R, bb.R)
		out.T = math.Max(out.T, bb.T)
	})
	return out, found
}

type colliderDrawer struct {
	screen *ebiten.Image
	cam    camera
}

func (d *colliderDrawer) drawWorld(w *ecs.World, hits map[ecs.Entity]bool, showBounds bool) {
	ecs.ForEach(w, physics.ColliderComponent.Kind(), func(e ecs.Entity, col *physics.Collider) {
		clr := outlineColor(w, e, col)
		if hits[e] {
			clr = colornames.Orangered
		}
		for _, s := range col.Shapes() {
			d.drawShape(s, clr)
		}
		if showBounds {
			d.drawBB(col.BoundingBox().BB(), colornames.Dimgray)
		}
		for _, c := range col.RecentCollisions() {
			d.drawMPV(col, c.MPV)
		}
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), physics.DynamicObjectComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, dyn *physics.DynamicObject) {
			pos := t.Translation()
			d.drawDot(pos, colornames.White)
			d.drawLine(pos, pos.Add(dyn.Velocity().Mult(velocityScale)), colornames.Yellow)
		})
}

func outlineColor(w *ecs.World, e ecs.Entity, col *physics.Collider) color.Color {
	if dd, ok := ecs.Get(w, e, component.DebugDrawComponent.Kind()); ok && dd.Color != nil {
		return dd.Color
	}
	if col.Solid() {
		return colornames.Limegreen
	}
	return colornames.Gold
}

func (d *colliderDrawer) drawShape(s shape.Shape, clr color.Color) {
	switch s.Kind() {
	case shape.KindCircle:
		c := s.Circle()
		x, y := d.cam.toScreen(c.Center)
		vector.StrokeCircle(d.screen, x, y, float32(c.Radius*d.cam.zoom), strokeWidth, clr, true)
	case shape.KindPolygon:
		d.drawPolygon(s.Polygon().Points(), clr)
	}
}

func (d *colliderDrawer) drawPolygon(verts []cp.Vector, clr color.Color) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *colliderDrawer) drawBB(bb cp.BB, clr color.Color) {
	d.drawPolygon([]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}, clr)
}

// drawMPV draws the push vector from the collider's bounding box center.
func (d *colliderDrawer) drawMPV(col *physics.Collider, mpv cp.Vector) {
	bb := col.BoundingBox()
	center := bb.Min.Add(bb.Max).Mult(0.5)
	d.drawLine(center, center.Add(mpv), colornames.Red)
}

func (d *colliderDrawer) drawDot(pos cp.Vector, clr color.Color) {
	x, y := d.cam.toScreen(pos)
	half := float32(debugDotSize / 2)
	vector.StrokeLine(d.screen, x-half, y, x+half, y, strokeWidth, clr, true)
	vector.StrokeLine(d.screen, x, y-half, x, y+half, strokeWidth, clr, true)
}

func (d *colliderDrawer) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.cam.toScreen(a)
	x2, y2 := d.cam.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, strokeWidth, clr, true)
}

func (d *colliderDrawer) drawAxes() {
	clr := colornames.Darkslategray
	d.drawLine(cp.Vector{X: -axisTickLength}, cp.Vector{X: axisTickLength}, clr)
	d.drawLine(cp.Vector{Y: -axisTickLength}, cp.Vector{Y: axisTickLength}, clr)
}
