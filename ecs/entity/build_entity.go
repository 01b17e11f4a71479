package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Config     physics.Config
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":            addName,
	"transform":       addTransform,
	"collider":        addCollider,
	"collision_layer": addCollisionLayer,
	"dynamic_object":  addDynamicObject,
	"script_driver":   addScriptDriver,
}

// script_driver needs the dynamic object it steers
var componentBuildOrder = []string{
	"name",
	"transform",
	"collider",
	"collision_layer",
	"dynamic_object",
	"script_driver",
}

// BuildEntity creates an entity from a prefab file. On any failure the
// partially built entity is destroyed.
func BuildEntity(w *ecs.World, prefabPath string, cfg physics.Config) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec, cfg)
}

func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, cfg physics.Config) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Config: cfg}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["name"]; !ok && spec.Name != "" {
		remaining["name"] = map[string]any{"value": spec.Name}
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// SetEntityScale rescales an entity's transform, creating one if missing.
func SetEntityScale(w *ecs.World, e ecs.Entity, scaleX, scaleY float64) error {
	if scaleX == 0 || scaleY == 0 {
		return fmt.Errorf("set scale: zero scale %vx%v", scaleX, scaleY)
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.ScaleX = scaleX
	t.ScaleY = scaleY
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type nameSpec = prefabs.NameComponentSpec

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[nameSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

var errMissingShapes = errors.New("collider requires a shapes asset")

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Shapes == "" {
		return errMissingShapes
	}
	group := spec.Group
	if group == "" {
		group = prefabs.CollisionGroup
	}
	solid := true
	if spec.Solid != nil {
		solid = *spec.Solid
	}

	asset, err := prefabs.LoadShapeAsset(spec.Shapes)
	if err != nil {
		return err
	}
	shapes, err := asset.Group(group, spec.UnitsPerPixel)
	if err != nil {
		return fmt.Errorf("shapes %q: %w", spec.Shapes, err)
	}
	col, err := physics.NewCollider(shapes, solid)
	if err != nil {
		return fmt.Errorf("shapes %q group %q: %w", spec.Shapes, group, err)
	}
	if err := ecs.Add(w, e, physics.ColliderComponent.Kind(), col); err != nil {
		return err
	}
	if spec.Color != nil && spec.Color.Color != nil {
		return ecs.Add(w, e, component.DebugDrawComponent.Kind(), &component.DebugDraw{Color: spec.Color.Color})
	}
	return nil
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: spec.Category, Mask: spec.Mask})
}

type dynamicObjectSpec = prefabs.DynamicObjectComponentSpec

func addDynamicObject(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[dynamicObjectSpec](raw)
	if err != nil {
		return fmt.Errorf("decode dynamic object spec: %w", err)
	}
	maxVel := ctx.Config.GlobalMaxVelocity
	if spec.MaxVelocity != nil {
		maxVel = *spec.MaxVelocity
	}
	dyn, err := physics.NewDynamicObjectWith(ctx.Config, maxVel, spec.Friction)
	if err != nil {
		return err
	}
	switch len(spec.Accel) {
	case 0:
	case 2:
		dyn.Accel = cp.Vector{X: spec.Accel[0], Y: spec.Accel[1]}
	default:
		return fmt.Errorf("accel must be [x, y], got %v", spec.Accel)
	}
	return ecs.Add(w, e, physics.DynamicObjectComponent.Kind(), dyn)
}

type scriptDriverSpec = prefabs.ScriptDriverComponentSpec

func addScriptDriver(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptDriverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script driver spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("script_driver requires a script")
	}
	if !ecs.Has(w, e, physics.DynamicObjectComponent.Kind()) {
		return fmt.Errorf("script_driver requires dynamic_object on the same entity")
	}
	return ecs.Add(w, e, component.ScriptDriverComponent.Kind(), &component.ScriptDriver{
		Path:   spec.Script,
		Params: spec.Params,
	})
}
