package entity

import (
	"fmt"

	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/physics"
)

// LoadLevelToWorld builds every placement of lvl into the world, in order.
// If any placement fails, the entities already spawned are destroyed.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, cfg physics.Config) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("load level: level is nil")
	}

	spawned := make([]ecs.Entity, 0, len(lvl.Placements))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range spawned {
			ecs.DestroyEntity(world, e)
		}
		return nil, err
	}

	for i, p := range lvl.Placements {
		e, err := BuildEntity(world, p.Prefab, cfg)
		if err != nil {
			return fail(fmt.Errorf("load level %q: placement %d: %w", lvl.Name, i, err))
		}
		spawned = append(spawned, e)

		if err := SetEntityTransform(world, e, p.X, p.Y, p.Rotation); err != nil {
			return fail(fmt.Errorf("load level %q: placement %d: %w", lvl.Name, i, err))
		}
		sx, sy := p.Scales()
		if err := SetEntityScale(world, e, sx, sy); err != nil {
			return fail(fmt.Errorf("load level %q: placement %d: %w", lvl.Name, i, err))
		}
	}
	return spawned, nil
}
