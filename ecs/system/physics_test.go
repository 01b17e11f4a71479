package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnOpts struct {
	x, y  float64
	half  float64
	solid bool
	dyn   *physics.DynamicObject
	layer *component.CollisionLayer
}

func spawnBox(t *testing.T, w *ecs.World, o spawnOpts) ecs.Entity {
	t.Helper()
	box, err := shape.Box(cp.Vector{}, o.half, o.half)
	require.NoError(t, err)
	col, err := physics.NewCollider([]shape.Shape{box}, o.solid)
	require.NoError(t, err)

	e := ecs.CreateEntity(w)
	tr := shape.Identity()
	tr.X, tr.Y = o.x, o.y
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, physics.ColliderComponent.Kind(), col))
	if o.dyn != nil {
		require.NoError(t, ecs.Add(w, e, physics.DynamicObjectComponent.Kind(), o.dyn))
	}
	if o.layer != nil {
		require.NoError(t, ecs.Add(w, e, component.CollisionLayerComponent.Kind(), o.layer))
	}
	return e
}

func mover(t *testing.T, cfg physics.Config, maxVel float64, accel cp.Vector) *physics.DynamicObject {
	t.Helper()
	d, err := physics.NewDynamicObjectWith(cfg, maxVel, 0)
	require.NoError(t, err)
	d.Accel = accel
	return d
}

func newSystem(t *testing.T, cfg physics.Config) *PhysicsSystem {
	t.Helper()
	ps, err := NewPhysicsSystem(cfg, 1, nil)
	require.NoError(t, err)
	return ps
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	require.True(t, ok)
	return v
}

func TestNewPhysicsSystemValidates(t *testing.T) {
	_, err := NewPhysicsSystem(physics.DefaultConfig(), 0, nil)
	require.ErrorIs(t, err, ErrInvalidTimestep)

	cfg := physics.DefaultConfig()
	cfg.Bounciness = 2
	_, err = NewPhysicsSystem(cfg, 0.016, nil)
	require.ErrorIs(t, err, physics.ErrInvalidBounciness)
}

func TestStepApproachesMaxVelocity(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	dyn := mover(t, cfg, 10, cp.Vector{X: 1})
	e := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: dyn})
	ps := newSystem(t, cfg)

	prev := 0.0
	for i := 0; i < 30; i++ {
		ps.Update(w)
		vx := dyn.Velocity().X
		assert.GreaterOrEqual(t, vx, prev)
		assert.LessOrEqual(t, vx, 10+1e-9)
		prev = vx
	}
	assert.InDelta(t, 10, prev, 1e-9)
	assert.Zero(t, dyn.Velocity().Y)
	assert.Greater(t, get(t, w, e, component.TransformComponent.Kind()).X, 200.0)
}

func TestStepBouncesOffSolidWall(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	dyn := mover(t, cfg, 10, cp.Vector{X: 1})
	d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: dyn})
	s := spawnBox(t, w, spawnOpts{x: 2, half: 1, solid: true})

	newSystem(t, cfg).Update(w)

	dc := get(t, w, d, physics.ColliderComponent.Kind())
	sc := get(t, w, s, physics.ColliderComponent.Kind())
	require.Len(t, dc.RecentCollisions(), 1)
	require.Len(t, sc.RecentCollisions(), 1)

	hit := dc.RecentCollisions()[0]
	assert.Equal(t, s, hit.Entity)
	assert.InDelta(t, 1, hit.MPV.X, 1e-9, "push points from the dynamic body into the wall")
	assert.InDelta(t, 0, hit.MPV.Y, 1e-9)
	back := sc.RecentCollisions()[0]
	assert.Equal(t, d, back.Entity)
	assert.InDelta(t, -1, back.MPV.X, 1e-9)

	// moved to x=1, pushed back by the overlap and reflected
	assert.InDelta(t, 0, get(t, w, d, component.TransformComponent.Kind()).X, 1e-9)
	assert.InDelta(t, -cfg.Bounciness, dyn.Velocity().X, 1e-9)
	assert.InDelta(t, 0, dyn.Velocity().Y, 1e-9)

	cols := ecs.Collisions(w.Events().Drain())
	require.Len(t, cols, 2)
	assert.Equal(t, d, cols[0].Entity)
	assert.True(t, cols[0].Solid)
	assert.Equal(t, s, cols[1].Entity)
}

func TestStepNonsolidOnlyRecords(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	dyn := mover(t, cfg, 10, cp.Vector{X: 1})
	d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: dyn})
	spawnBox(t, w, spawnOpts{x: 2, half: 1, solid: false})

	newSystem(t, cfg).Update(w)

	assert.Len(t, get(t, w, d, physics.ColliderComponent.Kind()).RecentCollisions(), 1)
	assert.InDelta(t, 1, get(t, w, d, component.TransformComponent.Kind()).X, 1e-12)
	assert.InDelta(t, 1, dyn.Velocity().X, 1e-12)
	assert.False(t, ecs.Collisions(w.Events().Drain())[0].Solid)
}

func TestStepDropsUndrainedCollisions(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: mover(t, cfg, 10, cp.Vector{})})
	spawnBox(t, w, spawnOpts{x: 1, half: 1, solid: false})
	w.Events().Push(ecs.Event{Type: "spawned"})

	ps := newSystem(t, cfg)
	for i := 0; i < 3; i++ {
		ps.Update(w)
	}

	events := w.Events().Drain()
	require.Len(t, events, 3, "one other event plus this step's pair")
	assert.Equal(t, "spawned", events[0].Type)
	cols := ecs.Collisions(events)
	require.Len(t, cols, 2)
	assert.Equal(t, d, cols[0].Entity)
}

func TestStepSkipsPairs(t *testing.T) {
	cases := []struct {
		name  string
		build func(t *testing.T, w *ecs.World, cfg physics.Config) ecs.Entity
	}{
		{
			name: "dynamic_vs_dynamic",
			build: func(t *testing.T, w *ecs.World, cfg physics.Config) ecs.Entity {
				d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: mover(t, cfg, 10, cp.Vector{})})
				spawnBox(t, w, spawnOpts{x: 0.5, half: 1, solid: true, dyn: mover(t, cfg, 10, cp.Vector{})})
				return d
			},
		},
		{
			name: "layers_do_not_interact",
			build: func(t *testing.T, w *ecs.World, cfg physics.Config) ecs.Entity {
				d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: mover(t, cfg, 10, cp.Vector{}),
					layer: &component.CollisionLayer{Category: 2, Mask: 2}})
				spawnBox(t, w, spawnOpts{x: 0.5, half: 1, solid: true, layer: &component.CollisionLayer{Category: 4}})
				return d
			},
		},
		{
			name: "touching_edges",
			build: func(t *testing.T, w *ecs.World, cfg physics.Config) ecs.Entity {
				d := spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: mover(t, cfg, 10, cp.Vector{})})
				spawnBox(t, w, spawnOpts{x: 2, half: 1, solid: true})
				return d
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := physics.DefaultConfig()
			w := ecs.NewWorld()
			d := c.build(t, w, cfg)
			newSystem(t, cfg).Update(w)
			assert.Empty(t, get(t, w, d, physics.ColliderComponent.Kind()).RecentCollisions())
			assert.Zero(t, w.Events().Len())
		})
	}
}

func TestStepCornerPushesOutOfBothWalls(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	dyn := mover(t, cfg, 10, cp.Vector{})
	dyn.SetVelocity(cp.Vector{X: 0.5, Y: -0.5})
	d := spawnBox(t, w, spawnOpts{half: 0.5, solid: true, dyn: dyn})
	spawnBox(t, w, spawnOpts{x: 3.8, half: 3, solid: true})  // right wall
	spawnBox(t, w, spawnOpts{y: -3.8, half: 3, solid: true}) // floor

	newSystem(t, cfg).Update(w)

	// lands at (0.5, -0.5), 0.2 deep into both
	require.Len(t, get(t, w, d, physics.ColliderComponent.Kind()).RecentCollisions(), 2)
	tr := get(t, w, d, component.TransformComponent.Kind())
	assert.InDelta(t, 0.3, tr.X, 1e-9)
	assert.InDelta(t, -0.3, tr.Y, 1e-9)

	// each solid contact reflects and scales once
	assert.InDelta(t, -0.125, dyn.Velocity().X, 1e-9)
	assert.InDelta(t, 0.125, dyn.Velocity().Y, 1e-9)
}

func buildArena(t *testing.T, cfg physics.Config) *ecs.World {
	w := ecs.NewWorld()
	for i := 0; i < 8; i++ {
		accel := cp.Vector{X: float64(i%3) - 1, Y: float64(i%2)*2 - 1}
		spawnBox(t, w, spawnOpts{x: float64(i) * 1.5, y: float64(i % 3), half: 0.4, solid: true, dyn: mover(t, cfg, 5, accel)})
	}
	for i := -2; i <= 14; i++ {
		spawnBox(t, w, spawnOpts{x: float64(i), y: -4, half: 0.5, solid: true})
		spawnBox(t, w, spawnOpts{x: float64(i), y: 6, half: 0.5, solid: true})
	}
	for j := -4; j <= 6; j++ {
		spawnBox(t, w, spawnOpts{x: -3, y: float64(j), half: 0.5, solid: true})
		spawnBox(t, w, spawnOpts{x: 15, y: float64(j), half: 0.5, solid: true})
	}
	return w
}

func TestStepIsDeterministic(t *testing.T) {
	run := func(cfg physics.Config) uint64 {
		w := buildArena(t, cfg)
		ps, err := NewPhysicsSystem(cfg, 1.0/60, nil)
		require.NoError(t, err)
		for i := 0; i < 240; i++ {
			ps.Update(w)
			w.Events().Drain()
		}
		return StateDigest(w)
	}

	serial := physics.DefaultConfig()
	parallel := serial
	parallel.ParallelUpdate = true
	noBroad := serial
	noBroad.BroadPhase = false

	want := run(serial)
	assert.Equal(t, want, run(serial), "repeat run")
	assert.Equal(t, want, run(parallel), "parallel collider update")
	assert.Equal(t, want, run(noBroad), "broad phase only rejects")
}

func TestStateDigestTracksState(t *testing.T) {
	cfg := physics.DefaultConfig()
	w := ecs.NewWorld()
	dyn := mover(t, cfg, 10, cp.Vector{X: 1})
	spawnBox(t, w, spawnOpts{half: 1, solid: true, dyn: dyn})

	before := StateDigest(w)
	assert.Equal(t, before, StateDigest(w))
	newSystem(t, cfg).Update(w)
	assert.NotEqual(t, before, StateDigest(w))
}
