package system

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidTimestep = errors.New("physics: timestep must be positive")

// PhysicsSystem moves dynamic objects and resolves their collisions against
// static colliders. An entity with a Collider and a Transform is dynamic when
// it also has a DynamicObject and static otherwise.
type PhysicsSystem struct {
	cfg     physics.Config
	dt      float64
	logger  *zap.Logger
	workers int

	// scratch, reused between steps
	dynamic []body
	static  []body
}

type body struct {
	entity    ecs.Entity
	transform *component.Transform
	collider  *physics.Collider
	dynamic   *physics.DynamicObject
	layer     component.CollisionLayer
}

func NewPhysicsSystem(cfg physics.Config, dt float64, logger *zap.Logger) (*PhysicsSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimestep, dt)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhysicsSystem{
		cfg:     cfg,
		dt:      dt,
		logger:  logger.Named("physics"),
		workers: runtime.GOMAXPROCS(0),
	}, nil
}

func (ps *PhysicsSystem) Config() physics.Config {
	return ps.cfg
}

func (ps *PhysicsSystem) Timestep() float64 {
	return ps.dt
}

// SetConfig swaps the physics constants, for hot reload.
func (ps *PhysicsSystem) SetConfig(cfg physics.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ps.cfg = cfg
	ps.logger.Info("config updated",
		zap.Float64("global_max_velocity", cfg.GlobalMaxVelocity),
		zap.Float64("bounciness", cfg.Bounciness),
		zap.Bool("broad_phase", cfg.BroadPhase),
		zap.Bool("parallel_update", cfg.ParallelUpdate),
	)
	return nil
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Step(w, ps.dt)
}

// Step advances the world by dt: integrate, refresh colliders, narrow phase
// over dynamic and static pairs, then push out and bounce.
//
// Collision events live for one step. Any the previous step left undrained are
// dropped first.
func (ps *PhysicsSystem) Step(w *ecs.World, dt float64) {
	w.Events().Discard(ecs.EventCollision)
	ps.collect(w)

	for _, b := range ps.dynamic {
		b.transform.Translate(b.dynamic.Integrate(dt))
	}

	ps.updateColliders()

	for _, d := range ps.dynamic {
		for _, s := range ps.static {
			ps.narrowPhase(w, d, s)
		}
	}

	for _, d := range ps.dynamic {
		ps.resolve(w, d)
	}
}

func (ps *PhysicsSystem) collect(w *ecs.World) {
	ps.dynamic = ps.dynamic[:0]
	ps.static = ps.static[:0]

	ecs.ForEach2(w, physics.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *physics.Collider, t *component.Transform) {
		b := body{entity: e, transform: t, collider: c}
		if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			b.layer = *layer
		}
		if d, ok := ecs.Get(w, e, physics.DynamicObjectComponent.Kind()); ok {
			b.dynamic = d
			ps.dynamic = append(ps.dynamic, b)
			return
		}
		ps.static = append(ps.static, b)
	})
}

// updateColliders recomputes world shapes, dynamic colliders first. Each
// collider only reads its own transform, so the parallel pass shares nothing.
func (ps *PhysicsSystem) updateColliders() {
	if !ps.cfg.ParallelUpdate {
		for _, b := range ps.dynamic {
			b.collider.Update(*b.transform)
		}
		for _, b := range ps.static {
			b.collider.Update(*b.transform)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(ps.workers)
	for _, set := range [][]body{ps.dynamic, ps.static} {
		for _, b := range set {
			b := b
			g.Go(func() error {
				b.collider.Update(*b.transform)
				return nil
			})
		}
	}
	_ = g.Wait()
}

func (ps *PhysicsSystem) narrowPhase(w *ecs.World, d, s body) {
	if !d.layer.Interacts(s.layer) {
		return
	}
	if ps.cfg.BroadPhase && !d.collider.BoundingBox().Collides(s.collider.BoundingBox()) {
		return
	}
	mpv, ok := d.collider.ProcessCollision(s.collider)
	if !ok {
		return
	}

	// SAT cannot tell which way along the axis the push goes. Point it from
	// the dynamic entity toward the static one.
	if mpv.Dot(s.transform.Translation().Sub(d.transform.Translation())) < 0 {
		mpv = mpv.Neg()
	}

	d.collider.AddRecentCollision(s.entity, mpv)
	s.collider.AddRecentCollision(d.entity, mpv.Neg())

	events := w.Events()
	events.PushCollision(ecs.CollisionEvent{Entity: d.entity, Other: s.entity, MPV: mpv, Solid: s.collider.Solid()})
	events.PushCollision(ecs.CollisionEvent{Entity: s.entity, Other: d.entity, MPV: mpv.Neg(), Solid: d.collider.Solid()})

	if ce := ps.logger.Check(zap.DebugLevel, "collision"); ce != nil {
		ce.Write(
			zap.Stringer("dynamic", d.entity),
			zap.Stringer("static", s.entity),
			zap.Float64("mpv_x", mpv.X),
			zap.Float64("mpv_y", mpv.Y),
			zap.Bool("solid", s.collider.Solid()),
		)
	}
}

// resolve pushes a dynamic entity out of every solid collider it hit and
// reflects its velocity.
func (ps *PhysicsSystem) resolve(w *ecs.World, d body) {
	var correction cp.Vector
	solid := make([]physics.Collision, 0, 4)
	for _, c := range d.collider.RecentCollisions() {
		other, ok := ecs.Get(w, c.Entity, physics.ColliderComponent.Kind())
		if !ok || !other.Solid() {
			continue
		}
		correction = correction.Add(c.MPV.Neg())
		solid = append(solid, c)
	}
	if len(solid) == 0 {
		return
	}

	d.transform.Translate(correction)
	for _, c := range solid {
		// no-op when the velocity already points away from the surface
		d.dynamic.Bounce(c.MPV, ps.cfg.Bounciness)
	}
}
