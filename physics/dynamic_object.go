package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var (
	ErrMaxVelocityTooHigh = errors.New("physics: max velocity exceeds the global cap")
	ErrNegativeFriction   = errors.New("physics: friction must not be negative")
)

// DynamicObject is the motion state of an entity that moves and collides
// against static colliders. Gameplay writes Accel; velocity is owned by
// the physics step.
type DynamicObject struct {
	Accel cp.Vector

	vel           cp.Vector
	maxVelSquared float64
	friction      float64
}

// NewDynamicObject returns an object capped at the global max velocity with
// no friction.
func NewDynamicObject(cfg Config) *DynamicObject {
	return &DynamicObject{maxVelSquared: cfg.GlobalMaxVelocity * cfg.GlobalMaxVelocity}
}

func NewDynamicObjectWith(cfg Config, maxVel, friction float64) (*DynamicObject, error) {
	if maxVel > cfg.GlobalMaxVelocity {
		return nil, fmt.Errorf("%w: %v > %v", ErrMaxVelocityTooHigh, maxVel, cfg.GlobalMaxVelocity)
	}
	if maxVel < 0 || math.IsNaN(maxVel) {
		return nil, fmt.Errorf("physics: invalid max velocity %v", maxVel)
	}
	if friction < 0 || math.IsNaN(friction) {
		return nil, fmt.Errorf("%w: got %v", ErrNegativeFriction, friction)
	}
	return &DynamicObject{maxVelSquared: maxVel * maxVel, friction: friction}, nil
}

func (d *DynamicObject) Velocity() cp.Vector {
	return d.vel
}

// SetVelocity overrides the velocity, clamped to the cap.
func (d *DynamicObject) SetVelocity(v cp.Vector) {
	d.vel = v
	d.clamp()
}

func (d *DynamicObject) MaxVelocity() float64 {
	return math.Sqrt(d.maxVelSquared)
}

func (d *DynamicObject) Friction() float64 {
	return d.friction
}

// Integrate advances the velocity by dt and returns the translation for
// this step. Friction opposes the current velocity and the result never
// exceeds the max velocity.
func (d *DynamicObject) Integrate(dt float64) cp.Vector {
	total := d.Accel.Sub(d.vel.Mult(d.friction))
	d.vel = d.vel.Add(total.Mult(dt))
	d.clamp()
	return d.vel.Mult(dt)
}

func (d *DynamicObject) clamp() {
	if sq := d.vel.LengthSq(); sq > d.maxVelSquared {
		if d.maxVelSquared == 0 {
			d.vel = cp.Vector{}
			return
		}
		d.vel = d.vel.Mult(math.Sqrt(d.maxVelSquared / sq))
	}
}

// Bounce reflects the velocity about the collision axis and scales it by
// bounciness. Velocity already moving away from the surface is left alone.
func (d *DynamicObject) Bounce(mpv cp.Vector, bounciness float64) bool {
	if mpv.LengthSq() == 0 {
		return false
	}
	n := mpv.Normalize()
	into := d.vel.Dot(n)
	if into <= 0 {
		return false
	}
	d.vel = d.vel.Sub(n.Mult(2 * into)).Mult(bounciness)
	return true
}
