package physics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMaxVelocity = errors.New("physics: global max velocity must be positive")
	ErrInvalidBounciness  = errors.New("physics: bounciness must be within [0, 1]")
)

const (
	DefaultGlobalMaxVelocity = 1000.0
	DefaultBounciness        = 0.5
)

// Config holds the world-wide physics constants.
type Config struct {
	// GlobalMaxVelocity caps every dynamic object's speed.
	GlobalMaxVelocity float64
	// Bounciness scales the reflected velocity after a solid collision.
	Bounciness float64
	// BroadPhase enables the bounding box reject test before SAT.
	BroadPhase bool
	// ParallelUpdate recomputes collider world shapes concurrently.
	ParallelUpdate bool
}

func DefaultConfig() Config {
	return Config{
		GlobalMaxVelocity: DefaultGlobalMaxVelocity,
		Bounciness:        DefaultBounciness,
		BroadPhase:        true,
	}
}

func (c Config) Validate() error {
	if !(c.GlobalMaxVelocity > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMaxVelocity, c.GlobalMaxVelocity)
	}
	if c.Bounciness < 0 || c.Bounciness > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidBounciness, c.Bounciness)
	}
	return nil
}
