// Package sim wires a level, the script drivers and the physics step into a
// runnable simulation shared by the command line tools.
package sim

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/entity"
	"github.com/milk9111/rigid2d/ecs/system"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/prefabs"
	"go.uber.org/zap"
)

const DefaultTimestep = 1.0 / 60.0

var ErrNoLevel = errors.New("sim: level name is empty")

type Options struct {
	Level string
	// Timestep overrides physics.yaml when positive.
	Timestep float64
	Logger   *zap.Logger
}

type Simulation struct {
	opts   Options
	logger *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scripts   *system.ScriptDriverSystem
	level     *levels.Level

	collisions int
}

// New loads physics.yaml and the level, then builds a fresh world.
func New(opts Options) (*Simulation, error) {
	if opts.Level == "" {
		return nil, ErrNoLevel
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	cfg, spec, err := prefabs.LoadPhysicsConfig()
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	dt := opts.Timestep
	if dt <= 0 {
		dt = spec.Timestep
	}
	if dt <= 0 {
		dt = DefaultTimestep
	}

	phys, err := system.NewPhysicsSystem(cfg, dt, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	scripts := system.NewScriptDriverSystem(prefabs.LoadScript, opts.Logger)

	s := &Simulation{
		opts:      opts,
		logger:    opts.Logger.Named("sim"),
		physics:   phys,
		scripts:   scripts,
		scheduler: ecs.NewScheduler(scripts, phys),
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart reloads the level file and rebuilds the world from frame zero.
func (s *Simulation) Restart() error {
	lvl, err := levels.LoadLevel(s.opts.Level)
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	w := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(w, lvl, s.physics.Config()); err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	s.scripts.Reset()
	s.world = w
	s.level = lvl
	s.scheduler.Reset()
	s.collisions = 0
	s.logger.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("entities", len(ecs.Entities(w))),
		zap.Float64("dt", s.physics.Timestep()),
	)
	return nil
}

// Step runs one frame and returns the collisions it recorded.
func (s *Simulation) Step() []ecs.CollisionEvent {
	s.scheduler.Update(s.world)

	hits := ecs.Collisions(s.world.Events().Drain())
	s.collisions += len(hits)
	return hits
}

// Reload reacts to a changed file under prefabs/ or levels/. Physics
// constants are swapped in place, scripts are recompiled lazily and any other
// YAML change rebuilds the world.
func (s *Simulation) Reload(path string) error {
	base := filepath.Base(path)
	switch {
	case base == prefabs.PhysicsFile:
		cfg, _, err := prefabs.LoadPhysicsConfig()
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", base, err)
		}
		if err := s.physics.SetConfig(cfg); err != nil {
			return fmt.Errorf("sim: reload %s: %w", base, err)
		}
		return s.Restart()
	case strings.HasSuffix(base, ".tengo"):
		s.scripts.Invalidate()
		s.logger.Info("scripts invalidated", zap.String("file", base))
		return nil
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return s.Restart()
	default:
		return nil
	}
}

func (s *Simulation) World() *ecs.World {
	return s.world
}

func (s *Simulation) Level() *levels.Level {
	return s.level
}

func (s *Simulation) Physics() *system.PhysicsSystem {
	return s.physics
}

func (s *Simulation) Frame() int {
	return int(s.scheduler.Frame())
}

// Collisions is the number of collision events seen since the last restart.
func (s *Simulation) Collisions() int {
	return s.collisions
}

func (s *Simulation) Digest() uint64 {
	return system.StateDigest(s.world)
}

// Config returns the active physics constants.
func (s *Simulation) Config() physics.Config {
	return s.physics.Config()
}
