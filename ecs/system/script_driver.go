package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
	"go.uber.org/zap"
)

// ScriptLoader resolves a script path to its source.
type ScriptLoader func(path string) ([]byte, error)

// ScriptDriverSystem runs each entity's driver script and copies the
// resulting accel_x/accel_y into its DynamicObject. Schedule it before the
// physics system.
type ScriptDriverSystem struct {
	load   ScriptLoader
	logger *zap.Logger
	frame  int64

	templates map[string]*tengo.Compiled
	runtimes  map[ecs.Entity]*driverRuntime
}

type driverRuntime struct {
	key      string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

var driverGlobals = []string{"frame", "pos_x", "pos_y", "vel_x", "vel_y", "collisions", "params", "state"}

func NewScriptDriverSystem(load ScriptLoader, logger *zap.Logger) *ScriptDriverSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptDriverSystem{
		load:      load,
		logger:    logger.Named("script"),
		templates: map[string]*tengo.Compiled{},
		runtimes:  map[ecs.Entity]*driverRuntime{},
	}
}

func (s *ScriptDriverSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++

	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.ScriptDriverComponent.Kind(), physics.DynamicObjectComponent.Kind(), func(e ecs.Entity, drv *component.ScriptDriver, dyn *physics.DynamicObject) {
		rt, err := s.runtime(e, drv)
		if err != nil {
			s.logger.Warn("load driver script", zap.Stringer("entity", e), zap.String("path", drv.Path), zap.Error(err))
			s.runtimes[e] = &driverRuntime{key: scriptKey(drv), failed: true}
			return
		}
		if rt.failed {
			return
		}
		if err := s.run(w, e, rt, drv, dyn); err != nil {
			rt.failed = true
			s.logger.Warn("driver script failed, disabling", zap.Stringer("entity", e), zap.String("path", drv.Path), zap.Error(err))
		}
	})
}

// Invalidate drops compiled scripts so edited files are reloaded.
func (s *ScriptDriverSystem) Invalidate() {
	clear(s.templates)
	clear(s.runtimes)
}

// Reset invalidates every script and rewinds the frame counter, so a rebuilt
// world replays exactly like a fresh one.
func (s *ScriptDriverSystem) Reset() {
	s.Invalidate()
	s.frame = 0
}

// Frame is the number of updates since creation or the last Reset.
func (s *ScriptDriverSystem) Frame() int64 {
	return s.frame
}

func scriptKey(drv *component.ScriptDriver) string {
	if len(drv.Source) > 0 {
		return "inline:" + string(drv.Source)
	}
	return "path:" + drv.Path
}

func (s *ScriptDriverSystem) runtime(e ecs.Entity, drv *component.ScriptDriver) (*driverRuntime, error) {
	key := scriptKey(drv)
	if rt, ok := s.runtimes[e]; ok && rt.key == key {
		return rt, nil
	}

	tmpl, ok := s.templates[key]
	if !ok {
		src := drv.Source
		if len(src) == 0 {
			if s.load == nil {
				return nil, fmt.Errorf("no script loader for %q", drv.Path)
			}
			var err error
			if src, err = s.load(drv.Path); err != nil {
				return nil, err
			}
		}
		var err error
		if tmpl, err = compileDriver(src); err != nil {
			return nil, err
		}
		s.templates[key] = tmpl
	}

	rt := &driverRuntime{
		key:      key,
		compiled: tmpl.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func compileDriver(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range driverGlobals {
		_ = script.Add(name, 0)
	}
	_ = script.Add("accel_x", 0.0)
	_ = script.Add("accel_y", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))
	return script.Compile()
}

func (s *ScriptDriverSystem) run(w *ecs.World, e ecs.Entity, rt *driverRuntime, drv *component.ScriptDriver, dyn *physics.DynamicObject) (err error) {
	// the tengo VM panics on some runtime faults, such as integer division by zero
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()

	var pos cp.Vector
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Translation()
	}
	collisions := 0
	if c, ok := ecs.Get(w, e, physics.ColliderComponent.Kind()); ok {
		collisions = len(c.RecentCollisions())
	}
	params, err := tengo.FromInterface(drv.Params)
	if err != nil {
		return err
	}
	vel := dyn.Velocity()

	c := rt.compiled
	for name, v := range map[string]any{
		"frame":      s.frame,
		"pos_x":      pos.X,
		"pos_y":      pos.Y,
		"vel_x":      vel.X,
		"vel_y":      vel.Y,
		"collisions": collisions,
		"params":     params,
		"state":      rt.state,
		"accel_x":    dyn.Accel.X,
		"accel_y":    dyn.Accel.Y,
	} {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	if err := c.Run(); err != nil {
		return err
	}

	dyn.Accel = cp.Vector{X: c.Get("accel_x").Float(), Y: c.Get("accel_y").Float()}
	return nil
}
