package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rigid2d/common"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/prefabs"
	"github.com/milk9111/rigid2d/sim"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	minZoom  = 4.0
	maxZoom  = 400.0
	panSpeed = 8.0
)

type viewer struct {
	sim     *sim.Simulation
	logger  *zap.Logger
	watcher *prefabs.Watcher

	cam        camera
	paused     bool
	showBounds bool
	hits       map[ecs.Entity]bool
}

func newViewer(s *sim.Simulation, logger *zap.Logger) *viewer {
	v := &viewer{
		sim:    s,
		logger: logger.Named("view"),
		hits:   make(map[ecs.Entity]bool),
	}
	v.fit()
	return v
}

func (v *viewer) watch(dirs ...string) error {
	existing := dirs[:0]
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	if len(existing) == 0 {
		return errors.New("no prefabs/ or levels/ in the working directory")
	}
	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		return err
	}
	v.watcher = w
	return nil
}

func (v *viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

// fit centers the camera on everything with a collider.
func (v *viewer) fit() {
	bounds, ok := worldBounds(v.sim.World())
	if !ok {
		v.cam = camera{zoom: 32, width: screenWidth, height: screenHeight}
		return
	}
	v.cam = fitCamera(bounds, screenWidth, screenHeight, 0.9)
	v.cam.zoom = common.Clamp(v.cam.zoom, minZoom, maxZoom)
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.showBounds = !v.showBounds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.restart()
	}
	v.updateCamera()

	if !v.paused || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		clear(v.hits)
		for _, hit := range v.sim.Step() {
			v.hits[hit.Entity] = true
		}
	}
	return nil
}

func (v *viewer) restart() {
	if err := v.sim.Restart(); err != nil {
		v.logger.Error("restart failed", zap.Error(err))
		return
	}
	clear(v.hits)
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			if err := v.sim.Reload(path); err != nil {
				v.logger.Error("reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			clear(v.hits)
			v.logger.Info("reloaded", zap.String("path", path))
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			v.logger.Warn("watch error", zap.Error(err))
		default:
			return
		}
	}
}

func (v *viewer) updateCamera() {
	step := panSpeed / v.cam.zoom
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.cam.x -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.cam.x += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.cam.y += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.cam.y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyNumpadAdd) {
		v.cam.zoom = common.Clamp(v.cam.zoom*1.02, minZoom, maxZoom)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyNumpadSubtract) {
		v.cam.zoom = common.Clamp(v.cam.zoom/1.02, minZoom, maxZoom)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	d := &colliderDrawer{screen: screen, cam: v.cam}
	d.drawAxes()
	d.drawWorld(v.sim.World(), v.hits, v.showBounds)

	status := "running"
	if v.paused {
		status = "paused"
	}
	cfg := v.sim.Config()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  frame %d  %s\nFPS %.1f  TPS %.1f  dt %.4f\ncollisions %d  bounciness %.2f  cap %.0f\ndigest %016x",
		v.sim.Level().Name, v.sim.Frame(), status,
		ebiten.ActualFPS(), ebiten.ActualTPS(), v.sim.Physics().Timestep(),
		v.sim.Collisions(), cfg.Bounciness, cfg.GlobalMaxVelocity,
		v.sim.Digest(),
	))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.cam.width = float64(outsideWidth)
	v.cam.height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// tpsFor maps the fixed timestep to ticks per second so one tick is one step.
func tpsFor(dt float64) int {
	tps := int(math.Round(1 / dt))
	if tps < 1 {
		return 1
	}
	return tps
}
