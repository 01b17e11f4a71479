package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/prefabs"
	"github.com/milk9111/rigid2d/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagLevel  string
	flagFrames int
	flagDT     float64
	flagWatch  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Step a level and print its digest",
	Long: `Run loads --level, steps it --frames times and prints the final digest.

With --watch the level keeps running: every change under prefabs/ or levels/
reloads the content and the run starts again from frame zero. Stop it with
Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagLevel, "level", "demo.yaml", "Level file in levels/")
	runCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to step")
	runCmd.Flags().Float64Var(&flagDT, "dt", 0, "Fixed timestep in seconds (0 = physics.yaml)")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-run when prefabs or levels change on disk")
}

func runRun(cmd *cobra.Command, args []string) error {
	if flagFrames < 0 {
		return fmt.Errorf("--frames must not be negative, got %d", flagFrames)
	}

	logger, err := sim.NewLogger(flagLogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := sim.New(sim.Options{Level: flagLevel, Timestep: flagDT, Logger: logger})
	if err != nil {
		return err
	}

	report(cmd, s, logger)
	if !flagWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watch(ctx, cmd, s, logger)
}

func report(cmd *cobra.Command, s *sim.Simulation, logger *zap.Logger) {
	start := time.Now()
	for s.Frame() < flagFrames {
		for _, hit := range s.Step() {
			if ce := logger.Check(zap.DebugLevel, "collision"); ce != nil {
				ce.Write(
					zap.Int("frame", s.Frame()),
					zap.Stringer("entity", hit.Entity),
					zap.Stringer("other", hit.Other),
					zap.Float64("mpv_x", hit.MPV.X),
					zap.Float64("mpv_y", hit.MPV.Y),
					zap.Bool("solid", hit.Solid),
				)
			}
		}
	}

	logger.Info("run finished",
		zap.String("level", s.Level().Name),
		zap.Int("frames", s.Frame()),
		zap.Int("collisions", s.Collisions()),
		zap.Int("entities", len(ecs.Entities(s.World()))),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%016x\n", s.Digest())
}

func watch(ctx context.Context, cmd *cobra.Command, s *sim.Simulation, logger *zap.Logger) error {
	dirs := []string{"prefabs", "prefabs/shapes", "prefabs/scripts", "levels"}
	dirs = slices.DeleteFunc(dirs, func(dir string) bool {
		info, err := os.Stat(dir)
		return err != nil || !info.IsDir()
	})
	if len(dirs) == 0 {
		return errors.New("--watch needs prefabs/ or levels/ in the working directory")
	}

	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("file changed", zap.String("path", path))
			if err := s.Reload(path); err != nil {
				logger.Error("reload failed", zap.Error(err))
				continue
			}
			// script edits keep the world, so rewind it here
			if s.Frame() != 0 {
				if err := s.Restart(); err != nil {
					logger.Error("restart failed", zap.Error(err))
					continue
				}
			}
			report(cmd, s, logger)
		}
	}
}
