// physview is a debug viewer for rigid2d levels. It steps the level with the
// same fixed timestep as physsim and draws every collider outline.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigid2d/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagLevel    string
	flagDT       float64
	flagLogLevel string
	flagWatch    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physview",
	Short: "Draw a rigid2d level while it runs",
	Long: `physview opens a window, loads --level and steps it once per tick.

Controls:
  Space      - Pause / resume
  N          - Single step while paused
  R          - Restart the level
  B          - Toggle bounding boxes
  Arrows     - Pan
  +/-        - Zoom
  Esc        - Quit`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func init() {
	rootCmd.Flags().StringVar(&flagLevel, "level", "demo.yaml", "Level file in levels/")
	rootCmd.Flags().Float64Var(&flagDT, "dt", 0, "Fixed timestep in seconds (0 = physics.yaml)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", true, "Reload when prefabs or levels change on disk")
}

func runView(cmd *cobra.Command, args []string) error {
	logger, err := sim.NewLogger(flagLogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := sim.New(sim.Options{Level: flagLevel, Timestep: flagDT, Logger: logger})
	if err != nil {
		return err
	}

	v := newViewer(s, logger)
	if flagWatch {
		if err := v.watch("prefabs", "prefabs/shapes", "prefabs/scripts", "levels"); err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		}
	}
	defer v.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("physview - " + s.Level().Name)
	ebiten.SetTPS(tpsFor(s.Physics().Timestep()))

	return ebiten.RunGame(v)
}
