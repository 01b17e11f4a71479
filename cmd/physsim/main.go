// physsim steps a level headlessly and prints the resulting state digest.
//
// Usage:
//
//	physsim run [--level demo.yaml] [--frames 600] [--dt 0.016] [--watch]
//	physsim list
//
// Global flags:
//
//	--log-level <level>  - zap level (debug logs every collision)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLogLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physsim",
	Short: "Headless runner for rigid2d levels",
	Long: `physsim loads a level, runs the script drivers and the physics step for a
fixed number of frames and prints a digest of every transform and velocity.
Two runs of the same content print the same digest.

Examples:
  physsim list
  physsim run --level demo.yaml --frames 600
  physsim run --log-level debug --frames 60
  physsim run --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}
