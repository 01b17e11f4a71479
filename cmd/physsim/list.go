package main

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/prefabs"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List embedded levels and prefabs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	lvls, err := fs.Glob(levels.LevelsFS, "*.yaml")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Levels:")
	for _, name := range lvls {
		lvl, err := levels.LoadLevel(name)
		if err != nil {
			fmt.Fprintf(out, "  %-16s (error: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  %-16s %d placements\n", name, len(lvl.Placements))
	}

	names, err := prefabs.List(prefabs.EntityDir, ".yaml")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Prefabs:")
	for _, name := range names {
		if name == prefabs.PhysicsFile {
			continue
		}
		spec, err := prefabs.LoadEntityBuildSpec(name)
		if err != nil {
			fmt.Fprintf(out, "  %-16s (error: %v)\n", name, err)
			continue
		}
		comps := make([]string, 0, len(spec.Components))
		for c := range spec.Components {
			comps = append(comps, c)
		}
		slices.Sort(comps)
		fmt.Fprintf(out, "  %-16s %s\n", name, strings.Join(comps, ", "))
	}
	return nil
}
