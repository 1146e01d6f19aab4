package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/tui"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [potential|potential/name]",
		Short: "list presets, or print one as a problem file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				reg := experiment.NewRegistry()
				potentials := make([]string, 0, len(config.Presets))
				for name := range config.Presets {
					potentials = append(potentials, name)
				}
				sort.Strings(potentials)
				for _, name := range potentials {
					fmt.Fprintf(out, "%s: %s\n", name, reg.DescribePotential(name))
					for _, preset := range config.ListPresets(name) {
						fmt.Fprintf(out, "  %s/%s\n", name, preset)
					}
				}
				return nil
			}

			if !strings.Contains(args[0], "/") {
				names := config.ListPresets(args[0])
				if len(names) == 0 {
					return fmt.Errorf("no presets for potential %q", args[0])
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			cfg, err := config.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "shoot interactively by nudging the trial energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Debug("starting explorer")
			return tui.RunExplorer(cmd.Context())
		},
	}
}
