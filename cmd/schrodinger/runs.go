package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/report"
	"github.com/san-kum/schrodinger/internal/storage"
	"github.com/san-kum/schrodinger/internal/wave"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := a.store().List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			report.RunsTable(out, runs)
			return nil
		},
	}
}

func loadRun(st *storage.Store, id string) (*storage.RunMetadata, []float64, []wave.Wavefunction, error) {
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, nil, err
	}
	xs, psis, err := st.LoadStates(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(psis) != len(meta.States) {
		return nil, nil, nil, fmt.Errorf("run %s: %d wavefunctions for %d states", id, len(psis), len(meta.States))
	}
	return meta, xs, psis, nil
}

func newPlotCmd(a *app) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the wavefunctions of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, _, psis, err := loadRun(a.store(), args[0])
			if err != nil {
				return err
			}
			series := make([][]float64, len(psis))
			legends := make([]string, len(psis))
			for i, psi := range psis {
				series[i] = psi
				legends[i] = fmt.Sprintf("n=%d E=%.4f", meta.States[i].Nodes, meta.States[i].Energy)
			}
			caption := fmt.Sprintf("%s on [%g, %g]", meta.Potential, meta.Grid.XLeft, meta.Grid.XRight)
			fmt.Fprintln(cmd.OutOrStdout(), report.PlotWavefunctions(series, legends, width, height, caption))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", plotWidth, "plot width in columns")
	cmd.Flags().IntVar(&height, "height", plotHeight, "plot height in rows")
	return cmd
}

func newExportJSONCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.store()
			if path == "-" {
				return st.ExportJSON(args[0], cmd.OutOrStdout())
			}
			if err := st.ExportJSONFile(args[0], path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "-", `output file ("-" for stdout)`)
	return cmd
}

func newExportSVGCmd(a *app) *cobra.Command {
	var (
		path          string
		scale         float64
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a saved run's levels and wavefunctions as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, xs, psis, err := loadRun(a.store(), args[0])
			if err != nil {
				return err
			}
			g, err := wave.NewGrid(meta.Grid.XLeft, meta.Grid.XRight, meta.Grid.Points)
			if err != nil {
				return err
			}
			if g.Len() != len(xs) {
				return fmt.Errorf("run %s: grid has %d points, states have %d", meta.ID, g.Len(), len(xs))
			}
			pot, err := experiment.NewRegistry().GetPotential(meta.Potential, meta.Params)
			if err != nil {
				return err
			}

			states := make([]wave.Eigenstate, len(psis))
			for i, psi := range psis {
				states[i] = wave.Eigenstate{Energy: meta.States[i].Energy, Nodes: meta.States[i].Nodes, Psi: psi}
			}
			svg := report.EigenfunctionsSVG(g, states, wave.Sample(pot, g), scale, width, height)

			if path == "" {
				path = meta.ID + ".svg"
			}
			if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
				return err
			}
			a.log.Info("svg written", "run", meta.ID, "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "", "output file (default <run_id>.svg)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "wavefunction amplitude scale")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 600, "image height")
	return cmd
}
