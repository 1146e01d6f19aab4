package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/schrodinger/internal/analysis"
	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/report"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

const (
	plotWidth  = 72
	plotHeight = 14
)

func describe(w io.Writer, cfg *config.Config, units wave.Units) {
	fmt.Fprintf(w, "%s on [%g, %g] with %d points (%s units, %s)\n\n",
		cfg.Potential, cfg.Grid.XLeft, cfg.Grid.XRight, cfg.Grid.Points, units, cfg.Scheme)
}

func stateRows(res *experiment.Result) ([]report.StateRow, error) {
	rows := make([]report.StateRow, len(res.States))
	for i, st := range res.States {
		locs, err := shooting.NodeLocations(st.Psi, res.Grid, res.Config.Search.Tol)
		if err != nil {
			return nil, err
		}
		rows[i] = report.StateRow{Nodes: st.Nodes, Energy: st.Energy, NodeLocations: locs}
		if i < len(res.Exact) && res.Exact[i].Known {
			v := res.Exact[i].Value
			rows[i].Exact = &v
		}
	}
	return rows, nil
}

func printMoments(w io.Writer, res *experiment.Result) error {
	if len(res.States) > 1 {
		m, err := analysis.OrthogonalityMatrix(res.States, res.Grid)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nmax |<i|j>| for i != j: %.2e\n", analysis.MaxOffDiagonal(m))
	}
	for _, st := range res.States {
		mean, err := analysis.Position(st.Psi, res.Grid)
		if err != nil {
			return err
		}
		spread, err := analysis.Spread(st.Psi, res.Grid)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "n=%d: <x> = %.4f, dx = %.4f\n", st.Nodes, mean, spread)
	}
	return nil
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		pf     problemFlags
		check  float64
		noSave bool
		plot   bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the requested bound states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			exp, err := a.setup(cfg)
			if err != nil {
				return err
			}
			res, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			describe(out, cfg, res.Units)
			rows, err := stateRows(res)
			if err != nil {
				return err
			}
			report.SpectrumTable(out, rows, check)
			if err := printMoments(out, res); err != nil {
				return err
			}

			if plot {
				psis := make([][]float64, len(res.States))
				legends := make([]string, len(res.States))
				for i, st := range res.States {
					psis[i] = st.Psi
					legends[i] = fmt.Sprintf("n=%d", st.Nodes)
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, report.PlotWavefunctions(psis, legends, plotWidth, plotHeight, "normalised wavefunctions"))
			}

			if noSave {
				return nil
			}
			id, err := a.store().Save(res)
			if err != nil {
				return err
			}
			a.log.Info("run saved", "id", id, "dir", a.store().Dir())
			fmt.Fprintf(out, "\nsaved run: %s\n", id)
			return nil
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().Float64Var(&check, "check", 1e-3, "tolerance for marking energies against exact levels")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the wavefunctions")
	return cmd
}

func newScanCmd(a *app) *cobra.Command {
	var (
		pf  problemFlags
		num int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "tabulate node counts across the energy window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			exp, err := a.setup(cfg)
			if err != nil {
				return err
			}
			lo, hi := window(cfg)
			points, err := exp.Shooter().Scan(lo, hi, num, cfg.Search.Tol)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			describe(out, cfg, exp.Units())
			fmt.Fprintln(out, report.PlotScan(points, plotWidth, plotHeight))
			fmt.Fprintln(out)
			report.ScanTable(out, analysis.Plateaus(points), analysis.SuggestBrackets(points))
			if !analysis.IsMonotone(points) {
				fmt.Fprintln(out, "\nwarning: node count is not monotone in energy; refine the grid or tolerance")
			}
			return nil
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().IntVar(&num, "num", 500, "trial energies")
	return cmd
}

// referenceLevels returns the closed-form levels 0..n-1, or nil when the
// potential has none.
func referenceLevels(pot wave.Potential, units wave.Units, n int) []float64 {
	ex, ok := pot.(potential.Exact)
	if !ok {
		return nil
	}
	var out []float64
	for i := 0; i < n; i++ {
		v, known := ex.Level(i, units)
		if !known {
			break
		}
		out = append(out, v)
	}
	return out
}

func nearestLevel(levels []float64, e float64) int {
	best := -1
	for i, v := range levels {
		if best < 0 || math.Abs(v-e) < math.Abs(levels[best]-e) {
			best = i
		}
	}
	return best
}

func newNodesCmd(a *app) *cobra.Command {
	var (
		pf      problemFlags
		nodeTol float64
	)
	cmd := &cobra.Command{
		Use:   "nodes [energy...]",
		Short: "count nodes of the trial wavefunction at given energies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			exp, err := a.setup(cfg)
			if err != nil {
				return err
			}
			levels := referenceLevels(exp.Potential(), exp.Units(), 50)

			energies := make([]float64, 0, len(args))
			for _, arg := range args {
				e, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("energy %q: %w", arg, err)
				}
				energies = append(energies, e)
			}
			if len(energies) == 0 {
				if len(levels) == 0 {
					return errors.New("no energies given and the potential has no exact levels")
				}
				energies = levels[:min(len(levels), 5)]
			}

			g := exp.Shooter().Grid()
			prop := exp.Shooter().Propagator()
			rows := make([]report.NodeRow, 0, len(energies))
			for _, e := range energies {
				psi, err := prop.Propagate(e)
				if err != nil {
					return err
				}
				psi, err = wave.Normalize(psi, g)
				if err != nil {
					return err
				}
				locs, err := shooting.NodeLocations(psi, g, nodeTol)
				if err != nil {
					return err
				}
				rows = append(rows, report.NodeRow{
					Energy:    e,
					Expected:  nearestLevel(levels, e),
					Actual:    shooting.CountNodes(psi, nodeTol),
					Locations: locs,
				})
			}

			out := cmd.OutOrStdout()
			describe(out, cfg, exp.Units())
			report.NodesTable(out, rows)
			return nil
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().Float64Var(&nodeTol, "node-tol", 1e-3, "magnitude below which samples are treated as zero")
	return cmd
}

func newBracketCmd(a *app) *cobra.Command {
	var pf problemFlags
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "locate an energy bracket for each requested state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			exp, err := a.setup(cfg)
			if err != nil {
				return err
			}
			ex, _ := exp.Potential().(potential.Exact)

			s := exp.Shooter()
			rows := make([]report.BracketRow, len(cfg.States))
			for i, st := range cfg.States {
				row := report.BracketRow{Target: st.Nodes, Expected: math.NaN()}
				if ex != nil {
					if v, ok := ex.Level(st.Nodes, exp.Units()); ok {
						row.Expected = v
					}
				}
				row.Bracket, row.Err = s.BracketEigenvalue(st.Nodes, st.EMin, st.EMax, s.Samples(), cfg.Search.Tol)
				if row.Err != nil {
					a.log.Warn("bracket search failed", "nodes", st.Nodes, "err", row.Err)
				}
				rows[i] = row
			}

			out := cmd.OutOrStdout()
			describe(out, cfg, exp.Units())
			report.BracketTable(out, rows)
			return nil
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var pf problemFlags
	cmd := &cobra.Command{
		Use:   "compare [scheme...]",
		Short: "solve the same states with several propagation schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			schemes := args
			if len(schemes) == 0 {
				schemes = experiment.NewRegistry().ListSchemes()
			}

			var rows []report.CompareRow
			for _, scheme := range schemes {
				cfg := base.Clone()
				cfg.Scheme = scheme
				exp, err := a.setup(cfg)
				if err != nil {
					return err
				}
				start := time.Now()
				res, err := exp.Run(cmd.Context())
				elapsed := time.Since(start)
				if err != nil {
					a.log.Warn("scheme failed", "scheme", scheme, "err", err)
					for _, st := range cfg.States {
						rows = append(rows, report.CompareRow{Scheme: scheme, Nodes: st.Nodes, Err: err})
					}
					continue
				}
				for i, st := range res.States {
					row := report.CompareRow{Scheme: scheme, Nodes: st.Nodes, Energy: st.Energy, Elapsed: elapsed}
					if res.Exact[i].Known {
						v := res.Exact[i].Value
						row.Exact = &v
					}
					rows = append(rows, row)
				}
			}

			out := cmd.OutOrStdout()
			units, _ := base.UnitSystem()
			describe(out, base, units)
			report.CompareTable(out, rows)
			return nil
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		pf    problemFlags
		name  string
		from  float64
		to    float64
		steps int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "track the requested levels as a potential parameter varies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := pf.resolve(cmd, a.workers())
			if err != nil {
				return err
			}
			units, err := cfg.UnitSystem()
			if err != nil {
				return err
			}
			reg := experiment.NewRegistry()
			pot, err := reg.GetPotential(cfg.Potential, cfg.Params)
			if err != nil {
				return err
			}
			c, ok := pot.(potential.Configurable)
			if !ok {
				return fmt.Errorf("potential %q has no parameters", cfg.Potential)
			}
			g, err := wave.NewGrid(cfg.Grid.XLeft, cfg.Grid.XRight, cfg.Grid.Points)
			if err != nil {
				return err
			}
			queries := make([]shooting.Query, len(cfg.States))
			for i, st := range cfg.States {
				queries[i] = shooting.Query{Nodes: st.Nodes, EMin: st.EMin, EMax: st.EMax}
			}

			solve := func() ([]wave.Eigenstate, error) {
				if err := cmd.Context().Err(); err != nil {
					return nil, err
				}
				prop, err := reg.GetScheme(cfg.Scheme, g, pot, units)
				if err != nil {
					return nil, err
				}
				s := shooting.New(prop,
					shooting.WithSamples(cfg.Search.Samples),
					shooting.WithWorkers(cfg.Search.Workers),
					shooting.WithLogger(a.log),
				)
				return s.Spectrum(queries, cfg.Search.Tol)
			}

			points, err := analysis.LevelSweep(c, name, from, to, steps, solve)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			describe(out, cfg, units)
			report.SweepTable(out, name, points)
			return nil
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&name, "name", "", "parameter to sweep")
	cmd.Flags().Float64Var(&from, "from", 0.5, "first parameter value")
	cmd.Flags().Float64Var(&to, "to", 2, "last parameter value")
	cmd.Flags().IntVar(&steps, "steps", 5, "parameter values")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}
