package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/experiment"
)

// problemFlags selects a problem from a preset or file, then lets
// individual flags override it. Only flags the user set take effect.
type problemFlags struct {
	configFile string
	preset     string
	potential  string
	params     []string
	units      string
	scheme     string
	xLeft      float64
	xRight     float64
	points     int
	samples    int
	tol        float64
	nodes      int
	eMin       float64
	eMax       float64
}

func (p *problemFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&p.configFile, "config", "c", "", "problem file (yaml)")
	fs.StringVarP(&p.preset, "preset", "p", "", "named problem, e.g. harmonic/ground")
	fs.StringVar(&p.potential, "potential", "", "potential name")
	fs.StringSliceVar(&p.params, "param", nil, "potential parameter name=value (repeatable)")
	fs.StringVar(&p.units, "units", "", "dimensionless or atomic")
	fs.StringVar(&p.scheme, "scheme", "", "propagation scheme (numerov, stormer)")
	fs.Float64Var(&p.xLeft, "xl", config.DefaultXLeft, "left grid edge")
	fs.Float64Var(&p.xRight, "xr", config.DefaultXRight, "right grid edge")
	fs.IntVar(&p.points, "points", config.DefaultPoints, "grid points")
	fs.IntVar(&p.samples, "samples", config.DefaultSamples, "scan energies per bracket search")
	fs.Float64Var(&p.tol, "tol", config.DefaultTol, "node and refinement tolerance")
	fs.IntVarP(&p.nodes, "nodes", "n", 0, "target node count (replaces the problem's states)")
	fs.Float64Var(&p.eMin, "emin", 0, "lower end of the energy window")
	fs.Float64Var(&p.eMax, "emax", 2, "upper end of the energy window")
}

func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// resolve builds the problem: defaults, then preset, then file, then flags.
func (p *problemFlags) resolve(cmd *cobra.Command, workers int) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if p.preset != "" {
		preset, err := config.Lookup(p.preset)
		if err != nil {
			return nil, err
		}
		cfg = preset
	}
	if p.configFile != "" {
		loaded, err := config.Load(p.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("potential") && p.potential != cfg.Potential {
		cfg.Potential = p.potential
		cfg.Params = nil
	}
	if fs.Changed("param") {
		params, err := parseParams(p.params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
	}
	if fs.Changed("units") {
		cfg.Units = p.units
	}
	if fs.Changed("scheme") {
		cfg.Scheme = p.scheme
	}
	if fs.Changed("xl") {
		cfg.Grid.XLeft = p.xLeft
	}
	if fs.Changed("xr") {
		cfg.Grid.XRight = p.xRight
	}
	if fs.Changed("points") {
		cfg.Grid.Points = p.points
	}
	if fs.Changed("samples") {
		cfg.Search.Samples = p.samples
	}
	if fs.Changed("tol") {
		cfg.Search.Tol = p.tol
	}
	if fs.Changed(workersFlagName) || cfg.Search.Workers < workers {
		cfg.Search.Workers = workers
	}

	if fs.Changed("nodes") || fs.Changed("emin") || fs.Changed("emax") {
		st := config.StateConfig{Nodes: p.nodes, EMin: p.eMin, EMax: p.eMax}
		if len(cfg.States) > 0 {
			if !fs.Changed("nodes") {
				st.Nodes = cfg.States[0].Nodes
			}
			if !fs.Changed("emin") {
				st.EMin = cfg.States[0].EMin
			}
			if !fs.Changed("emax") {
				st.EMax = cfg.States[0].EMax
			}
		}
		cfg.States = []config.StateConfig{st}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// window is the smallest energy range covering every requested state.
func window(cfg *config.Config) (float64, float64) {
	lo, hi := cfg.States[0].EMin, cfg.States[0].EMax
	for _, st := range cfg.States[1:] {
		lo, hi = min(lo, st.EMin), max(hi, st.EMax)
	}
	return lo, hi
}

func (a *app) setup(cfg *config.Config) (*experiment.Experiment, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), a.log); err != nil {
		return nil, err
	}
	return exp, nil
}
