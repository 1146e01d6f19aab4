package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

// Level is a closed-form reference energy. Known is false when the
// potential has no formula for the units in use.
type Level struct {
	Value float64
	Known bool
}

type Result struct {
	Config *config.Config
	Grid   *wave.Grid
	Units  wave.Units
	States []wave.Eigenstate
	Exact  []Level
}

type Experiment struct {
	cfg       *config.Config
	units     wave.Units
	potential wave.Potential
	shooter   *shooting.Shooter
	log       *slog.Logger
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, log: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))}
}

// Setup validates the problem and builds its potential, propagator and
// shooter from the registry.
func (e *Experiment) Setup(reg *Registry, logger *slog.Logger) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if logger != nil {
		e.log = logger
	}

	units, err := e.cfg.UnitSystem()
	if err != nil {
		return err
	}
	pot, err := reg.GetPotential(e.cfg.Potential, e.cfg.Params)
	if err != nil {
		return err
	}
	g, err := wave.NewGrid(e.cfg.Grid.XLeft, e.cfg.Grid.XRight, e.cfg.Grid.Points)
	if err != nil {
		return err
	}
	prop, err := reg.GetScheme(e.cfg.Scheme, g, pot, units)
	if err != nil {
		return err
	}

	e.units, e.potential = units, pot
	e.shooter = shooting.New(prop,
		shooting.WithSamples(e.cfg.Search.Samples),
		shooting.WithWorkers(e.cfg.Search.Workers),
		shooting.WithLogger(e.log),
	)
	return nil
}

// Run solves every requested state in order.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.shooter == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queries := make([]shooting.Query, len(e.cfg.States))
	for i, st := range e.cfg.States {
		queries[i] = shooting.Query{Nodes: st.Nodes, EMin: st.EMin, EMax: st.EMax}
	}

	e.log.Info("solving", "potential", e.cfg.Potential, "units", e.units, "scheme", e.cfg.Scheme, "states", len(queries))
	states, err := e.shooter.Spectrum(queries, e.cfg.Search.Tol)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Config: e.cfg,
		Grid:   e.shooter.Grid(),
		Units:  e.units,
		States: states,
		Exact:  e.ExactLevels(states),
	}, nil
}

// ExactLevels looks up the closed-form energy for each state's node count.
func (e *Experiment) ExactLevels(states []wave.Eigenstate) []Level {
	out := make([]Level, len(states))
	ex, ok := e.potential.(potential.Exact)
	if !ok {
		return out
	}
	for i, st := range states {
		v, known := ex.Level(st.Nodes, e.units)
		out[i] = Level{Value: v, Known: known}
	}
	return out
}

func (e *Experiment) Shooter() *shooting.Shooter { return e.shooter }
func (e *Experiment) Potential() wave.Potential  { return e.potential }
func (e *Experiment) Units() wave.Units          { return e.units }
func (e *Experiment) Config() *config.Config     { return e.cfg }
