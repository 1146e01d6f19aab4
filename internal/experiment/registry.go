package experiment

import (
	"github.com/san-kum/schrodinger/internal/integrators"
	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/wave"
)

type Registry struct {
	potentials *potential.Registry
}

func NewRegistry() *Registry {
	return &Registry{potentials: potential.NewRegistry()}
}

func (r *Registry) GetPotential(name string, params map[string]float64) (wave.Potential, error) {
	return r.potentials.Get(name, params)
}

func (r *Registry) GetScheme(name string, g *wave.Grid, pot wave.Potential, units wave.Units) (wave.Propagator, error) {
	if name == "" {
		name = "numerov"
	}
	return integrators.New(name, g, pot, units)
}

func (r *Registry) ListPotentials() []string             { return r.potentials.List() }
func (r *Registry) DescribePotential(name string) string { return r.potentials.Describe(name) }
func (r *Registry) ListSchemes() []string                { return integrators.Names() }
