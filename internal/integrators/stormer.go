package integrators

import (
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Stormer is the plain second-order three-point scheme
// ψ_{i+1} = 2ψ_i - ψ_{i-1} - h²·k(E - V_i)·ψ_i.
// It shares seeds with Numerov and is kept as an accuracy baseline.
type Stormer struct {
	grid  *wave.Grid
	v     []float64
	units wave.Units
}

func NewStormer(g *wave.Grid, pot wave.Potential, units wave.Units) *Stormer {
	return &Stormer{grid: g, v: wave.Sample(pot, g), units: units}
}

func (s *Stormer) Name() string     { return "stormer" }
func (s *Stormer) Grid() *wave.Grid { return s.grid }

func (s *Stormer) Propagate(e float64) (wave.Wavefunction, error) {
	size := s.grid.Len()
	h2 := s.grid.Step() * s.grid.Step()
	k := float64(s.units)

	psi := make(wave.Wavefunction, size)
	psi[1] = Seed

	for i := 1; i < size-1; i++ {
		psi[i+1] = 2*psi[i] - psi[i-1] - h2*k*(e-s.v[i])*psi[i]
		if math.IsNaN(psi[i+1]) || math.IsInf(psi[i+1], 0) {
			return nil, &wave.RecurrenceError{Index: i + 1, X: s.grid.At(i + 1), Energy: e, Wrapped: wave.ErrNonFinite}
		}
	}

	return psi, nil
}
