package integrators

import (
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Seed is ψ at the second grid point; the overall scale is arbitrary.
const Seed = 1e-6

// singularTol is the magnitude below which a divisor F_i counts as zero.
const singularTol = 1e-12

// Numerov propagates ψ'' = -k(E - V)ψ with the fourth-order Numerov
// recurrence from ψ(xL) = 0, ψ(xL+h) = Seed.
type Numerov struct {
	grid  *wave.Grid
	v     []float64
	units wave.Units
}

// NewNumerov samples pot on g once; Propagate never evaluates it again.
func NewNumerov(g *wave.Grid, pot wave.Potential, units wave.Units) *Numerov {
	return &Numerov{grid: g, v: wave.Sample(pot, g), units: units}
}

// Propagate is the free-function form of Numerov.Propagate.
func Propagate(e float64, pot wave.Potential, g *wave.Grid, units wave.Units) (wave.Wavefunction, error) {
	return NewNumerov(g, pot, units).Propagate(e)
}

func (n *Numerov) Name() string     { return "numerov" }
func (n *Numerov) Grid() *wave.Grid { return n.grid }

// Propagate returns a fresh wavefunction for trial energy e.
func (n *Numerov) Propagate(e float64) (wave.Wavefunction, error) {
	size := n.grid.Len()
	h := n.grid.Step()
	k := float64(n.units)

	f := make([]float64, size)
	for i := range f {
		g := k * (e - n.v[i])
		f[i] = 1 + h*h*g/12
		if math.IsNaN(f[i]) || math.IsInf(f[i], 0) {
			return nil, n.fail(i, e, wave.ErrNonFinite)
		}
	}

	psi := make(wave.Wavefunction, size)
	psi[0] = 0
	psi[1] = Seed

	for i := 1; i < size-1; i++ {
		if math.Abs(f[i+1]) <= singularTol {
			return nil, n.fail(i+1, e, wave.ErrSingularRecurrence)
		}
		psi[i+1] = ((12-10*f[i])*psi[i] - f[i-1]*psi[i-1]) / f[i+1]
		if math.IsNaN(psi[i+1]) || math.IsInf(psi[i+1], 0) {
			return nil, n.fail(i+1, e, wave.ErrNonFinite)
		}
	}

	return psi, nil
}

func (n *Numerov) fail(i int, e float64, err error) error {
	return &wave.RecurrenceError{Index: i, X: n.grid.At(i), Energy: e, Wrapped: err}
}
