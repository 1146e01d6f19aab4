package wave

import (
	"fmt"
	"math"
	"strings"
)

// Potential is a pure mapping from position to potential energy.
type Potential interface {
	Evaluate(x float64) float64
}

// Sampler is the vectorised form of a Potential.
type Sampler interface {
	Sample(xs []float64) []float64
}

// Sample evaluates p at every grid point.
func Sample(p Potential, g *Grid) []float64 {
	if s, ok := p.(Sampler); ok {
		return s.Sample(g.xs)
	}
	v := make([]float64, len(g.xs))
	for i, x := range g.xs {
		v[i] = p.Evaluate(x)
	}
	return v
}

// PotentialFunc adapts an ordinary function to Potential.
type PotentialFunc func(x float64) float64

func (f PotentialFunc) Evaluate(x float64) float64 { return f(x) }

// Units is the factor k in ψ'' = -k·(E - V)·ψ.
type Units float64

const (
	Dimensionless Units = 1
	Atomic        Units = 2
)

func (u Units) String() string {
	switch u {
	case Dimensionless:
		return "dimensionless"
	case Atomic:
		return "atomic"
	default:
		return fmt.Sprintf("k=%g", float64(u))
	}
}

// ParseUnits accepts "dimensionless", "atomic" or an empty string.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dimensionless", "reduced":
		return Dimensionless, nil
	case "atomic", "au":
		return Atomic, nil
	}
	return 0, fmt.Errorf("wave: unknown units %q", s)
}

type Wavefunction []float64

func (w Wavefunction) Clone() Wavefunction {
	c := make(Wavefunction, len(w))
	copy(c, w)
	return c
}

// Last returns the value at the right boundary.
func (w Wavefunction) Last() float64 {
	if len(w) == 0 {
		return 0
	}
	return w[len(w)-1]
}

func (w Wavefunction) IsValid() bool {
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest magnitude in w.
func (w Wavefunction) MaxAbs() float64 {
	m := 0.0
	for _, v := range w {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Propagator produces the trial wavefunction for an energy on a fixed grid.
type Propagator interface {
	Propagate(e float64) (Wavefunction, error)
	Grid() *Grid
}

// Bracket is an energy interval with Lo < Hi.
type Bracket struct {
	Lo, Hi float64
}

func (b Bracket) Width() float64 { return b.Hi - b.Lo }

func (b Bracket) Contains(e float64) bool { return e >= b.Lo && e <= b.Hi }

func (b Bracket) String() string { return fmt.Sprintf("[%.6f, %.6f]", b.Lo, b.Hi) }

// Eigenstate is a refined eigenvalue with its normalised wavefunction.
type Eigenstate struct {
	Energy float64
	Nodes  int
	Psi    Wavefunction
}
