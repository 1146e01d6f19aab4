package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Expectation returns <f(x)> = ∫f|ψ|² / ∫|ψ|², so psi need not be normalised.
func Expectation(psi wave.Wavefunction, g *wave.Grid, f func(x float64) float64) (float64, error) {
	if len(psi) != g.Len() {
		return 0, fmt.Errorf("%w: %d values on %d points", wave.ErrLengthMismatch, len(psi), g.Len())
	}
	num := make([]float64, len(psi))
	den := make([]float64, len(psi))
	for i, v := range psi {
		den[i] = v * v
		num[i] = f(g.At(i)) * den[i]
	}
	norm := wave.Trapezoid(den, g)
	if !(norm > 0) || math.IsInf(norm, 0) {
		return 0, wave.ErrZeroNorm
	}
	return wave.Trapezoid(num, g) / norm, nil
}

func Position(psi wave.Wavefunction, g *wave.Grid) (float64, error) {
	return Expectation(psi, g, func(x float64) float64 { return x })
}

func PositionSquared(psi wave.Wavefunction, g *wave.Grid) (float64, error) {
	return Expectation(psi, g, func(x float64) float64 { return x * x })
}

// Spread is Δx = sqrt(<x²> - <x>²).
func Spread(psi wave.Wavefunction, g *wave.Grid) (float64, error) {
	mean, err := Position(psi, g)
	if err != nil {
		return 0, err
	}
	sq, err := PositionSquared(psi, g)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(math.Max(sq-mean*mean, 0)), nil
}

// Overlap is <a|b> by the trapezoid rule.
func Overlap(a, b wave.Wavefunction, g *wave.Grid) (float64, error) {
	if len(a) != g.Len() || len(b) != g.Len() {
		return 0, fmt.Errorf("%w: %d and %d values on %d points", wave.ErrLengthMismatch, len(a), len(b), g.Len())
	}
	prod := make([]float64, len(a))
	for i := range a {
		prod[i] = a[i] * b[i]
	}
	return wave.Trapezoid(prod, g), nil
}

// OrthogonalityMatrix returns M[i][j] = <ψi|ψj>; it is close to the
// identity for normalised states of one potential.
func OrthogonalityMatrix(states []wave.Eigenstate, g *wave.Grid) ([][]float64, error) {
	m := make([][]float64, len(states))
	for i := range states {
		m[i] = make([]float64, len(states))
	}
	for i := range states {
		for j := i; j < len(states); j++ {
			v, err := Overlap(states[i].Psi, states[j].Psi, g)
			if err != nil {
				return nil, err
			}
			m[i][j], m[j][i] = v, v
		}
	}
	return m, nil
}

// MaxOffDiagonal is the largest |M[i][j]| with i != j.
func MaxOffDiagonal(m [][]float64) float64 {
	worst := 0.0
	for i := range m {
		for j := range m[i] {
			if i != j {
				worst = math.Max(worst, math.Abs(m[i][j]))
			}
		}
	}
	return worst
}
