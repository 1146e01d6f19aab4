package wave

import (
	"fmt"
	"math"
)

// Trapezoid integrates samples y over g with the trapezoidal rule.
func Trapezoid(y []float64, g *Grid) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}
	sum := 0.5 * (y[0] + y[n-1])
	for i := 1; i < n-1; i++ {
		sum += y[i]
	}
	return sum * g.h
}

// Norm returns sqrt(∫ψ² dx) over g.
func Norm(psi Wavefunction, g *Grid) float64 {
	sq := make([]float64, len(psi))
	for i, v := range psi {
		sq[i] = v * v
	}
	return math.Sqrt(Trapezoid(sq, g))
}

// Normalize returns a fresh copy of psi scaled to unit L2 norm.
func Normalize(psi Wavefunction, g *Grid) (Wavefunction, error) {
	if len(psi) != g.Len() {
		return nil, fmt.Errorf("%w: %d values on %d points", ErrLengthMismatch, len(psi), g.Len())
	}
	norm := Norm(psi, g)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, ErrZeroNorm
	}
	out := make(Wavefunction, len(psi))
	for i, v := range psi {
		out[i] = v / norm
	}
	return out, nil
}
