package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/schrodinger/internal/wave"
)

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// MomentumDensity zero-pads ψ to a power of two and returns the
// non-negative momenta p_k = 2πk/(N·h) with |φ(p_k)|², scaled so the
// density integrates to one over the full symmetric axis.
func MomentumDensity(psi wave.Wavefunction, g *wave.Grid) (p, density []float64) {
	n := nextPow2(len(psi))
	buf := make([]complex128, n)
	for i, v := range psi {
		buf[i] = complex(v, 0)
	}
	phi := fft.FFT(buf)

	h := g.Step()
	dp := 2 * math.Pi / (float64(n) * h)
	p = make([]float64, n/2)
	density = make([]float64, n/2)

	total := 0.0
	for k := range phi {
		total += real(phi[k] * cmplx.Conj(phi[k]))
	}
	if total == 0 {
		for k := range p {
			p[k] = float64(k) * dp
		}
		return p, density
	}

	for k := range p {
		p[k] = float64(k) * dp
		a := cmplx.Abs(phi[k])
		density[k] = a * a / (total * dp)
	}
	return p, density
}
