package potential

import (
	"fmt"
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Harmonic is the oscillator V = K·x².
type Harmonic struct {
	K float64
}

func NewHarmonic() *Harmonic { return &Harmonic{K: 1} }

func (h *Harmonic) Evaluate(x float64) float64 { return h.K * x * x }

func (h *Harmonic) Sample(xs []float64) []float64 { return sample(xs, h.Evaluate) }

// Level is E_n = (2n+1)·sqrt(K/k) for ψ'' = -k(E - Kx²)ψ.
func (h *Harmonic) Level(n int, units wave.Units) (float64, bool) {
	if n < 0 || h.K <= 0 || units <= 0 {
		return 0, false
	}
	return float64(2*n+1) * math.Sqrt(h.K/float64(units)), true
}

func (h *Harmonic) Params() map[string]float64 {
	return map[string]float64{"k": h.K}
}

func (h *Harmonic) SetParam(name string, v float64) error {
	switch name {
	case "k":
		h.K = v
	default:
		return fmt.Errorf("%w: harmonic has no %q", ErrUnknownParam, name)
	}
	return nil
}
