package potential

import (
	"fmt"
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Hydrogen is the radial potential -Z/r + L(L+1)/(2r²) in atomic units.
// It is +Inf for r <= 0, so grids must start just right of the origin.
type Hydrogen struct {
	Z float64
	L int
}

func NewHydrogen() *Hydrogen { return &Hydrogen{Z: 1, L: 0} }

func (h *Hydrogen) Evaluate(r float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	l := float64(h.L)
	return -h.Z/r + l*(l+1)/(2*r*r)
}

func (h *Hydrogen) Sample(xs []float64) []float64 { return sample(xs, h.Evaluate) }

// Level is -Z²/(2N²) with principal number N = n + L + 1, where n counts
// radial nodes. Only defined in atomic units.
func (h *Hydrogen) Level(n int, units wave.Units) (float64, bool) {
	if n < 0 || units != wave.Atomic {
		return 0, false
	}
	principal := float64(n + h.L + 1)
	return -h.Z * h.Z / (2 * principal * principal), true
}

func (h *Hydrogen) Params() map[string]float64 {
	return map[string]float64{"z": h.Z, "l": float64(h.L)}
}

func (h *Hydrogen) SetParam(name string, v float64) error {
	switch name {
	case "z":
		h.Z = v
	case "l":
		if v < 0 || v != math.Trunc(v) {
			return fmt.Errorf("potential: angular momentum must be a non-negative integer, got %g", v)
		}
		h.L = int(v)
	default:
		return fmt.Errorf("%w: hydrogen has no %q", ErrUnknownParam, name)
	}
	return nil
}
