package potential

import (
	"errors"

	"github.com/san-kum/schrodinger/internal/wave"
)

// ErrUnknownParam indicates SetParam was called with a name the potential lacks.
var ErrUnknownParam = errors.New("potential: unknown parameter")

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Exact is implemented by potentials with a closed-form spectrum.
// Level reports false when no formula exists for the given units.
type Exact interface {
	Level(n int, units wave.Units) (float64, bool)
}

func sample(xs []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}
