package analysis

import (
	"fmt"

	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/wave"
)

// SweepPoint holds the solved energies for one parameter value.
type SweepPoint struct {
	Param    float64
	Energies []float64
}

// LevelSweep steps a potential parameter across [pMin, pMax] and records
// the energies solve returns at each value. solve must rebuild whatever
// propagator samples the potential, since SetParam mutates it in place.
// The original parameter value is restored before returning.
func LevelSweep(
	c potential.Configurable,
	param string,
	pMin, pMax float64,
	steps int,
	solve func() ([]wave.Eigenstate, error),
) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	orig, ok := c.Params()[param]
	if !ok {
		return nil, fmt.Errorf("%w: %q", potential.ErrUnknownParam, param)
	}
	defer c.SetParam(param, orig)

	step := (pMax - pMin) / float64(steps-1)
	out := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		v := pMin + float64(i)*step
		if err := c.SetParam(param, v); err != nil {
			return nil, err
		}
		states, err := solve()
		if err != nil {
			return nil, fmt.Errorf("sweep at %s=%g: %w", param, v, err)
		}
		energies := make([]float64, len(states))
		for j, st := range states {
			energies[j] = st.Energy
		}
		out = append(out, SweepPoint{Param: v, Energies: energies})
	}
	return out, nil
}
