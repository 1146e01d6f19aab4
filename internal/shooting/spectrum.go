package shooting

import (
	"fmt"

	"github.com/san-kum/schrodinger/internal/wave"
)

// Query asks for the state with Nodes nodes inside [EMin, EMax].
type Query struct {
	Nodes int
	EMin  float64
	EMax  float64
}

// Spectrum solves each query in order and stops at the first failure.
func (s *Shooter) Spectrum(queries []Query, tol float64) ([]wave.Eigenstate, error) {
	states := make([]wave.Eigenstate, 0, len(queries))
	for i, q := range queries {
		st, err := s.SolveState(q.Nodes, q.EMin, q.EMax, tol)
		if err != nil {
			return nil, fmt.Errorf("state %d (%d nodes in [%g, %g]): %w", i, q.Nodes, q.EMin, q.EMax, err)
		}
		states = append(states, st)
	}
	return states, nil
}
