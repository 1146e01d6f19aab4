package shooting

import (
	"fmt"
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
)

// classify returns the sign of v, or 0 when |v| <= tol. NaN classifies as 0.
func classify(v, tol float64) int {
	if !(math.Abs(v) > tol) {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

// CountNodes counts sign changes between values whose magnitude exceeds tol.
// Zero-classified runs are skipped without counting; the first nonzero sign
// seeds the reference. tol is absolute: propagated wavefunctions start at
// integrators.Seed, so a useful tol sits well below that amplitude.
func CountNodes(psi []float64, tol float64) int {
	nodes, ref := 0, 0
	for _, v := range psi {
		s := classify(v, tol)
		switch {
		case s == 0:
		case ref == 0:
			ref = s
		case s != ref:
			nodes++
			ref = s
		}
	}
	return nodes
}

// NodeLocations returns the position of every node CountNodes would count,
// interpolated linearly between the two nonzero samples that bound it.
func NodeLocations(psi []float64, g *wave.Grid, tol float64) ([]float64, error) {
	if len(psi) != g.Len() {
		return nil, fmt.Errorf("%w: %d values on %d points", wave.ErrLengthMismatch, len(psi), g.Len())
	}

	var locs []float64
	ref, last := 0, -1
	for i, v := range psi {
		s := classify(v, tol)
		if s == 0 {
			continue
		}
		if ref != 0 && s != ref {
			x0, x1 := g.At(last), g.At(i)
			v0 := psi[last]
			locs = append(locs, x0+(x1-x0)*v0/(v0-v))
		}
		ref, last = s, i
	}
	return locs, nil
}
