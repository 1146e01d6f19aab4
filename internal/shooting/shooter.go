package shooting

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/schrodinger/internal/wave"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSamples = 1000
	DefaultTol     = 1e-6

	// maxBisect bounds refinement; 200 halvings exhausts float64 resolution
	// for any finite bracket.
	maxBisect = 200
)

type Shooter struct {
	prop    wave.Propagator
	samples int
	workers int
	log     *slog.Logger
}

type Option func(*Shooter)

// WithSamples sets the number of scan energies used by SolveState.
func WithSamples(n int) Option {
	return func(s *Shooter) {
		if n >= 2 {
			s.samples = n
		}
	}
}

// WithWorkers sets how many propagations the scan runs concurrently.
func WithWorkers(n int) Option {
	return func(s *Shooter) {
		if n >= 1 {
			s.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Shooter) {
		if l != nil {
			s.log = l
		}
	}
}

func New(prop wave.Propagator, opts ...Option) *Shooter {
	s := &Shooter{
		prop:    prop,
		samples: DefaultSamples,
		workers: 1,
		log:     slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shooter) Grid() *wave.Grid            { return s.prop.Grid() }
func (s *Shooter) Propagator() wave.Propagator { return s.prop }
func (s *Shooter) Samples() int                { return s.samples }

// BoundaryValue is b(E) = ψ(xR), the functional refined to zero.
func (s *Shooter) BoundaryValue(e float64) (float64, error) {
	psi, err := s.prop.Propagate(e)
	if err != nil {
		return 0, err
	}
	return psi.Last(), nil
}

// ScanPoint is one classified trial energy.
type ScanPoint struct {
	Energy   float64
	Nodes    int
	Boundary float64
	err      error
}

// Scan propagates num energies spread uniformly over [eMin, eMax] and
// classifies each by node count. Points are in increasing energy order.
// The first failure by energy is returned.
func (s *Shooter) Scan(eMin, eMax float64, num int, tol float64) ([]ScanPoint, error) {
	points, err := s.scan(eMin, eMax, num, tol)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if p.err != nil {
			return nil, p.err
		}
	}
	return points, nil
}

func (s *Shooter) scan(eMin, eMax float64, num int, tol float64) ([]ScanPoint, error) {
	if err := validateWindow(eMin, eMax, num, tol); err != nil {
		return nil, err
	}

	points := make([]ScanPoint, num)
	step := (eMax - eMin) / float64(num-1)

	var group errgroup.Group
	group.SetLimit(s.workers)

	for i := 0; i < num; i++ {
		idx := i
		group.Go(func() error {
			e := eMin + float64(idx)*step
			if idx == num-1 {
				e = eMax
			}
			psi, err := s.prop.Propagate(e)
			if err != nil {
				points[idx] = ScanPoint{Energy: e, err: fmt.Errorf("scan at E=%g: %w", e, err)}
				return nil
			}
			points[idx] = ScanPoint{Energy: e, Nodes: CountNodes(psi, tol), Boundary: psi.Last()}
			return nil
		})
	}

	// workers record failures in their own slot, so Wait never errors
	_ = group.Wait()
	return points, nil
}

func validateWindow(eMin, eMax float64, num int, tol float64) error {
	if num < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidSearch, num)
	}
	if math.IsNaN(eMin) || math.IsNaN(eMax) || math.IsInf(eMin, 0) || math.IsInf(eMax, 0) || eMin >= eMax {
		return fmt.Errorf("%w: need finite E_min < E_max, got [%g, %g]", ErrInvalidSearch, eMin, eMax)
	}
	if tol < 0 || math.IsNaN(tol) {
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", ErrInvalidSearch, tol)
	}
	return nil
}

// BracketEigenvalue returns the first adjacent pair of scan energies where
// the node count goes from target to anything else.
func (s *Shooter) BracketEigenvalue(target int, eMin, eMax float64, num int, tol float64) (wave.Bracket, error) {
	if target < 0 {
		return wave.Bracket{}, fmt.Errorf("%w: target nodes must be non-negative, got %d", ErrInvalidSearch, target)
	}
	points, err := s.scan(eMin, eMax, num, tol)
	if err != nil {
		return wave.Bracket{}, err
	}

	type fold struct {
		prev     ScanPoint
		seen     bool
		min, max int
	}
	st := fold{min: math.MaxInt, max: math.MinInt}

	for _, p := range points {
		if p.err != nil {
			return wave.Bracket{}, p.err
		}
		if st.seen && st.prev.Nodes == target && p.Nodes != target {
			b := wave.Bracket{Lo: st.prev.Energy, Hi: p.Energy}
			s.log.Debug("bracket found", "target", target, "lo", b.Lo, "hi", b.Hi, "nodes_hi", p.Nodes)
			return b, nil
		}
		st.prev, st.seen = p, true
		st.min, st.max = min(st.min, p.Nodes), max(st.max, p.Nodes)
	}

	return wave.Bracket{}, &BracketError{
		Target:   target,
		EMin:     eMin,
		EMax:     eMax,
		Samples:  num,
		MinNodes: st.min,
		MaxNodes: st.max,
	}
}

// RefineEigenvalue bisects b(E) across the bracket until its width is at
// most tol. It returns the lower end of the final interval, which keeps the
// node count of the bracket's low side.
func (s *Shooter) RefineEigenvalue(b wave.Bracket, tol float64) (float64, error) {
	if !(b.Lo < b.Hi) {
		return 0, fmt.Errorf("%w: bracket %v is empty", ErrInvalidSearch, b)
	}
	if !(tol > 0) {
		return 0, fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidSearch, tol)
	}

	lo, hi := b.Lo, b.Hi
	fLo, err := s.BoundaryValue(lo)
	if err != nil {
		return 0, err
	}
	fHi, err := s.BoundaryValue(hi)
	if err != nil {
		return 0, err
	}

	switch {
	case fLo == 0:
		return lo, nil
	case fHi == 0:
		return hi, nil
	case (fLo > 0) == (fHi > 0):
		return 0, &RootError{Bracket: b, BLo: fLo, BHi: fHi}
	}

	iter := 0
	for ; hi-lo > tol; iter++ {
		if iter == maxBisect {
			return 0, fmt.Errorf("%w: width %g after %d iterations", ErrNotConverged, hi-lo, iter)
		}
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			// adjacent floats; tol is below the resolution of the energy axis
			break
		}
		fMid, err := s.BoundaryValue(mid)
		if err != nil {
			return 0, err
		}
		if fMid == 0 {
			lo = mid
			break
		}
		if (fMid > 0) == (fLo > 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	s.log.Debug("eigenvalue refined", "energy", lo, "width", hi-lo, "iterations", iter)
	return lo, nil
}

// Eigenvalue brackets and refines the energy of the state with target nodes.
func (s *Shooter) Eigenvalue(target int, eMin, eMax, tol float64) (float64, error) {
	b, err := s.BracketEigenvalue(target, eMin, eMax, s.samples, tol)
	if err != nil {
		return 0, err
	}
	return s.RefineEigenvalue(b, tol)
}

// SolveState returns the eigenstate with target nodes inside [eMin, eMax],
// normalised by the trapezoid rule.
func (s *Shooter) SolveState(target int, eMin, eMax, tol float64) (wave.Eigenstate, error) {
	e, err := s.Eigenvalue(target, eMin, eMax, tol)
	if err != nil {
		return wave.Eigenstate{}, err
	}

	psi, err := s.prop.Propagate(e)
	if err != nil {
		return wave.Eigenstate{}, err
	}
	psi, err = wave.Normalize(psi, s.prop.Grid())
	if err != nil {
		return wave.Eigenstate{}, err
	}

	state := wave.Eigenstate{Energy: e, Nodes: CountNodes(psi, tol), Psi: psi}
	s.log.Debug("state solved", "target", target, "energy", e, "nodes", state.Nodes)
	return state, nil
}
