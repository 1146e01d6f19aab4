package potential

import (
	"fmt"
	"math"
)

// SquareWell is -Depth inside |x| < Width/2 and zero outside.
type SquareWell struct {
	Depth, Width float64
}

func NewSquareWell() *SquareWell { return &SquareWell{Depth: 10, Width: 2} }

func (s *SquareWell) Evaluate(x float64) float64 {
	if math.Abs(x) < s.Width/2 {
		return -s.Depth
	}
	return 0
}

func (s *SquareWell) Sample(xs []float64) []float64 { return sample(xs, s.Evaluate) }

func (s *SquareWell) Params() map[string]float64 {
	return map[string]float64{"depth": s.Depth, "width": s.Width}
}

func (s *SquareWell) SetParam(name string, v float64) error {
	switch name {
	case "depth":
		s.Depth = v
	case "width":
		s.Width = v
	default:
		return fmt.Errorf("%w: squarewell has no %q", ErrUnknownParam, name)
	}
	return nil
}
