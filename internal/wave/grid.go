package wave

import (
	"fmt"
	"math"
)

// MinPoints is the smallest usable grid: two seeds plus one computed point.
const MinPoints = 3

// Grid is an immutable uniform grid over [xL, xR] inclusive.
type Grid struct {
	xs []float64
	h  float64
}

// NewGrid builds n evenly spaced points over [xL, xR].
func NewGrid(xL, xR float64, n int) (*Grid, error) {
	if n < MinPoints {
		return nil, fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidDomain, MinPoints, n)
	}
	if math.IsNaN(xL) || math.IsNaN(xR) || math.IsInf(xL, 0) || math.IsInf(xR, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite, got [%g, %g]", ErrInvalidDomain, xL, xR)
	}
	if xL >= xR {
		return nil, fmt.Errorf("%w: need xL < xR, got [%g, %g]", ErrInvalidDomain, xL, xR)
	}

	h := (xR - xL) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = xL + float64(i)*h
	}
	// pin the right edge so it is exact
	xs[n-1] = xR

	return &Grid{xs: xs, h: h}, nil
}

func (g *Grid) Len() int         { return len(g.xs) }
func (g *Grid) Step() float64    { return g.h }
func (g *Grid) Left() float64    { return g.xs[0] }
func (g *Grid) Right() float64   { return g.xs[len(g.xs)-1] }
func (g *Grid) At(i int) float64 { return g.xs[i] }

// Points returns a copy of the grid coordinates.
func (g *Grid) Points() []float64 {
	c := make([]float64, len(g.xs))
	copy(c, g.xs)
	return c
}
