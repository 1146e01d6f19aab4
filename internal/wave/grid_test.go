package wave

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(-5, 5, 501)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if g.Len() != 501 {
		t.Errorf("expected 501 points, got %d", g.Len())
	}
	if math.Abs(g.Step()-0.02) > 1e-15 {
		t.Errorf("expected step 0.02, got %g", g.Step())
	}
	if g.Left() != -5 || g.Right() != 5 {
		t.Errorf("expected bounds [-5, 5], got [%g, %g]", g.Left(), g.Right())
	}
	if math.Abs(g.At(250)) > 1e-12 {
		t.Errorf("expected midpoint 0, got %g", g.At(250))
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		xL, xR float64
		n      int
	}{
		{"too few points", 0, 1, 2},
		{"zero points", 0, 1, 0},
		{"negative points", 0, 1, -4},
		{"inverted bounds", 1, 0, 10},
		{"degenerate bounds", 1, 1, 10},
		{"NaN bound", math.NaN(), 1, 10},
		{"infinite bound", 0, math.Inf(1), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.xL, tt.xR, tt.n)
			if !errors.Is(err, ErrInvalidDomain) {
				t.Errorf("expected ErrInvalidDomain, got %v", err)
			}
		})
	}
}

func TestGrid_PointsIsCopy(t *testing.T) {
	g, err := NewGrid(0, 1, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	pts := g.Points()
	pts[1] = 42
	if g.At(1) != 0.5 {
		t.Errorf("grid mutated through Points(): got %g", g.At(1))
	}
}
