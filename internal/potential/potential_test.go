package potential

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/schrodinger/internal/wave"
)

func TestHarmonic(t *testing.T) {
	h := NewHarmonic()
	if h.Evaluate(3) != 9 {
		t.Errorf("expected V(3) = 9, got %g", h.Evaluate(3))
	}

	tests := []struct {
		k     float64
		units wave.Units
		n     int
		want  float64
	}{
		{1, wave.Dimensionless, 0, 1},
		{1, wave.Dimensionless, 3, 7},
		{0.5, wave.Atomic, 0, 0.5},
		{0.5, wave.Atomic, 1, 1.5},
	}
	for _, tt := range tests {
		h := &Harmonic{K: tt.k}
		got, ok := h.Level(tt.n, tt.units)
		if !ok {
			t.Errorf("K=%g n=%d: no level", tt.k, tt.n)
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("K=%g %v n=%d: got %g, want %g", tt.k, tt.units, tt.n, got, tt.want)
		}
	}

	if _, ok := h.Level(-1, wave.Dimensionless); ok {
		t.Error("expected no level for negative n")
	}
}

func TestHydrogen(t *testing.T) {
	h := NewHydrogen()
	if !math.IsInf(h.Evaluate(0), 1) {
		t.Error("expected +Inf at the origin")
	}
	if h.Evaluate(2) != -0.5 {
		t.Errorf("expected V(2) = -0.5, got %g", h.Evaluate(2))
	}

	e, ok := h.Level(0, wave.Atomic)
	if !ok || e != -0.5 {
		t.Errorf("expected 1s level -0.5, got %g (%v)", e, ok)
	}
	if _, ok := h.Level(0, wave.Dimensionless); ok {
		t.Error("hydrogen levels are only defined in atomic units")
	}

	if err := h.SetParam("l", 1); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	e, _ = h.Level(0, wave.Atomic)
	if e != -0.125 {
		t.Errorf("expected 2p level -0.125, got %g", e)
	}
	if err := h.SetParam("l", 1.5); err == nil {
		t.Error("expected error for fractional l")
	}
}

func TestDoubleWell(t *testing.T) {
	d := NewDoubleWell()
	if d.Evaluate(1) != 0 || d.Evaluate(-1) != 0 {
		t.Error("expected minima at ±1")
	}
	if d.Evaluate(0) != d.Barrier() {
		t.Errorf("expected barrier %g at origin, got %g", d.Barrier(), d.Evaluate(0))
	}
}

func TestSquareWell(t *testing.T) {
	s := NewSquareWell()
	if s.Evaluate(0) != -10 || s.Evaluate(0.99) != -10 {
		t.Error("expected -depth inside the well")
	}
	if s.Evaluate(1) != 0 || s.Evaluate(-3) != 0 {
		t.Error("expected zero outside the well")
	}
}

func TestSampleMatchesEvaluate(t *testing.T) {
	xs := []float64{-2, -0.5, 0.25, 1, 3}
	for _, name := range NewRegistry().List() {
		p, err := NewRegistry().Get(name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s := p.(wave.Sampler).Sample(xs)
		for i, x := range xs {
			if s[i] != p.Evaluate(x) {
				t.Errorf("%s: Sample[%d] = %g, Evaluate = %g", name, i, s[i], p.Evaluate(x))
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get("harmonic", map[string]float64{"k": 0.5})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.Evaluate(2) != 2 {
		t.Errorf("expected V(2) = 2 with k=0.5, got %g", p.Evaluate(2))
	}

	if _, err := r.Get("morse", nil); err == nil {
		t.Error("expected error for unknown potential")
	}
	if _, err := r.Get("harmonic", map[string]float64{"omega": 1}); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	if len(r.List()) != 4 {
		t.Errorf("expected 4 potentials, got %v", r.List())
	}
	if r.Describe("doublewell") == "" {
		t.Error("expected description for doublewell")
	}
}
