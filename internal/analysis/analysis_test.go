package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/schrodinger/internal/integrators"
	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

func gaussian(g *wave.Grid) wave.Wavefunction {
	psi := make(wave.Wavefunction, g.Len())
	for i := range psi {
		x := g.At(i)
		psi[i] = math.Exp(-x * x / 2)
	}
	return psi
}

func harmonicStates(t *testing.T, n int) (*wave.Grid, []wave.Eigenstate) {
	t.Helper()
	g, _ := wave.NewGrid(-5, 5, 501)
	s := shooting.New(integrators.NewNumerov(g, potential.NewHarmonic(), wave.Dimensionless))
	var states []wave.Eigenstate
	for k := 0; k < n; k++ {
		st, err := s.SolveState(k, float64(2*k), float64(2*k+2), 1e-6)
		if err != nil {
			t.Fatalf("state %d: %v", k, err)
		}
		states = append(states, st)
	}
	return g, states
}

func TestMoments_Gaussian(t *testing.T) {
	g, _ := wave.NewGrid(-8, 8, 1601)
	psi := gaussian(g)

	mean, err := Position(psi, g)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mean) > 1e-12 {
		t.Errorf("<x> = %g, want 0", mean)
	}

	sq, _ := PositionSquared(psi, g)
	if math.Abs(sq-0.5) > 1e-6 {
		t.Errorf("<x²> = %g, want 0.5", sq)
	}

	dx, _ := Spread(psi, g)
	if math.Abs(dx-math.Sqrt(0.5)) > 1e-6 {
		t.Errorf("Δx = %g, want %g", dx, math.Sqrt(0.5))
	}
}

func TestMoments_Shifted(t *testing.T) {
	g, _ := wave.NewGrid(-6, 10, 1601)
	psi := make(wave.Wavefunction, g.Len())
	for i := range psi {
		x := g.At(i) - 2
		psi[i] = 3 * math.Exp(-x*x/2)
	}

	mean, _ := Position(psi, g)
	if math.Abs(mean-2) > 1e-6 {
		t.Errorf("<x> = %g, want 2", mean)
	}
	dx, _ := Spread(psi, g)
	if math.Abs(dx-math.Sqrt(0.5)) > 1e-6 {
		t.Errorf("Δx = %g", dx)
	}
}

func TestMoments_Errors(t *testing.T) {
	g, _ := wave.NewGrid(0, 1, 11)

	if _, err := Position(make(wave.Wavefunction, 11), g); !errors.Is(err, wave.ErrZeroNorm) {
		t.Errorf("expected ErrZeroNorm, got %v", err)
	}
	if _, err := Position(make(wave.Wavefunction, 5), g); !errors.Is(err, wave.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Overlap(make(wave.Wavefunction, 11), make(wave.Wavefunction, 3), g); !errors.Is(err, wave.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestOverlap_Sines(t *testing.T) {
	g, _ := wave.NewGrid(0, 1, 201)
	sine := func(k float64) wave.Wavefunction {
		psi := make(wave.Wavefunction, g.Len())
		for i := range psi {
			psi[i] = math.Sin(k * math.Pi * g.At(i))
		}
		return psi
	}

	same, _ := Overlap(sine(1), sine(1), g)
	if math.Abs(same-0.5) > 1e-9 {
		t.Errorf("<s1|s1> = %g, want 0.5", same)
	}
	cross, _ := Overlap(sine(1), sine(2), g)
	if math.Abs(cross) > 1e-9 {
		t.Errorf("<s1|s2> = %g, want 0", cross)
	}
}

func TestOrthogonalityMatrix_Harmonic(t *testing.T) {
	g, states := harmonicStates(t, 4)

	m, err := OrthogonalityMatrix(states, g)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m {
		if math.Abs(m[i][i]-1) > 1e-6 {
			t.Errorf("M[%d][%d] = %g, want 1", i, i, m[i][i])
		}
		for j := range m[i] {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at %d,%d", i, j)
			}
		}
	}
	if off := MaxOffDiagonal(m); off > 1e-3 {
		t.Errorf("states not orthogonal: max overlap %g", off)
	}

	sq0, _ := PositionSquared(states[0].Psi, g)
	sq1, _ := PositionSquared(states[1].Psi, g)
	if math.Abs(sq0-0.5) > 1e-2 || math.Abs(sq1-1.5) > 1e-2 {
		t.Errorf("<x²> = %g, %g, want 0.5, 1.5", sq0, sq1)
	}
}

func TestMomentumDensity(t *testing.T) {
	g, _ := wave.NewGrid(-10, 10, 1000)
	psi := gaussian(g)

	p, rho := MomentumDensity(psi, g)
	if len(p) != 512 || len(rho) != 512 {
		t.Fatalf("expected 512 bins, got %d", len(p))
	}
	if p[0] != 0 {
		t.Errorf("first momentum should be 0, got %g", p[0])
	}

	// |φ(p)|² for e^{-x²/2} is e^{-p²}/sqrt(π)
	for k := 0; k < 20; k++ {
		want := math.Exp(-p[k]*p[k]) / math.Sqrt(math.Pi)
		if math.Abs(rho[k]-want) > 1e-3 {
			t.Errorf("rho(%g) = %g, want %g", p[k], rho[k], want)
		}
	}
	for k := 1; k < 20; k++ {
		if rho[k] > rho[k-1] {
			t.Errorf("density not decreasing at p=%g", p[k])
		}
	}
}

func TestMomentumDensity_Zero(t *testing.T) {
	g, _ := wave.NewGrid(0, 1, 8)
	p, rho := MomentumDensity(make(wave.Wavefunction, 8), g)
	if len(p) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(p))
	}
	for _, v := range rho {
		if v != 0 {
			t.Errorf("expected zero density, got %g", v)
		}
	}
}

func scanOf(nodes []int) []shooting.ScanPoint {
	pts := make([]shooting.ScanPoint, len(nodes))
	for i, n := range nodes {
		pts[i] = shooting.ScanPoint{Energy: float64(i), Nodes: n}
	}
	return pts
}

func TestPlateaus(t *testing.T) {
	pts := scanOf([]int{0, 0, 0, 1, 1, 2, 3, 3})

	got := Plateaus(pts)
	want := []Plateau{
		{Nodes: 0, ELo: 0, EHi: 2, Count: 3},
		{Nodes: 1, ELo: 3, EHi: 4, Count: 2},
		{Nodes: 2, ELo: 5, EHi: 5, Count: 1},
		{Nodes: 3, ELo: 6, EHi: 7, Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d plateaus, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("plateau %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !IsMonotone(pts) {
		t.Error("expected monotone scan")
	}
	if IsMonotone(scanOf([]int{0, 1, 0})) {
		t.Error("expected non-monotone scan")
	}
	if Plateaus(nil) != nil {
		t.Error("expected no plateaus for empty scan")
	}
}

func TestSuggestBrackets(t *testing.T) {
	got := SuggestBrackets(scanOf([]int{0, 0, 1, 1, 3, 3}))
	want := []Suggestion{
		{Nodes: 0, Bracket: wave.Bracket{Lo: 1, Hi: 2}},
		{Nodes: 1, Bracket: wave.Bracket{Lo: 3, Hi: 4}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSuggestBrackets_MatchShooter(t *testing.T) {
	g, _ := wave.NewGrid(-5, 5, 501)
	s := shooting.New(integrators.NewNumerov(g, potential.NewHarmonic(), wave.Dimensionless), shooting.WithWorkers(4))

	pts, err := s.Scan(0, 8, 400, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	for _, sug := range SuggestBrackets(pts) {
		b, err := s.BracketEigenvalue(sug.Nodes, 0, 8, 400, 1e-6)
		if err != nil {
			t.Fatalf("nodes %d: %v", sug.Nodes, err)
		}
		if b != sug.Bracket {
			t.Errorf("nodes %d: suggested %v, shooter found %v", sug.Nodes, sug.Bracket, b)
		}
	}
}

func TestLevelSweep(t *testing.T) {
	g, _ := wave.NewGrid(-5, 5, 501)
	h := potential.NewHarmonic()

	solve := func() ([]wave.Eigenstate, error) {
		s := shooting.New(integrators.NewNumerov(g, h, wave.Dimensionless))
		exact, _ := h.Level(0, wave.Dimensionless)
		return s.Spectrum([]shooting.Query{{Nodes: 0, EMin: exact / 2, EMax: exact * 2}}, 1e-6)
	}

	pts, err := LevelSweep(h, "k", 0.5, 2, 4, solve)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	for _, pt := range pts {
		want := math.Sqrt(pt.Param)
		if math.Abs(pt.Energies[0]-want) > 1e-3 {
			t.Errorf("k=%g: E0 = %g, want %g", pt.Param, pt.Energies[0], want)
		}
	}
	if h.K != 1 {
		t.Errorf("parameter not restored: k = %g", h.K)
	}

	if _, err := LevelSweep(h, "omega", 0, 1, 2, solve); !errors.Is(err, potential.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
