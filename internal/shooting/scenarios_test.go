package shooting_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/schrodinger/internal/integrators"
	"github.com/san-kum/schrodinger/internal/potential"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

func signChanges(psi wave.Wavefunction) int {
	n := 0
	for i := 1; i < len(psi); i++ {
		if psi[i-1]*psi[i] < 0 {
			n++
		}
	}
	return n
}

var _ = Describe("Eigenvalue shooting", func() {
	var grid *wave.Grid

	BeforeEach(func() {
		var err error
		grid, err = wave.NewGrid(-5, 5, 501)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("harmonic oscillator in atomic units", func() {
		var s *shooting.Shooter

		BeforeEach(func() {
			prop := integrators.NewNumerov(grid, &potential.Harmonic{K: 0.5}, wave.Atomic)
			s = shooting.New(prop, shooting.WithWorkers(4))
		})

		It("finds the ground state at 1/2", func() {
			state, err := s.SolveState(0, 0, 2, 1e-6)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Energy).To(BeNumerically("~", 0.5, 1e-4))
			Expect(state.Nodes).To(Equal(0))
			Expect(signChanges(state.Psi)).To(Equal(0))
		})

		It("finds the first excited state at 3/2", func() {
			state, err := s.SolveState(1, 1, 3, 1e-6)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Energy).To(BeNumerically("~", 1.5, 1e-4))
			Expect(state.Nodes).To(Equal(1))
			Expect(signChanges(state.Psi)).To(Equal(1))
		})

		It("returns unit-norm wavefunctions", func() {
			state, err := s.SolveState(0, 0, 2, 1e-6)
			Expect(err).NotTo(HaveOccurred())
			norm := wave.Norm(state.Psi, grid)
			Expect(norm * norm).To(BeNumerically("~", 1, 1e-6))
		})
	})

	Context("harmonic oscillator in dimensionless units", func() {
		var s *shooting.Shooter

		BeforeEach(func() {
			prop := integrators.NewNumerov(grid, potential.NewHarmonic(), wave.Dimensionless)
			s = shooting.New(prop)
		})

		DescribeTable("odd-integer ladder",
			func(n int) {
				exact := float64(2*n + 1)
				state, err := s.SolveState(n, exact-1, exact+1, 1e-6)
				Expect(err).NotTo(HaveOccurred())
				Expect(state.Energy).To(BeNumerically("~", exact, 1e-4))
				Expect(state.Nodes).To(Equal(n))
			},
			Entry("ground", 0),
			Entry("first", 1),
			Entry("second", 2),
			Entry("third", 3),
		)

		It("agrees with the closed-form levels", func() {
			h := potential.NewHarmonic()
			for n := 0; n < 4; n++ {
				exact, ok := h.Level(n, wave.Dimensionless)
				Expect(ok).To(BeTrue())
				e, err := s.Eigenvalue(n, exact-1, exact+1, 1e-6)
				Expect(err).NotTo(HaveOccurred())
				Expect(e).To(BeNumerically("~", exact, 1e-4))
			}
		})

		It("reports a missing bracket when the window is below the state", func() {
			_, err := s.BracketEigenvalue(5, 0, 1, 1000, 1e-6)
			Expect(err).To(MatchError(shooting.ErrBracketNotFound))
		})
	})

	Context("hydrogen radial problem", func() {
		var radial *wave.Grid

		BeforeEach(func() {
			var err error
			radial, err = wave.NewGrid(1e-6, 40, 4001)
			Expect(err).NotTo(HaveOccurred())
		})

		solve := func(l, n int, eMin, eMax float64) wave.Eigenstate {
			prop := integrators.NewNumerov(radial, &potential.Hydrogen{Z: 1, L: l}, wave.Atomic)
			state, err := shooting.New(prop, shooting.WithWorkers(4)).SolveState(n, eMin, eMax, 1e-6)
			Expect(err).NotTo(HaveOccurred())
			return state
		}

		It("finds 1s at -1/2", func() {
			state := solve(0, 0, -0.7, -0.3)
			Expect(state.Energy).To(BeNumerically("~", -0.5, 1e-3))
			Expect(state.Nodes).To(Equal(0))
		})

		It("finds 2s at -1/8", func() {
			state := solve(0, 1, -0.2, -0.1)
			Expect(state.Energy).To(BeNumerically("~", -0.125, 1e-3))
			Expect(state.Nodes).To(Equal(1))
		})

		It("finds 2p at -1/8", func() {
			state := solve(1, 0, -0.2, -0.1)
			Expect(state.Energy).To(BeNumerically("~", -0.125, 1e-3))
			Expect(state.Nodes).To(Equal(0))
		})

		It("keeps the l-degeneracy of the n=2 shell", func() {
			s2 := solve(0, 1, -0.2, -0.1)
			p2 := solve(1, 0, -0.2, -0.1)
			Expect(math.Abs(s2.Energy - p2.Energy)).To(BeNumerically("<", 1e-3))
		})
	})
})
