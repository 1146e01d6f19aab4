// Package shooting locates bound-state energies by the shooting method.
//
// A [Shooter] wraps one [wave.Propagator]. For a requested node count it
// scans trial energies, classifies each propagated wavefunction with
// [CountNodes], brackets the first energy where the count leaves the
// target, and refines the boundary value ψ(xR) to zero by bisection:
//
//	s := shooting.New(integrators.NewNumerov(g, potential.NewHarmonic(), wave.Dimensionless))
//	state, err := s.SolveState(1, 2, 4, 1e-6) // E ≈ 3, one node
//	if errors.Is(err, shooting.ErrBracketNotFound) {
//	    // widen or shift the energy window
//	}
//
// # Node counting
//
// Both node counting and the scan start at grid index 0. Values with
// |ψ| <= tol are treated as zero and never count as a sign change, so
// floating-point jitter near a true zero does not add spurious nodes.
//
// # Concurrency
//
// A Shooter holds no per-call state. [WithWorkers] fans the energy scan out
// over goroutines; results are folded in increasing energy order, so the
// first qualifying transition is the same for any worker count.
package shooting
