// Package wave provides the core primitives for one-dimensional bound-state
// problems solved by wavefunction propagation.
//
// The package defines the data model shared by the propagators and the
// eigenvalue shooter:
//
//   - [Grid]: immutable uniform spatial grid over [xL, xR]
//   - [Potential]: real potential V(x), optionally vectorised via [Sampler]
//   - [Wavefunction]: values of a trial solution at every grid point
//   - [Propagator]: builds a [Wavefunction] for a trial energy
//   - [Bracket], [Eigenstate]: search interval and refined result
//
// # Units
//
// Propagators integrate ψ'' = -k·(E - V)·ψ. [Dimensionless] (k = 1) is the
// reduced form where V = x² has levels 2n+1; [Atomic] (k = 2) is ħ = m = 1,
// where V = x²/2 has levels n + 1/2.
//
// # Example
//
//	g, _ := wave.NewGrid(-5, 5, 501)
//	prop := integrators.NewNumerov(g, potential.NewHarmonic(), wave.Dimensionless)
//	psi, _ := prop.Propagate(1.0)
//	psi, _ = wave.Normalize(psi, g)
package wave
