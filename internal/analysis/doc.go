// Package analysis provides diagnostics for solved eigenstates and energy scans.
//
// The package includes:
//
//   - [Position], [PositionSquared], [Spread]: moments of |ψ|² on the grid
//   - [Overlap], [OrthogonalityMatrix]: inner products between states
//   - [MomentumDensity]: |φ(p)|² via a radix-2 FFT of ψ
//   - [Plateaus], [SuggestBrackets]: Sturm staircase of a node-count scan
//   - [LevelSweep]: energies as a potential parameter varies
//
// # Sturm Staircase
//
// The node count of the trial wavefunction is non-decreasing in energy, and
// each step of the staircase brackets one eigenvalue:
//
//	points, _ := shooter.Scan(0, 10, 500, 1e-6)
//	for _, b := range analysis.SuggestBrackets(points) {
//	    fmt.Println(b.Nodes, b.Bracket)
//	}
package analysis
