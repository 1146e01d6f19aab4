// Package potential provides the built-in potentials for the shooter.
//
// Each potential implements [wave.Potential] and the vectorised
// [wave.Sampler]:
//
//   - [Harmonic]: V = K·x²
//   - [Hydrogen]: radial Coulomb potential with centrifugal term
//   - [DoubleWell]: bistable quartic well
//   - [SquareWell]: finite square well
//
// All of them implement [Configurable] for parameter lookup by name, and
// those with closed-form spectra implement [Exact]:
//
//	v := potential.NewHarmonic()
//	if ex, ok := v.(potential.Exact); ok {
//	    e0, _ := ex.Level(0, wave.Dimensionless) // 1
//	}
package potential
