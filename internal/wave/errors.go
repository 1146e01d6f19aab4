package wave

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and propagation.
var (
	// ErrInvalidDomain indicates malformed grid parameters.
	ErrInvalidDomain = errors.New("wave: invalid grid domain")

	// ErrSingularRecurrence indicates a vanishing recurrence coefficient.
	ErrSingularRecurrence = errors.New("wave: singular recurrence coefficient")

	// ErrNonFinite indicates the propagated wavefunction overflowed to NaN or Inf.
	ErrNonFinite = errors.New("wave: non-finite wavefunction value")

	// ErrZeroNorm indicates a wavefunction that cannot be normalised.
	ErrZeroNorm = errors.New("wave: wavefunction has zero norm")

	// ErrLengthMismatch indicates a wavefunction not aligned with its grid.
	ErrLengthMismatch = errors.New("wave: wavefunction length does not match grid")
)

// RecurrenceError wraps a propagation failure with the step that caused it.
type RecurrenceError struct {
	Index   int
	X       float64
	Energy  float64
	Wrapped error
}

func (e *RecurrenceError) Error() string {
	return fmt.Sprintf("%s at index %d (x=%.6g, E=%.6g)", e.Wrapped.Error(), e.Index, e.X, e.Energy)
}

func (e *RecurrenceError) Unwrap() error {
	return e.Wrapped
}
