package shooting

import (
	"errors"
	"fmt"

	"github.com/san-kum/schrodinger/internal/wave"
)

var (
	// ErrBracketNotFound indicates no node-count transition in the scan window.
	ErrBracketNotFound = errors.New("shooting: eigenvalue not bracketed by node count")

	// ErrRootNotBracketed indicates the boundary value does not change sign across a bracket.
	ErrRootNotBracketed = errors.New("shooting: boundary value does not change sign")

	// ErrNotConverged indicates bisection hit its iteration cap before reaching tol.
	ErrNotConverged = errors.New("shooting: bisection did not converge")

	// ErrInvalidSearch indicates malformed search arguments.
	ErrInvalidSearch = errors.New("shooting: invalid search parameters")
)

// BracketError reports a scan that never left the target node count.
// MinNodes and MaxNodes are the counts seen, to help pick a new window.
type BracketError struct {
	Target     int
	EMin, EMax float64
	Samples    int
	MinNodes   int
	MaxNodes   int
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%s: target %d nodes, scanned [%g, %g] with %d samples, saw %d..%d nodes",
		ErrBracketNotFound.Error(), e.Target, e.EMin, e.EMax, e.Samples, e.MinNodes, e.MaxNodes)
}

func (e *BracketError) Unwrap() error { return ErrBracketNotFound }

// RootError reports boundary values of the same sign at both bracket ends.
type RootError struct {
	Bracket wave.Bracket
	BLo     float64
	BHi     float64
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%s: b(%g) = %g, b(%g) = %g",
		ErrRootNotBracketed.Error(), e.Bracket.Lo, e.BLo, e.Bracket.Hi, e.BHi)
}

func (e *RootError) Unwrap() error { return ErrRootNotBracketed }
