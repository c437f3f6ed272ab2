package linalg

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNumerical is the root of every error returned by this package. Numerical failures are kept apart
// from model construction errors since they come from an independent collaborator and may be retried.
var ErrNumerical = errors.New("numerical solve failed")

// DimensionMismatchError is returned when the coefficient and right-hand side shapes cannot be solved
// together.
type DimensionMismatchError struct {
	Op           string
	ARows, ACols int
	BRows, BCols int
}

// NewDimensionMismatchError is used when a solve is given incompatible shapes.
func NewDimensionMismatchError(op string, ar, ac, br, bc int) error {
	return &DimensionMismatchError{Op: op, ARows: ar, ACols: ac, BRows: br, BCols: bc}
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: cannot solve %dx%d coefficients against %dx%d right-hand side",
		e.Op, e.ARows, e.ACols, e.BRows, e.BCols)
}

// Unwrap returns ErrNumerical.
func (e *DimensionMismatchError) Unwrap() error {
	return ErrNumerical
}

// SolverError is returned when the solver collaborator reports a status other than StatusOK.
type SolverError struct {
	Status Status
	Report Report
}

// NewSolverError is used when a solver returns a failing status.
func NewSolverError(report Report) error {
	return &SolverError{Status: report.Status, Report: report}
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver failed with status %s (cond=%g, iterations=%d, residual=%g)",
		e.Status, e.Report.Cond, e.Report.Iterations, e.Report.Residual)
}

// Unwrap returns ErrNumerical.
func (e *SolverError) Unwrap() error {
	return ErrNumerical
}
