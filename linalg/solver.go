// Package linalg dispatches linear solves to a solver collaborator by right-hand side shape, and
// provides the dense and sparse least-squares solvers used by default.
package linalg

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Status is the outcome code of a solve.
type Status int

// The statuses a solver may report.
const (
	StatusOK Status = iota
	StatusSingular
	StatusIllConditioned
	StatusNotConverged
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSingular:
		return "singular"
	case StatusIllConditioned:
		return "ill-conditioned"
	case StatusNotConverged:
		return "not converged"
	}
	return "unknown"
}

// Report holds solve diagnostics. Fast solves only fill in Status.
type Report struct {
	Status     Status
	Cond       float64
	Iterations int
	Residual   float64
}

// Solver solves square dense systems. In fast mode it may skip diagnostics.
type Solver interface {
	// SolveVec solves a x = b for a single right-hand side.
	SolveVec(a mat.Matrix, b mat.Vector, fast bool) (*mat.VecDense, Report, error)
	// Solve solves a X = B for every column of B.
	Solve(a, b mat.Matrix, fast bool) (*mat.Dense, Report, error)
}

// LeastSquaresSolver minimises |a x - b| for a single right-hand side, writing x into dst, which has
// one entry per column of a.
type LeastSquaresSolver interface {
	SolveLeastSquares(a mat.Matrix, b mat.Vector, dst *mat.VecDense) (Report, error)
}

// GonumSolver is the default Solver, built on gonum's LU decomposition.
type GonumSolver struct{}

// SolveVec solves with a one shot LU when fast, or with an explicit factorization that also reports
// the condition number otherwise.
func (GonumSolver) SolveVec(a mat.Matrix, b mat.Vector, fast bool) (*mat.VecDense, Report, error) {
	x := &mat.VecDense{}
	if fast {
		err := x.SolveVec(a, b)
		report, err := statusFromErr(err)
		return x, report, err
	}
	var lu mat.LU
	lu.Factorize(a)
	report := Report{Cond: lu.Cond()}
	status, err := statusFromErr(lu.SolveVecTo(x, false, b))
	report.Status = status.Status
	if err != nil || report.Status == StatusSingular {
		return nil, report, err
	}
	report.Residual = residual(a, x, b)
	return x, report, nil
}

// Solve is SolveVec for several right-hand sides at once.
func (GonumSolver) Solve(a, b mat.Matrix, fast bool) (*mat.Dense, Report, error) {
	x := &mat.Dense{}
	if fast {
		err := x.Solve(a, b)
		report, err := statusFromErr(err)
		return x, report, err
	}
	var lu mat.LU
	lu.Factorize(a)
	report := Report{Cond: lu.Cond()}
	status, err := statusFromErr(lu.SolveTo(x, false, b))
	report.Status = status.Status
	if err != nil || report.Status == StatusSingular {
		return nil, report, err
	}
	_, k := b.Dims()
	for j := 0; j < k; j++ {
		col := mat.NewVecDense(x.RawMatrix().Rows, mat.Col(nil, j, b))
		report.Residual = math.Max(report.Residual, residual(a, x.ColView(j), col))
	}
	return x, report, nil
}

// statusFromErr turns gonum's solve errors into statuses. An ill-conditioned matrix still produces
// a result, so it is reported through the status only.
func statusFromErr(err error) (Report, error) {
	if err == nil {
		return Report{Status: StatusOK}, nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) {
		if math.IsInf(float64(cond), 1) {
			return Report{Status: StatusSingular, Cond: float64(cond)}, nil
		}
		return Report{Status: StatusIllConditioned, Cond: float64(cond)}, nil
	}
	if errors.Is(err, mat.ErrSingular) {
		return Report{Status: StatusSingular}, nil
	}
	return Report{}, err
}

// residual returns |a x - b|.
func residual(a mat.Matrix, x, b mat.Vector) float64 {
	r := &mat.VecDense{}
	r.MulVec(a, x)
	r.SubVec(r, b)
	return mat.Norm(r, 2)
}
