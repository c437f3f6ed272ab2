package linalg

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/kinemodel/logging"
)

// Dispatcher routes solves to its collaborators by the shape of the right-hand side. It holds no
// state between calls and may be shared across goroutines as long as its solvers can.
type Dispatcher struct {
	solver Solver
	lsq    LeastSquaresSolver
	logger logging.Logger
}

// NewDispatcher returns a Dispatcher. Nil solvers are replaced by GonumSolver and a default LSQR.
func NewDispatcher(solver Solver, lsq LeastSquaresSolver, logger logging.Logger) *Dispatcher {
	if solver == nil {
		solver = GonumSolver{}
	}
	if lsq == nil {
		lsq = NewLSQR()
	}
	return &Dispatcher{solver: solver, lsq: lsq, logger: logger.Sublogger("linalg")}
}

// Solve solves a X = b for a square a. A single column b is solved as a vector and returned as an
// n×1 matrix; wider b is solved in one batched call. fast lets the solver skip diagnostics.
func (d *Dispatcher) Solve(a, b mat.Matrix, fast bool) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != ac || ar != br || bc == 0 {
		return nil, NewDimensionMismatchError("solve", ar, ac, br, bc)
	}

	if bc == 1 {
		x, report, err := d.solver.SolveVec(a, mat.NewVecDense(br, mat.Col(nil, 0, b)), fast)
		if err != nil {
			return nil, err
		}
		if err := d.check(report, fast); err != nil {
			return nil, err
		}
		return mat.NewDense(ac, 1, mat.Col(nil, 0, x)), nil
	}

	x, report, err := d.solver.Solve(a, b, fast)
	if err != nil {
		return nil, err
	}
	if err := d.check(report, fast); err != nil {
		return nil, err
	}
	return x, nil
}

func (d *Dispatcher) check(report Report, fast bool) error {
	if !fast {
		d.logger.Debugw("solve", "status", report.Status.String(), "cond", report.Cond, "residual", report.Residual)
	}
	if report.Status != StatusOK {
		return NewSolverError(report)
	}
	return nil
}

// SparseLeastSquares solves min |a x - b| column by column for an m×n a, typically a CSR, and an m×k
// b. The result is n×k. When dst is non-nil and already n×k, it is written into and returned.
func (d *Dispatcher) SparseLeastSquares(a, b mat.Matrix, dst *mat.Dense) (*mat.Dense, error) {
	m, n := a.Dims()
	br, k := b.Dims()
	if m != br || k == 0 {
		return nil, NewDimensionMismatchError("sparse least squares", m, n, br, k)
	}
	if dst == nil {
		dst = mat.NewDense(n, k, nil)
	} else if r, c := dst.Dims(); r != n || c != k {
		return nil, NewDimensionMismatchError("sparse least squares", n, k, r, c)
	}

	col := mat.NewVecDense(m, nil)
	x := mat.NewVecDense(n, nil)
	for j := 0; j < k; j++ {
		mat.Col(col.RawVector().Data, j, b)
		x.Zero()
		report, err := d.lsq.SolveLeastSquares(a, col, x)
		if err != nil {
			return nil, err
		}
		d.logger.Debugw("least squares column", "column", j, "iterations", report.Iterations, "residual", report.Residual)
		if report.Status != StatusOK {
			return nil, NewSolverError(report)
		}
		dst.SetCol(j, x.RawVector().Data)
	}
	return dst, nil
}
