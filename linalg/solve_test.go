package linalg

import (
	"errors"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/kinemodel/logging"
)

func testSystem() (*mat.Dense, []float64) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	return a, []float64{1, -2, 3}
}

func TestSolveSingleColumn(t *testing.T) {
	d := NewDispatcher(nil, nil, logging.NewTestLogger(t))
	a, want := testSystem()
	b := &mat.Dense{}
	b.Mul(a, mat.NewDense(3, 1, want))

	for _, fast := range []bool{true, false} {
		x, err := d.Solve(a, b, fast)
		test.That(t, err, test.ShouldBeNil)
		r, c := x.Dims()
		test.That(t, r, test.ShouldEqual, 3)
		test.That(t, c, test.ShouldEqual, 1)
		for i, v := range want {
			test.That(t, x.At(i, 0), test.ShouldAlmostEqual, v)
		}
	}
}

func TestSolveMultiColumn(t *testing.T) {
	d := NewDispatcher(nil, nil, logging.NewTestLogger(t))
	a, _ := testSystem()
	want := mat.NewDense(3, 2, []float64{
		1, 0,
		2, -1,
		3, 5,
	})
	b := &mat.Dense{}
	b.Mul(a, want)

	for _, fast := range []bool{true, false} {
		x, err := d.Solve(a, b, fast)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mat.EqualApprox(x, want, 1e-9), test.ShouldBeTrue)
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	d := NewDispatcher(nil, nil, logging.NewTestLogger(t))
	a, _ := testSystem()

	_, err := d.Solve(a, mat.NewDense(4, 1, nil), false)
	var dimErr *DimensionMismatchError
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
	test.That(t, dimErr.ARows, test.ShouldEqual, 3)
	test.That(t, dimErr.BRows, test.ShouldEqual, 4)
	test.That(t, errors.Is(err, ErrNumerical), test.ShouldBeTrue)

	_, err = d.Solve(mat.NewDense(3, 2, nil), mat.NewDense(3, 1, nil), true)
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
}

func TestSolveSingular(t *testing.T) {
	d := NewDispatcher(nil, nil, logging.NewTestLogger(t))
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	b := mat.NewDense(2, 1, []float64{1, 1})

	for _, fast := range []bool{true, false} {
		_, err := d.Solve(a, b, fast)
		var solverErr *SolverError
		test.That(t, errors.As(err, &solverErr), test.ShouldBeTrue)
		test.That(t, solverErr.Status, test.ShouldEqual, StatusSingular)
	}
}

type recordingSolver struct {
	vecCalls, matCalls int
	status             Status
}

func (s *recordingSolver) SolveVec(a mat.Matrix, b mat.Vector, fast bool) (*mat.VecDense, Report, error) {
	s.vecCalls++
	return mat.VecDenseCopyOf(b), Report{Status: s.status}, nil
}

func (s *recordingSolver) Solve(a, b mat.Matrix, fast bool) (*mat.Dense, Report, error) {
	s.matCalls++
	return mat.DenseCopyOf(b), Report{Status: s.status}, nil
}

func TestSolveDispatch(t *testing.T) {
	solver := &recordingSolver{}
	d := NewDispatcher(solver, nil, logging.NewTestLogger(t))
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	x, err := d.Solve(a, mat.NewDense(2, 1, []float64{7, 8}), true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x.At(1, 0), test.ShouldEqual, 8.0)
	test.That(t, solver.vecCalls, test.ShouldEqual, 1)
	test.That(t, solver.matCalls, test.ShouldEqual, 0)

	_, err = d.Solve(a, mat.NewDense(2, 3, nil), true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, solver.matCalls, test.ShouldEqual, 1)

	solver.status = StatusIllConditioned
	_, err = d.Solve(a, mat.NewDense(2, 1, nil), false)
	var solverErr *SolverError
	test.That(t, errors.As(err, &solverErr), test.ShouldBeTrue)
	test.That(t, solverErr.Status, test.ShouldEqual, StatusIllConditioned)
}

func TestSparseLeastSquares(t *testing.T) {
	d := NewDispatcher(nil, nil, logging.NewTestLogger(t))
	dense := mat.NewDense(5, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
		1, 1, 0,
		0, 1, 1,
	})
	a := NewCSRFromDense(dense)
	want := mat.NewDense(3, 2, []float64{
		1, -1,
		2, 0.5,
		-3, 4,
	})
	b := &mat.Dense{}
	b.Mul(dense, want)

	x, err := d.SparseLeastSquares(a, b, nil)
	test.That(t, err, test.ShouldBeNil)
	r, c := x.Dims()
	test.That(t, r, test.ShouldEqual, 3)
	test.That(t, c, test.ShouldEqual, 2)
	test.That(t, mat.EqualApprox(x, want, 1e-6), test.ShouldBeTrue)

	dst := mat.NewDense(3, 2, nil)
	out, err := d.SparseLeastSquares(a, b, dst)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, dst)

	_, err = d.SparseLeastSquares(a, mat.NewDense(4, 1, nil), nil)
	var dimErr *DimensionMismatchError
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
	_, err = d.SparseLeastSquares(a, b, mat.NewDense(2, 2, nil))
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
}
