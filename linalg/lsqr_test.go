package linalg

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestCSR(t *testing.T) {
	_, err := NewCSR(2, 3, []int{0, 1}, []int{0}, []float64{1})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCSR(2, 3, []int{0, 2, 2}, []int{1, 0}, []float64{1, 2})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCSR(1, 3, []int{0, 1}, []int{3}, []float64{1})
	test.That(t, err, test.ShouldNotBeNil)

	c, err := NewCSR(2, 3, []int{0, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	r, cols := c.Dims()
	test.That(t, r, test.ShouldEqual, 2)
	test.That(t, cols, test.ShouldEqual, 3)
	test.That(t, c.NNZ(), test.ShouldEqual, 3)
	test.That(t, c.At(0, 2), test.ShouldEqual, 2.0)
	test.That(t, c.At(0, 1), test.ShouldEqual, 0.0)
	test.That(t, c.At(1, 1), test.ShouldEqual, 3.0)
	test.That(t, c.T().At(2, 0), test.ShouldEqual, 2.0)
	test.That(t, func() { c.At(2, 0) }, test.ShouldPanic)

	test.That(t, mat.Equal(NewCSRFromDense(mat.DenseCopyOf(c)), c), test.ShouldBeTrue)

	x := mat.NewVecDense(3, []float64{1, 1, 1})
	dst := mat.NewVecDense(2, nil)
	c.MulVecTo(dst, false, x)
	test.That(t, dst.RawVector().Data, test.ShouldResemble, []float64{3, 3})

	y := mat.NewVecDense(2, []float64{1, 2})
	dstT := mat.NewVecDense(3, nil)
	c.MulVecTo(dstT, true, y)
	test.That(t, dstT.RawVector().Data, test.ShouldResemble, []float64{1, 6, 2})
}

func TestCSRMulVecToSizesEmptyDestination(t *testing.T) {
	c, err := NewCSR(2, 3, []int{0, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3})
	test.That(t, err, test.ShouldBeNil)

	var dst mat.VecDense
	c.MulVecTo(&dst, false, mat.NewVecDense(3, []float64{1, 1, 1}))
	test.That(t, dst.Len(), test.ShouldEqual, 2)
	test.That(t, dst.RawVector().Data, test.ShouldResemble, []float64{3, 3})

	var dstT mat.VecDense
	c.MulVecTo(&dstT, true, mat.NewVecDense(2, []float64{1, 2}))
	test.That(t, dstT.Len(), test.ShouldEqual, 3)
	test.That(t, dstT.RawVector().Data, test.ShouldResemble, []float64{1, 6, 2})

	// a reused destination is overwritten, not accumulated into
	c.MulVecTo(&dstT, true, mat.NewVecDense(2, []float64{1, 2}))
	test.That(t, dstT.RawVector().Data, test.ShouldResemble, []float64{1, 6, 2})

	wrong := mat.NewVecDense(3, nil)
	test.That(t, func() { c.MulVecTo(wrong, false, mat.NewVecDense(3, nil)) }, test.ShouldPanic)
	test.That(t, func() { c.MulVecTo(mat.NewVecDense(2, nil), false, mat.NewVecDense(2, nil)) }, test.ShouldPanic)
}

func TestLSQROverdetermined(t *testing.T) {
	// fit y = m t + c through points that are not collinear
	a := mat.NewDense(4, 2, []float64{
		0, 1,
		1, 1,
		2, 1,
		3, 1,
	})
	b := mat.NewVecDense(4, []float64{1, 3, 4, 7})

	var want mat.VecDense
	test.That(t, want.SolveVec(a, b), test.ShouldBeNil)

	x := mat.NewVecDense(2, nil)
	report, err := NewLSQR().SolveLeastSquares(NewCSRFromDense(a), b, x)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Status, test.ShouldEqual, StatusOK)
	test.That(t, report.Iterations, test.ShouldBeGreaterThan, 0)
	test.That(t, report.Residual, test.ShouldBeGreaterThan, 0)
	test.That(t, x.AtVec(0), test.ShouldAlmostEqual, want.AtVec(0), 1e-8)
	test.That(t, x.AtVec(1), test.ShouldAlmostEqual, want.AtVec(1), 1e-8)

	zero := mat.NewVecDense(2, nil)
	report, err = NewLSQR().SolveLeastSquares(a, mat.NewVecDense(4, nil), zero)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Status, test.ShouldEqual, StatusOK)
	test.That(t, zero.RawVector().Data, test.ShouldResemble, []float64{0, 0})

	_, err = NewLSQR().SolveLeastSquares(a, mat.NewVecDense(3, nil), zero)
	test.That(t, err, test.ShouldNotBeNil)
}
