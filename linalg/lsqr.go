package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultLSQRTolerance is the relative tolerance used by NewLSQR.
const DefaultLSQRTolerance = 1e-10

// LSQR is the Paige-Saunders iterative least-squares solver. It only touches a through products
// with a and its transpose, so it suits sparse coefficients.
type LSQR struct {
	// MaxIter bounds the number of iterations. Zero means four times the number of unknowns.
	MaxIter int
	// Tol is the relative tolerance on both the residual and the normal equations residual.
	Tol float64
}

// NewLSQR returns an LSQR with the default tolerance.
func NewLSQR() *LSQR {
	return &LSQR{Tol: DefaultLSQRTolerance}
}

// vecMultiplier is implemented by matrices with a faster product than the generic one, such as CSR.
type vecMultiplier interface {
	MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector)
}

func mulVec(dst *mat.VecDense, a mat.Matrix, trans bool, x mat.Vector) {
	if m, ok := a.(vecMultiplier); ok {
		m.MulVecTo(dst, trans, x)
		return
	}
	if trans {
		dst.MulVec(a.T(), x)
		return
	}
	dst.MulVec(a, x)
}

// SolveLeastSquares implements LeastSquaresSolver. dst holds the starting guess on entry.
func (s *LSQR) SolveLeastSquares(a mat.Matrix, b mat.Vector, dst *mat.VecDense) (Report, error) {
	m, n := a.Dims()
	if b.Len() != m || dst.Len() != n {
		return Report{}, NewDimensionMismatchError("lsqr", m, n, b.Len(), 1)
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 4 * n
	}
	tol := s.Tol
	if tol <= 0 {
		tol = DefaultLSQRTolerance
	}

	// u = b - a x0
	u := mat.NewVecDense(m, nil)
	mulVec(u, a, false, dst)
	u.SubVec(b, u)
	bnorm := mat.Norm(b, 2)
	beta := mat.Norm(u, 2)
	if beta == 0 {
		return Report{Status: StatusOK}, nil
	}
	u.ScaleVec(1/beta, u)

	v := mat.NewVecDense(n, nil)
	mulVec(v, a, true, u)
	alpha := mat.Norm(v, 2)
	if alpha == 0 {
		return Report{Status: StatusOK, Residual: beta}, nil
	}
	v.ScaleVec(1/alpha, v)

	w := mat.VecDenseCopyOf(v)
	tmpM := mat.NewVecDense(m, nil)
	tmpN := mat.NewVecDense(n, nil)

	phibar, rhobar := beta, alpha
	anorm := 0.0
	report := Report{Status: StatusNotConverged}
	for itn := 1; itn <= maxIter; itn++ {
		report.Iterations = itn

		mulVec(tmpM, a, false, v)
		u.AddScaledVec(tmpM, -alpha, u)
		beta = mat.Norm(u, 2)
		if beta > 0 {
			u.ScaleVec(1/beta, u)
		}
		anorm = math.Sqrt(anorm*anorm + alpha*alpha + beta*beta)

		mulVec(tmpN, a, true, u)
		v.AddScaledVec(tmpN, -beta, v)
		alpha = mat.Norm(v, 2)
		if alpha > 0 {
			v.ScaleVec(1/alpha, v)
		}

		rho := math.Hypot(rhobar, beta)
		c := rhobar / rho
		sn := beta / rho
		theta := sn * alpha
		rhobar = -c * alpha
		phi := c * phibar
		phibar = sn * phibar

		dst.AddScaledVec(dst, phi/rho, w)
		w.AddScaledVec(v, -theta/rho, w)

		rnorm := phibar
		arnorm := phibar * alpha * math.Abs(c)
		if rnorm <= tol*bnorm || arnorm <= tol*anorm*rnorm || alpha == 0 {
			report.Status = StatusOK
			break
		}
	}

	mulVec(tmpM, a, false, dst)
	tmpM.SubVec(tmpM, b)
	report.Residual = mat.Norm(tmpM, 2)
	return report, nil
}
