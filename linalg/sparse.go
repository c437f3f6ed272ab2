package linalg

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CSR is a compressed sparse row matrix. It implements mat.Matrix so it can be handed to
// SparseLeastSquares or any gonum routine that accepts a general matrix.
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

var _ mat.Matrix = (*CSR)(nil)

// NewCSR returns a rows×cols CSR matrix from its raw arrays. indptr has rows+1 entries and the column
// indices of each row must be strictly increasing.
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("invalid sparse matrix shape %dx%d", rows, cols)
	}
	if len(indptr) != rows+1 || indptr[0] != 0 {
		return nil, errors.Errorf("sparse row pointer has %d entries, expected %d starting at 0", len(indptr), rows+1)
	}
	if len(indices) != len(data) || indptr[rows] != len(data) {
		return nil, errors.Errorf("sparse matrix has %d indices and %d values for %d non-zeros",
			len(indices), len(data), indptr[rows])
	}
	for i := 0; i < rows; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, errors.Errorf("sparse row pointer decreases at row %d", i)
		}
		for k := indptr[i]; k < indptr[i+1]; k++ {
			if indices[k] < 0 || indices[k] >= cols {
				return nil, errors.Errorf("sparse column index %d out of range at row %d", indices[k], i)
			}
			if k > indptr[i] && indices[k] <= indices[k-1] {
				return nil, errors.Errorf("sparse column indices not increasing at row %d", i)
			}
		}
	}
	return &CSR{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}, nil
}

// NewCSRFromDense compresses the non-zero entries of a.
func NewCSRFromDense(a mat.Matrix) *CSR {
	rows, cols := a.Dims()
	csr := &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := a.At(i, j); v != 0 {
				csr.indices = append(csr.indices, j)
				csr.data = append(csr.data, v)
			}
		}
		csr.indptr[i+1] = len(csr.data)
	}
	return csr
}

// Dims returns the shape of the matrix.
func (c *CSR) Dims() (r, cols int) {
	return c.rows, c.cols
}

// At returns the element at row i, column j.
func (c *CSR) At(i, j int) float64 {
	if i < 0 || i >= c.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= c.cols {
		panic(mat.ErrColAccess)
	}
	row := c.indices[c.indptr[i]:c.indptr[i+1]]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return c.data[c.indptr[i]+k]
	}
	return 0
}

// T returns the implicit transpose.
func (c *CSR) T() mat.Matrix {
	return mat.Transpose{Matrix: c}
}

// NNZ returns the number of stored entries.
func (c *CSR) NNZ() int {
	return len(c.data)
}

// MulVecTo computes dst = c x, or dst = cᵀ x when trans is set, touching only stored entries.
func (c *CSR) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	if !trans {
		if x.Len() != c.cols {
			panic(mat.ErrShape)
		}
		reuseVec(dst, c.rows)
		for i := 0; i < c.rows; i++ {
			var sum float64
			for k := c.indptr[i]; k < c.indptr[i+1]; k++ {
				sum += c.data[k] * x.AtVec(c.indices[k])
			}
			dst.SetVec(i, sum)
		}
		return
	}
	if x.Len() != c.rows {
		panic(mat.ErrShape)
	}
	reuseVec(dst, c.cols)
	dst.Zero()
	for i := 0; i < c.rows; i++ {
		xi := x.AtVec(i)
		if xi == 0 {
			continue
		}
		for k := c.indptr[i]; k < c.indptr[i+1]; k++ {
			dst.SetVec(c.indices[k], dst.AtVec(c.indices[k])+c.data[k]*xi)
		}
	}
}

// reuseVec sizes an empty dst to n. A non-empty dst must already have length n.
func reuseVec(dst *mat.VecDense, n int) {
	if dst.IsEmpty() {
		*dst = *mat.NewVecDense(n, nil)
		return
	}
	if dst.Len() != n {
		panic(mat.ErrShape)
	}
}
