package kalman

import (
	"fmt"

	mat "github.com/mrfyo/matrix"
	gmat "gonum.org/v1/gonum/mat"
)

func ToDense(m Matrix) *gmat.Dense {
	d := gmat.NewDense(m.Row, m.Col, nil)
	for i := 0; i < m.Row; i++ {
		for j := 0; j < m.Col; j++ {
			d.Set(i, j, m.Get(i, j))
		}
	}
	return d
}

func FromDense(d gmat.Matrix) Matrix {
	r, c := d.Dims()
	m := mat.Zeros(Shape{Row: r, Col: c})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, d.At(i, j))
		}
	}
	return m
}

// ToSymDense copies the symmetric part of a square m into a SymDense.
// It panics if m is not square.
func ToSymDense(m Matrix) *gmat.SymDense {
	if m.Row != m.Col {
		panic(fmt.Errorf("%w: %dx%d is not square", ErrShape, m.Row, m.Col))
	}
	s := gmat.NewSymDense(m.Row, nil)
	for i := 0; i < m.Row; i++ {
		for j := i; j < m.Col; j++ {
			s.SetSym(i, j, 0.5*(m.Get(i, j)+m.Get(j, i)))
		}
	}
	return s
}

// InvSPD inverts a symmetric positive definite matrix through its Cholesky
// factorization. Matrices that do not factorize, or whose inverse would be
// numerically meaningless, yield ErrSingularInnovation.
func InvSPD(S Matrix) (Matrix, error) {
	if S.Row != S.Col {
		return S, fmt.Errorf("%w: %dx%d is not square", ErrShape, S.Row, S.Col)
	}

	var chol gmat.Cholesky
	if ok := chol.Factorize(ToSymDense(S)); !ok {
		return S, ErrSingularInnovation
	}

	var inv gmat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return S, fmt.Errorf("%w: %v", ErrSingularInnovation, err)
	}

	return FromDense(&inv), nil
}
