package kalman

import (
	mat "github.com/mrfyo/matrix"
)

// BlockDiag places the given matrices along the diagonal of a new matrix.
func BlockDiag(mats ...Matrix) Matrix {
	rows := 0
	cols := 0
	for _, m := range mats {
		rows += m.Row
		cols += m.Col
	}

	out := mat.Zeros(Shape{Row: rows, Col: cols})
	r, c := 0, 0
	for _, m := range mats {
		for i := 0; i < m.Row; i++ {
			for j := 0; j < m.Col; j++ {
				out.Set(r+i, c+j, m.Get(i, j))
			}
		}
		r += m.Row
		c += m.Col
	}

	return out
}

// ScaleBlock returns a copy of m with the block [r0, r1) x [c0, c1)
// multiplied by factor.
func ScaleBlock(m Matrix, r0, r1, c0, c1 int, factor float64) Matrix {
	out := m.Copy()
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			out.Set(i, j, m.Get(i, j)*factor)
		}
	}
	return out
}

func Symmetrize(m Matrix) Matrix {
	out := mat.Zeros(m.Shape)
	for i := 0; i < m.Row; i++ {
		for j := 0; j < m.Col; j++ {
			out.Set(i, j, 0.5*(m.Get(i, j)+m.Get(j, i)))
		}
	}
	return out
}

func ColVector(v []float64) Matrix {
	out := mat.Zeros(Shape{Row: len(v), Col: 1})
	for i, x := range v {
		out.Set(i, 0, x)
	}
	return out
}

func Values(m Matrix) []float64 {
	out := make([]float64, m.Row)
	for i := range out {
		out[i] = m.Get(i, 0)
	}
	return out
}
