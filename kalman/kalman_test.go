package kalman

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	mat "github.com/mrfyo/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matrixRows flattens m row by row so it can be compared with cmp.
func matrixRows(m Matrix) []float64 {
	out := make([]float64, 0, m.Row*m.Col)
	for i := 0; i < m.Row; i++ {
		for j := 0; j < m.Col; j++ {
			out = append(out, m.Get(i, j))
		}
	}
	return out
}

// newPositionVelocity builds a 1D constant velocity filter observing position.
func newPositionVelocity() *LinearKalmanFilter {
	F := mat.Zeros(Shape{Row: 2, Col: 2})
	F.Set(0, 0, 1)
	F.Set(0, 1, 1)
	F.Set(1, 1, 1)

	H := mat.Zeros(Shape{Row: 1, Col: 2})
	H.Set(0, 0, 1)

	return NewKalmanFilter(2, 1, F, H)
}

func TestNewKalmanFilterDefaults(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()

	assert.Equal(t, 2, kf.X.Row)
	assert.Equal(t, 1, kf.X.Col)
	assert.Equal(t, []float64{0, 0}, Values(kf.X))
	assert.Equal(t, []float64{1, 0, 0, 1}, matrixRows(kf.P))
	assert.Equal(t, []float64{1, 0, 0, 1}, matrixRows(kf.Q))
	assert.Equal(t, []float64{1}, matrixRows(kf.R))
}

func TestInit(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()
	P := mat.Eye(2).ScaleMul(5)
	Q := mat.Zeros(Shape{Row: 2, Col: 2})
	R := mat.Eye(1).ScaleMul(3)

	kf.Init(ColVector([]float64{1, 2}), P, Q, R)
	kf.Predict()

	assert.Equal(t, []float64{3, 2}, Values(kf.X))
	assert.Equal(t, []float64{10, 5, 5, 5}, matrixRows(kf.P))
	assert.Equal(t, []float64{13}, matrixRows(kf.InnovationCovariance()))
}

func TestPredictUpdate(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()
	approx := cmpopts.EquateApprox(0, 1e-12)

	kf.Predict()

	// P = F I F' + I
	if diff := cmp.Diff([]float64{3, 1, 1, 2}, matrixRows(kf.P), approx); diff != "" {
		t.Errorf("predicted P mismatch (-want +got):\n%s", diff)
	}

	X, err := kf.Update(ColVector([]float64{1}))
	require.NoError(t, err)

	// S = 4, K = [3/4, 1/4]
	if diff := cmp.Diff([]float64{0.75, 0.25}, Values(X), approx); diff != "" {
		t.Errorf("updated X mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.75, 0.25, 0.25, 1.75}, matrixRows(kf.P), approx); diff != "" {
		t.Errorf("updated P mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{4}, matrixRows(kf.S), approx); diff != "" {
		t.Errorf("S mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1}, Values(kf.Y), approx); diff != "" {
		t.Errorf("residual mismatch (-want +got):\n%s", diff)
	}
}

func TestInnovationCovarianceDoesNotMutate(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()
	kf.Predict()
	before := matrixRows(kf.P)

	S := kf.InnovationCovariance()

	assert.Equal(t, []float64{4}, matrixRows(S))
	assert.Equal(t, before, matrixRows(kf.P))
}

func TestUpdateSingular(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()
	kf.X = ColVector([]float64{2, 3})
	kf.P = mat.Zeros(Shape{Row: 2, Col: 2})
	kf.R = mat.Zeros(Shape{Row: 1, Col: 1})

	_, err := kf.Update(ColVector([]float64{5}))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularInnovation))
	assert.Equal(t, []float64{2, 3}, Values(kf.X))
	assert.Equal(t, []float64{0, 0, 0, 0}, matrixRows(kf.P))
}

func TestUpdateShape(t *testing.T) {
	t.Parallel()
	kf := newPositionVelocity()

	_, err := kf.Update(ColVector([]float64{1, 2}))

	assert.ErrorIs(t, err, ErrShape)
}
