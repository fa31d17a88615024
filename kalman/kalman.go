package kalman

import (
	"errors"
	"fmt"

	mat "github.com/mrfyo/matrix"
)

type (
	Shape  = mat.Shape
	Matrix = mat.Matrix
)

var (
	// ErrShape is returned when a matrix or vector has the wrong dimensions.
	ErrShape = errors.New("kalman: shape mismatch")
	// ErrSingularInnovation is returned when the innovation covariance
	// cannot be inverted. The pending update is abandoned and the filter
	// state is left as it was.
	ErrSingularInnovation = errors.New("kalman: innovation covariance is singular")
)

// LinearKalmanFilter holds the state and matrices of a linear Kalman filter.
// Predict and Update mutate X and P in place.
type LinearKalmanFilter struct {
	DimX int
	DimZ int
	F    Matrix // (n, n)
	H    Matrix // (m, n)
	X    Matrix // (n, 1)
	P    Matrix // (n, n)
	R    Matrix // (m, m)
	Q    Matrix // (n, n)
	S    Matrix // innovation covariance of the last update
	Y    Matrix // residual of the last update
}

func (kf *LinearKalmanFilter) Init(x, P, Q, R Matrix) {
	kf.X = x
	kf.P = P
	kf.Q = Q
	kf.R = R
}

// Predict advances the state by one step: x = Fx, P = FPF' + Q.
func (kf *LinearKalmanFilter) Predict() {
	F := kf.F

	kf.X = F.Dot(kf.X)
	kf.P = F.Dot(kf.P).Dot(F.T()).Add(kf.Q)
}

// InnovationCovariance returns S = HPH' + R for the current P and R without
// touching the filter. The result is exactly symmetric.
func (kf *LinearKalmanFilter) InnovationCovariance() Matrix {
	H := kf.H
	return Symmetrize(H.Dot(kf.P).Dot(H.T()).Add(kf.R))
}

// Update folds the measurement z (m, 1) into the state. When S cannot be
// inverted the error wraps ErrSingularInnovation and X, P are unchanged.
func (kf *LinearKalmanFilter) Update(z Matrix) (X Matrix, err error) {
	if z.Row != kf.DimZ || z.Col != 1 {
		return kf.X, fmt.Errorf("%w: measurement is %dx%d, want %dx1", ErrShape, z.Row, z.Col, kf.DimZ)
	}

	H := kf.H
	P := kf.P

	S := kf.InnovationCovariance()
	SI, err := InvSPD(S)
	if err != nil {
		return kf.X, err
	}

	K := P.Dot(H.T()).Dot(SI)
	y := z.Sub(H.Dot(kf.X))

	kf.X = kf.X.Add(K.Dot(y))
	kf.P = P.Sub(K.Dot(H).Dot(P))

	kf.S = S
	kf.Y = y

	return kf.X, nil
}

// NewKalmanFilter returns a filter with a zero state and identity P, Q
// and R. Use Init to replace them.
func NewKalmanFilter(dimX int, dimZ int, F Matrix, H Matrix) *LinearKalmanFilter {
	return &LinearKalmanFilter{
		DimX: dimX,
		DimZ: dimZ,
		F:    F,
		H:    H,
		X:    mat.Zeros(Shape{Row: dimX, Col: 1}),
		P:    mat.Eye(dimX),
		R:    mat.Eye(dimZ),
		Q:    mat.Eye(dimX),
	}
}
