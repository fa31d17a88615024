package tracker

import (
	"fmt"

	mat "github.com/mrfyo/matrix"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/nicktmv/AB3DMOT/kalman"
)

const (
	// BoxDim is the length of a box measurement: x, y, z, heading,
	// length, width, height.
	BoxDim = 7
	// StateDim is BoxDim plus the velocity vx, vy, vz.
	StateDim = 10

	velocityStart = BoxDim
)

// ConstantVelocity tracks one 3D box whose centre moves at a constant
// velocity between steps.
type ConstantVelocity struct {
	Metadata

	// KF owns x, P, F, H, Q and R for this track.
	KF *kalman.LinearKalmanFilter

	cfg Config
}

// NewConstantVelocity starts a track at bbox with zero velocity. Values
// are not checked for NaN or Inf; callers must pass finite boxes, as a
// non-finite value spreads through the whole state.
func NewConstantVelocity(bbox []float64, info any, id int, opts ...Option) (*ConstantVelocity, error) {
	if len(bbox) != BoxDim {
		return nil, fmt.Errorf("%w: bbox has %d values, want %d", ErrDimension, len(bbox), BoxDim)
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var pose [BoxDim]float64
	copy(pose[:], bbox)

	kf := kalman.NewKalmanFilter(StateDim, BoxDim, transition(cfg.Dt), projection())

	// velocity is unobserved at birth
	P := kf.P.ScaleMul(cfg.InitialPoseUncertainty)
	P = kalman.ScaleBlock(P, velocityStart, StateDim, velocityStart, StateDim, cfg.InitialVelocityUncertainty)

	Q := kalman.ScaleBlock(kf.Q, velocityStart, StateDim, velocityStart, StateDim, cfg.VelocityProcessNoise)

	R := kf.R
	if cfg.MeasurementNoiseScale > 0 {
		R = R.ScaleMul(cfg.MeasurementNoiseScale)
	}

	kf.Init(kalman.ColVector(append(pose[:], 0, 0, 0)), P, Q, R)

	debugf("new constant velocity track %d at %v", id, pose)

	return &ConstantVelocity{
		Metadata: NewMetadata(pose, info, id),
		KF:       kf,
		cfg:      cfg,
	}, nil
}

// transition couples each centre coordinate to its velocity.
func transition(dt float64) kalman.Matrix {
	F := mat.Eye(StateDim)
	for i := 0; i < 3; i++ {
		F.Set(i, velocityStart+i, dt)
	}
	return F
}

// projection observes the pose and size, never the velocity.
func projection() kalman.Matrix {
	H := mat.Zeros(kalman.Shape{Row: BoxDim, Col: StateDim})
	for i := 0; i < BoxDim; i++ {
		H.Set(i, i, 1)
	}
	return H
}

func (cv *ConstantVelocity) Kind() ModelKind { return ModelConstantVelocity }

func (cv *ConstantVelocity) Meta() *Metadata { return &cv.Metadata }

func (cv *ConstantVelocity) Config() Config { return cv.cfg }

func (cv *ConstantVelocity) Predict() {
	cv.KF.Predict()
}

// Update corrects the track with a matched box. A singular innovation
// leaves the track as it was; the caller should drop the match. Like
// NewConstantVelocity, z must be finite.
func (cv *ConstantVelocity) Update(z []float64) error {
	if len(z) != BoxDim {
		return fmt.Errorf("%w: measurement has %d values, want %d", ErrDimension, len(z), BoxDim)
	}
	if _, err := cv.KF.Update(kalman.ColVector(z)); err != nil {
		debugf("track %d: update skipped: %v", cv.ID, err)
		return fmt.Errorf("track %d: %w", cv.ID, err)
	}
	debugf("track %d: residual %v, S[0,0]=%.4g", cv.ID, kalman.Values(cv.KF.Y), cv.KF.S.Get(0, 0))
	return nil
}

// InnovationMatrix returns S = HPH' + R for the current state. It is used
// to gate candidate boxes before an update is committed.
func (cv *ConstantVelocity) InnovationMatrix() *gmat.SymDense {
	return kalman.ToSymDense(cv.KF.InnovationCovariance())
}

// Velocity returns vx, vy, vz.
func (cv *ConstantVelocity) Velocity() [3]float64 {
	X := cv.KF.X
	return [3]float64{
		X.Get(velocityStart, 0),
		X.Get(velocityStart+1, 0),
		X.Get(velocityStart+2, 0),
	}
}

func (cv *ConstantVelocity) State() []float64 {
	return kalman.Values(cv.KF.X)
}

// Measurement returns Hx, the box the track currently expects to observe.
func (cv *ConstantVelocity) Measurement() []float64 {
	return kalman.Values(cv.KF.H.Dot(cv.KF.X))
}
