package tracker

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimension is returned for boxes or measurements of the wrong length.
	ErrDimension = errors.New("tracker: wrong dimension")
	// ErrUnknownModel is returned for a ModelKind with no implementation.
	ErrUnknownModel = errors.New("tracker: unknown motion model")
)

// ModelKind selects a motion model implementation.
type ModelKind int

const (
	ModelConstantVelocity ModelKind = iota
)

func (k ModelKind) String() string {
	switch k {
	case ModelConstantVelocity:
		return "cv"
	default:
		return fmt.Sprintf("ModelKind(%d)", int(k))
	}
}

func ParseModelKind(s string) (ModelKind, error) {
	switch s {
	case "cv", "constant-velocity":
		return ModelConstantVelocity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// MotionModel is what a lifecycle manager needs from a single track.
type MotionModel interface {
	Predict()
	Update(z []float64) error
	InnovationMatrix() *mat.SymDense
	Velocity() [3]float64
	State() []float64
	Measurement() []float64
	Meta() *Metadata
	Kind() ModelKind
}

var _ MotionModel = (*ConstantVelocity)(nil)

// NewMotionModel builds a track of the given kind.
func NewMotionModel(kind ModelKind, bbox []float64, info any, id int, opts ...Option) (MotionModel, error) {
	switch kind {
	case ModelConstantVelocity:
		cv, err := NewConstantVelocity(bbox, info, id, opts...)
		if err != nil {
			return nil, err
		}
		return cv, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownModel, kind)
	}
}
