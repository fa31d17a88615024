package tracker

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/nicktmv/AB3DMOT/kalman"
)

// MahalanobisDistance measures how far the box z lies from the track's
// expected measurement, in units of the innovation covariance. An error
// wrapping kalman.ErrSingularInnovation means the pairing is unusable.
func MahalanobisDistance(m MotionModel, z []float64) (float64, error) {
	if len(z) != BoxDim {
		return 0, fmt.Errorf("%w: measurement has %d values, want %d", ErrDimension, len(z), BoxDim)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(m.InnovationMatrix()); !ok {
		return 0, fmt.Errorf("track %d: %w", m.Meta().ID, kalman.ErrSingularInnovation)
	}

	obs := mat.NewVecDense(BoxDim, append([]float64(nil), z...))
	expected := mat.NewVecDense(BoxDim, m.Measurement())

	return stat.Mahalanobis(obs, expected, &chol), nil
}
