package tracker

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PredictAll runs Predict on every model using at most workers goroutines
// (unlimited when workers <= 0). Models must not be shared with another
// goroutine for the duration of the call.
func PredictAll(models []MotionModel, workers int) {
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, m := range models {
		m := m
		g.Go(func() error {
			m.Predict()
			return nil
		})
	}
	_ = g.Wait()
}

// UpdateAll applies measurements[i] to models[i]; a nil measurement leaves
// that model alone. The returned slice holds the per-model error, so a
// singular innovation on one track does not affect the others.
func UpdateAll(models []MotionModel, measurements [][]float64, workers int) ([]error, error) {
	if len(models) != len(measurements) {
		return nil, fmt.Errorf("%w: %d models but %d measurements", ErrDimension, len(models), len(measurements))
	}

	errs := make([]error, len(models))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, m := range models {
		z := measurements[i]
		if z == nil {
			continue
		}
		i, m := i, m
		g.Go(func() error {
			errs[i] = m.Update(z)
			return nil
		})
	}
	_ = g.Wait()
	return errs, nil
}
