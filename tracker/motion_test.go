package tracker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMotionModel(t *testing.T) {
	t.Parallel()

	m, err := NewMotionModel(ModelConstantVelocity, testBox, "payload", 3)
	require.NoError(t, err)
	assert.Equal(t, ModelConstantVelocity, m.Kind())
	assert.Equal(t, 3, m.Meta().ID)
	assert.Equal(t, "payload", m.Meta().Info)

	m, err = NewMotionModel(ModelConstantVelocity, testBox[:3], nil, 3)
	assert.ErrorIs(t, err, ErrDimension)
	assert.Nil(t, m)

	m, err = NewMotionModel(ModelKind(99), testBox, nil, 3)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Nil(t, m)
}

func TestParseModelKind(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"cv", "constant-velocity"} {
		kind, err := ParseModelKind(name)
		require.NoError(t, err)
		assert.Equal(t, ModelConstantVelocity, kind)
	}

	_, err := ParseModelKind("ca")
	assert.ErrorIs(t, err, ErrUnknownModel)

	assert.Equal(t, "cv", ModelConstantVelocity.String())
	assert.Equal(t, "ModelKind(5)", ModelKind(5).String())
}

func TestPredictAllUpdateAll(t *testing.T) {
	t.Parallel()

	models := make([]MotionModel, 8)
	measurements := make([][]float64, len(models))
	for i := range models {
		box := append([]float64(nil), testBox...)
		box[0] = float64(i * 10)
		m, err := NewMotionModel(ModelConstantVelocity, box, nil, i)
		require.NoError(t, err)
		models[i] = m
		if i%2 == 0 {
			box[0]++
			measurements[i] = box
		}
	}

	PredictAll(models, 3)
	errs, err := UpdateAll(models, measurements, 3)
	require.NoError(t, err)

	for i, m := range models {
		assert.NoError(t, errs[i])
		v := m.Velocity()
		if i%2 == 0 {
			assert.InDelta(t, 10000.0/10012.0, v[0], 1e-9, "track %d", i)
		} else {
			assert.Zero(t, v[0], "track %d", i)
		}
	}

	_, err = UpdateAll(models, measurements[:2], 0)
	assert.ErrorIs(t, err, ErrDimension)
}

// Not parallel: swaps the package logger.
func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDebugLogger(&buf)
	defer SetDebugLogger(nil)

	cv, err := NewConstantVelocity(testBox, nil, 11)
	require.NoError(t, err)
	cv.Predict()
	require.NoError(t, cv.Update([]float64{2, 2, 3, 0, 4, 5, 6}))

	out := buf.String()
	assert.Contains(t, out, "new constant velocity track 11")
	assert.Contains(t, out, "track 11: residual [1 0 0 0 0 0 0], S[0,0]=1.001e+04")
}
