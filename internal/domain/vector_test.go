package domain

import (
	"math"
	"testing"

	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNormalize_UnitNorm(t *testing.T) {
	vec := []float32{3, 4}

	require.NoError(t, Normalize(vec))

	assert.InDelta(t, 1.0, l2norm(vec), 1e-6)
	assert.InDelta(t, 0.6, float64(vec[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(vec[1]), 1e-6)
}

func TestNormalize_ZeroVectorRejected(t *testing.T) {
	err := Normalize([]float32{0, 0, 0})
	require.ErrorIs(t, err, e.ErrZeroVector)
}

func TestNormalize_EmptyRejected(t *testing.T) {
	err := Normalize(nil)
	require.ErrorIs(t, err, e.ErrEmptyVectors)
}

func TestCombine_MeanAndRenormalize(t *testing.T) {
	text := []float32{1, 0}
	image := []float32{0, 1}

	combined, err := Combine(text, image)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, l2norm(combined), 1e-6)
	// Среднее (0.5, 0.5) после нормализации — (1/sqrt2, 1/sqrt2)
	assert.InDelta(t, combined[0], combined[1], 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, float64(combined[0]), 1e-6)
}

func TestCombine_DimensionMismatch(t *testing.T) {
	_, err := Combine([]float32{1, 2}, []float32{1, 2, 3})
	require.ErrorIs(t, err, e.ErrVectorDimension)
}

func TestCombine_OppositeVectorsRejected(t *testing.T) {
	// Противоположные векторы дают нулевое среднее
	_, err := Combine([]float32{1, 0}, []float32{-1, 0})
	require.ErrorIs(t, err, e.ErrZeroVector)
}

func TestPointID_Deterministic(t *testing.T) {
	assert.Equal(t, uint64(7000), PointID(7, 0))
	assert.Equal(t, uint64(7001), PointID(7, 1))
	assert.Equal(t, PointID(42, 3), PointID(42, 3))
	assert.NotEqual(t, PointID(7, 1), PointID(8, 0))
}
