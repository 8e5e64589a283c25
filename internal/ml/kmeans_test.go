package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellSeparatedSamples() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0.2}, {0.2, 0.1},
		{10, 10}, {10.1, 10.2}, {10.2, 9.9},
		{-10, 10}, {-10.1, 10.1}, {-9.9, 9.8},
		{10, -10}, {10.2, -10.1}, {9.9, -9.9},
	}
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	km := NewKMeans(4, 42)
	labels := km.Fit(wellSeparatedSamples())

	require.Len(t, labels, 12)
	require.Len(t, km.Centroids, 4)

	// Each group of three points must land in one cluster
	for g := 0; g < 4; g++ {
		assert.Equal(t, labels[g*3], labels[g*3+1])
		assert.Equal(t, labels[g*3], labels[g*3+2])
	}

	// And the four groups must land in four distinct clusters
	seen := map[int]bool{}
	for g := 0; g < 4; g++ {
		seen[labels[g*3]] = true
	}
	assert.Len(t, seen, 4)
}

func TestKMeansIsDeterministicForFixedSeed(t *testing.T) {
	first := NewKMeans(4, 42)
	second := NewKMeans(4, 42)

	labelsFirst := first.Fit(wellSeparatedSamples())
	labelsSecond := second.Fit(wellSeparatedSamples())

	assert.Equal(t, labelsFirst, labelsSecond)
	assert.Equal(t, first.Centroids, second.Centroids)
}

func TestKMeansFewerSamplesThanClusters(t *testing.T) {
	km := NewKMeans(4, 42)
	labels := km.Fit([][]float64{{1, 1}, {2, 2}})

	require.Len(t, labels, 2)
	assert.Len(t, km.Centroids, 4)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 4)
	}
}

func TestKMeansPredictReturnsNearestCentroid(t *testing.T) {
	km := NewKMeans(4, 42)
	km.Fit(wellSeparatedSamples())

	near := km.Predict([]float64{9.8, 10.3})
	far := km.Predict([]float64{0.05, -0.05})
	assert.NotEqual(t, near, far)
	assert.Equal(t, near, km.Predict([]float64{10, 10}))
	assert.Equal(t, far, km.Predict([]float64{0, 0}))
}

func TestSilhouetteRangeAndQuality(t *testing.T) {
	km := NewKMeans(4, 42)
	samples := wellSeparatedSamples()
	labels := km.Fit(samples)

	score := Silhouette(samples, labels)
	assert.GreaterOrEqual(t, score, -1.0)
	assert.LessOrEqual(t, score, 1.0)
	// Obvious clusters should score well above random
	assert.Greater(t, score, 0.7)
}

func TestSilhouetteDegeneratesToZero(t *testing.T) {
	samples := [][]float64{{1, 1}, {2, 2}, {3, 3}}
	assert.Equal(t, 0.0, Silhouette(samples, []int{0, 0, 0}))
}

func TestStandardScalerRoundTrip(t *testing.T) {
	samples := [][]float64{
		{1, 100, 5},
		{2, 200, 5},
		{3, 300, 5},
	}

	scaler := &StandardScaler{}
	scaled := scaler.FitTransform(samples)

	// Zero mean per feature
	for j := 0; j < 3; j++ {
		sum := 0.0
		for i := range scaled {
			sum += scaled[i][j]
		}
		assert.InDelta(t, 0, sum, 1e-9)
	}

	// Constant feature stays finite instead of dividing by zero
	assert.Equal(t, 0.0, scaled[0][2])

	// Transform of a training sample matches the batch output
	assert.InDeltaSlice(t, scaled[1], scaler.Transform([]float64{2, 200, 5}), 1e-9)
}
