package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalwave/ppgkit/algorithms/stats"
)

func TestMean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, stats.Mean(nil))
	assert.InDelta(t, 2.0, stats.Mean([]float64{1, 2, 3}), 1e-12)
}

func TestPopulationStdDev(t *testing.T) {
	t.Parallel()

	// Alternating 0.6/1.4 intervals: mean 1.0, deviations ±0.4
	got := stats.PopulationStdDev([]float64{0.6, 1.4, 0.6, 1.4})
	assert.InDelta(t, 0.4, got, 1e-12)

	assert.Equal(t, 0.0, stats.PopulationStdDev(nil))
	assert.Equal(t, 0.0, stats.PopulationStdDev([]float64{2, 2, 2}))
}

func TestSkewness(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, stats.Skewness([]float64{5, 5, 5}), "constant signal has no defined asymmetry")
	assert.InDelta(t, 0.0, stats.Skewness([]float64{1, 2, 3}), 1e-12, "symmetric data")
	assert.Greater(t, stats.Skewness([]float64{1, 1, 1, 10}), 0.0, "right tail skews positive")
}

func TestExcessKurtosis(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, stats.ExcessKurtosis([]float64{5, 5, 5}))

	// {1, 2, 3}: m2 = 2/3, m4 = 2/3, kurtosis = 1.5 - 3 = -1.5
	assert.InDelta(t, -1.5, stats.ExcessKurtosis([]float64{1, 2, 3}), 1e-12)
}

func TestSignalToNoise(t *testing.T) {
	t.Parallel()

	// {1, 3}: signal power 5, noise power 1
	assert.InDelta(t, 5.0, stats.SignalToNoise([]float64{1, 3}), 1e-12)

	assert.Equal(t, 0.0, stats.SignalToNoise([]float64{2, 2, 2}), "zero noise power reports 0, not +Inf")
	assert.Equal(t, 0.0, stats.SignalToNoise(nil))
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	data := []float64{0.3, -1.2, 4.5, 0.0}
	assert.Equal(t, -1.2, stats.Min(data))
	assert.Equal(t, 4.5, stats.Max(data))
	assert.Equal(t, 0.0, stats.Min(nil))
	assert.Equal(t, 0.0, stats.Max(nil))
}
