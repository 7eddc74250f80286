package spectral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalwave/ppgkit/algorithms/spectral"
)

func TestPowerSpectrum_PureTone(t *testing.T) {
	t.Parallel()

	const (
		sampleRate = 100
		freq       = 5.0
		n          = 1000
	)

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	spectrum := spectral.PowerSpectrum(signal, sampleRate)
	require.Len(t, spectrum.Frequencies, n/2+1)
	require.Len(t, spectrum.Power, n/2+1)

	assert.InDelta(t, freq, spectrum.DominantFrequency(), 0.1)
}

func TestPowerSpectrum_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spectral.PowerSpectrum(nil, 100).Power)
	assert.Empty(t, spectral.PowerSpectrum([]float64{1, 2}, 0).Power)

	assert.Equal(t, 0.0, (&spectral.Spectrum{}).DominantFrequency())
}
