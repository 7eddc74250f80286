package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalwave/ppgkit/analysis"
	"github.com/vitalwave/ppgkit/analysis/config"
)

// spikeTrain builds a flat signal with unit-width spikes at the given
// indices.
func spikeTrain(length int, baseline, height float64, at []int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = baseline
	}
	for _, i := range at {
		out[i] = height
	}
	return out
}

func TestDetect_RegularRhythmIsNotIrregular(t *testing.T) {
	t.Parallel()

	d := analysis.NewArrhythmiaDetector()

	// Beats exactly one second apart at 100 Hz: RR dispersion is zero
	beats := []int{50, 150, 250, 350, 450, 550, 650, 750, 850, 950}
	signal := spikeTrain(1000, 0, 1.0, beats)

	verdict, err := d.Detect(signal, 100)
	require.NoError(t, err)

	assert.False(t, verdict.IrregularHeartRate)
	assert.Nil(t, verdict.EpisodeStart)
	assert.Nil(t, verdict.EpisodeEnd)

	// Full-range swings still trip the independent waveform test
	assert.True(t, verdict.AbnormalWaveform)
}

func TestDetect_AlternatingIntervalsFlagIrregular(t *testing.T) {
	t.Parallel()

	d := analysis.NewArrhythmiaDetector()

	// RR sequence {0.6, 1.4, 0.6, 1.4} s: std 0.4 exceeds the
	// 0.15 s threshold. The raised baseline keeps peak-to-valley
	// swings at 0.15, under the 0.2 waveform threshold.
	beats := []int{10, 70, 210, 270, 410}
	signal := spikeTrain(500, 0.85, 1.0, beats)

	verdict, err := d.Detect(signal, 100)
	require.NoError(t, err)

	assert.True(t, verdict.IrregularHeartRate)
	assert.False(t, verdict.AbnormalWaveform)

	require.NotNil(t, verdict.EpisodeStart)
	require.NotNil(t, verdict.EpisodeEnd)
	assert.InDelta(t, 0.1, *verdict.EpisodeStart, 1e-12, "time of first beat")
	assert.InDelta(t, 4.1, *verdict.EpisodeEnd, 1e-12, "time of last beat")
}

func TestDetect_InsufficientBeats(t *testing.T) {
	t.Parallel()

	d := analysis.NewArrhythmiaDetector()

	cases := map[string][]float64{
		"empty":       {},
		"flat":        spikeTrain(200, 0, 0, nil),
		"single beat": spikeTrain(200, 0, 1.0, []int{100}),
	}

	for name, signal := range cases {
		verdict, err := d.Detect(signal, 100)
		require.NoError(t, err, name)

		assert.False(t, verdict.IrregularHeartRate, name)
		assert.False(t, verdict.AbnormalWaveform, name)
		assert.Nil(t, verdict.EpisodeStart, name)
		assert.Nil(t, verdict.EpisodeEnd, name)
	}
}

func TestDetect_LowPeaksAreIgnored(t *testing.T) {
	t.Parallel()

	d := analysis.NewArrhythmiaDetector()

	// Spikes below the 0.5 height threshold never enter the RR
	// series, so there is no evidence either way.
	beats := []int{10, 70, 210, 270, 410}
	signal := spikeTrain(500, 0, 0.4, beats)

	verdict, err := d.Detect(signal, 100)
	require.NoError(t, err)

	assert.False(t, verdict.IrregularHeartRate)
	assert.False(t, verdict.AbnormalWaveform)
}

func TestDetect_CustomThresholds(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultArrhythmiaConfig()
	cfg.HRThreshold = 0.5
	d := analysis.NewArrhythmiaDetectorWithConfig(cfg)

	// Same alternating rhythm, but a 0.5 s threshold tolerates it
	beats := []int{10, 70, 210, 270, 410}
	signal := spikeTrain(500, 0.85, 1.0, beats)

	verdict, err := d.Detect(signal, 100)
	require.NoError(t, err)

	assert.False(t, verdict.IrregularHeartRate)
	assert.Nil(t, verdict.EpisodeStart)
}

func TestDetect_RejectsNonPositiveRate(t *testing.T) {
	t.Parallel()

	d := analysis.NewArrhythmiaDetector()
	_, err := d.Detect([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, analysis.ErrInvalidSamplingRate)
}
