package filters_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalwave/ppgkit/algorithms/filters"
)

func TestLowpass_FirstOrderHalfBand(t *testing.T) {
	t.Parallel()

	// butter(1, 0.5) has the closed form b = [0.5, 0.5], a = [1, 0]
	coef, err := filters.Lowpass(1, 0.5)
	require.NoError(t, err)

	require.Len(t, coef.B, 2)
	require.Len(t, coef.A, 2)
	assert.InDelta(t, 0.5, coef.B[0], 1e-12)
	assert.InDelta(t, 0.5, coef.B[1], 1e-12)
	assert.InDelta(t, 1.0, coef.A[0], 1e-12)
	assert.InDelta(t, 0.0, coef.A[1], 1e-12)
}

func TestLowpass_SecondOrderHalfBand(t *testing.T) {
	t.Parallel()

	// Reference coefficients for butter(2, 0.5)
	coef, err := filters.Lowpass(2, 0.5)
	require.NoError(t, err)

	wantB := []float64{0.2928932188134524, 0.5857864376269048, 0.2928932188134524}
	wantA := []float64{1.0, 0.0, 0.1715728752538099}

	require.Len(t, coef.B, 3)
	require.Len(t, coef.A, 3)
	for i := range wantB {
		assert.InDelta(t, wantB[i], coef.B[i], 1e-9)
		assert.InDelta(t, wantA[i], coef.A[i], 1e-9)
	}
}

func TestLowpass_UnityDCGain(t *testing.T) {
	t.Parallel()

	for _, order := range []int{1, 2, 3, 5} {
		coef, err := filters.Lowpass(order, 0.1)
		require.NoError(t, err)

		var sumB, sumA float64
		for _, v := range coef.B {
			sumB += v
		}
		for _, v := range coef.A {
			sumA += v
		}
		assert.InDelta(t, 1.0, sumB/sumA, 1e-6, "order %d", order)
	}
}

func TestLowpass_RejectsInvalidCutoff(t *testing.T) {
	t.Parallel()

	for _, cutoff := range []float64{0, 1, -0.1, 1.5} {
		_, err := filters.Lowpass(5, cutoff)
		assert.ErrorIs(t, err, filters.ErrInvalidCutoff, "cutoff %v", cutoff)
	}

	_, err := filters.Lowpass(0, 0.5)
	assert.ErrorIs(t, err, filters.ErrInvalidOrder)
}

func TestBandpass_ZeroDCGain(t *testing.T) {
	t.Parallel()

	coef, err := filters.Bandpass(1, 0.004, 0.02)
	require.NoError(t, err)

	// A band-pass filter carries a zero at DC: the numerator must
	// vanish at z = 1.
	var sumB float64
	for _, v := range coef.B {
		sumB += v
	}
	assert.InDelta(t, 0.0, sumB, 1e-9)
}

func TestBandpass_PassesCenterFrequency(t *testing.T) {
	t.Parallel()

	coef, err := filters.Bandpass(1, 0.1, 0.4)
	require.NoError(t, err)

	// Magnitude response near the geometric band center should be
	// close to unity.
	center := math.Sqrt(0.1 * 0.4)
	mag := magnitudeAt(coef, center)
	assert.InDelta(t, 1.0, mag, 0.05)
}

func TestBandpass_RejectsInvalidBand(t *testing.T) {
	t.Parallel()

	cases := [][2]float64{{0, 0.5}, {0.5, 0.1}, {0.2, 1.0}, {0.3, 0.3}}
	for _, c := range cases {
		_, err := filters.Bandpass(1, c[0], c[1])
		assert.ErrorIs(t, err, filters.ErrInvalidBand, "band %v", c)
	}
}

// magnitudeAt evaluates |H(e^jw)| at a frequency normalized to Nyquist.
func magnitudeAt(coef filters.Coefficients, freq float64) float64 {
	w := math.Pi * freq

	var numRe, numIm, denRe, denIm float64
	for i, b := range coef.B {
		numRe += b * math.Cos(-w*float64(i))
		numIm += b * math.Sin(-w*float64(i))
	}
	for i, a := range coef.A {
		denRe += a * math.Cos(-w*float64(i))
		denIm += a * math.Sin(-w*float64(i))
	}

	num := math.Hypot(numRe, numIm)
	den := math.Hypot(denRe, denIm)
	return num / den
}
