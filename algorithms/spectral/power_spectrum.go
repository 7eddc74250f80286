// Package spectral provides frequency-domain views of a recording for
// reporting. Nothing here feeds back into the analysis verdicts.
package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// Spectrum holds a one-sided power spectrum.
type Spectrum struct {
	Frequencies []float64 // Bin center frequencies in Hz
	Power       []float64 // Power per bin
}

// PowerSpectrum computes the one-sided periodogram of the signal.
// Power is normalized by the signal length; only bins up to the
// Nyquist frequency are returned.
func PowerSpectrum(signal []float64, sampleRate int) *Spectrum {
	n := len(signal)
	if n == 0 || sampleRate <= 0 {
		return &Spectrum{}
	}

	spectrum := fft.FFTReal(signal)

	bins := n/2 + 1
	freqResolution := float64(sampleRate) / float64(n)

	out := &Spectrum{
		Frequencies: make([]float64, bins),
		Power:       make([]float64, bins),
	}
	for i := 0; i < bins; i++ {
		re := real(spectrum[i])
		im := imag(spectrum[i])
		out.Frequencies[i] = float64(i) * freqResolution
		out.Power[i] = (re*re + im*im) / float64(n)
	}
	return out
}

// DominantFrequency returns the frequency of the strongest non-DC bin,
// or 0 when the spectrum is empty or all flat.
func (s *Spectrum) DominantFrequency() float64 {
	if len(s.Power) < 2 {
		return 0.0
	}
	best := 1
	for i := 2; i < len(s.Power); i++ {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	return s.Frequencies[best]
}
