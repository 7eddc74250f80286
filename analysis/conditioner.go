// Package analysis implements the PPG analysis pipeline: signal
// conditioning, feature extraction and arrhythmia detection over a
// single in-memory recording. Every entry point is a pure function of
// its inputs; nothing here holds state between invocations, so
// independent recordings can be analyzed concurrently.
package analysis

import (
	"errors"
	"fmt"

	"github.com/vitalwave/ppgkit/algorithms/filters"
	"github.com/vitalwave/ppgkit/algorithms/stats"
	"github.com/vitalwave/ppgkit/analysis/config"
)

// ErrInvalidSamplingRate reports a non-positive sampling rate, which
// the caller is required to rule out at the ingestion boundary.
var ErrInvalidSamplingRate = errors.New("analysis: sampling rate must be positive")

// Conditioner prepares a raw PPG trace for feature extraction:
// low-pass smoothing followed by baseline correction and min-max
// normalization into [0, 1].
type Conditioner struct {
	cfg config.ConditionerConfig
}

// NewConditioner creates a conditioner with default smoothing.
func NewConditioner() *Conditioner {
	return NewConditionerWithConfig(config.DefaultConditionerConfig())
}

// NewConditionerWithConfig creates a conditioner with custom smoothing.
func NewConditionerWithConfig(cfg config.ConditionerConfig) *Conditioner {
	return &Conditioner{cfg: cfg}
}

// Smooth applies the configured low-pass filter zero-phase, returning
// a sequence of the same length. A cutoff at or above the Nyquist
// frequency is a configuration error and surfaces here, at filter
// design, rather than producing silently wrong output.
func (c *Conditioner) Smooth(signal []float64, samplingRate int) ([]float64, error) {
	if samplingRate <= 0 {
		return nil, ErrInvalidSamplingRate
	}

	nyquist := 0.5 * float64(samplingRate)
	coef, err := filters.Lowpass(c.cfg.FilterOrder, c.cfg.CutoffHz/nyquist)
	if err != nil {
		return nil, fmt.Errorf("designing smoothing filter (cutoff %.3g Hz, nyquist %.3g Hz): %w", c.cfg.CutoffHz, nyquist, err)
	}

	smoothed, err := filters.FiltFilt(coef, signal)
	if err != nil {
		return nil, fmt.Errorf("smoothing signal: %w", err)
	}
	return smoothed, nil
}

// CorrectAndNormalize shifts a signal with a negative baseline up to
// zero and rescales it into [0, 1]. A constant signal has no range to
// scale and comes back as all zeros.
func (c *Conditioner) CorrectAndNormalize(signal []float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) == 0 {
		return out
	}

	minVal := stats.Min(signal)
	shift := 0.0
	if minVal < 0 {
		shift = -minVal
	}

	maxVal := stats.Max(signal) + shift
	minVal += shift

	span := maxVal - minVal
	if span == 0 {
		return out
	}

	for i, v := range signal {
		out[i] = (v + shift - minVal) / span
	}
	return out
}

// Condition runs the full conditioning stage: smooth, then correct and
// normalize.
func (c *Conditioner) Condition(signal []float64, samplingRate int) ([]float64, error) {
	smoothed, err := c.Smooth(signal, samplingRate)
	if err != nil {
		return nil, err
	}
	return c.CorrectAndNormalize(smoothed), nil
}
