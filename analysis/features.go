package analysis

import (
	"errors"
	"fmt"

	"github.com/vitalwave/ppgkit/algorithms/filters"
	"github.com/vitalwave/ppgkit/algorithms/peaks"
	"github.com/vitalwave/ppgkit/algorithms/stats"
	"github.com/vitalwave/ppgkit/analysis/config"
	"github.com/vitalwave/ppgkit/logging"
)

// ErrEmptySignal reports an empty sample sequence where features were
// requested.
var ErrEmptySignal = errors.New("analysis: empty signal")

// FeatureRecord holds the physiological features of one recording.
// Rate fields are nil when too few peaks were found to compute them;
// a missing value is never replaced with a fabricated default.
type FeatureRecord struct {
	// HeartRate is the mean instantaneous heart rate in BPM, nil
	// when fewer than two beats were detected.
	HeartRate *float64 `json:"heart_rate_bpm"`

	// HeartRates lists the per-beat instantaneous rates, empty when
	// HeartRate is nil.
	HeartRates []float64 `json:"heart_rates_bpm"`

	// RespiratoryRate is in breaths per minute, nil when fewer than
	// two breaths were detected in the respiratory band.
	RespiratoryRate *float64 `json:"respiratory_rate"`

	// SystolicAmplitude is the full signal range, max minus min.
	SystolicAmplitude float64 `json:"systolic_amplitude"`

	// Signal quality metrics.
	SNR      float64 `json:"snr"`
	Kurtosis float64 `json:"kurtosis"`
	Skewness float64 `json:"skewness"`
}

// FeatureExtractor derives rate, amplitude and quality features from a
// conditioned PPG signal.
type FeatureExtractor struct {
	cfg config.FeatureConfig
}

// NewFeatureExtractor creates an extractor with default settings.
func NewFeatureExtractor() *FeatureExtractor {
	return NewFeatureExtractorWithConfig(config.DefaultFeatureConfig())
}

// NewFeatureExtractorWithConfig creates an extractor with custom
// settings. Band edges live on the extractor, not in package state, so
// extractors with different bands can run side by side.
func NewFeatureExtractorWithConfig(cfg config.FeatureConfig) *FeatureExtractor {
	return &FeatureExtractor{cfg: cfg}
}

// Extract computes the full feature record for one conditioned signal.
// Insufficient peaks leave the affected rate nil; the rest of the
// record is still populated.
func (e *FeatureExtractor) Extract(signal []float64, samplingRate int) (*FeatureRecord, error) {
	if samplingRate <= 0 {
		return nil, ErrInvalidSamplingRate
	}
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	record := &FeatureRecord{
		SystolicAmplitude: stats.Max(signal) - stats.Min(signal),
		SNR:               stats.SignalToNoise(signal),
		Kurtosis:          stats.ExcessKurtosis(signal),
		Skewness:          stats.Skewness(signal),
	}

	e.extractHeartRate(signal, samplingRate, record)

	if err := e.extractRespiratoryRate(signal, samplingRate, record); err != nil {
		return nil, err
	}

	return record, nil
}

// extractHeartRate fills the mean and per-beat heart rates. Beats are
// unconstrained in height; only the spacing floor applies.
func (e *FeatureExtractor) extractHeartRate(signal []float64, samplingRate int, record *FeatureRecord) {
	policy := peaks.Config{
		MinDistance: e.cfg.HeartMinSpacing * float64(samplingRate),
	}
	beats, intervals := beatIntervals(signal, samplingRate, policy)
	if len(intervals) == 0 {
		logging.Debug("too few beats for heart rate", logging.Fields{"peaks": len(beats)})
		return
	}

	record.HeartRates = RatesFromIntervals(intervals)
	mean := stats.Mean(record.HeartRates)
	record.HeartRate = &mean
}

// extractRespiratoryRate band-passes the signal into the respiratory
// band and derives a breath rate from the filtered peaks.
func (e *FeatureExtractor) extractRespiratoryRate(signal []float64, samplingRate int, record *FeatureRecord) error {
	nyquist := 0.5 * float64(samplingRate)
	coef, err := filters.Bandpass(1, e.cfg.RespLowHz/nyquist, e.cfg.RespHighHz/nyquist)
	if err != nil {
		return fmt.Errorf("designing respiratory band filter [%.3g, %.3g] Hz: %w", e.cfg.RespLowHz, e.cfg.RespHighHz, err)
	}

	respiratory, err := filters.FiltFilt(coef, signal)
	if err != nil {
		return fmt.Errorf("filtering respiratory band: %w", err)
	}

	policy := peaks.Config{
		MinDistance: e.cfg.RespMinSpacing * float64(samplingRate),
	}
	breaths, intervals := beatIntervals(respiratory, samplingRate, policy)
	if len(intervals) == 0 {
		logging.Debug("too few breaths for respiratory rate", logging.Fields{"peaks": len(breaths)})
		return nil
	}

	rate := 60.0 / stats.Mean(intervals)
	record.RespiratoryRate = &rate
	return nil
}
