// Package config holds the tuning parameters of the analysis pipeline.
// Everything is plain struct configuration passed into constructors;
// there is no package-level state, so analyses with different settings
// can run concurrently without interference.
package config

// ConditionerConfig configures signal conditioning.
type ConditionerConfig struct {
	// CutoffHz is the low-pass cutoff used for smoothing. It must
	// stay below the Nyquist frequency of the recording.
	CutoffHz float64 `json:"cutoff_hz" mapstructure:"cutoff_hz"`

	// FilterOrder is the order of the smoothing filter.
	FilterOrder int `json:"filter_order" mapstructure:"filter_order"`
}

// DefaultConditionerConfig returns the standard smoothing setup.
func DefaultConditionerConfig() ConditionerConfig {
	return ConditionerConfig{
		CutoffHz:    0.5,
		FilterOrder: 5,
	}
}

// FeatureConfig configures feature extraction.
type FeatureConfig struct {
	// Respiratory band edges in Hz. The band is applied with a
	// first-order zero-phase filter before breath peak detection.
	RespLowHz  float64 `json:"resp_low_hz" mapstructure:"resp_low_hz"`
	RespHighHz float64 `json:"resp_high_hz" mapstructure:"resp_high_hz"`

	// HeartMinSpacing is the minimum beat spacing in seconds used
	// for heart-rate peak detection.
	HeartMinSpacing float64 `json:"heart_min_spacing" mapstructure:"heart_min_spacing"`

	// RespMinSpacing is the minimum breath spacing in seconds,
	// capping the detectable respiratory rate (2 s keeps breaths
	// at or below 30/min).
	RespMinSpacing float64 `json:"resp_min_spacing" mapstructure:"resp_min_spacing"`
}

// DefaultFeatureConfig returns the standard extraction setup.
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		RespLowHz:       0.1,
		RespHighHz:      0.5,
		HeartMinSpacing: 0.6,
		RespMinSpacing:  2.0,
	}
}

// ArrhythmiaConfig configures irregularity detection. Its peak pass is
// deliberately stricter than the feature extractor's heart-rate pass:
// a higher bar on peak height and a tighter spacing floor make the RR
// series more sensitive to genuinely irregular beats.
type ArrhythmiaConfig struct {
	// PeakHeight is the minimum normalized peak height for a beat
	// to enter the RR series.
	PeakHeight float64 `json:"peak_height" mapstructure:"peak_height"`

	// MinSpacing is the minimum beat spacing in seconds for the RR
	// series.
	MinSpacing float64 `json:"min_spacing" mapstructure:"min_spacing"`

	// HRThreshold is the RR-interval standard deviation, in
	// seconds, above which the rhythm is flagged irregular. This is
	// a raw dispersion on the RR time scale, not a normalized
	// coefficient of variation.
	HRThreshold float64 `json:"hr_threshold" mapstructure:"hr_threshold"`

	// WaveformThreshold is the peak-to-valley amplitude difference
	// above which the waveform is flagged abnormal.
	WaveformThreshold float64 `json:"waveform_threshold" mapstructure:"waveform_threshold"`
}

// DefaultArrhythmiaConfig returns the standard detection setup.
func DefaultArrhythmiaConfig() ArrhythmiaConfig {
	return ArrhythmiaConfig{
		PeakHeight:        0.5,
		MinSpacing:        0.4,
		HRThreshold:       0.15,
		WaveformThreshold: 0.2,
	}
}
