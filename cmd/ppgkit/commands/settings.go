package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/vitalwave/ppgkit/analysis/config"
)

// Settings validation errors.
var (
	ErrInvalidCutoff     = errors.New("cutoff_hz must be positive")
	ErrInvalidRespBand   = errors.New("respiratory band must satisfy 0 < resp_low_hz < resp_high_hz")
	ErrInvalidThresholds = errors.New("thresholds must be positive")
)

// Settings holds the tunable pipeline parameters, overridable from an
// optional config file.
type Settings struct {
	CutoffHz          float64 `mapstructure:"cutoff_hz"`
	FilterOrder       int     `mapstructure:"filter_order"`
	RespLowHz         float64 `mapstructure:"resp_low_hz"`
	RespHighHz        float64 `mapstructure:"resp_high_hz"`
	PeakHeight        float64 `mapstructure:"peak_height"`
	HRThreshold       float64 `mapstructure:"hr_threshold"`
	WaveformThreshold float64 `mapstructure:"waveform_threshold"`
}

// LoadSettings resolves the pipeline settings: library defaults,
// overridden by the config file when one is given.
func LoadSettings(configFile string) (*Settings, error) {
	v := viper.New()

	conditioner := config.DefaultConditionerConfig()
	features := config.DefaultFeatureConfig()
	arrhythmia := config.DefaultArrhythmiaConfig()

	v.SetDefault("cutoff_hz", conditioner.CutoffHz)
	v.SetDefault("filter_order", conditioner.FilterOrder)
	v.SetDefault("resp_low_hz", features.RespLowHz)
	v.SetDefault("resp_high_hz", features.RespHighHz)
	v.SetDefault("peak_height", arrhythmia.PeakHeight)
	v.SetDefault("hr_threshold", arrhythmia.HRThreshold)
	v.SetDefault("waveform_threshold", arrhythmia.WaveformThreshold)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings for configuration mistakes that would
// otherwise surface deep inside filter design.
func (s *Settings) Validate() error {
	if s.CutoffHz <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidCutoff, s.CutoffHz)
	}
	if s.RespLowHz <= 0 || s.RespLowHz >= s.RespHighHz {
		return fmt.Errorf("%w: got [%v, %v]", ErrInvalidRespBand, s.RespLowHz, s.RespHighHz)
	}
	if s.HRThreshold <= 0 || s.WaveformThreshold <= 0 {
		return fmt.Errorf("%w: hr_threshold=%v waveform_threshold=%v", ErrInvalidThresholds, s.HRThreshold, s.WaveformThreshold)
	}
	return nil
}

// ConditionerConfig maps the settings onto the conditioner.
func (s *Settings) ConditionerConfig() config.ConditionerConfig {
	cfg := config.DefaultConditionerConfig()
	cfg.CutoffHz = s.CutoffHz
	if s.FilterOrder > 0 {
		cfg.FilterOrder = s.FilterOrder
	}
	return cfg
}

// FeatureConfig maps the settings onto the feature extractor.
func (s *Settings) FeatureConfig() config.FeatureConfig {
	cfg := config.DefaultFeatureConfig()
	cfg.RespLowHz = s.RespLowHz
	cfg.RespHighHz = s.RespHighHz
	return cfg
}

// ArrhythmiaConfig maps the settings onto the detector.
func (s *Settings) ArrhythmiaConfig() config.ArrhythmiaConfig {
	cfg := config.DefaultArrhythmiaConfig()
	cfg.PeakHeight = s.PeakHeight
	cfg.HRThreshold = s.HRThreshold
	cfg.WaveformThreshold = s.WaveformThreshold
	return cfg
}
