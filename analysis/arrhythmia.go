package analysis

import (
	"github.com/vitalwave/ppgkit/algorithms/peaks"
	"github.com/vitalwave/ppgkit/algorithms/stats"
	"github.com/vitalwave/ppgkit/analysis/config"
	"github.com/vitalwave/ppgkit/logging"
)

// Verdict is the outcome of arrhythmia screening on one recording.
// The two flags are independent signals: an abnormal waveform does not
// require an irregular rhythm, nor the reverse.
type Verdict struct {
	// IrregularHeartRate is set when the RR-interval dispersion
	// exceeds the configured threshold.
	IrregularHeartRate bool `json:"irregular_heart_rate"`

	// AbnormalWaveform is set when any positional peak/valley pair
	// differs by more than the configured amplitude threshold.
	AbnormalWaveform bool `json:"abnormal_waveform"`

	// EpisodeStart and EpisodeEnd bound the irregular episode in
	// seconds from the start of the recording: the times of the
	// first and last accepted beat. Both are nil unless an
	// irregular rhythm was flagged with at least two beats.
	EpisodeStart *float64 `json:"episode_start,omitempty"`
	EpisodeEnd   *float64 `json:"episode_end,omitempty"`
}

// ArrhythmiaDetector screens a conditioned PPG signal for rhythm
// irregularity and waveform shape anomalies. It is a variability and
// amplitude heuristic, not a diagnostic classifier.
type ArrhythmiaDetector struct {
	cfg config.ArrhythmiaConfig
}

// NewArrhythmiaDetector creates a detector with default thresholds.
func NewArrhythmiaDetector() *ArrhythmiaDetector {
	return NewArrhythmiaDetectorWithConfig(config.DefaultArrhythmiaConfig())
}

// NewArrhythmiaDetectorWithConfig creates a detector with custom
// thresholds.
func NewArrhythmiaDetectorWithConfig(cfg config.ArrhythmiaConfig) *ArrhythmiaDetector {
	return &ArrhythmiaDetector{cfg: cfg}
}

// Detect screens one signal. Too few beats is insufficient evidence,
// not an error: the verdict comes back all-clear with nil episode
// bounds.
func (d *ArrhythmiaDetector) Detect(signal []float64, samplingRate int) (*Verdict, error) {
	if samplingRate <= 0 {
		return nil, ErrInvalidSamplingRate
	}

	// The spacing floor is truncated to whole samples before the
	// search, matching the detector's calibration.
	policy := peaks.Config{
		Height:      peaks.Height(d.cfg.PeakHeight),
		MinDistance: float64(int(d.cfg.MinSpacing * float64(samplingRate))),
	}
	beats, intervals := beatIntervals(signal, samplingRate, policy)

	if len(intervals) == 0 || len(beats) == 0 {
		return &Verdict{}, nil
	}

	// Mean rate over the strict peak set, logged for comparison
	// against the feature extractor's estimate.
	logging.Debug("arrhythmia beat statistics", logging.Fields{
		"beats":    len(beats),
		"mean_bpm": 60.0 / stats.Mean(intervals),
	})

	verdict := &Verdict{
		IrregularHeartRate: stats.PopulationStdDev(intervals) > d.cfg.HRThreshold,
		AbnormalWaveform:   d.abnormalWaveform(signal),
	}

	if verdict.IrregularHeartRate && len(beats) > 1 {
		start := float64(beats[0]) / float64(samplingRate)
		end := float64(beats[len(beats)-1]) / float64(samplingRate)
		verdict.EpisodeStart = &start
		verdict.EpisodeEnd = &end
	}

	return verdict, nil
}

// abnormalWaveform checks peak-to-valley amplitude differences against
// the waveform threshold. Peaks and valleys are located without height
// or spacing constraints and paired strictly by position (i-th peak
// with i-th valley) up to the shorter count. Positional pairing only
// approximates systolic/diastolic pairing when the counts align, but
// it is the calibrated rule; re-pairing by time proximity would change
// verdicts.
func (d *ArrhythmiaDetector) abnormalWaveform(signal []float64) bool {
	crests := peaks.Find(signal, peaks.Config{})
	troughs := peaks.FindValleys(signal, peaks.Config{})

	pairs := min(len(crests), len(troughs))
	if pairs == 0 {
		return false
	}

	for i := 0; i < pairs; i++ {
		if signal[crests[i]]-signal[troughs[i]] > d.cfg.WaveformThreshold {
			return true
		}
	}
	return false
}
