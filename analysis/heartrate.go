package analysis

import (
	"github.com/vitalwave/ppgkit/algorithms/peaks"
)

// RRIntervals converts an ordered peak index set into the sequence of
// inter-beat intervals in seconds. Fewer than two peaks yield an empty
// sequence.
func RRIntervals(peakIndices []int, samplingRate int) []float64 {
	if len(peakIndices) < 2 {
		return nil
	}
	intervals := make([]float64, len(peakIndices)-1)
	for i := 1; i < len(peakIndices); i++ {
		intervals[i-1] = float64(peakIndices[i]-peakIndices[i-1]) / float64(samplingRate)
	}
	return intervals
}

// RatesFromIntervals converts each interval into an instantaneous rate
// in events per minute.
func RatesFromIntervals(intervals []float64) []float64 {
	if len(intervals) == 0 {
		return nil
	}
	rates := make([]float64, len(intervals))
	for i, rr := range intervals {
		rates[i] = 60.0 / rr
	}
	return rates
}

// beatIntervals is the shared peak-then-interval step behind both the
// feature extractor and the arrhythmia detector; the two call sites
// differ only in the peak policy they pass.
func beatIntervals(signal []float64, samplingRate int, policy peaks.Config) (peakIndices []int, intervals []float64) {
	peakIndices = peaks.Find(signal, policy)
	intervals = RRIntervals(peakIndices, samplingRate)
	return peakIndices, intervals
}
