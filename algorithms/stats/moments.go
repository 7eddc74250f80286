// Package stats provides the moment statistics and quality ratios the
// analysis pipeline needs. All moment functions use population
// (biased) estimators: verdict thresholds elsewhere in the pipeline
// are calibrated against that convention, and the sample-corrected
// forms gonum exposes would shift results on short recordings.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopulationVariance calculates the biased variance (normalized by n)
func PopulationVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}

// PopulationStdDev calculates the biased standard deviation
func PopulationStdDev(data []float64) float64 {
	return math.Sqrt(PopulationVariance(data))
}

// centralMoment computes the r-th central moment E[(X-μ)ʳ]
func centralMoment(data []float64, mean float64, order int) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range data {
		sum += math.Pow(v-mean, float64(order))
	}
	return sum / float64(len(data))
}

// Skewness calculates the third standardized moment. A zero-variance
// signal has no defined asymmetry and reports 0.
func Skewness(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	m2 := centralMoment(data, mean, 2)
	if m2 == 0 {
		return 0.0
	}
	m3 := centralMoment(data, mean, 3)
	return m3 / math.Pow(m2, 1.5)
}

// ExcessKurtosis calculates the fourth standardized moment minus 3
// (Fisher's definition), so a normal distribution scores 0. A
// zero-variance signal reports 0.
func ExcessKurtosis(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	m2 := centralMoment(data, mean, 2)
	if m2 == 0 {
		return 0.0
	}
	m4 := centralMoment(data, mean, 4)
	return m4/(m2*m2) - 3.0
}

// SignalToNoise estimates SNR as the ratio of mean signal power to
// mean noise power, with the noise taken as the mean-removed signal.
// A constant signal has zero noise power and reports 0 rather than
// dividing by zero.
func SignalToNoise(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)

	signalPower := 0.0
	noisePower := 0.0
	for _, v := range data {
		signalPower += v * v
		d := v - mean
		noisePower += d * d
	}
	signalPower /= float64(len(data))
	noisePower /= float64(len(data))

	if noisePower == 0 {
		return 0.0
	}
	return signalPower / noisePower
}

// Min returns the smallest value, 0 for empty input
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// Max returns the largest value, 0 for empty input
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}
