// Package peaks locates local maxima in one-dimensional sample
// sequences with optional height and minimum-distance constraints.
package peaks

import (
	"math"
	"sort"
)

// Config controls peak selection.
type Config struct {
	// Height is the minimum value a local maximum must reach to
	// qualify. Nil disables the height filter.
	Height *float64 `json:"height,omitempty"`

	// MinDistance is the minimum spacing between accepted peaks in
	// samples. Values are rounded up; anything below 2 disables the
	// distance filter. When two candidates fall closer than this,
	// the higher one is kept and the lower suppressed.
	MinDistance float64 `json:"min_distance,omitempty"`
}

// Height wraps a threshold value for use in Config.
func Height(v float64) *float64 {
	return &v
}

// Find returns the strictly increasing indices of local maxima in the
// signal that satisfy the configured constraints. Signals with fewer
// than three samples have no interior maxima and yield an empty set.
//
// A flat run of equal samples bordered by lower neighbors counts as a
// single peak at the midpoint of the plateau.
func Find(signal []float64, cfg Config) []int {
	candidates := localMaxima(signal)

	if cfg.Height != nil {
		kept := candidates[:0]
		for _, p := range candidates {
			if signal[p] >= *cfg.Height {
				kept = append(kept, p)
			}
		}
		candidates = kept
	}

	if cfg.MinDistance > 1 {
		candidates = suppressClose(signal, candidates, int(math.Ceil(cfg.MinDistance)))
	}

	return candidates
}

// FindValleys returns the local minima of the signal, i.e. the peaks
// of its negation, under the same constraints.
func FindValleys(signal []float64, cfg Config) []int {
	negated := make([]float64, len(signal))
	for i, v := range signal {
		negated[i] = -v
	}
	return Find(negated, cfg)
}

// localMaxima scans for strict local maxima, treating plateaus as a
// single peak at their midpoint.
func localMaxima(signal []float64) []int {
	found := []int{}

	i := 1
	iMax := len(signal) - 1
	for i < iMax {
		if signal[i-1] < signal[i] {
			// Skip samples equal to signal[i] to find the
			// right edge of a potential plateau
			ahead := i + 1
			for ahead < iMax && signal[ahead] == signal[i] {
				ahead++
			}

			if signal[ahead] < signal[i] {
				found = append(found, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}

	return found
}

// suppressClose enforces the minimum peak spacing. Peaks are visited
// from highest to lowest value; each survivor evicts lower neighbors
// within the exclusion distance, so of two competing close peaks the
// higher always wins.
func suppressClose(signal []float64, candidates []int, distance int) []int {
	n := len(candidates)
	if n == 0 {
		return candidates
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return signal[candidates[order[a]]] < signal[candidates[order[b]]]
	})

	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}

	for oi := n - 1; oi >= 0; oi-- {
		j := order[oi]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && candidates[j]-candidates[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < n && candidates[k]-candidates[j] < distance; k++ {
			keep[k] = false
		}
	}

	out := candidates[:0]
	for i, p := range candidates {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
