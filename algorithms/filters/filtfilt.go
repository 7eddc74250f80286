package filters

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FiltFilt applies the filter forward and then backward over the
// signal, cancelling phase delay at the cost of whole-signal
// (non-causal) processing. The signal is extended at both ends with an
// odd reflection and the filter is primed with its step steady state,
// which suppresses startup transients.
// Reference: Gustafsson, F. (1996). "Determining the initial states in
// forward-backward filtering", IEEE Transactions on Signal Processing.
//
// The output has the same length as the input. The extension is three
// times the longer coefficient vector per side; signals no longer than
// that cannot be padded and are rejected.
func FiltFilt(coef Coefficients, signal []float64) ([]float64, error) {
	edge := 3 * max(len(coef.B), len(coef.A))
	b, a := padCoefficients(coef)

	if len(signal) <= edge {
		return nil, fmt.Errorf("filters: signal length %d too short for zero-phase filtering (need > %d samples)", len(signal), edge)
	}

	zi, err := stepSteadyState(b, a)
	if err != nil {
		return nil, fmt.Errorf("filters: solving initial filter state: %w", err)
	}

	ext := oddExtension(signal, edge)

	// Forward pass, primed to the first extended sample
	forward := applyIIR(b, a, ext, scaled(zi, ext[0]))

	// Backward pass over the reversed forward output
	reverse(forward)
	backward := applyIIR(b, a, forward, scaled(zi, forward[0]))
	reverse(backward)

	out := make([]float64, len(signal))
	copy(out, backward[edge:edge+len(signal)])
	return out, nil
}

// padCoefficients zero-pads B and A to a common length.
func padCoefficients(coef Coefficients) (b, a []float64) {
	n := max(len(coef.B), len(coef.A))
	b = make([]float64, n)
	a = make([]float64, n)
	copy(b, coef.B)
	copy(a, coef.A)
	return b, a
}

// applyIIR runs the filter in direct form II transposed with the given
// initial delay-line state. len(zi) == len(b)-1.
func applyIIR(b, a, x, zi []float64) []float64 {
	n := len(b)
	z := make([]float64, len(zi))
	copy(z, zi)

	y := make([]float64, len(x))
	for i, xi := range x {
		yi := b[0]*xi + z[0]
		for j := 0; j < n-2; j++ {
			z[j] = b[j+1]*xi + z[j+1] - a[j+1]*yi
		}
		z[n-2] = b[n-1]*xi - a[n-1]*yi
		y[i] = yi
	}
	return y
}

// stepSteadyState computes the delay-line state that makes the filter
// start in its unit-step steady state: the solution of
// (I - Cᵀ) zi = B with C the companion matrix of A.
func stepSteadyState(b, a []float64) ([]float64, error) {
	m := len(a) - 1

	// Build I - companion(a)ᵀ directly: the companion first row is
	// -a[1:]/a[0] with ones on the subdiagonal; transposing puts the
	// -a row into the first column and the ones above the diagonal.
	sys := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			var c float64
			if j == 0 {
				c = -a[i+1] / a[0]
			}
			if j == i+1 {
				c = 1
			}
			v := -c
			if i == j {
				v += 1
			}
			sys.Set(i, j, v)
		}
	}

	rhs := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(sys, rhs); err != nil {
		return nil, err
	}

	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = zi.AtVec(i)
	}
	return out, nil
}

// oddExtension reflects edge samples through the endpoint values,
// extending the signal by n samples on each side.
func oddExtension(x []float64, n int) []float64 {
	ext := make([]float64, 0, len(x)+2*n)
	for i := n; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	last := len(x) - 1
	for i := 1; i <= n; i++ {
		ext = append(ext, 2*x[last]-x[last-i])
	}
	return ext
}

func scaled(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
