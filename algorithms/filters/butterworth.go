package filters

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Frequency validation errors. Band edges are normalized so that 1.0 is
// the Nyquist frequency; anything on or outside that range is a
// configuration mistake the caller has to fix, not a runtime condition.
var (
	ErrInvalidOrder  = errors.New("filters: order must be at least 1")
	ErrInvalidCutoff = errors.New("filters: cutoff must lie strictly between 0 and 1 (Nyquist)")
	ErrInvalidBand   = errors.New("filters: band edges must satisfy 0 < low < high < 1 (Nyquist)")
)

// Coefficients holds the transfer function of a digital IIR filter in
// numerator/denominator form. A is normalized so A[0] == 1.
type Coefficients struct {
	B []float64 // Numerator (feedforward) coefficients
	A []float64 // Denominator (feedback) coefficients
}

// Lowpass designs a Butterworth low-pass filter of the given order with
// cutoff normalized to the Nyquist frequency.
//
// The construction is the classic one: analog prototype poles on the
// unit circle, frequency pre-warping, low-pass scaling, then the
// bilinear transform into the z-domain.
// Reference: Oppenheim, A.V., Schafer, R.W., "Discrete-Time Signal
// Processing", ch. 7 (IIR filter design from analog prototypes).
func Lowpass(order int, cutoff float64) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, ErrInvalidOrder
	}
	if cutoff <= 0 || cutoff >= 1 {
		return Coefficients{}, fmt.Errorf("%w: got %v", ErrInvalidCutoff, cutoff)
	}

	// Pre-warp the digital cutoff onto the analog frequency axis
	warped := 4.0 * math.Tan(math.Pi*cutoff/2.0)

	poles := prototypePoles(order)
	for i := range poles {
		poles[i] *= complex(warped, 0)
	}
	gain := math.Pow(warped, float64(order))

	return bilinear(nil, poles, gain)
}

// Bandpass designs a Butterworth band-pass filter of the given order
// per band edge, with edges normalized to the Nyquist frequency.
func Bandpass(order int, low, high float64) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, ErrInvalidOrder
	}
	if low <= 0 || high >= 1 || low >= high {
		return Coefficients{}, fmt.Errorf("%w: got [%v, %v]", ErrInvalidBand, low, high)
	}

	warpedLow := 4.0 * math.Tan(math.Pi*low/2.0)
	warpedHigh := 4.0 * math.Tan(math.Pi*high/2.0)
	bw := warpedHigh - warpedLow
	w0 := math.Sqrt(warpedLow * warpedHigh)

	// Low-pass prototype to band-pass: each pole p becomes the root
	// pair p ± sqrt(p² − w0²) after scaling by half the bandwidth.
	prototype := prototypePoles(order)
	poles := make([]complex128, 0, 2*order)
	for _, p := range prototype {
		p *= complex(bw/2.0, 0)
		d := cmplx.Sqrt(p*p - complex(w0*w0, 0))
		poles = append(poles, p+d)
	}
	for _, p := range prototype {
		p *= complex(bw/2.0, 0)
		d := cmplx.Sqrt(p*p - complex(w0*w0, 0))
		poles = append(poles, p-d)
	}

	// Band-pass picks up one zero at the origin per prototype pole
	zeros := make([]complex128, order)
	gain := math.Pow(bw, float64(order))

	return bilinear(zeros, poles, gain)
}

// prototypePoles returns the poles of the analog Butterworth prototype,
// evenly spaced on the left half of the unit circle.
func prototypePoles(order int) []complex128 {
	poles := make([]complex128, order)
	for i := 0; i < order; i++ {
		m := float64(-order + 1 + 2*i)
		theta := math.Pi * m / (2.0 * float64(order))
		poles[i] = -cmplx.Exp(complex(0, theta))
	}
	return poles
}

// bilinear maps analog zeros/poles/gain into the z-domain with the
// bilinear transform (sampling frequency fixed at 2, matching the
// normalized design frequencies) and expands to polynomial form.
func bilinear(zeros, poles []complex128, gain float64) (Coefficients, error) {
	const fs2 = 4.0 // 2 * sampling frequency

	degree := len(poles) - len(zeros)
	if degree < 0 {
		return Coefficients{}, errors.New("filters: more zeros than poles")
	}

	numProd := complex(1, 0)
	denProd := complex(1, 0)

	zMapped := make([]complex128, 0, len(poles))
	for _, z := range zeros {
		zMapped = append(zMapped, (complex(fs2, 0)+z)/(complex(fs2, 0)-z))
		numProd *= complex(fs2, 0) - z
	}
	pMapped := make([]complex128, 0, len(poles))
	for _, p := range poles {
		pMapped = append(pMapped, (complex(fs2, 0)+p)/(complex(fs2, 0)-p))
		denProd *= complex(fs2, 0) - p
	}

	// Zeros at infinity move to z = -1
	for i := 0; i < degree; i++ {
		zMapped = append(zMapped, complex(-1, 0))
	}

	digitalGain := gain * real(numProd/denProd)

	b := polynomial(zMapped, digitalGain)
	a := polynomial(pMapped, 1.0)

	// a is monic by construction; normalize defensively against
	// rounding in the leading coefficient.
	if a[0] != 1.0 {
		for i := range b {
			b[i] /= a[0]
		}
		for i := len(a) - 1; i >= 0; i-- {
			a[i] /= a[0]
		}
	}

	return Coefficients{B: b, A: a}, nil
}

// polynomial expands a set of roots into real polynomial coefficients,
// highest order first, scaled by the given gain. Complex roots arrive
// in conjugate pairs so the imaginary parts cancel.
func polynomial(roots []complex128, gain float64) []float64 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c) * gain
	}
	return out
}
