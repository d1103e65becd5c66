package analytic

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-mmcc/internal/fftplan"
)

// ErrEmptyInput is returned for zero-length traces.
var ErrEmptyInput = errors.New("analytic: empty input")

// Signal returns the analytic signal of x.
func Signal(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	plan, err := fftplan.Get(n)
	if err != nil {
		return nil, fmt.Errorf("analytic: failed to create FFT plan: %w", err)
	}
	defer fftplan.Put(plan)

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	applyHilbertWeights(buf)

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	return buf, nil
}

// applyHilbertWeights keeps DC (and Nyquist for even lengths), doubles the
// positive frequencies and clears the negative ones.
func applyHilbertWeights(spec []complex128) {
	n := len(spec)
	for k := 1; k < (n+1)/2; k++ {
		spec[k] *= 2
	}
	for k := n/2 + 1; k < n; k++ {
		spec[k] = 0
	}
}

// WrappedPhase returns arg(z[k]) in (-pi, pi] for each sample.
func WrappedPhase(z []complex128) []float64 {
	if len(z) == 0 {
		return nil
	}
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = cmplx.Phase(v)
	}
	return out
}

// Phase returns the unwrapped instantaneous phase of x in radians.
func Phase(x []float64) ([]float64, error) {
	z, err := Signal(x)
	if err != nil {
		return nil, err
	}
	return Unwrap(WrappedPhase(z)), nil
}

// Unwrap returns a new phase slice with +/-2*pi discontinuities removed.
// A step of exactly pi is left as is.
func Unwrap(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi * math.Round(d/(2*math.Pi))
		case d < -math.Pi:
			offset += 2 * math.Pi * math.Round(-d/(2*math.Pi))
		}
		out[i] = phase[i] + offset
	}
	return out
}
