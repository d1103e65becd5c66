// Package time provides time-domain statistics and conditioning for
// sampled traces.
package time

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrTooShort is returned when a trace has too few samples for the
// requested operation.
var ErrTooShort = errors.New("time: trace too short")

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Energy returns the sum of squares of the signal.
func Energy(signal []float64) float64 {
	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return sumSq
}

// RMS returns the root-mean-square level of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(Energy(signal) / float64(len(signal)))
}

// Norm returns the Euclidean norm sqrt(sum x^2) of the signal.
func Norm(signal []float64) float64 {
	return mathSqrt(Energy(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// Demean subtracts the mean from signal in place.
func Demean(signal []float64) {
	dc := DC(signal)
	for i := range signal {
		signal[i] -= dc
	}
}

// Detrend removes the least-squares straight line from signal in place.
// The sample index is the abscissa.
func Detrend(signal []float64) error {
	if len(signal) < 2 {
		return ErrTooShort
	}

	x := make([]float64, len(signal))
	for i := range x {
		x[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(x, signal, nil, false)
	for i := range signal {
		signal[i] -= alpha + beta*x[i]
	}

	return nil
}
