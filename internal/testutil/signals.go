package testutil

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Wavelet generates a Gaussian-windowed sine burst centered at sample
// position center. width is the Gaussian standard deviation in seconds.
func Wavelet(freqHz, sampleRate, width, center float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := (float64(i) - center) / sampleRate
		out[i] = math.Exp(-t*t/(2*width*width)) * math.Sin(2*math.Pi*freqHz*t)
	}
	return out
}

// Shift returns x delayed by d samples (advanced for negative d).
// Vacated samples are zero.
func Shift(x []float64, d int) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		j := i - d
		if j >= 0 && j < len(x) {
			out[i] = x[j]
		}
	}
	return out
}

// DelayedWavelets returns one Wavelet row per delay, each delayed by the
// given number of samples relative to a wavelet centered at length/2.
func DelayedWavelets(freqHz, sampleRate, width float64, length int, delays ...int) *mat.Dense {
	m := mat.NewDense(len(delays), length, nil)
	for r, d := range delays {
		m.SetRow(r, Wavelet(freqHz, sampleRate, width, float64(length/2+d), length))
	}
	return m
}
