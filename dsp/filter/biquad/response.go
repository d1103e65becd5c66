package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) of the section at freqHz for the given sample
// rate.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// Response returns the gain-scaled product of all section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns 20*log10|H| of the cascade for a single pass.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ZeroPhaseMagnitudeDB returns the magnitude applied by [Chain.FiltFilt],
// which is twice the single-pass value in dB.
func (c *Chain) ZeroPhaseMagnitudeDB(freqHz, sampleRate float64) float64 {
	return 2 * c.MagnitudeDB(freqHz, sampleRate)
}
