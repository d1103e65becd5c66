package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-mmcc/dsp/filter/biquad"
)

// ErrInvalidBand is returned when band edges are not 0 < low < high < fs/2.
var ErrInvalidBand = errors.New("design: invalid band")

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := bilinearK(freq, sampleRate); !ok {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := bilinearK(freq, sampleRate); !ok {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Highpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBandpass designs a band-pass cascade: an order-corner
// Butterworth highpass at low followed by an order-corner Butterworth
// lowpass at high.
func ButterworthBandpass(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: order must be > 0: %d", ErrInvalidBand, order)
	}
	if !(low < high) {
		return nil, fmt.Errorf("%w: low %g Hz must be below high %g Hz", ErrInvalidBand, low, high)
	}
	if _, ok := bilinearK(low, sampleRate); !ok {
		return nil, fmt.Errorf("%w: low %g Hz outside (0, %g)", ErrInvalidBand, low, sampleRate/2)
	}
	if _, ok := bilinearK(high, sampleRate); !ok {
		return nil, fmt.Errorf("%w: high %g Hz outside (0, %g)", ErrInvalidBand, high, sampleRate/2)
	}

	sections := ButterworthHP(low, order, sampleRate)
	return append(sections, ButterworthLP(high, order, sampleRate)...), nil
}

func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}
	return 1 / (2 * s)
}

func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}
	return math.Tan(math.Pi * freq / sampleRate), true
}

func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func butterworthFirstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
