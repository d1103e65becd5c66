package window

// EdgeTaper returns coefficients that ramp both edges of a size-sample block
// with half a Hann window. Each ramp spans floor(fraction*size) samples and
// the middle is 1. fraction must be in [0, 0.5].
func EdgeTaper(size int, fraction float64) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}
	if err := validateFraction(fraction); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = 1
	}

	ramp := int(fraction * float64(size))
	if ramp == 0 {
		return out, nil
	}

	// Rising half of a symmetric Hann window of length 2*ramp+1.
	hann, err := Hann(2*ramp + 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < ramp; i++ {
		out[i] = hann[i]
		out[size-1-i] = hann[i]
	}

	return out, nil
}

// Taper multiplies buf in place by [EdgeTaper] coefficients.
func Taper(buf []float64, fraction float64) error {
	coeffs, err := EdgeTaper(len(buf), fraction)
	if err != nil {
		return err
	}
	return ApplyCoefficientsInPlace(buf, coeffs)
}
