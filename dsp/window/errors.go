package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateFraction(fraction float64) error {
	if fraction < 0 || fraction > 0.5 {
		return fmt.Errorf("taper fraction must be in [0,0.5]: %f", fraction)
	}
	return nil
}
