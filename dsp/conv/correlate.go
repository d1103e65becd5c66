package conv

import "gonum.org/v1/gonum/floats"

// CorrelateDirect computes the full cross-correlation as sliding dot
// products: out[k] = sum_n a[n+lag] * b[n] with lag = k - (len(b)-1).
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	result := make([]float64, len(a)+len(b)-1)
	correlateDirectTo(result, a, b)
	return result, nil
}

// CorrelateDirectTo computes the full cross-correlation into dst, which must
// have length len(a)+len(b)-1.
func CorrelateDirectTo(dst, a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyInput
	}
	if len(dst) != len(a)+len(b)-1 {
		return ErrLengthMismatch
	}

	correlateDirectTo(dst, a, b)
	return nil
}

// FindPeak returns the index and value of the maximum of corr.
// Ties resolve to the first maximum. An empty input returns (-1, 0).
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}
	index = floats.MaxIdx(corr)
	return index, corr[index]
}

// LagFromIndex converts a full correlation index to a lag value.
// For a correlation of signals with lengths lenA and lenB,
// the lag at index i is i - (lenB - 1).
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// FoldCircularLag converts an index of a circular correlation of the given
// length to a signed lag. Indices above length/2 are negative lags.
func FoldCircularLag(index, length int) int {
	if index > length/2 {
		return index - length
	}
	return index
}
