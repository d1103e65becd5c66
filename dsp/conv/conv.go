package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by correlation functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// correlateDirectTo writes the full correlation of a and b into dst,
// which must have length len(a)+len(b)-1.
func correlateDirectTo(dst, a, b []float64) {
	n := len(a)
	m := len(b)
	for k := range dst {
		lag := k - (m - 1)
		lo := max(0, lag)
		hi := min(n, m+lag)
		if hi <= lo {
			dst[k] = 0
			continue
		}
		dst[k] = vecmath.DotProduct(a[lo:hi], b[lo-lag:hi-lag])
	}
}
