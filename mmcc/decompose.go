package mmcc

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-mmcc/dsp/analytic"
	"github.com/cwbudde/algo-mmcc/internal/fftplan"
)

// Components holds the cosine, sine and raw components of every channel,
// either as time samples or as spectra of length 2N.
//
// Rows are read-only once constructed.
type Components struct {
	method   Method
	samples  int
	channels int

	c, s, h    [][]float64
	cf, sf, hf [][]complex128
}

// Decompose splits every row of signals into its three components. With
// MethodFrequency the components are zero-padded to 2N and transformed.
func Decompose(signals mat.Matrix, method Method) (*Components, error) {
	const op = "decompose"

	if signals == nil {
		return nil, invalid(op, "nil signal matrix")
	}
	if method != MethodFrequency && method != MethodTime {
		return nil, invalid(op, "unknown method %v", method)
	}

	rows, cols := signals.Dims()
	if rows < 2 {
		return nil, invalid(op, "need at least 2 channels, got %d", rows)
	}
	if cols < 2 {
		return nil, invalid(op, "need at least 2 samples, got %d", cols)
	}

	comps := &Components{method: method, samples: cols, channels: rows}

	var plan *fftplan.Plan
	if method == MethodFrequency {
		var err error
		if plan, err = fftplan.Get(2 * cols); err != nil {
			return nil, &InvalidInputError{Op: op, Reason: "fft plan", Err: err}
		}
		defer fftplan.Put(plan)

		comps.cf = make([][]complex128, rows)
		comps.sf = make([][]complex128, rows)
		comps.hf = make([][]complex128, rows)
	} else {
		comps.c = make([][]float64, rows)
		comps.s = make([][]float64, rows)
		comps.h = make([][]float64, rows)
	}

	for i := range rows {
		x := mat.Row(nil, i, signals)
		for k, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, invalid(op, "row %d sample %d is not finite", i, k)
			}
		}

		c, s, err := split(x)
		if err != nil {
			return nil, &InvalidInputError{Op: op, Reason: "analytic phase", Err: err}
		}

		if plan == nil {
			comps.c[i], comps.s[i], comps.h[i] = c, s, x
			continue
		}

		if comps.cf[i], err = spectrum(plan, c); err != nil {
			return nil, err
		}
		if comps.sf[i], err = spectrum(plan, s); err != nil {
			return nil, err
		}
		if comps.hf[i], err = spectrum(plan, x); err != nil {
			return nil, err
		}
	}

	return comps, nil
}

// split returns cos(phi)*x and sin(phi)*x for the unwrapped analytic phase.
func split(x []float64) (c, s []float64, err error) {
	phase, err := analytic.Phase(x)
	if err != nil {
		return nil, nil, err
	}

	cos := make([]float64, len(x))
	sin := make([]float64, len(x))
	for k, p := range phase {
		sin[k], cos[k] = math.Sincos(p)
	}

	c = make([]float64, len(x))
	s = make([]float64, len(x))
	vecmath.MulBlock(c, cos, x)
	vecmath.MulBlock(s, sin, x)
	return c, s, nil
}

// spectrum zero-pads x to the plan length and transforms it.
func spectrum(plan *fftplan.Plan, x []float64) ([]complex128, error) {
	buf := make([]complex128, plan.Len())
	for k, v := range x {
		buf[k] = complex(v, 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, &InvalidInputError{Op: "decompose", Reason: "forward transform", Err: err}
	}
	return buf, nil
}

// NewTimeComponents wraps precomputed time-domain components. Row lengths
// are checked when the components are correlated.
func NewTimeComponents(c, s, h [][]float64) (*Components, error) {
	if len(c) == 0 || len(c) != len(s) || len(c) != len(h) {
		return nil, invalid("components", "row counts %d, %d, %d", len(c), len(s), len(h))
	}
	return &Components{
		method:   MethodTime,
		samples:  len(c[0]),
		channels: len(c),
		c:        c,
		s:        s,
		h:        h,
	}, nil
}

// NewSpectralComponents wraps precomputed spectra of signals with n
// samples. Spectra are expected to have length 2n.
func NewSpectralComponents(n int, c, s, h [][]complex128) (*Components, error) {
	if n < 1 {
		return nil, invalid("components", "sample count %d", n)
	}
	if len(c) == 0 || len(c) != len(s) || len(c) != len(h) {
		return nil, invalid("components", "row counts %d, %d, %d", len(c), len(s), len(h))
	}
	return &Components{
		method:   MethodFrequency,
		samples:  n,
		channels: len(c),
		cf:       c,
		sf:       s,
		hf:       h,
	}, nil
}

// Method returns the domain the components are stored in.
func (c *Components) Method() Method { return c.method }

// Channels returns the number of channels L.
func (c *Components) Channels() int { return c.channels }

// Samples returns the signal length N.
func (c *Components) Samples() int { return c.samples }

// Len returns the row length in the stored domain: N for time-domain
// components and 2N for spectra.
func (c *Components) Len() int { return c.width() }

// Cos returns the cosine component of channel i in the time domain, or nil
// for spectral components.
func (c *Components) Cos(i int) []float64 { return row(c.c, i) }

// Sin returns the sine component of channel i in the time domain.
func (c *Components) Sin(i int) []float64 { return row(c.s, i) }

// Raw returns the raw component of channel i in the time domain.
func (c *Components) Raw(i int) []float64 { return row(c.h, i) }

// Spectra returns the three spectra of channel i, or nils for time-domain
// components.
func (c *Components) Spectra(i int) (cos, sin, raw []complex128) {
	if i < 0 || i >= len(c.cf) {
		return nil, nil, nil
	}
	return c.cf[i], c.sf[i], c.hf[i]
}

func row[T any](rows [][]T, i int) []T {
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

// rowLen returns the common length of the three rows of channel i, or a
// ShapeMismatchError against want when they differ.
func (c *Components) rowLen(op string, i, want int) error {
	var lens [3]int
	if c.method == MethodFrequency {
		lens = [3]int{len(c.cf[i]), len(c.sf[i]), len(c.hf[i])}
	} else {
		lens = [3]int{len(c.c[i]), len(c.s[i]), len(c.h[i])}
	}
	for _, n := range lens {
		if n != want {
			return &ShapeMismatchError{Op: op, Row: i, Got: n, Want: want}
		}
	}
	return nil
}

// width is the expected row length in the stored domain.
func (c *Components) width() int {
	if c.method == MethodFrequency {
		return 2 * c.samples
	}
	return c.samples
}

// checkShape verifies that every row of every component has the same length.
func (c *Components) checkShape(op string) error {
	want := c.width()
	for i := range c.channels {
		if err := c.rowLen(op, i, want); err != nil {
			return err
		}
	}
	return nil
}
