package mmcc

import (
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mmcc/dsp/conv"
	"github.com/cwbudde/algo-mmcc/internal/fftplan"
)

// Correlate returns the summed three-component cross-correlation of
// channel i of a with channel j of b.
//
// For time-domain components the result has length 2N-1 and index k holds
// lag k-(N-1). For spectral components it is the real part of the inverse
// transform of the summed cross-spectra, scaled by 1/2, with length 2N and
// lag 0 at index 0.
func Correlate(a, b *Components, i, j int) ([]float64, error) {
	const op = "correlate"

	if a == nil || b == nil {
		return nil, invalid(op, "nil components")
	}
	if a.method != b.method {
		return nil, invalid(op, "domains differ: %v and %v", a.method, b.method)
	}
	if i < 0 || i >= a.channels {
		return nil, invalid(op, "channel %d out of range [0,%d)", i, a.channels)
	}
	if j < 0 || j >= b.channels {
		return nil, invalid(op, "channel %d out of range [0,%d)", j, b.channels)
	}

	want := a.width()
	if err := a.rowLen(op, i, want); err != nil {
		return nil, err
	}
	if err := b.rowLen(op, j, want); err != nil {
		return nil, err
	}

	if a.method == MethodTime {
		return correlateTime(a, b, i, j)
	}
	return correlateSpectra(a, b, i, j)
}

func correlateTime(a, b *Components, i, j int) ([]float64, error) {
	out, err := conv.CorrelateDirect(a.c[i], b.c[j])
	if err != nil {
		return nil, &InvalidInputError{Op: "correlate", Reason: "cosine component", Err: err}
	}

	tmp := make([]float64, len(out))
	pairs := [][2][]float64{
		{a.s[i], b.s[j]},
		{a.h[i], b.h[j]},
	}
	for _, p := range pairs {
		if err := conv.CorrelateDirectTo(tmp, p[0], p[1]); err != nil {
			return nil, &InvalidInputError{Op: "correlate", Reason: "component", Err: err}
		}
		vecmath.AddBlockInPlace(out, tmp)
	}
	return out, nil
}

func correlateSpectra(a, b *Components, i, j int) ([]float64, error) {
	n := len(a.cf[i])

	buf := make([]complex128, n)
	ac, as, ah := a.cf[i], a.sf[i], a.hf[i]
	bc, bs, bh := b.cf[j], b.sf[j], b.hf[j]
	for k := range buf {
		buf[k] = ac[k]*cmplx.Conj(bc[k]) + as[k]*cmplx.Conj(bs[k]) + ah[k]*cmplx.Conj(bh[k])
	}

	plan, err := fftplan.Get(n)
	if err != nil {
		return nil, &InvalidInputError{Op: "correlate", Reason: "fft plan", Err: err}
	}
	defer fftplan.Put(plan)

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, &InvalidInputError{Op: "correlate", Reason: "inverse transform", Err: err}
	}

	out := make([]float64, n)
	for k, v := range buf {
		out[k] = real(v)
	}
	vecmath.ScaleBlockInPlace(out, 0.5)
	return out, nil
}
