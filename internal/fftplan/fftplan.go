// Package fftplan provides complex FFT plans of arbitrary length.
//
// Power-of-two lengths use an algo-fft plan. Every other length uses the
// gonum mixed-radix transform. Inverse transforms are normalized by 1/n
// for both backends, so IFFT(FFT(x)) == x.
//
// A Plan is not safe for concurrent use. Use [Get] and [Put] to share plans
// of the same length between goroutines.
package fftplan

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by plan construction and execution.
var (
	ErrInvalidLength  = errors.New("fftplan: invalid length")
	ErrLengthMismatch = errors.New("fftplan: buffer length mismatch")
)

// Backend identifies the transform implementation behind a Plan.
type Backend int

const (
	// BackendAlgoFFT uses github.com/MeKo-Christian/algo-fft.
	BackendAlgoFFT Backend = iota
	// BackendGonum uses gonum.org/v1/gonum/dsp/fourier.
	BackendGonum
)

func (b Backend) String() string {
	switch b {
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	default:
		return "unknown"
	}
}

// Plan is a complex-to-complex FFT of fixed length.
type Plan struct {
	n       int
	backend Backend

	algo  *algofft.Plan[complex128]
	gonum *fourier.CmplxFFT
}

// New creates a plan for length n.
func New(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if isPowerOf2(n) {
		if p, err := algofft.NewPlan64(n); err == nil {
			return &Plan{n: n, backend: BackendAlgoFFT, algo: p}, nil
		}
	}

	return &Plan{n: n, backend: BackendGonum, gonum: fourier.NewCmplxFFT(n)}, nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Backend returns the implementation selected for this length.
func (p *Plan) Backend() Backend { return p.backend }

// Forward computes the unnormalized DFT of src into dst.
// dst and src may be the same slice.
func (p *Plan) Forward(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrLengthMismatch
	}

	if p.backend == BackendAlgoFFT {
		if err := p.algo.Forward(dst, unalias(dst, src)); err != nil {
			return fmt.Errorf("fftplan: forward FFT failed: %w", err)
		}
		return nil
	}

	p.gonum.Coefficients(dst, src)
	return nil
}

// Inverse computes the inverse DFT of src into dst, scaled by 1/n.
// dst and src may be the same slice.
func (p *Plan) Inverse(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrLengthMismatch
	}

	if p.backend == BackendAlgoFFT {
		if err := p.algo.Inverse(dst, unalias(dst, src)); err != nil {
			return fmt.Errorf("fftplan: inverse FFT failed: %w", err)
		}
		return nil
	}

	p.gonum.Sequence(dst, src)
	scale := complex(1/float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// unalias returns a copy of src when it shares storage with dst.
func unalias(dst, src []complex128) []complex128 {
	if len(src) > 0 && &dst[0] == &src[0] {
		return append([]complex128(nil), src...)
	}
	return src
}

// pools maps a transform length to a *sync.Pool of plans.
var pools sync.Map

// Get returns a pooled plan of length n, creating one if none is idle.
func Get(n int) (*Plan, error) {
	if v, ok := pools.Load(n); ok {
		if p, _ := v.(*sync.Pool).Get().(*Plan); p != nil {
			return p, nil
		}
	}
	return New(n)
}

// Put returns a plan obtained from [Get] or [New] to the pool.
func Put(p *Plan) {
	if p == nil {
		return
	}
	v, _ := pools.LoadOrStore(p.n, &sync.Pool{})
	v.(*sync.Pool).Put(p)
}
