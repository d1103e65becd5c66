package biquad

import (
	"testing"
)

func TestFiltFilt_SymmetricImpulseResponse(t *testing.T) {
	const n, center = 201, 100
	buf := make([]float64, n)
	buf[center] = 1

	c := NewChain(twoSectionCoeffs())
	c.FiltFilt(buf)

	peak := 0
	for i := range buf {
		if buf[i] > buf[peak] {
			peak = i
		}
	}
	if peak != center {
		t.Fatalf("peak at %d, want %d", peak, center)
	}
	for k := 1; k < center; k++ {
		if !almostEqual(buf[center+k], buf[center-k], 1e-12) {
			t.Fatalf("lag %d: %v vs %v", k, buf[center+k], buf[center-k])
		}
	}
	for i, st := range c.State() {
		if st != [2]float64{} {
			t.Fatalf("section %d state not reset: %v", i, st)
		}
	}
}

func TestFiltFilt_SquaresMagnitude(t *testing.T) {
	// A zero-phase pass applies |H|^2 to the DC gain.
	c := NewChain(twoSectionCoeffs())
	dc := c.Response(0, 1)
	want := real(dc)*real(dc) + imag(dc)*imag(dc)

	buf := make([]float64, 4000)
	for i := range buf {
		buf[i] = 1
	}
	c.FiltFilt(buf)

	if !almostEqual(buf[len(buf)/2], want, 1e-9) {
		t.Fatalf("mid-buffer gain %v, want %v", buf[len(buf)/2], want)
	}
}
