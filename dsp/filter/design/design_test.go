package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-mmcc/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 100.0

	lp := Lowpass(5, defaultQ, sr)
	if !almostEqual(mag(lp, 0, sr), 1, 1e-12) {
		t.Errorf("lowpass DC gain = %v, want 1", mag(lp, 0, sr))
	}
	if mag(lp, 40, sr) > 0.05 {
		t.Errorf("lowpass at 40 Hz = %v, want strong attenuation", mag(lp, 40, sr))
	}

	hp := Highpass(5, defaultQ, sr)
	if !almostEqual(mag(hp, 49.999, sr), 1, 1e-6) {
		t.Errorf("highpass near Nyquist = %v, want 1", mag(hp, 49.999, sr))
	}
	if mag(hp, 0, sr) > 1e-12 {
		t.Errorf("highpass DC gain = %v, want 0", mag(hp, 0, sr))
	}

	assertStableSection(t, lp)
	assertStableSection(t, hp)
}

func TestDesigners_InvalidInputs(t *testing.T) {
	for _, c := range []biquad.Coefficients{
		Lowpass(0, 1, 100),
		Lowpass(50, 1, 100),
		Highpass(-1, 1, 100),
		Highpass(10, 1, 0),
		Highpass(math.NaN(), 1, 100),
	} {
		if c != (biquad.Coefficients{}) {
			t.Errorf("expected zero coefficients, got %+v", c)
		}
	}

	// Non-positive Q falls back to Butterworth Q.
	if Lowpass(5, 0, 100) != Lowpass(5, defaultQ, 100) {
		t.Error("q=0 did not fall back to default")
	}
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return cmplx.Abs(c.Response(freq, sr))
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coefficient in %+v", c)
		}
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	// Poles of z^2 + A1 z + A2.
	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	p1 := (complex(-c.A1, 0) + disc) / 2
	p2 := (complex(-c.A1, 0) - disc) / 2
	if cmplx.Abs(p1) >= 1 || cmplx.Abs(p2) >= 1 {
		t.Fatalf("unstable section %+v: poles %v %v", c, p1, p2)
	}
}
