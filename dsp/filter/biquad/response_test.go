package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponse_DirectEvaluation(t *testing.T) {
	c := smoothing()
	for _, f := range []float64{0, 1, 10, 25, 49.9} {
		w := 2 * math.Pi * f / 100
		num := complex(c.B0, 0) + complex(c.B1, 0)*cmplx.Exp(complex(0, -w)) + complex(c.B2, 0)*cmplx.Exp(complex(0, -2*w))
		den := 1 + complex(c.A1, 0)*cmplx.Exp(complex(0, -w)) + complex(c.A2, 0)*cmplx.Exp(complex(0, -2*w))
		if got, want := c.Response(f, 100), num/den; cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
	}

	// DC gain: (0.25+0.5+0.25) / (1-0.2+0.04).
	if got := real(c.Response(0, 100)); !almostEqual(got, 1/0.84, 1e-12) {
		t.Errorf("DC gain = %v", got)
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs, WithGain(0.5))

	for _, f := range []float64{0.5, 4, 30} {
		want := 0.5 * coeffs[0].Response(f, 100) * coeffs[1].Response(f, 100)
		if got := c.Response(f, 100); cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
		db := 20 * math.Log10(cmplx.Abs(want))
		if got := c.MagnitudeDB(f, 100); !almostEqual(got, db, 1e-9) {
			t.Errorf("f=%v: MagnitudeDB = %v, want %v", f, got, db)
		}
		if got := c.ZeroPhaseMagnitudeDB(f, 100); !almostEqual(got, 2*db, 1e-9) {
			t.Errorf("f=%v: ZeroPhaseMagnitudeDB = %v, want %v", f, got, 2*db)
		}
	}
}
