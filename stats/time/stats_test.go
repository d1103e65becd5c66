package time

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-mmcc/internal/testutil"
)

func TestDC(t *testing.T) {
	if got := DC(nil); got != 0 {
		t.Fatalf("DC(nil) = %v, want 0", got)
	}
	testutil.RequireNearlyEqual(t, DC([]float64{1, 2, 3, 4}), 2.5, 1e-15)
	testutil.RequireNearlyEqual(t, DC(testutil.DC(-0.3, 1000)), -0.3, 1e-15)
}

func TestEnergyRMSNorm(t *testing.T) {
	x := []float64{3, -4}
	testutil.RequireNearlyEqual(t, Energy(x), 25, 0)
	testutil.RequireNearlyEqual(t, RMS(x), math.Sqrt(12.5), 1e-15)
	testutil.RequireNearlyEqual(t, Norm(x), 5, 5e-3)

	if RMS(nil) != 0 || Norm(nil) != 0 || Energy(nil) != 0 {
		t.Fatal("empty input must yield 0")
	}
}

func TestNormScales(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 256)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 4 * v
	}
	testutil.RequireNearlyEqual(t, Norm(y)/Norm(x), 4, 1e-2)
}

func TestPeak(t *testing.T) {
	testutil.RequireNearlyEqual(t, Peak([]float64{0.5, -2, 1.5}), 2, 0)
	testutil.RequireNearlyEqual(t, Peak(nil), 0, 0)
}

func TestDemean(t *testing.T) {
	x := []float64{1, 2, 3, 6}
	Demean(x)
	testutil.RequireSliceNearlyEqual(t, x, []float64{-2, -1, 0, 3}, 1e-15)
}

func TestDetrend(t *testing.T) {
	const n = 200
	base := testutil.DeterministicSine(3, 100, 1, n)
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.7 - 0.02*float64(i)
	}

	if err := Detrend(x); err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	for i, v := range x {
		if math.Abs(v) > 1e-10 {
			t.Fatalf("index %d: residual %v after removing a pure line", i, v)
		}
	}

	y := make([]float64, n)
	for i := range y {
		y[i] = base[i] + 5 + 0.1*float64(i)
	}
	if err := Detrend(y); err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	testutil.RequireFinite(t, y)
	if dc := DC(y); math.Abs(dc) > 1e-9 {
		t.Fatalf("mean after detrend = %v, want 0", dc)
	}

	// Detrending is linear: the added line disappears.
	if err := Detrend(base); err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y, base, 1e-9)
}

func TestDetrendTooShort(t *testing.T) {
	if err := Detrend([]float64{1}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}
