package window

import (
	"math"
	"testing"
)

func TestGenerate(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann} {
		w := Generate(typ, 64)
		if len(w) != 64 {
			t.Fatalf("type %d: len=%d, want 64", typ, len(w))
		}

		for i, v := range w {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
				t.Fatalf("type %d: coefficient[%d] invalid: %v", typ, i, v)
			}
		}
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}

	hann, err := Hann(8)
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}
	checkGolden(t, hann, hannExpected, 1e-10)
	checkGolden(t, Generate(TypeRectangular, 3), []float64{1, 1, 1}, 0)
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	coeffs := Generate(TypeHann, 8)
	if err := ApplyCoefficientsInPlace(buf, coeffs); err != nil {
		t.Fatalf("ApplyCoefficientsInPlace: %v", err)
	}
	checkGolden(t, buf, coeffs, 1e-15)
}

func TestEdgeTaperMatchesHannHalf(t *testing.T) {
	w, err := EdgeTaper(100, 0.1)
	if err != nil {
		t.Fatalf("EdgeTaper: %v", err)
	}
	hann, _ := Hann(21)
	checkGolden(t, w[:10], hann[:10], 0)
	if w[10] != 1 || w[89] != 1 {
		t.Fatalf("middle not flat: w[10]=%v w[89]=%v", w[10], w[89])
	}
}

func TestEdgeTaper(t *testing.T) {
	w, err := EdgeTaper(10, 0.2)
	if err != nil {
		t.Fatalf("EdgeTaper: %v", err)
	}
	checkGolden(t, w, []float64{0, 0.5, 1, 1, 1, 1, 1, 1, 0.5, 0}, 1e-12)

	w, err = EdgeTaper(10, 0.05)
	if err != nil {
		t.Fatalf("EdgeTaper: %v", err)
	}
	for i, v := range w {
		if v != 1 {
			t.Fatalf("index %d: got %v, want 1 for a zero-length ramp", i, v)
		}
	}
}

func TestEdgeTaperSymmetricAndMonotonic(t *testing.T) {
	const size = 400
	w, err := EdgeTaper(size, 0.05)
	if err != nil {
		t.Fatalf("EdgeTaper: %v", err)
	}

	for i := 0; i < size/2; i++ {
		if w[i] != w[size-1-i] {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[size-1-i])
		}
	}
	for i := 1; i < 20; i++ {
		if w[i] <= w[i-1] {
			t.Fatalf("ramp not increasing at %d", i)
		}
	}
	if w[20] != 1 {
		t.Fatalf("w[20] = %v, want 1", w[20])
	}
}

func TestTaper(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	if err := Taper(buf, 0.2); err != nil {
		t.Fatalf("Taper: %v", err)
	}
	checkGolden(t, buf, []float64{0, 1, 2, 2, 2, 2, 2, 2, 1, 0}, 1e-12)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := EdgeTaper(16, 0.6); err == nil {
		t.Fatal("expected fraction validation error")
	}

	if _, err := EdgeTaper(0, 0.1); err == nil {
		t.Fatal("expected size validation error")
	}

	if err := ApplyCoefficientsInPlace([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
