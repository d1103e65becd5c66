package mmcc

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-mmcc/internal/testutil"
)

func BenchmarkSolveLags(b *testing.B) {
	signals := testutil.DelayedWavelets(5, 100, 0.1, 2000, 0, 3, -7, 12, 5, -1, 9, -4)

	for _, method := range []Method{MethodFrequency, MethodTime} {
		comps, err := Decompose(signals, method)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(method.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := SolveLags(context.Background(), comps); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecompose(b *testing.B) {
	signals := testutil.DelayedWavelets(5, 100, 0.1, 2000, 0, 3, -7, 12)

	for _, method := range []Method{MethodFrequency, MethodTime} {
		b.Run(method.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Decompose(signals, method); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
