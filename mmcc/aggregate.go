package mmcc

import (
	"gonum.org/v1/gonum/mat"
)

// Aggregate reduces an upper-triangular lag matrix to one value per
// channel by pairwise-consistency averaging:
//
//	t_k = (sum_{j>k} M[k,j] - sum_{i<k} M[i,k]) / L
//
// The result sums to zero. Entries on or below the diagonal are ignored.
func Aggregate(lags mat.Matrix) ([]float64, error) {
	n, err := squareSize("aggregate", lags)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			v := lags.At(i, j)
			out[i] += v
			out[j] -= v
		}
	}
	for k := range out {
		out[k] /= float64(n)
	}
	return out, nil
}

// AggregateLeastSquares solves t_i - t_j = M[i,j] for all i<j in the
// least-squares sense with the gauge sum(t) = 0.
//
// For a complete pair set this equals [Aggregate].
func AggregateLeastSquares(lags mat.Matrix) ([]float64, error) {
	n, err := squareSize("aggregate", lags)
	if err != nil {
		return nil, err
	}

	pairs := n * (n - 1) / 2
	a := mat.NewDense(pairs+1, n, nil)
	b := mat.NewVecDense(pairs+1, nil)

	r := 0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			a.Set(r, i, 1)
			a.Set(r, j, -1)
			b.SetVec(r, lags.At(i, j))
			r++
		}
	}
	for k := range n {
		a.Set(pairs, k, 1)
	}

	var t mat.VecDense
	if err := t.SolveVec(a, b); err != nil {
		return nil, &InvalidInputError{Op: "aggregate", Reason: "least-squares solve", Err: err}
	}
	return append([]float64(nil), t.RawVector().Data...), nil
}

func squareSize(op string, m mat.Matrix) (int, error) {
	if m == nil {
		return 0, invalid(op, "nil lag matrix")
	}
	r, c := m.Dims()
	if r != c {
		return 0, invalid(op, "lag matrix is %dx%d, want square", r, c)
	}
	if r < 2 {
		return 0, invalid(op, "need at least 2 channels, got %d", r)
	}
	return r, nil
}
