package mmcc

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-mmcc/dsp/conv"
)

// PeakLag returns the lag of the first maximum of corr, a correlation of
// signals with n samples laid out as produced by [Correlate] for method.
func PeakLag(corr []float64, method Method, n int) (int, error) {
	const op = "peak"

	switch method {
	case MethodTime:
		if n < 1 || len(corr) != 2*n-1 {
			return 0, invalid(op, "time correlation length %d for %d samples", len(corr), n)
		}
		idx, _ := conv.FindPeak(corr)
		return conv.LagFromIndex(idx, n), nil
	case MethodFrequency:
		if len(corr) == 0 {
			return 0, invalid(op, "empty correlation")
		}
		idx, _ := conv.FindPeak(corr)
		return conv.FoldCircularLag(idx, len(corr)), nil
	default:
		return 0, invalid(op, "unknown method %v", method)
	}
}

// pairLag correlates channels i and j and returns arrival(i)-arrival(j).
func pairLag(comps *Components, i, j int) (int, error) {
	corr, err := Correlate(comps, comps, i, j)
	if err != nil {
		return 0, err
	}
	return PeakLag(corr, comps.method, comps.samples)
}

// SolveLags correlates every pair i<j and returns the L x L lag matrix
// with M[i,j] = arrival(i)-arrival(j) in samples. The diagonal and lower
// triangle are zero. Pairs are processed concurrently.
func SolveLags(ctx context.Context, comps *Components, opts ...Option) (*mat.Dense, error) {
	const op = "solve"

	if comps == nil {
		return nil, invalid(op, "nil components")
	}
	if comps.channels < 2 {
		return nil, invalid(op, "need at least 2 channels, got %d", comps.channels)
	}
	if err := comps.checkShape(op); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)
	n := comps.channels
	lags := mat.NewDense(n, n, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				lag, err := pairLag(comps, i, j)
				if err != nil {
					return err
				}
				lags.Set(i, j, float64(lag))
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg.Logger.Debug("solved pairwise lags",
		"channels", n,
		"pairs", n*(n-1)/2,
		"method", comps.method.String(),
		"workers", cfg.Workers,
	)
	return lags, nil
}

// SolveReference returns arrival(i)-arrival(ref) in samples for every
// channel i. Entry ref is 0.
func SolveReference(ctx context.Context, comps *Components, ref int, opts ...Option) ([]float64, error) {
	const op = "solve"

	if comps == nil {
		return nil, invalid(op, "nil components")
	}
	if ref < 0 || ref >= comps.channels {
		return nil, invalid(op, "reference %d out of range [0,%d)", ref, comps.channels)
	}
	if err := comps.checkShape(op); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)
	out := make([]float64, comps.channels)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range comps.channels {
		if i == ref {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lag, err := pairLag(comps, i, ref)
			if err != nil {
				return err
			}
			out[i] = float64(lag)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg.Logger.Debug("solved reference lags",
		"channels", comps.channels,
		"reference", ref,
		"method", comps.method.String(),
	)
	return out, nil
}
