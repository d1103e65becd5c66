package mmcc

import (
	"context"
	"errors"
	"math"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-mmcc/waveform"
)

// Result is the outcome of one estimation.
type Result struct {
	SampleRate  float64
	Method      Method
	Relative    Relative
	Reference   int
	Aggregation Aggregation

	// Lags holds one value per channel in samples.
	Lags []float64
	// Times holds Lags divided by SampleRate, in seconds.
	Times []float64
	// LagMatrix is the pairwise lag matrix in full mode, nil otherwise.
	LagMatrix *mat.Dense
	// Norms holds the L2 norm of every conditioned trace.
	Norms []float64
	// Stations labels every channel, when known.
	Stations []string
}

// Estimate runs decomposition, lag solving and aggregation on a prepared
// batch.
func Estimate(ctx context.Context, batch *waveform.Batch, opts ...Option) (*Result, error) {
	const op = "estimate"

	if batch == nil || batch.Signals == nil {
		return nil, invalid(op, "empty batch")
	}
	if batch.SampleRate <= 0 || math.IsNaN(batch.SampleRate) || math.IsInf(batch.SampleRate, 0) {
		return nil, invalid(op, "sample rate %v", batch.SampleRate)
	}

	rows, _ := batch.Signals.Dims()
	if len(batch.Norms) != 0 && len(batch.Norms) != rows {
		return nil, invalid(op, "%d norms for %d channels", len(batch.Norms), rows)
	}

	cfg := ApplyOptions(opts...)
	started := time.Now()
	if cfg.Relative == RelativeSingle && (cfg.Reference < 0 || cfg.Reference >= rows) {
		return nil, invalid(op, "reference %d out of range [0,%d)", cfg.Reference, rows)
	}

	comps, err := Decompose(batch.Signals, cfg.Method)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("decomposed signals",
		"channels", comps.Channels(),
		"samples", comps.Samples(),
		"method", cfg.Method.String(),
	)

	res := &Result{
		SampleRate:  batch.SampleRate,
		Method:      cfg.Method,
		Relative:    cfg.Relative,
		Aggregation: cfg.Aggregation,
		Norms:       append([]float64(nil), batch.Norms...),
		Stations:    append([]string(nil), batch.Stations...),
	}

	switch cfg.Relative {
	case RelativeFull:
		res.LagMatrix, err = SolveLags(ctx, comps, opts...)
		if err != nil {
			return nil, err
		}
		if cfg.Aggregation == AggregationLeastSquares {
			res.Lags, err = AggregateLeastSquares(res.LagMatrix)
		} else {
			res.Lags, err = Aggregate(res.LagMatrix)
		}
		if err != nil {
			return nil, err
		}
	case RelativeSingle:
		res.Reference = cfg.Reference
		if res.Lags, err = SolveReference(ctx, comps, cfg.Reference, opts...); err != nil {
			return nil, err
		}
	default:
		return nil, invalid(op, "unknown relative method %v", cfg.Relative)
	}

	res.Times = make([]float64, len(res.Lags))
	vecmath.ScaleBlock(res.Times, res.Lags, 1/batch.SampleRate)

	cfg.Logger.Debug("estimated delays",
		"relative", cfg.Relative.String(),
		"aggregation", cfg.Aggregation.String(),
		"sample_rate", batch.SampleRate,
		"elapsed", time.Since(started),
	)
	return res, nil
}

// Run loads a batch with loader and estimates its delays. Requests rejected
// by the loader are reported as [InvalidInputError]; read and format
// failures are returned unchanged.
func Run(ctx context.Context, loader waveform.Loader, req waveform.Request, opts ...Option) (*Result, error) {
	if loader == nil {
		return nil, invalid("run", "nil loader")
	}

	batch, err := loader.Load(ctx, req)
	if err != nil {
		if errors.Is(err, waveform.ErrInvalidRequest) {
			return nil, &InvalidInputError{Op: "run", Reason: "request rejected", Err: err}
		}
		return nil, err
	}
	if batch == nil {
		return nil, invalid("run", "loader returned no batch")
	}

	cfg := ApplyOptions(opts...)
	cfg.Logger.Debug("loaded batch",
		"sources", len(req.Sources),
		"channels", len(batch.Norms),
		"sample_rate", batch.SampleRate,
	)
	return Estimate(ctx, batch, opts...)
}
