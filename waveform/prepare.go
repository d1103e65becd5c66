package waveform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mmcc/dsp/filter/biquad"
	"github.com/cwbudde/algo-mmcc/dsp/filter/design"
	"github.com/cwbudde/algo-mmcc/dsp/window"
	timestats "github.com/cwbudde/algo-mmcc/stats/time"
	"gonum.org/v1/gonum/mat"
)

// rateTolerance is the relative difference below which two sampling rates
// are equal.
const rateTolerance = 1e-6

// Prepare detrends, tapers, band-passes and cuts traces according to req.
// The input traces are not modified.
func Prepare(traces []Trace, req Request) (*Batch, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(traces) == 0 {
		return nil, fmt.Errorf("%w: no traces", ErrInvalidRequest)
	}

	fs := traces[0].SampleRate
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("%w: %s: sampling rate %g", ErrInvalidRequest, traces[0].Station, fs)
	}
	for _, tr := range traces[1:] {
		if math.Abs(tr.SampleRate-fs) > rateTolerance*fs {
			return nil, fmt.Errorf("%w: %s: sampling rate %g differs from %g", ErrInvalidRequest, tr.Station, tr.SampleRate, fs)
		}
	}

	sections, err := design.ButterworthBandpass(req.Band.Low, req.Band.High, req.Corners, fs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	chain := biquad.NewChain(sections)

	n := int(math.Round((req.Window.End-req.Window.Start)*fs)) + 1
	out := mat.NewDense(len(traces), n, nil)
	norms := make([]float64, len(traces))
	stations := make([]string, len(traces))

	for i, tr := range traces {
		pick, ok := tr.Picks[req.Pick]
		if !ok {
			return nil, fmt.Errorf("%w: %s: pick %q undefined", ErrInvalidRequest, tr.Station, req.Pick)
		}

		begin := int(math.Round((pick + req.Window.Start - tr.Begin) * fs))
		if begin < 0 || begin+n > len(tr.Data) {
			return nil, fmt.Errorf("%w: %s: window [%g, %g] s around %s=%g s exceeds trace [%g, %g] s",
				ErrInvalidRequest, tr.Station, req.Window.Start, req.Window.End, req.Pick, pick,
				tr.Begin, tr.Begin+float64(len(tr.Data)-1)/fs)
		}

		data := append([]float64(nil), tr.Data...)
		if err := condition(data, chain, req); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRequest, tr.Station, err)
		}

		row := data[begin : begin+n]
		out.SetRow(i, row)
		norms[i] = timestats.Norm(row)
		stations[i] = tr.Station
	}

	return &Batch{
		SampleRate: fs,
		Signals:    out,
		Norms:      norms,
		Stations:   stations,
	}, nil
}

// condition detrends, tapers and filters data in place.
func condition(data []float64, chain *biquad.Chain, req Request) error {
	if err := timestats.Detrend(data); err != nil {
		return err
	}
	if err := window.Taper(data, req.TaperFraction); err != nil {
		return err
	}

	if req.ZeroPhase {
		chain.FiltFilt(data)
		return nil
	}
	chain.Reset()
	chain.ProcessBlock(data)
	return nil
}
