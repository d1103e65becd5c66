package waveform

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by loaders. Detail is wrapped with fmt.Errorf.
var (
	ErrInvalidRequest = errors.New("waveform: invalid request")
	ErrRead           = errors.New("waveform: read failed")
	ErrFormat         = errors.New("waveform: malformed data")
)

// Defaults applied by [Request.WithDefaults].
const (
	DefaultCorners       = 4
	DefaultTaperFraction = 0.05
)

// Loader produces a prepared Batch for a Request.
type Loader interface {
	Load(ctx context.Context, req Request) (*Batch, error)
}

// Band is a pass band in Hz.
type Band struct {
	Low, High float64
}

// Window is a time window in seconds relative to a pick.
type Window struct {
	Start, End float64
}

// Request describes which traces to load and how to prepare them.
type Request struct {
	// Sources addresses the traces, file paths for SACLoader.
	Sources []string
	Band    Band
	Window  Window
	// Pick names the header time marker the window is relative to:
	// "b", "e", "o", "a", "f" or "t0".."t9".
	Pick string
	// Corners is the Butterworth order of each band edge.
	Corners int
	// ZeroPhase filters forward and backward.
	ZeroPhase bool
	// TaperFraction is the Hann taper length per side as a fraction of
	// the trace, in [0, 0.5].
	TaperFraction float64
}

// WithDefaults returns a copy of r with zero Corners and TaperFraction
// replaced by their defaults.
func (r Request) WithDefaults() Request {
	if r.Corners == 0 {
		r.Corners = DefaultCorners
	}
	if r.TaperFraction == 0 {
		r.TaperFraction = DefaultTaperFraction
	}
	return r
}

// Validate checks the parts of r that do not depend on the traces.
func (r Request) Validate() error {
	switch {
	case !(r.Band.Low < r.Band.High):
		return fmt.Errorf("%w: band low %g Hz must be below high %g Hz", ErrInvalidRequest, r.Band.Low, r.Band.High)
	case r.Band.Low <= 0 || math.IsInf(r.Band.High, 0):
		return fmt.Errorf("%w: band [%g, %g] Hz must be positive and finite", ErrInvalidRequest, r.Band.Low, r.Band.High)
	case !(r.Window.Start < r.Window.End):
		return fmt.Errorf("%w: window start %g s must be before end %g s", ErrInvalidRequest, r.Window.Start, r.Window.End)
	case r.Pick == "":
		return fmt.Errorf("%w: pick marker not set", ErrInvalidRequest)
	case r.Corners < 1:
		return fmt.Errorf("%w: corners must be >= 1: %d", ErrInvalidRequest, r.Corners)
	case r.TaperFraction < 0 || r.TaperFraction > 0.5:
		return fmt.Errorf("%w: taper fraction must be in [0, 0.5]: %g", ErrInvalidRequest, r.TaperFraction)
	}
	return nil
}

// Batch is a prepared set of equal-length traces.
type Batch struct {
	// SampleRate in Hz, shared by every row.
	SampleRate float64
	// Signals holds one trace per row.
	Signals *mat.Dense
	// Norms holds sqrt(sum x^2) of every row.
	Norms []float64
	// Stations labels every row.
	Stations []string
}

// Trace is one raw evenly sampled recording.
type Trace struct {
	Station    string
	SampleRate float64
	// Begin is the time of the first sample in seconds, on the same
	// clock as Picks.
	Begin float64
	Picks map[string]float64
	Data  []float64
}
