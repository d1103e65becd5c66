package waveform

import (
	"context"
	"fmt"
)

// SACLoader reads every request source as a SAC file and prepares the
// traces with [Prepare].
type SACLoader struct{}

// Load implements Loader.
func (SACLoader) Load(ctx context.Context, req Request) (*Batch, error) {
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("%w: no sources", ErrInvalidRequest)
	}

	traces := make([]Trace, 0, len(req.Sources))
	for _, path := range req.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := ReadSACFile(path)
		if err != nil {
			return nil, err
		}
		traces = append(traces, s.Trace())
	}

	return Prepare(traces, req)
}

// MemoryLoader prepares traces held in memory. With no request sources all
// traces are used in order; otherwise sources select traces by station.
type MemoryLoader struct {
	Traces []Trace
}

// Load implements Loader.
func (m MemoryLoader) Load(ctx context.Context, req Request) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Sources) == 0 {
		return Prepare(m.Traces, req)
	}

	byStation := make(map[string]int, len(m.Traces))
	for i, tr := range m.Traces {
		byStation[tr.Station] = i
	}

	traces := make([]Trace, 0, len(req.Sources))
	for _, src := range req.Sources {
		i, ok := byStation[src]
		if !ok {
			return nil, fmt.Errorf("%w: unknown source %q", ErrRead, src)
		}
		traces = append(traces, m.Traces[i])
	}

	return Prepare(traces, req)
}
