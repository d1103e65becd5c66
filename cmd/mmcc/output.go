package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-mmcc/mmcc"
)

type channelReport struct {
	Station string  `json:"station"`
	Time    float64 `json:"time_s"`
	Lag     float64 `json:"lag_samples"`
	Norm    float64 `json:"norm"`
}

type report struct {
	RunID       string          `json:"run_id"`
	Method      string          `json:"method"`
	Relative    string          `json:"relative"`
	Reference   *int            `json:"reference,omitempty"`
	Aggregation string          `json:"aggregation,omitempty"`
	SampleRate  float64         `json:"sample_rate_hz"`
	Channels    []channelReport `json:"channels"`
}

func newReport(runID uuid.UUID, res *mmcc.Result) report {
	r := report{
		RunID:      runID.String(),
		Method:     res.Method.String(),
		Relative:   res.Relative.String(),
		SampleRate: res.SampleRate,
		Channels:   make([]channelReport, len(res.Lags)),
	}
	if res.Relative == mmcc.RelativeSingle {
		ref := res.Reference
		r.Reference = &ref
	} else {
		r.Aggregation = res.Aggregation.String()
	}

	for i := range res.Lags {
		ch := channelReport{
			Station: strconv.Itoa(i),
			Time:    res.Times[i],
			Lag:     res.Lags[i],
		}
		if i < len(res.Stations) && res.Stations[i] != "" {
			ch.Station = res.Stations[i]
		}
		if i < len(res.Norms) {
			ch.Norm = res.Norms[i]
		}
		r.Channels[i] = ch
	}
	return r
}

func writeResult(w io.Writer, format string, runID uuid.UUID, res *mmcc.Result) error {
	r := newReport(runID, res)

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Station\tTime (s)\tLag\tNorm\t")
	for _, ch := range r.Channels {
		fmt.Fprintf(tw, "%s\t%.4f\t%.2f\t%.4g\t\n", ch.Station, ch.Time, ch.Lag, ch.Norm)
	}
	return tw.Flush()
}
