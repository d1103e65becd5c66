package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-mmcc/dsp/conv"
	"github.com/cwbudde/algo-mmcc/mmcc"
	"github.com/cwbudde/algo-mmcc/waveform"
)

// plotCorrelations writes one PNG per non-reference channel showing the
// summed correlation against lag in seconds.
func plotCorrelations(dir string, batch *waveform.Batch, res *mmcc.Result) ([]string, error) {
	if batch == nil {
		return nil, fmt.Errorf("plot: no batch loaded")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}

	comps, err := mmcc.Decompose(batch.Signals, res.Method)
	if err != nil {
		return nil, err
	}

	var files []string
	for i := range comps.Channels() {
		if i == res.Reference {
			continue
		}
		corr, err := mmcc.Correlate(comps, comps, i, res.Reference)
		if err != nil {
			return nil, err
		}

		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s vs %s: %+.3f s", stationName(res, i), stationName(res, res.Reference), res.Times[i])
		p.X.Label.Text = "Lag (s)"
		p.Y.Label.Text = "MMCC"
		p.Add(plotter.NewGrid())

		line, err := plotter.NewLine(lagSeries(corr, res.Method, comps.Samples(), res.SampleRate))
		if err != nil {
			return nil, fmt.Errorf("plot: %w", err)
		}
		line.Width = vg.Points(1)
		p.Add(line)

		name := filepath.Join(dir, fmt.Sprintf("mmcc_%02d_%s.png", i, fileSafe(stationName(res, i))))
		if err := p.Save(10*vg.Inch, 4*vg.Inch, name); err != nil {
			return nil, fmt.Errorf("plot: %w", err)
		}
		files = append(files, name)
	}
	return files, nil
}

// lagSeries orders corr by increasing lag in seconds.
func lagSeries(corr []float64, method mmcc.Method, n int, fs float64) plotter.XYs {
	pts := make(plotter.XYs, len(corr))
	if method == mmcc.MethodTime {
		for k, v := range corr {
			pts[k] = plotter.XY{X: float64(conv.LagFromIndex(k, n)) / fs, Y: v}
		}
		return pts
	}

	m := len(corr)
	start := m/2 + 1
	for i := range pts {
		k := (start + i) % m
		pts[i] = plotter.XY{X: float64(conv.FoldCircularLag(k, m)) / fs, Y: corr[k]}
	}
	return pts
}

func stationName(res *mmcc.Result, i int) string {
	if i < len(res.Stations) && res.Stations[i] != "" {
		return res.Stations[i]
	}
	return fmt.Sprintf("ch%d", i)
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, s)
}
