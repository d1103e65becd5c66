package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-mmcc/internal/testutil"
	"github.com/cwbudde/algo-mmcc/mmcc"
	"github.com/cwbudde/algo-mmcc/waveform"
)

const testRate = 100.0

// writeBursts writes one 20 s SAC file per onset with pick t1 at 10 s.
func writeBursts(t *testing.T, dir string, onsets ...float64) []string {
	t.Helper()
	paths := make([]string, len(onsets))
	for i, on := range onsets {
		station := string(rune('A' + i))
		s := waveform.NewSAC(station, 1/testRate, 0, testutil.Wavelet(2, testRate, 0.1, on*testRate, 2000))
		require.True(t, s.SetMarker("t1", 10))

		paths[i] = filepath.Join(dir, station+".sac")
		f, err := os.Create(paths[i])
		require.NoError(t, err)
		require.NoError(t, waveform.WriteSAC(f, s))
		require.NoError(t, f.Close())
	}
	return paths
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunJSON(t *testing.T) {
	files := writeBursts(t, t.TempDir(), 10, 10.1, 9.95)

	args := append([]string{
		"run", "--format", "json",
		"--band-low", "0.5", "--band-high", "8",
		"--window-start", "-2", "--window-end", "2",
		"--zero-phase",
	}, files...)
	stdout, _, err := execute(t, args...)
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	_, err = uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "frequency", r.Method)
	assert.Equal(t, "full", r.Relative)
	assert.Equal(t, "pairwise", r.Aggregation)
	assert.Nil(t, r.Reference)
	require.Len(t, r.Channels, 3)

	want := []float64{0, 0.1, -0.05}
	mean := (want[0] + want[1] + want[2]) / 3
	for i, ch := range r.Channels {
		assert.Equal(t, string(rune('A'+i)), ch.Station)
		assert.InDelta(t, want[i]-mean, ch.Time, 0.011, "station %s", ch.Station)
		assert.Greater(t, ch.Norm, 0.0)
	}
}

func TestRunConfigAndPlots(t *testing.T) {
	dir := t.TempDir()
	files := writeBursts(t, dir, 10, 10.2)

	cfgPath := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"band_low": 0.5,
		"band_high": 8,
		"window_start": -30,
		"window_end": 2,
		"relative": "single",
		"method": "time"
	}`), 0o600))

	plotDir := filepath.Join(dir, "plots")
	args := append([]string{
		"run", "--config", cfgPath,
		"--window-start", "-2",
		"--plot-dir", plotDir,
	}, files...)
	stdout, _, err := execute(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Station")
	assert.Contains(t, lines[2], "B")
	assert.Contains(t, lines[2], "0.2000")

	_, err = os.Stat(filepath.Join(plotDir, "mmcc_01_B.png"))
	require.NoError(t, err)
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "run", "only.sac")
	require.Error(t, err)

	_, _, err = execute(t, "run", "--method", "wavelet", "a.sac", "b.sac")
	require.ErrorContains(t, err, "unknown method")

	_, _, err = execute(t, "run", filepath.Join(t.TempDir(), "a.sac"), filepath.Join(t.TempDir(), "b.sac"))
	require.ErrorIs(t, err, waveform.ErrRead)

	files := writeBursts(t, t.TempDir(), 10, 10)
	_, _, err = execute(t, append([]string{"run", "--window-start", "-50"}, files...)...)
	require.ErrorIs(t, err, mmcc.ErrInvalidInput)
}

func TestInfoAndVersion(t *testing.T) {
	stdout, _, err := execute(t, "info", "--sizes", "64,1000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Architecture")
	assert.Contains(t, stdout, "FFT length")
	assert.Contains(t, stdout, "1000")
	assert.Contains(t, stdout, "gonum")

	stdout, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mmcc dev\n", stdout)
}

func TestWriteResultTable(t *testing.T) {
	res := &mmcc.Result{
		SampleRate: 100,
		Method:     mmcc.MethodTime,
		Relative:   mmcc.RelativeSingle,
		Reference:  0,
		Lags:       []float64{0, 12},
		Times:      []float64{0, 0.12},
		Norms:      []float64{1.5, 2},
		Stations:   []string{"IU.ANMO"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, "table", uuid.New(), res))
	out := buf.String()
	assert.Contains(t, out, "IU.ANMO")
	assert.Contains(t, out, "0.1200")
	assert.Contains(t, out, "12.00")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "1"), "unnamed channel falls back to its index")

	buf.Reset()
	id := uuid.New()
	require.NoError(t, writeResult(&buf, "json", id, res))
	var r report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.Equal(t, id.String(), r.RunID)
	require.NotNil(t, r.Reference)
	assert.Equal(t, 0, *r.Reference)
	assert.Empty(t, r.Aggregation)
}

func TestLagSeriesOrdered(t *testing.T) {
	freq := lagSeries([]float64{10, 11, 12, 13, 14, 15, 16, 17}, mmcc.MethodFrequency, 4, 1)
	var xs, ys []float64
	for _, p := range freq {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	assert.Equal(t, []float64{-3, -2, -1, 0, 1, 2, 3, 4}, xs)
	assert.Equal(t, []float64{15, 16, 17, 10, 11, 12, 13, 14}, ys)

	tm := lagSeries([]float64{1, 2, 3, 4, 5}, mmcc.MethodTime, 3, 2)
	assert.Equal(t, -1.0, tm[0].X)
	assert.Equal(t, 0.0, tm[2].X)
	assert.Equal(t, 1.0, tm[4].X)
}

func TestPlotCorrelations(t *testing.T) {
	batch := &waveform.Batch{
		SampleRate: testRate,
		Signals:    testutil.DelayedWavelets(5, testRate, 0.1, 200, 0, 4, -2),
	}
	res := &mmcc.Result{
		SampleRate: testRate,
		Method:     mmcc.MethodFrequency,
		Relative:   mmcc.RelativeSingle,
		Reference:  1,
		Times:      []float64{-0.04, 0, -0.06},
		Stations:   []string{"X/1", "Y"},
	}

	dir := filepath.Join(t.TempDir(), "out")
	files, err := plotCorrelations(dir, batch, res)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "mmcc_00_X_1.png"),
		filepath.Join(dir, "mmcc_02_ch2.png"),
	}, files)

	_, err = plotCorrelations(dir, nil, res)
	require.Error(t, err)

	bad := &waveform.Batch{SampleRate: testRate, Signals: mat.NewDense(1, 10, nil)}
	_, err = plotCorrelations(dir, bad, res)
	require.ErrorIs(t, err, mmcc.ErrInvalidInput)
}
