package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-mmcc/internal/config"
	"github.com/cwbudde/algo-mmcc/mmcc"
	"github.com/cwbudde/algo-mmcc/waveform"
)

type runFlags struct {
	configPath string

	method      string
	relative    string
	reference   int
	aggregation string
	workers     int

	bandLow     float64
	bandHigh    float64
	windowStart float64
	windowEnd   float64
	pick        string
	corners     int
	zeroPhase   bool
	taper       float64

	format  string
	plotDir string
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [flags] file.sac ...",
		Short: "Estimate relative arrival times from SAC files",
		Long: `Reads the SAC files, detrends, tapers and band-passes every trace, cuts a
window around the pick and estimates one relative time per station.

Values from --config are defaults; flags given on the command line override
them.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "JSON run configuration file")
	fl.StringVar(&f.method, "method", config.DefaultMethod, "correlation domain (frequency, time)")
	fl.StringVar(&f.relative, "relative", config.DefaultRelative, "full: all pairs, single: against --ref")
	fl.IntVar(&f.reference, "ref", 0, "reference channel for --relative single")
	fl.StringVar(&f.aggregation, "aggregation", config.DefaultAggregation, "full-mode reduction (pairwise, lstsq)")
	fl.IntVar(&f.workers, "workers", 0, "concurrent pair correlations (0: one per CPU)")
	fl.Float64Var(&f.bandLow, "band-low", config.DefaultBandLow, "bandpass low corner in Hz")
	fl.Float64Var(&f.bandHigh, "band-high", config.DefaultBandHigh, "bandpass high corner in Hz")
	fl.Float64Var(&f.windowStart, "window-start", config.DefaultWindowStart, "window start in seconds relative to the pick")
	fl.Float64Var(&f.windowEnd, "window-end", config.DefaultWindowEnd, "window end in seconds relative to the pick")
	fl.StringVar(&f.pick, "pick", config.DefaultPick, "SAC time marker to align on (b, e, o, a, f, t0-t9)")
	fl.IntVar(&f.corners, "corners", waveform.DefaultCorners, "Butterworth order per band edge")
	fl.BoolVar(&f.zeroPhase, "zero-phase", false, "filter forward and backward")
	fl.Float64Var(&f.taper, "taper", waveform.DefaultTaperFraction, "Hann taper fraction per side")
	fl.StringVar(&f.format, "format", config.DefaultFormat, "output format (table, json)")
	fl.StringVar(&f.plotDir, "plot-dir", "", "write correlation plots (single mode) to this directory")
	return cmd
}

// resolve merges the config file with the flags set on the command line.
func (f *runFlags) resolve(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := &config.RunConfig{}
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	setString := func(name string, dst **string, v string) {
		if changed(name) {
			*dst = &v
		}
	}
	setInt := func(name string, dst **int, v int) {
		if changed(name) {
			*dst = &v
		}
	}
	setFloat := func(name string, dst **float64, v float64) {
		if changed(name) {
			*dst = &v
		}
	}

	setString("method", &cfg.Method, f.method)
	setString("relative", &cfg.Relative, f.relative)
	setInt("ref", &cfg.Reference, f.reference)
	setString("aggregation", &cfg.Aggregation, f.aggregation)
	setInt("workers", &cfg.Workers, f.workers)
	setFloat("band-low", &cfg.BandLow, f.bandLow)
	setFloat("band-high", &cfg.BandHigh, f.bandHigh)
	setFloat("window-start", &cfg.WindowStart, f.windowStart)
	setFloat("window-end", &cfg.WindowEnd, f.windowEnd)
	setString("pick", &cfg.Pick, f.pick)
	setInt("corners", &cfg.Corners, f.corners)
	setFloat("taper", &cfg.Taper, f.taper)
	setString("format", &cfg.Format, f.format)
	setString("plot-dir", &cfg.PlotDir, f.plotDir)
	if changed("zero-phase") {
		zp := f.zeroPhase
		cfg.ZeroPhase = &zp
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// keepBatch remembers the last batch it loaded.
type keepBatch struct {
	waveform.Loader
	batch *waveform.Batch
}

func (k *keepBatch) Load(ctx context.Context, req waveform.Request) (*waveform.Batch, error) {
	b, err := k.Loader.Load(ctx, req)
	k.batch = b
	return b, err
}

func (a *app) run(ctx context.Context, cfg *config.RunConfig, sources []string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, mmcc.WithLogger(a.logger))

	runID := uuid.New()
	req := cfg.Request(sources)
	a.logger.Info("loading traces",
		"run", runID.String(),
		"files", len(sources),
		"band", fmt.Sprintf("%g-%g Hz", req.Band.Low, req.Band.High),
		"pick", req.Pick,
	)

	loader := &keepBatch{Loader: waveform.SACLoader{}}
	res, err := mmcc.Run(ctx, loader, req, opts...)
	if err != nil {
		return err
	}
	a.logger.Info("estimated delays",
		"run", runID.String(),
		"stations", res.Stations,
		"method", res.Method.String(),
		"relative", res.Relative.String(),
	)

	if err := writeResult(a.stdout, cfg.GetFormat(), runID, res); err != nil {
		return err
	}

	if dir := cfg.GetPlotDir(); dir != "" {
		if res.Relative != mmcc.RelativeSingle {
			a.logger.Warn("correlation plots need --relative single, skipping", "plot_dir", dir)
			return nil
		}
		files, err := plotCorrelations(dir, loader.batch, res)
		if err != nil {
			return err
		}
		a.logger.Info("wrote correlation plots", "dir", dir, "files", len(files))
	}
	return nil
}
