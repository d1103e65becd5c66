// Package config loads the JSON run configuration used by the mmcc command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-mmcc/mmcc"
	"github.com/cwbudde/algo-mmcc/waveform"
)

// Defaults applied when a field is not set.
const (
	DefaultMethod      = "frequency"
	DefaultRelative    = "full"
	DefaultAggregation = "pairwise"
	DefaultBandLow     = 0.1
	DefaultBandHigh    = 1.0
	DefaultWindowStart = -20.0
	DefaultWindowEnd   = 20.0
	DefaultPick        = "t1"
	DefaultFormat      = "table"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// RunConfig holds every setting of one estimation run. Nil fields fall back
// to the defaults, so partial files are safe.
type RunConfig struct {
	Method      *string `json:"method,omitempty"`
	Relative    *string `json:"relative,omitempty"`
	Reference   *int    `json:"reference,omitempty"`
	Aggregation *string `json:"aggregation,omitempty"`
	Workers     *int    `json:"workers,omitempty"`

	BandLow     *float64 `json:"band_low,omitempty"`
	BandHigh    *float64 `json:"band_high,omitempty"`
	WindowStart *float64 `json:"window_start,omitempty"`
	WindowEnd   *float64 `json:"window_end,omitempty"`
	Pick        *string  `json:"pick,omitempty"`
	Corners     *int     `json:"corners,omitempty"`
	ZeroPhase   *bool    `json:"zero_phase,omitempty"`
	Taper       *float64 `json:"taper,omitempty"`

	Format  *string `json:"format,omitempty"`
	PlotDir *string `json:"plot_dir,omitempty"`
}

// Load reads a RunConfig from a .json file of at most 1MB and validates it.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields that are set.
func (c *RunConfig) Validate() error {
	if c.Method != nil {
		if _, err := mmcc.ParseMethod(*c.Method); err != nil {
			return err
		}
	}
	if c.Relative != nil {
		if _, err := mmcc.ParseRelative(*c.Relative); err != nil {
			return err
		}
	}
	if c.Aggregation != nil {
		if _, err := mmcc.ParseAggregation(*c.Aggregation); err != nil {
			return err
		}
	}
	if c.Reference != nil && *c.Reference < 0 {
		return fmt.Errorf("reference must be non-negative, got %d", *c.Reference)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", *c.Workers)
	}
	if c.GetBandLow() >= c.GetBandHigh() {
		return fmt.Errorf("band_low %g must be below band_high %g", c.GetBandLow(), c.GetBandHigh())
	}
	if c.GetWindowStart() >= c.GetWindowEnd() {
		return fmt.Errorf("window_start %g must be before window_end %g", c.GetWindowStart(), c.GetWindowEnd())
	}
	if c.Corners != nil && *c.Corners < 1 {
		return fmt.Errorf("corners must be positive, got %d", *c.Corners)
	}
	if c.Taper != nil && (*c.Taper < 0 || *c.Taper > 0.5) {
		return fmt.Errorf("taper must be between 0 and 0.5, got %g", *c.Taper)
	}
	if f := c.GetFormat(); f != "table" && f != "json" {
		return fmt.Errorf("format must be table or json, got %q", f)
	}
	return nil
}

func (c *RunConfig) GetMethod() string      { return strOr(c.Method, DefaultMethod) }
func (c *RunConfig) GetRelative() string    { return strOr(c.Relative, DefaultRelative) }
func (c *RunConfig) GetAggregation() string { return strOr(c.Aggregation, DefaultAggregation) }
func (c *RunConfig) GetPick() string        { return strOr(c.Pick, DefaultPick) }
func (c *RunConfig) GetFormat() string      { return strOr(c.Format, DefaultFormat) }
func (c *RunConfig) GetPlotDir() string     { return strOr(c.PlotDir, "") }

func (c *RunConfig) GetReference() int { return intOr(c.Reference, 0) }
func (c *RunConfig) GetWorkers() int   { return intOr(c.Workers, 0) }
func (c *RunConfig) GetCorners() int   { return intOr(c.Corners, waveform.DefaultCorners) }

func (c *RunConfig) GetBandLow() float64     { return floatOr(c.BandLow, DefaultBandLow) }
func (c *RunConfig) GetBandHigh() float64    { return floatOr(c.BandHigh, DefaultBandHigh) }
func (c *RunConfig) GetWindowStart() float64 { return floatOr(c.WindowStart, DefaultWindowStart) }
func (c *RunConfig) GetWindowEnd() float64   { return floatOr(c.WindowEnd, DefaultWindowEnd) }
func (c *RunConfig) GetTaper() float64       { return floatOr(c.Taper, waveform.DefaultTaperFraction) }

func (c *RunConfig) GetZeroPhase() bool {
	if c.ZeroPhase == nil {
		return false
	}
	return *c.ZeroPhase
}

// Request builds the loader request for sources.
func (c *RunConfig) Request(sources []string) waveform.Request {
	return waveform.Request{
		Sources:       sources,
		Band:          waveform.Band{Low: c.GetBandLow(), High: c.GetBandHigh()},
		Window:        waveform.Window{Start: c.GetWindowStart(), End: c.GetWindowEnd()},
		Pick:          c.GetPick(),
		Corners:       c.GetCorners(),
		ZeroPhase:     c.GetZeroPhase(),
		TaperFraction: c.GetTaper(),
	}
}

// Options converts the estimation settings to mmcc options. The config
// must have passed Validate.
func (c *RunConfig) Options() ([]mmcc.Option, error) {
	method, err := mmcc.ParseMethod(c.GetMethod())
	if err != nil {
		return nil, err
	}
	relative, err := mmcc.ParseRelative(c.GetRelative())
	if err != nil {
		return nil, err
	}
	agg, err := mmcc.ParseAggregation(c.GetAggregation())
	if err != nil {
		return nil, err
	}

	opts := []mmcc.Option{
		mmcc.WithMethod(method),
		mmcc.WithAggregation(agg),
		mmcc.WithWorkers(c.GetWorkers()),
	}
	if relative == mmcc.RelativeSingle {
		opts = append(opts, mmcc.WithReference(c.GetReference()))
	} else {
		opts = append(opts, mmcc.WithFull())
	}
	return opts, nil
}

func strOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
