package mmcc

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Method selects the correlation domain.
type Method int

const (
	// MethodFrequency correlates zero-padded spectra (circular layout).
	MethodFrequency Method = iota
	// MethodTime correlates with direct sliding dot products (linear layout).
	MethodTime
)

func (m Method) String() string {
	switch m {
	case MethodFrequency:
		return "frequency"
	case MethodTime:
		return "time"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts "frequency" (or "fft") and "time" (or "iter").
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frequency", "fft":
		return MethodFrequency, nil
	case "time", "iter":
		return MethodTime, nil
	}
	return 0, invalid("parse", "unknown method %q", s)
}

// Relative selects how pairwise lags are reported.
type Relative int

const (
	// RelativeFull solves every pair and aggregates.
	RelativeFull Relative = iota
	// RelativeSingle reports lags against one reference channel.
	RelativeSingle
)

func (r Relative) String() string {
	switch r {
	case RelativeFull:
		return "full"
	case RelativeSingle:
		return "single"
	default:
		return fmt.Sprintf("Relative(%d)", int(r))
	}
}

// ParseRelative accepts "full" and "single".
func ParseRelative(s string) (Relative, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return RelativeFull, nil
	case "single":
		return RelativeSingle, nil
	}
	return 0, invalid("parse", "unknown relative method %q", s)
}

// Aggregation selects the full-mode reduction.
type Aggregation int

const (
	// AggregationPairwise is pairwise-consistency averaging.
	AggregationPairwise Aggregation = iota
	// AggregationLeastSquares solves the pair equations by least squares.
	AggregationLeastSquares
)

func (a Aggregation) String() string {
	switch a {
	case AggregationPairwise:
		return "pairwise"
	case AggregationLeastSquares:
		return "lstsq"
	default:
		return fmt.Sprintf("Aggregation(%d)", int(a))
	}
}

// ParseAggregation accepts "pairwise" and "lstsq".
func ParseAggregation(s string) (Aggregation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pairwise":
		return AggregationPairwise, nil
	case "lstsq", "least-squares":
		return AggregationLeastSquares, nil
	}
	return 0, invalid("parse", "unknown aggregation %q", s)
}

// Config holds estimation settings.
type Config struct {
	Method      Method
	Relative    Relative
	Reference   int
	Aggregation Aggregation
	Workers     int
	Logger      *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns frequency-domain full mode with pairwise
// averaging, one worker per CPU and no logging.
func DefaultConfig() Config {
	return Config{
		Method:      MethodFrequency,
		Relative:    RelativeFull,
		Aggregation: AggregationPairwise,
		Workers:     runtime.GOMAXPROCS(0),
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// WithMethod sets the correlation domain.
func WithMethod(m Method) Option {
	return func(cfg *Config) { cfg.Method = m }
}

// WithRelative sets the reporting mode.
func WithRelative(r Relative) Option {
	return func(cfg *Config) { cfg.Relative = r }
}

// WithFull selects full mode.
func WithFull() Option {
	return WithRelative(RelativeFull)
}

// WithReference selects single mode against channel ch.
func WithReference(ch int) Option {
	return func(cfg *Config) {
		cfg.Relative = RelativeSingle
		cfg.Reference = ch
	}
}

// WithAggregation sets the full-mode reduction.
func WithAggregation(a Aggregation) Option {
	return func(cfg *Config) { cfg.Aggregation = a }
}

// WithWorkers bounds the number of concurrent pair correlations.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
