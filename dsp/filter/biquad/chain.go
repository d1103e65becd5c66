package biquad

// Chain is a cascade of sections, used for Butterworth high-pass and
// low-pass pairs that make up a band-pass.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain scales the input before the first section. Default 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain builds one Section per coefficient set, in order.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	c := &Chain{sections: make([]Section, len(coeffs)), gain: cfg.gain}
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}
	return c
}

// ProcessSample runs x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place through every section.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i := range buf {
			buf[i] *= c.gain
		}
	}
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes every delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the filter order, counting first-order sections once.
func (c *Chain) Order() int {
	order := 0
	for _, s := range c.sections {
		if s.B2 == 0 && s.A2 == 0 {
			order++
		} else {
			order += 2
		}
	}
	return order
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// State returns a copy of every section's delay line.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}
	return states
}
