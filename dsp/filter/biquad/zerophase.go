package biquad

import "slices"

// FiltFilt filters buf in place forward and then backward through the
// cascade, which squares the magnitude response and cancels the phase.
// The chain starts from zero state on each pass and is left reset.
func (c *Chain) FiltFilt(buf []float64) {
	c.Reset()
	c.ProcessBlock(buf)

	slices.Reverse(buf)
	c.Reset()
	c.ProcessBlock(buf)
	slices.Reverse(buf)

	c.Reset()
}
