package biquad

// Coefficients of one second-order section with a0 normalized to 1.
//
// Processing uses Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// A first-order section has B2 = A2 = 0.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is one biquad with its delay line.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters buf in place, continuing from the current state.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	d0, d1 := s.d0, s.d1
	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}
	s.d0, s.d1 = d0, d1
}

// Reset zeroes the delay line.
func (s *Section) Reset() { s.d0, s.d1 = 0, 0 }

// State returns the delay line [d0, d1].
func (s *Section) State() [2]float64 { return [2]float64{s.d0, s.d1} }
