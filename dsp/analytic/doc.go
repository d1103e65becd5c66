// Package analytic computes analytic signals and instantaneous phase of
// real-valued traces.
//
// The analytic signal is built in the frequency domain: the spectrum of the
// trace is computed over its exact length, negative-frequency bins are
// zeroed, positive-frequency bins are doubled, and the result is transformed
// back. The real part reproduces the input and the imaginary part is its
// Hilbert transform.
//
//	z, err := analytic.Signal(trace)
//	phase, err := analytic.Phase(trace) // unwrapped, radians
//
// This is a block transform over a whole trace. For sample-by-sample
// quadrature on a live stream an IIR allpass Hilbert pair is the usual tool;
// it trades exactness at the band edges for zero look-ahead.
//
// Phase unwrapping assumes the true phase advances by less than pi between
// consecutive samples. Faster phase rotation (aliasing) is not detected.
package analytic
