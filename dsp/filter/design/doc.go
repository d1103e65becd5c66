// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ second-order lowpass and
// highpass sections, Butterworth lowpass/highpass cascades of any order, and
// a Butterworth band-pass built from a highpass and a lowpass cascade.
package design
