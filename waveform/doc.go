// Package waveform loads recorded traces and prepares them for delay
// estimation.
//
// A [Loader] turns a [Request] into a [Batch]: an L x N matrix of
// equal-length, equal-rate signals cut around a named pick, plus the
// root-sum-of-squares norm of every cut trace.
//
// Preparation follows the usual seismological chain:
//
//  1. remove the least-squares linear trend
//  2. taper both ends with half a Hann window
//  3. Butterworth band-pass (optionally zero-phase)
//  4. cut [pick+Start, pick+End], both edges inclusive
//
// [SACLoader] reads SAC binary files; [MemoryLoader] prepares traces that
// are already in memory.
package waveform
