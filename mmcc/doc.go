// Package mmcc estimates relative time delays between recorded waveforms
// with multi-component multi-channel cross-correlation.
//
// Every trace x is split into three components using the unwrapped phase
// phi of its analytic signal:
//
//	C = cos(phi) * x
//	S = sin(phi) * x
//	H = x
//
// Each required pair of channels is correlated component-wise, the three
// correlations are summed and the lag of the maximum is the pairwise delay.
// Pairwise delays are then reduced to one relative time per channel
// ([Aggregate], [AggregateLeastSquares]) or reported against a single
// reference channel ([SolveReference]).
//
// # Sign convention
//
// A lag between channels i and j is arrival(i) - arrival(j) in samples.
// Full-mode relative times are arrival minus the mean arrival, so a
// positive value means a later arrival.
//
// # Pipeline
//
// [Run] loads a [waveform.Batch] and calls [Estimate], which decomposes,
// solves, aggregates and converts samples to seconds:
//
//	res, err := mmcc.Run(ctx, waveform.SACLoader{}, req,
//		mmcc.WithMethod(mmcc.MethodFrequency),
//		mmcc.WithFull(),
//	)
package mmcc
