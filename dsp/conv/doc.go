// Package conv provides direct linear cross-correlation and lag bookkeeping.
//
// # Index layout
//
// Full (linear) correlation of a (length N) and b (length M) has length
// N+M-1 and index k corresponds to lag k-(M-1):
//
//	corr, err := conv.CorrelateDirect(a, b)
//	idx, _ := conv.FindPeak(corr)
//	lag := conv.LagFromIndex(idx, len(b))
//
// A positive lag means a is delayed relative to b.
//
// Circular correlation over a zero-padded length L stores lag 0 at index 0,
// positive lags at the low end and negative lags wrapped to the high end.
// [FoldCircularLag] maps such an index back to a signed lag.
package conv
