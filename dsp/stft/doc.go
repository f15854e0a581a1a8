// Package stft implements the short-time Fourier transform used by the
// spectral stages.
//
// Framing is centered: the signal is zero padded by half a window on both
// sides, so frame f is centered on sample f*hop and a signal of n samples
// yields 1 + n/hop frames (even window lengths). Only the one-sided bins
// 0..N/2 are stored.
//
// Inverse synthesis is weighted overlap-add with the analysis window,
// normalized by the summed squared window envelope. Without an explicit
// length it returns hop*(frames-1) samples, which is the input length
// rounded down to a multiple of hop.
package stft
