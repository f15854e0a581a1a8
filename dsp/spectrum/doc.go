// Package spectrum provides helpers for complex spectrum bins: magnitude,
// power and phase of each bin, recomposition from polar form, and phase
// wrapping.
//
// It does not compute transforms itself; see package stft for that.
package spectrum
