// Package window generates the taper functions used for short-time analysis
// and FIR design.
//
// Coefficients come in symmetric form by default. Use WithPeriodic for
// STFT framing so that hop-spaced copies overlap-add to a flat envelope.
package window
