// Package feature extracts summary features from a mono signal: STFT
// magnitude and phase, mel spectrogram, MFCC, chroma and spectral shape.
//
// Each matrix is indexed [frame][coefficient] and computed from a centered
// STFT (2048-sample Hann frames, 512-sample hop by default). Summary reduces
// every matrix to its overall mean, which is a compact fingerprint suitable
// for quick inspection rather than for model input.
package feature
