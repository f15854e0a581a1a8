// Package silence removes low-energy audio.
//
// Remover drops every short frame whose energy does not exceed a fixed
// threshold, wherever it occurs in the signal. Trimmer only strips leading
// and trailing spans that sit more than a given number of dB below the
// loudest frame, keeping interior pauses intact.
package silence
