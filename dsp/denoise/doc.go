// Package denoise implements spectral gating noise reduction.
//
// The signal is analysed with a centered STFT. The mean magnitude of the
// first few frames serves as the noise profile; every bin then has a
// multiple of that profile subtracted from its magnitude (floored at zero)
// and keeps its original phase. The result is resynthesized by overlap-add.
//
// The leading frames are assumed to contain noise only. Input whose opening
// holds signal will have that signal treated as noise.
package denoise
