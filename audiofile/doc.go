// Package audiofile loads audio files into mono core.Signal values and
// writes signals back out as PCM WAV.
//
// A Registry maps lower-case file extensions to decoders. NewRegistry
// returns one with WAV, AIFF, MP3 and Ogg Vorbis support. Every decoder
// averages interleaved channels down to a single channel and scales integer
// PCM into [-1, 1).
package audiofile
