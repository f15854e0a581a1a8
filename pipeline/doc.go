// Package pipeline chains the dsp stages into the preprocessing and
// cleaning flows used to prepare audio files for model training.
//
// ProcessAudio loads a file, resamples it to a target rate, loops or crops
// it to a target duration, standardizes it and peak normalizes it.
// CleanAudio removes stationary background noise with a spectral gate and
// then cuts low-energy frames. The gate must run first: its noise estimate
// comes from the leading frames, which silence removal could delete.
//
// A Processor carries every parameter explicitly and adds optional edge
// trimming, augmentation and feature extraction. RunBatch fans a list of
// files out over a bounded worker pool; a failing file is reported in its
// Result and never stops the batch.
package pipeline
