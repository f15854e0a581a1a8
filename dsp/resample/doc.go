// Package resample provides rational sample-rate conversion using polyphase FIR
// filtering with anti-aliasing defaults.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// Whole-signal conversion between integer rates goes through Convert, which
// copies the input unchanged when the rates match and otherwise compensates
// the filter delay. Its output length is ceil(n*up/down).
//
// Streaming conversion uses NewRational or NewForRates and repeated Process
// calls.
package resample
