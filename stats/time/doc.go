// Package time computes time-domain statistics of sample buffers: moments,
// level measures and short-time energy profiles.
//
// Moments use Welford's online update, so a constant signal yields its exact
// value as mean and a variance of exactly zero.
package time
