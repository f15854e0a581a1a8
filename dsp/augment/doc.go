// Package augment produces randomized variants of a mono signal for
// training data expansion.
//
// The built-in transforms are additive Gaussian noise, a circular time
// shift, pitch shifting, two fixed time stretches and a volume change. An
// Augmenter draws a random subset of its configured transforms for every
// call and applies them in random order. All randomness comes from the
// *rand.Rand passed to New, so a fixed seed reproduces the same variants.
package augment
