// Package core holds the types and helpers shared by every processing stage:
// the mono Signal value, the error kinds stages report, and small numeric
// utilities for dB conversion, clamping and finiteness checks.
package core
