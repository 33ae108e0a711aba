//go:build !debugphysics

package body

// debugAssertFinite is a no-op outside debugphysics builds: the release
// path only logs (see reportMathFailure), it never aborts the tick.
func debugAssertFinite(op string, field string) {}
