//go:build debugphysics

package body

import "fmt"

// debugAssertFinite panics in debugphysics builds, matching spec.md §7's
// "triggers an assertion in debug builds" requirement.
func debugAssertFinite(op string, field string) {
	panic(fmt.Sprintf("validated-math failure: %s produced a non-finite %s", op, field))
}
