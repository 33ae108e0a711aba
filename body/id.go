package body

import "sync/atomic"

// nextBodyID is the monotonic 64-bit instance-id counter from spec.md §3.
// Grounded on the teacher-pack sibling gazed-vu/physics/body.go's bodyUUID
// global counter, modernized from a mutex-guarded uint32 to an
// atomic.Uint64 (see DESIGN.md for why the arena+generation alternative in
// spec.md §9 was not adopted).
var nextBodyID atomic.Uint64

// newBodyID returns the next unique instance id. IDs are never reused.
func newBodyID() uint64 {
	return nextBodyID.Add(1)
}
