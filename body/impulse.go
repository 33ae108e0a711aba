package body

import (
	"github.com/akmonengine/forge/mathkernel"
	"github.com/go-gl/mathgl/mgl64"
)

// ApplyImpulse implements spec.md §4.1's applyImpulse: a no-op on a
// kinematic body; otherwise applies a linear impulse at the given world
// location and the resulting torque, then activates the body. This is the
// general entry point a constraint solver calls once per contact point,
// as opposed to the fast path below.
func (rb *RigidBody) ApplyImpulse(location, impulse mgl64.Vec3) {
	if !rb.dynamic {
		return
	}

	rb.lock.Lock()
	rb.applyImpulseLocked(location, impulse)
	rb.lock.Unlock()

	rb.activate()
}

func (rb *RigidBody) applyImpulseLocked(location, impulse mgl64.Vec3) {
	if !mathkernel.IsFiniteVec3(impulse) {
		reportMathFailure("ApplyImpulse", "impulse")
		return
	}

	rb.LinearVelocity = rb.LinearVelocity.Add(impulse.Mul(rb.inverseMass))

	momentArm := location.Sub(rb.Transform.Position)
	torque := momentArm.Cross(impulse)
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.WorldInertiaInverse.Mul3x1(torque))
}

// ApplyLinearImpulse is the ImpulseApplicator fast path (spec.md §4.1,
// §4.4): no activation, no shape/material notifications, safe to call
// from within a multithreaded constraint solver. It acquires the body's
// spin lock itself so the solver's call sites stay a single statement
// (see SPEC_FULL.md §4.1 for why the lock lives here rather than at the
// call site).
func (rb *RigidBody) ApplyLinearImpulse(impulse mgl64.Vec3) {
	if !rb.dynamic {
		return
	}
	rb.lock.Lock()
	defer rb.lock.Unlock()

	if !mathkernel.IsFiniteVec3(impulse) {
		reportMathFailure("ApplyLinearImpulse", "impulse")
		return
	}
	rb.LinearVelocity = rb.LinearVelocity.Add(impulse.Mul(rb.inverseMass))
}

// ApplyAngularImpulse is the angular half of the ImpulseApplicator fast
// path. impulse here is already an angular impulse (i.e. a moment, not a
// linear impulse to be crossed with a moment arm) — the solver is
// responsible for that cross product when it needs it, since it usually
// already has r x J from the contact geometry.
func (rb *RigidBody) ApplyAngularImpulse(impulse mgl64.Vec3) {
	if !rb.dynamic {
		return
	}
	rb.lock.Lock()
	defer rb.lock.Unlock()

	if !mathkernel.IsFiniteVec3(impulse) {
		reportMathFailure("ApplyAngularImpulse", "impulse")
		return
	}
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.WorldInertiaInverse.Mul3x1(impulse))
}
