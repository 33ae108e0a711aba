package body

import "github.com/go-gl/mathgl/mgl64"

// The interfaces below are the external collaborator contracts from
// spec.md §6. RigidBody and the integrate/position packages only ever
// call through these — broad-phase indexing, narrow-phase manifold
// generation, the constraint solver, and the deactivation island graph
// are explicitly out of this module's scope (spec.md §1) and are
// supplied by whatever simulation wires this package up (package forge
// in this module provides minimal implementations for tests/demo).

// ActivationHandle tracks whether a body's sleep island is currently
// simulated. RigidBody's pose, velocity, angular-momentum, mass-mode,
// impulse and shape mutators call Activate(); SetMaterial, the damping
// setters and the solver fast-path impulses (ApplyLinearImpulse/
// ApplyAngularImpulse) do not.
type ActivationHandle interface {
	Activate()
	IsActive() bool
	IsSlowing() bool
	VelocityTimeBelowLimit() float64
	AllowStabilization() bool
	Deactivation() DeactivationManager
}

// DeactivationManager supplies the global sleep-island thresholds the
// Integrator's low-velocity stabilization boost reads (spec.md §4.2).
type DeactivationManager interface {
	UseStabilization() bool
	VelocityLowerLimit() float64
	VelocityLowerLimitSquared() float64
	LowVelocityTimeMinimum() float64
}

// ForceUpdater supplies the precomputed gravity*dt vector the Integrator
// applies to gravity-affected bodies, and is notified on dynamic/
// kinematic transitions so it can add or remove the body from whatever
// force-accumulation bookkeeping it keeps (spec.md §4.1, §6).
type ForceUpdater interface {
	GravityDt() mgl64.Vec3
	ForceUpdateableBecomingDynamic(b *RigidBody)
	ForceUpdateableBecomingKinematic(b *RigidBody)
}

// Shape is the minimal collidable-shape contract RigidBody needs: the
// mass-independent inertia distribution used by setMass (spec.md §4.1).
// Shape-change notification goes through the CollidableHandle, not the
// Shape. Concrete shapes live in package shape.
type Shape interface {
	VolumeDistribution() mgl64.Mat3
}

// ContactPair is a single broad/narrow-phase pair as seen by
// PositionUpdater's continuous-update phase (spec.md §4.3,
// "updateTimesOfImpact"). Pairs are read-only outside of their own TOI
// slot during the position-update phases (spec.md §5).
type ContactPair interface {
	BodyA() *RigidBody
	BodyB() *RigidBody
	TimeOfImpact() float64
	SetTimeOfImpact(toi float64)
	UpdateMaterialProperties()
	UpdateTimeOfImpact(dt float64)
}

// CollidableHandle is the per-body collision-side companion object
// (spec.md §3's "CollidableHandle", §6). Its Pairs are a read-only
// snapshot during solver/position phases; only the narrow phase appends
// to the underlying list.
type CollidableHandle interface {
	Entity() *RigidBody
	Shape() Shape
	SetShape(s Shape)
	Pairs() []ContactPair
	UpdateWorldTransform(position mgl64.Vec3, orientation mgl64.Quat)
	CollisionGroup() int
	SetCollisionGroup(group int)
}

// MaterialHandle notifies collaborators when a body's material changes
// (spec.md §3, §6). See DESIGN.md for the open question this leaves
// unanswered (pairs straddling a removed material).
type MaterialHandle interface {
	MaterialChanged()
}

// MotionSettings are the global, read-only-during-a-tick simulation
// defaults spec.md §6 names: the default position-update mode new bodies
// are constructed with, and the per-pair CCD eligibility predicate the
// continuous-update phase consults.
type MotionSettings interface {
	DefaultPositionUpdateMode() PositionUpdateMode
	PairAllowsCCD(b *RigidBody, pair ContactPair) bool
}

// InertiaTensorScale is spec.md §6's InertiaHelper.inertiaTensorScale
// constant: becomeDynamic/setMass compute
// localInertiaTensor = shape.VolumeDistribution() * (mass * InertiaTensorScale).
// The teacher's shapes (actor/shape.go) bake mass directly into their
// inertia formulas with an implicit scale of 1; this module keeps the
// constant explicit because spec.md names it as a tunable collaborator
// value rather than a hardcoded 1.
const InertiaTensorScale = 1.0
