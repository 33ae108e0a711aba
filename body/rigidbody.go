package body

import (
	"math"

	"github.com/akmonengine/forge/mathkernel"
	"github.com/go-gl/mathgl/mgl64"
)

// PositionUpdateMode selects which of the two strategies in package
// position advances a body's pose each tick (spec.md §4.3).
type PositionUpdateMode int

const (
	// Discrete advances position by v*dt every tick.
	Discrete PositionUpdateMode = iota
	// Continuous advances orientation every tick but gates the
	// translation advance by the minimum pair time-of-impact.
	Continuous
)

// RigidBody is the central entity of spec.md §3/§4.1: pose, velocities,
// inertia, mass mode, damping, and identity, plus the collaborator handles
// it notifies on mutation. Re-architected from the teacher's
// actor.RigidBody: dynamic/kinematic replaces dynamic/static (a kinematic
// body's pose is driven externally rather than never moving), and
// impulse-based solver entry points replace the teacher's accumulated
// force/torque + single Integrate call.
type RigidBody struct {
	ID uint64

	Transform Transform

	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// Inertia, local (body) space and world space, plus their inverses.
	LocalInertiaTensor  mgl64.Mat3
	localInertiaInverse mgl64.Mat3
	WorldInertiaTensor  mgl64.Mat3
	WorldInertiaInverse mgl64.Mat3

	mass        float64
	inverseMass float64
	dynamic     bool

	GravityAffected bool

	baseLinearDamping   float64
	baseAngularDamping  float64
	linearDampingBoost  float64
	angularDampingBoost float64

	PositionUpdateMode PositionUpdateMode

	// IgnoreShapeChanges suppresses the collidable's ShapeChanged()
	// notification SetShape would otherwise emit (spec.md §3).
	IgnoreShapeChanges bool

	// UserTag is an opaque slot for caller data (spec.md §3).
	UserTag interface{}

	// OnShapeChanged and OnMaterialChanged, if set, run after SetShape/
	// SetMaterial have notified their respective collaborator hooks.
	// They exist so a collaborator graph that publishes events.Bus
	// notifications (package forge) can hook in without this package
	// importing events — events already imports body, so the reverse
	// import would cycle.
	OnShapeChanged    func(*RigidBody)
	OnMaterialChanged func(*RigidBody)

	activation   ActivationHandle
	collidable   CollidableHandle
	material     MaterialHandle
	forceUpdater ForceUpdater

	lock spinLock
}

// NewRigidBody constructs a body over the given shape. mass <= 0 (or a
// non-finite mass) yields a kinematic body; otherwise the body starts
// dynamic with its local inertia tensor derived from shape and mass
// (spec.md §3, "Created by constructor taking a shape and optional mass").
func NewRigidBody(shape Shape, mass float64, activation ActivationHandle) *RigidBody {
	rb := &RigidBody{
		ID:         newBodyID(),
		Transform:  NewTransform(),
		activation: activation,
	}

	if mass > 0 && !math.IsNaN(mass) && !math.IsInf(mass, 0) {
		_ = rb.becomeDynamicFromShape(mass, shape)
	} else {
		rb.becomeKinematicLocked()
	}

	return rb
}

// --- canonical mutate path (spec.md §9: "one canonical mutate path per
// attribute, which always notifies the ActivationHandle") ---

func (rb *RigidBody) activate() {
	if rb.activation != nil {
		rb.activation.Activate()
	}
}

// SetPosition assigns the body's position, activating it.
func (rb *RigidBody) SetPosition(p mgl64.Vec3) {
	rb.lock.Lock()
	defer rb.lock.Unlock()

	if !mathkernel.IsFiniteVec3(p) {
		reportMathFailure("SetPosition", "position")
	}
	rb.Transform.Position = p
	rb.activate()
}

// SetOrientation assigns the body's orientation, normalizing it and
// refreshing the cached rotation matrix, then activates the body.
func (rb *RigidBody) SetOrientation(q mgl64.Quat) {
	rb.lock.Lock()
	defer rb.lock.Unlock()
	rb.setOrientationLocked(q)
	rb.activate()
}

func (rb *RigidBody) setOrientationLocked(q mgl64.Quat) {
	if !mathkernel.IsFiniteQuat(q) {
		reportMathFailure("SetOrientation", "orientation")
	}
	n := q.Normalize()
	rb.Transform.Orientation = n
	rb.Transform.OrientationMatrix = n.Mat4().Mat3()
}

// SetLinearVelocity assigns linear velocity, activating the body.
func (rb *RigidBody) SetLinearVelocity(v mgl64.Vec3) {
	rb.lock.Lock()
	defer rb.lock.Unlock()

	if !mathkernel.IsFiniteVec3(v) {
		reportMathFailure("SetLinearVelocity", "linearVelocity")
	}
	rb.LinearVelocity = v
	rb.activate()
}

// SetAngularVelocity assigns angular velocity, activating the body.
func (rb *RigidBody) SetAngularVelocity(w mgl64.Vec3) {
	rb.lock.Lock()
	defer rb.lock.Unlock()

	if !mathkernel.IsFiniteVec3(w) {
		reportMathFailure("SetAngularVelocity", "angularVelocity")
	}
	rb.AngularVelocity = w
	rb.activate()
}

// Activation returns the body's ActivationHandle collaborator, for code
// (the Integrator, the position updater) that needs to read its sleep/
// stabilization state without otherwise touching the body.
func (rb *RigidBody) Activation() ActivationHandle { return rb.activation }

// RefreshWorldInertia recomputes WorldInertiaTensor and
// WorldInertiaInverse from the current orientation matrix (spec.md §4.2
// step 5). Exported so the Integrator can call it once per body per step
// after gravity/damping have been applied, without reaching into
// unexported fields.
func (rb *RigidBody) RefreshWorldInertia() {
	rb.WorldInertiaTensor = mathkernel.WorldInertia(rb.Transform.OrientationMatrix, rb.LocalInertiaTensor)
	rb.WorldInertiaInverse = mathkernel.WorldInertia(rb.Transform.OrientationMatrix, rb.localInertiaInverse)
}

// IsDynamic reports whether the body currently has finite mass.
func (rb *RigidBody) IsDynamic() bool { return rb.dynamic }

// Mass returns the body's mass (0 for kinematic bodies).
func (rb *RigidBody) Mass() float64 { return rb.mass }

// InverseMass returns the body's inverse mass (0 for kinematic bodies).
func (rb *RigidBody) InverseMass() float64 { return rb.inverseMass }

// SetMass implements spec.md §4.1's setMass: a non-positive or non-finite
// mass demotes the body to kinematic (preserving velocities); otherwise an
// already-dynamic body has its local inertia tensor scaled by
// mass/oldMass, and a currently-kinematic body becomes dynamic with a
// freshly derived tensor.
func (rb *RigidBody) SetMass(m float64, shape Shape) {
	rb.lock.Lock()
	wasDynamic := rb.dynamic

	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		rb.becomeKinematicLocked()
	} else if rb.dynamic {
		oldMass := rb.mass
		ratio := m / oldMass
		rb.LocalInertiaTensor = scaleMat3(rb.LocalInertiaTensor, ratio)
		rb.setMassScalarsLocked(m)
		rb.refreshInertiaInverseLocked()
	} else {
		_ = rb.becomeDynamicFromShape(m, shape)
	}
	rb.lock.Unlock()

	rb.activate()
	if wasDynamic && !rb.dynamic {
		rb.notifyBecomingKinematic()
	} else if !wasDynamic && rb.dynamic {
		rb.notifyBecomingDynamic()
	}
}

// SetInverseMass implements spec.md §4.1's setInverseMass.
func (rb *RigidBody) SetInverseMass(im float64, shape Shape) {
	if im > 0 {
		rb.SetMass(1/im, shape)
		return
	}
	rb.SetMass(0, shape)
}

// BecomeKinematic transitions the body to kinematic mode, preserving
// velocities. Idempotent: calling it twice in a row leaves state
// identical to a single call (spec.md §8).
func (rb *RigidBody) BecomeKinematic() {
	rb.lock.Lock()
	wasDynamic := rb.dynamic
	rb.becomeKinematicLocked()
	rb.lock.Unlock()

	rb.activate()
	if wasDynamic {
		rb.notifyBecomingKinematic()
	}
}

func (rb *RigidBody) becomeKinematicLocked() {
	rb.dynamic = false
	rb.mass = 0
	rb.inverseMass = 0
	rb.LocalInertiaTensor = mgl64.Mat3{}
	rb.localInertiaInverse = mgl64.Mat3{}
	rb.WorldInertiaTensor = mgl64.Mat3{}
	rb.WorldInertiaInverse = mgl64.Mat3{}
}

// BecomeDynamic transitions the body to dynamic mode with the given mass
// and, optionally, an explicit local inertia tensor. If tensor is nil the
// tensor is derived from shape (spec.md §4.1). Fails with an error
// wrapping ErrInvalidMass for a non-positive or non-finite mass, leaving
// state unchanged.
func (rb *RigidBody) BecomeDynamic(mass float64, shape Shape, tensor *mgl64.Mat3) error {
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return InvalidMassError(mass)
	}

	rb.lock.Lock()
	wasDynamic := rb.dynamic
	if tensor != nil {
		rb.setMassScalarsLocked(mass)
		rb.LocalInertiaTensor = *tensor
		rb.refreshInertiaInverseLocked()
	} else {
		_ = rb.becomeDynamicFromShape(mass, shape)
	}
	// spec.md §9 open question: the original re-emits LinearVelocity =
	// linearVelocity here "to reinitialize momentum". This module does
	// not cache momentum separately (no CONSERVE mode, see DESIGN.md), so
	// that step is the documented no-op:
	rb.LinearVelocity = rb.LinearVelocity
	rb.lock.Unlock()

	rb.activate()
	if !wasDynamic {
		rb.notifyBecomingDynamic()
	}
	return nil
}

// becomeDynamicFromShape is the shared "derive tensor from shape"
// implementation used by NewRigidBody, SetMass, and BecomeDynamic.
func (rb *RigidBody) becomeDynamicFromShape(mass float64, shape Shape) error {
	if shape == nil {
		rb.setMassScalarsLocked(mass)
		rb.LocalInertiaTensor = mgl64.Mat3{}
		rb.refreshInertiaInverseLocked()
		return nil
	}
	rb.setMassScalarsLocked(mass)
	rb.LocalInertiaTensor = scaleMat3(shape.VolumeDistribution(), mass*InertiaTensorScale)
	rb.refreshInertiaInverseLocked()
	return nil
}

func (rb *RigidBody) setMassScalarsLocked(mass float64) {
	rb.dynamic = true
	rb.mass = mass
	rb.inverseMass = 1.0 / mass
}

func (rb *RigidBody) refreshInertiaInverseLocked() {
	rb.localInertiaInverse = mathkernel.AdaptiveInvert(rb.LocalInertiaTensor)
	rb.WorldInertiaTensor = mathkernel.WorldInertia(rb.Transform.OrientationMatrix, rb.LocalInertiaTensor)
	rb.WorldInertiaInverse = mathkernel.WorldInertia(rb.Transform.OrientationMatrix, rb.localInertiaInverse)
}

func scaleMat3(m mgl64.Mat3, s float64) mgl64.Mat3 {
	var out mgl64.Mat3
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// --- collaborator wiring: default collision group + force-updater hooks ---

const (
	defaultKinematicGroup = 1
	defaultDynamicGroup   = 2
	unsetGroup            = 0
)

// SetCollidable wires the body to its collision-side companion. It does
// not change the collision group; the default-group helpers below run
// only on kinematic/dynamic transitions, and set the default-kinematic or
// default-dynamic group when the current group is the paired default or
// unset.
func (rb *RigidBody) SetCollidable(c CollidableHandle) {
	rb.collidable = c
}

func (rb *RigidBody) applyDefaultGroupForKinematic() {
	if rb.collidable == nil {
		return
	}
	g := rb.collidable.CollisionGroup()
	if g == unsetGroup || g == defaultDynamicGroup {
		rb.collidable.SetCollisionGroup(defaultKinematicGroup)
	}
}

func (rb *RigidBody) applyDefaultGroupForDynamic() {
	if rb.collidable == nil {
		return
	}
	g := rb.collidable.CollisionGroup()
	if g == unsetGroup || g == defaultKinematicGroup {
		rb.collidable.SetCollisionGroup(defaultDynamicGroup)
	}
}

// SetForceUpdater wires the body to its ForceUpdater collaborator, which
// is notified whenever the mass mode transitions (spec.md §4.1).
func (rb *RigidBody) SetForceUpdater(f ForceUpdater) {
	rb.forceUpdater = f
}

func (rb *RigidBody) notifyBecomingDynamic() {
	rb.applyDefaultGroupForDynamic()
	if rb.forceUpdater != nil {
		rb.forceUpdater.ForceUpdateableBecomingDynamic(rb)
	}
}

func (rb *RigidBody) notifyBecomingKinematic() {
	rb.applyDefaultGroupForKinematic()
	if rb.forceUpdater != nil {
		rb.forceUpdater.ForceUpdateableBecomingKinematic(rb)
	}
}

// --- shape / material notification ---

// SetShape assigns the body's collidable shape and, unless
// IgnoreShapeChanges is set, notifies the CollidableHandle so it can
// recompute pairs (spec.md §3 side effects row).
func (rb *RigidBody) SetShape(s Shape) {
	if rb.collidable == nil {
		return
	}
	rb.collidable.SetShape(s)
	rb.activate()
	if !rb.IgnoreShapeChanges {
		if notifier, ok := rb.collidable.(interface{ ShapeChanged() }); ok {
			notifier.ShapeChanged()
		}
	}
	if rb.OnShapeChanged != nil {
		rb.OnShapeChanged(rb)
	}
}

// SetMaterial notifies the MaterialHandle collaborator of a material
// change (spec.md §3 side effects row).
func (rb *RigidBody) SetMaterial(m MaterialHandle) {
	rb.material = m
	if m != nil {
		m.MaterialChanged()
	}
	if rb.OnMaterialChanged != nil {
		rb.OnMaterialChanged(rb)
	}
}

// --- damping ---

// ModifyLinearDamping adds a transient boost to linear damping, clamped so
// base+boost stays within [0,1] (spec.md §4.1).
func (rb *RigidBody) ModifyLinearDamping(d float64) {
	rb.linearDampingBoost = clampDampingBoost(rb.baseLinearDamping, rb.linearDampingBoost, d)
}

// ModifyAngularDamping adds a transient boost to angular damping, clamped
// the same way.
func (rb *RigidBody) ModifyAngularDamping(d float64) {
	rb.angularDampingBoost = clampDampingBoost(rb.baseAngularDamping, rb.angularDampingBoost, d)
}

func clampDampingBoost(base, boost, d float64) float64 {
	next := boost + d*(1-(base+boost))
	if base+next < 0 {
		next = -base
	}
	if base+next > 1 {
		next = 1 - base
	}
	return next
}

// SetBaseLinearDamping/SetBaseAngularDamping set the permanent damping
// floor (spec.md §3: "base damping ∈ [0,1]").
func (rb *RigidBody) SetBaseLinearDamping(d float64)  { rb.baseLinearDamping = clamp01(d) }
func (rb *RigidBody) SetBaseAngularDamping(d float64) { rb.baseAngularDamping = clamp01(d) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LinearDamping/AngularDamping return base+boost, the total damping the
// Integrator applies this step.
func (rb *RigidBody) LinearDamping() float64  { return rb.baseLinearDamping + rb.linearDampingBoost }
func (rb *RigidBody) AngularDamping() float64 { return rb.baseAngularDamping + rb.angularDampingBoost }

// ResetDampingBoosts zeroes both transient boosts. Called by the
// Integrator at the end of each force-integration step (spec.md §3, §4.2
// step 4).
func (rb *RigidBody) ResetDampingBoosts() {
	rb.linearDampingBoost = 0
	rb.angularDampingBoost = 0
}

// BaseLinearDamping/BaseAngularDamping/LinearDampingBoost/AngularDampingBoost
// expose the individual components for the Integrator's stabilization
// check (spec.md §4.2 step 2 reads AllowStabilization and the body's
// slowing state, not the damping values directly, but tests and
// collaborators benefit from being able to inspect them).
func (rb *RigidBody) BaseLinearDamping() float64    { return rb.baseLinearDamping }
func (rb *RigidBody) BaseAngularDamping() float64   { return rb.baseAngularDamping }
func (rb *RigidBody) LinearDampingBoost() float64   { return rb.linearDampingBoost }
func (rb *RigidBody) AngularDampingBoost() float64  { return rb.angularDampingBoost }

// --- motion state round-trip ---

// GetMotionState returns an immutable pose+velocity snapshot.
func (rb *RigidBody) GetMotionState() MotionState {
	return MotionState{
		Position:        rb.Transform.Position,
		Orientation:     rb.Transform.Orientation,
		LinearVelocity:  rb.LinearVelocity,
		AngularVelocity: rb.AngularVelocity,
	}
}

// SetMotionState routes through the individual property setters, so
// (as spec.md §8 requires) it normalizes the orientation and activates
// the body like any other setter.
func (rb *RigidBody) SetMotionState(s MotionState) {
	rb.SetPosition(s.Position)
	rb.SetOrientation(s.Orientation)
	rb.SetLinearVelocity(s.LinearVelocity)
	rb.SetAngularVelocity(s.AngularVelocity)
}

// --- angular momentum ---

// GetAngularMomentum derives L = worldInertiaTensor * angularVelocity on
// read (spec.md §4.1).
func (rb *RigidBody) GetAngularMomentum() mgl64.Vec3 {
	return rb.WorldInertiaTensor.Mul3x1(rb.AngularVelocity)
}

// SetAngularMomentum sets angularVelocity = worldInertiaTensorInverse * L
// and activates the body (spec.md §4.1).
func (rb *RigidBody) SetAngularMomentum(l mgl64.Vec3) {
	rb.lock.Lock()
	rb.AngularVelocity = rb.WorldInertiaInverse.Mul3x1(l)
	rb.lock.Unlock()
	rb.activate()
}
