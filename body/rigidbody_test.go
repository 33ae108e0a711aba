package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// fakeActivation is a minimal ActivationHandle for tests; it just counts
// Activate() calls so tests can assert a mutator touched it.
type fakeActivation struct {
	activations int
	deact       DeactivationManager
}

func (f *fakeActivation) Activate()                          { f.activations++ }
func (f *fakeActivation) IsActive() bool                     { return true }
func (f *fakeActivation) IsSlowing() bool                    { return false }
func (f *fakeActivation) VelocityTimeBelowLimit() float64    { return 0 }
func (f *fakeActivation) AllowStabilization() bool           { return true }
func (f *fakeActivation) Deactivation() DeactivationManager  { return f.deact }

// fakeShape is a unit-sphere-like shape with a fixed volume distribution,
// enough to exercise SetMass/BecomeDynamic without pulling in package
// shape (which itself depends on body.Shape and would be a cycle).
type fakeShape struct {
	distribution mgl64.Mat3
}

func (s fakeShape) VolumeDistribution() mgl64.Mat3 { return s.distribution }

func unitShape() fakeShape {
	return fakeShape{distribution: mgl64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

func almostEqualVec3(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol && math.Abs(a.Y()-b.Y()) < tol && math.Abs(a.Z()-b.Z()) < tol
}

func TestNewRigidBody_KinematicByDefaultMass(t *testing.T) {
	rb := NewRigidBody(unitShape(), 0, &fakeActivation{})
	if rb.IsDynamic() {
		t.Fatal("mass <= 0 should yield a kinematic body")
	}
	if rb.Mass() != 0 || rb.InverseMass() != 0 {
		t.Fatalf("kinematic body should have mass=0 inverseMass=0, got %v %v", rb.Mass(), rb.InverseMass())
	}
	if rb.localInertiaInverse != (mgl64.Mat3{}) {
		t.Fatal("kinematic body localInertiaTensorInverse should be the zero matrix")
	}
}

func TestNewRigidBody_DynamicDerivesTensor(t *testing.T) {
	rb := NewRigidBody(unitShape(), 4, &fakeActivation{})
	if !rb.IsDynamic() {
		t.Fatal("positive finite mass should yield a dynamic body")
	}
	if rb.Mass() != 4 {
		t.Fatalf("mass = %v, want 4", rb.Mass())
	}
	if math.Abs(rb.Mass()*rb.InverseMass()-1) > 1e-5 {
		t.Fatalf("mass*inverseMass = %v, want ~1", rb.Mass()*rb.InverseMass())
	}

	want := scaleMat3(unitShape().distribution, 4*InertiaTensorScale)
	if rb.LocalInertiaTensor != want {
		t.Fatalf("LocalInertiaTensor = %v, want %v", rb.LocalInertiaTensor, want)
	}
}

func TestSetOrientation_NormalizesAndUpdatesMatrix(t *testing.T) {
	act := &fakeActivation{}
	rb := NewRigidBody(unitShape(), 1, act)

	q := mgl64.Quat{W: 2, V: mgl64.Vec3{0, 0, 0}} // not unit length
	rb.SetOrientation(q)

	n := rb.Transform.Orientation.Len()
	if math.Abs(n-1) > 1e-6 {
		t.Fatalf("orientation norm = %v, want ~1", n)
	}
	wantMat := rb.Transform.Orientation.Mat4().Mat3()
	if rb.Transform.OrientationMatrix != wantMat {
		t.Fatal("OrientationMatrix does not match the quaternion's rotation matrix")
	}
	if act.activations == 0 {
		t.Fatal("SetOrientation should activate the body")
	}
}

// TestScenario_FreeFall is spec.md §8 scenario 1.
func TestScenario_FreeFall(t *testing.T) {
	rb := NewRigidBody(unitShape(), 1, &fakeActivation{})
	rb.SetPosition(mgl64.Vec3{0, 10, 0})
	rb.GravityAffected = true

	gravity := mgl64.Vec3{0, -10, 0}
	dt := 1.0
	rb.SetLinearVelocity(rb.LinearVelocity.Add(gravity.Mul(dt)))
	rb.SetPosition(rb.Transform.Position.Add(rb.LinearVelocity.Mul(dt)))

	if !almostEqualVec3(rb.LinearVelocity, mgl64.Vec3{0, -10, 0}, 1e-9) {
		t.Fatalf("linearVelocity = %v, want (0,-10,0)", rb.LinearVelocity)
	}
	if !almostEqualVec3(rb.Transform.Position, mgl64.Vec3{0, 0, 0}, 1e-9) {
		t.Fatalf("position = %v, want (0,0,0)", rb.Transform.Position)
	}
}

// TestScenario_CentralImpulse is spec.md §8 scenario 3.
func TestScenario_CentralImpulse(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	rb.ApplyImpulse(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0})

	if !almostEqualVec3(rb.LinearVelocity, mgl64.Vec3{5, 0, 0}, 1e-9) {
		t.Fatalf("linearVelocity = %v, want (5,0,0)", rb.LinearVelocity)
	}
	if !almostEqualVec3(rb.AngularVelocity, mgl64.Vec3{0, 0, 0}, 1e-9) {
		t.Fatalf("angularVelocity = %v, want (0,0,0)", rb.AngularVelocity)
	}
}

// TestScenario_OffAxisImpulse is spec.md §8 scenario 4 (identity inertia
// tensor I, so worldInertiaTensorInverse is also identity).
func TestScenario_OffAxisImpulse(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	identity := mgl64.Ident3()
	_ = rb.BecomeDynamic(2, unitShape(), &identity)
	rb.ApplyImpulse(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 10, 0})

	if !almostEqualVec3(rb.LinearVelocity, mgl64.Vec3{0, 5, 0}, 1e-9) {
		t.Fatalf("linearVelocity = %v, want (0,5,0)", rb.LinearVelocity)
	}
	if !almostEqualVec3(rb.AngularVelocity, mgl64.Vec3{0, 0, 10}, 1e-9) {
		t.Fatalf("angularVelocity = %v, want (0,0,10)", rb.AngularVelocity)
	}
}

// TestScenario_MassTransitionPreservesVelocity is spec.md §8 scenario 5.
func TestScenario_MassTransitionPreservesVelocity(t *testing.T) {
	rb := NewRigidBody(unitShape(), 0, &fakeActivation{}) // kinematic
	rb.SetLinearVelocity(mgl64.Vec3{1, 2, 3})

	rb.SetMass(4, unitShape())

	if !rb.IsDynamic() {
		t.Fatal("SetMass with a positive mass should make the body dynamic")
	}
	if !almostEqualVec3(rb.LinearVelocity, mgl64.Vec3{1, 2, 3}, 1e-9) {
		t.Fatalf("linearVelocity = %v, want (1,2,3)", rb.LinearVelocity)
	}
	if math.Abs(rb.InverseMass()-0.25) > 1e-9 {
		t.Fatalf("inverseMass = %v, want 0.25", rb.InverseMass())
	}
	want := scaleMat3(unitShape().distribution, 4*InertiaTensorScale)
	if rb.LocalInertiaTensor != want {
		t.Fatalf("LocalInertiaTensor = %v, want %v", rb.LocalInertiaTensor, want)
	}
}

func TestSetMass_ScalesExistingTensorWhenAlreadyDynamic(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	before := rb.LocalInertiaTensor

	rb.SetMass(6, unitShape())

	want := scaleMat3(before, 3) // 6/2
	if rb.LocalInertiaTensor != want {
		t.Fatalf("LocalInertiaTensor = %v, want %v (scaled by mass/oldMass)", rb.LocalInertiaTensor, want)
	}
}

func TestSetMass_Idempotent(t *testing.T) {
	rb := NewRigidBody(unitShape(), 3, &fakeActivation{})
	rb.SetMass(5, unitShape())
	first := rb.LocalInertiaTensor
	rb.SetMass(5, unitShape())
	if rb.LocalInertiaTensor != first {
		t.Fatal("setMass(m); setMass(m) should be idempotent beyond the first call")
	}
}

func TestSetMass_NonPositiveBecomesKinematic(t *testing.T) {
	rb := NewRigidBody(unitShape(), 3, &fakeActivation{})
	rb.SetLinearVelocity(mgl64.Vec3{9, 9, 9})
	rb.SetMass(0, unitShape())

	if rb.IsDynamic() {
		t.Fatal("SetMass(0) should demote the body to kinematic")
	}
	if !almostEqualVec3(rb.LinearVelocity, mgl64.Vec3{9, 9, 9}, 1e-9) {
		t.Fatal("SetMass(0) should preserve velocities")
	}
}

func TestBecomeDynamic_InvalidMassFails(t *testing.T) {
	rb := NewRigidBody(unitShape(), 0, &fakeActivation{})
	err := rb.BecomeDynamic(0, unitShape(), nil)
	if err == nil {
		t.Fatal("BecomeDynamic(0, ...) should fail")
	}
	if rb.IsDynamic() {
		t.Fatal("a failed BecomeDynamic must leave the body's state unchanged")
	}

	err = rb.BecomeDynamic(math.NaN(), unitShape(), nil)
	if err == nil {
		t.Fatal("BecomeDynamic(NaN, ...) should fail")
	}
}

func TestBecomeKinematic_Idempotent(t *testing.T) {
	rb := NewRigidBody(unitShape(), 3, &fakeActivation{})
	rb.BecomeKinematic()
	firstMass, firstInvMass, firstDynamic := rb.mass, rb.inverseMass, rb.dynamic
	rb.BecomeKinematic()
	if firstMass != rb.mass || firstInvMass != rb.inverseMass || firstDynamic != rb.dynamic {
		t.Fatal("becomeKinematic(); becomeKinematic() should leave state identical to a single call")
	}
}

func TestApplyImpulse_ZeroIsIdentity(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	rb.SetLinearVelocity(mgl64.Vec3{1, 1, 1})
	before := rb.LinearVelocity

	rb.ApplyImpulse(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{0, 0, 0})

	if rb.LinearVelocity != before {
		t.Fatal("applyImpulse(p, 0) should be identity on velocities")
	}
}

func TestApplyImpulse_EqualAndOppositeRestoresVelocity(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	before := rb.LinearVelocity
	beforeAngular := rb.AngularVelocity

	F := mgl64.Vec3{3, -1, 2}
	rb.ApplyImpulse(rb.Transform.Position, F)
	rb.ApplyImpulse(rb.Transform.Position, F.Mul(-1))

	if !almostEqualVec3(rb.LinearVelocity, before, 1e-9) {
		t.Fatalf("linearVelocity = %v, want restored to %v", rb.LinearVelocity, before)
	}
	if rb.AngularVelocity != beforeAngular {
		t.Fatal("a central impulse (zero moment arm) must never change angular velocity")
	}
}

func TestApplyImpulse_NoOpWhenKinematic(t *testing.T) {
	rb := NewRigidBody(unitShape(), 0, &fakeActivation{})
	rb.ApplyImpulse(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{99, 99, 99})
	if rb.LinearVelocity != (mgl64.Vec3{}) {
		t.Fatal("applyImpulse on a kinematic body should be a no-op")
	}
}

func TestModifyDamping_ClampsWithinUnitRange(t *testing.T) {
	rb := NewRigidBody(unitShape(), 1, &fakeActivation{})
	rb.SetBaseLinearDamping(0.9)

	for i := 0; i < 50; i++ {
		rb.ModifyLinearDamping(1.0)
	}

	if rb.LinearDamping() > 1.0+1e-9 {
		t.Fatalf("base+boost = %v, must stay within [0,1]", rb.LinearDamping())
	}
}

func TestResetDampingBoosts(t *testing.T) {
	rb := NewRigidBody(unitShape(), 1, &fakeActivation{})
	rb.ModifyLinearDamping(0.5)
	rb.ModifyAngularDamping(0.5)
	rb.ResetDampingBoosts()
	if rb.LinearDampingBoost() != 0 || rb.AngularDampingBoost() != 0 {
		t.Fatal("ResetDampingBoosts should zero both transient boosts")
	}
}

func TestMotionState_RoundTrip(t *testing.T) {
	rb := NewRigidBody(unitShape(), 1, &fakeActivation{})
	rb.SetPosition(mgl64.Vec3{1, 2, 3})
	rb.SetOrientation(mgl64.Quat{W: 1, V: mgl64.Vec3{0, 0, 0}}.Normalize())
	rb.SetLinearVelocity(mgl64.Vec3{4, 5, 6})
	rb.SetAngularVelocity(mgl64.Vec3{7, 8, 9})

	s := rb.GetMotionState()
	rb2 := NewRigidBody(unitShape(), 1, &fakeActivation{})
	rb2.SetMotionState(s)

	if rb2.Transform.Position != rb.Transform.Position {
		t.Fatal("position did not round-trip")
	}
	if rb2.LinearVelocity != rb.LinearVelocity || rb2.AngularVelocity != rb.AngularVelocity {
		t.Fatal("velocities did not round-trip")
	}
	if math.Abs(rb2.Transform.Orientation.Len()-1) > 1e-6 {
		t.Fatal("orientation must remain a unit quaternion after round-trip")
	}
}

func TestAngularMomentum_RoundTrip(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	rb.SetAngularVelocity(mgl64.Vec3{1, 2, 3})

	l := rb.GetAngularMomentum()
	rb.SetAngularMomentum(l)

	if !almostEqualVec3(rb.AngularVelocity, mgl64.Vec3{1, 2, 3}, 1e-6) {
		t.Fatalf("angularVelocity = %v, want (1,2,3) after L round-trip", rb.AngularVelocity)
	}
}

func TestBecomeKinematic_NotifiesForceUpdater(t *testing.T) {
	rb := NewRigidBody(unitShape(), 2, &fakeActivation{})
	fu := &fakeForceUpdater{}
	rb.SetForceUpdater(fu)

	rb.BecomeKinematic()

	if fu.kinematicCalls != 1 {
		t.Fatalf("ForceUpdateableBecomingKinematic calls = %d, want 1", fu.kinematicCalls)
	}
}

type fakeForceUpdater struct {
	dynamicCalls   int
	kinematicCalls int
}

func (f *fakeForceUpdater) GravityDt() mgl64.Vec3 { return mgl64.Vec3{} }
func (f *fakeForceUpdater) ForceUpdateableBecomingDynamic(b *RigidBody) {
	f.dynamicCalls++
}
func (f *fakeForceUpdater) ForceUpdateableBecomingKinematic(b *RigidBody) {
	f.kinematicCalls++
}
