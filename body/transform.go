package body

import "github.com/go-gl/mathgl/mgl64"

// Transform is the pose of a rigid body: a position plus a unit-quaternion
// orientation, with the orientation's 3x3 rotation matrix cached so callers
// don't recompute it every read. Grounded on the teacher's actor/transform.go;
// InverseRotation there is generalized here into the cached rotation matrix
// the spec's invariants are phrased against (spec.md §3, "orientation matrix
// equals the quaternion's rotation matrix").
type Transform struct {
	Position          mgl64.Vec3
	Orientation       mgl64.Quat
	OrientationMatrix mgl64.Mat3
}

// NewTransform returns the identity pose.
func NewTransform() Transform {
	return Transform{
		Position:          mgl64.Vec3{0, 0, 0},
		Orientation:       mgl64.QuatIdent(),
		OrientationMatrix: mgl64.Ident3(),
	}
}

// MotionState is the immutable pose+velocity snapshot described in
// spec.md §3 — used for buffered/interpolated reads. Once created it is
// a plain value; nothing in this package mutates a MotionState after
// RigidBody.GetMotionState returns it.
type MotionState struct {
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
}
