// Package mathkernel layers a handful of rigid-body-specific helpers on top
// of github.com/go-gl/mathgl/mgl64: inertia-tensor inversion that tolerates
// axis-locked (singular) tensors, and the shared world-inertia computation.
package mathkernel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SingularAxisTolerance is how close to zero a diagonal entry must be
// before AdaptiveInvert treats that axis as locked.
const SingularAxisTolerance = 1e-12

// AdaptiveInvert returns the best-effort inverse of a symmetric
// positive-semidefinite 3x3 tensor. Unlike mgl64.Mat3.Inv, it never
// returns NaN/Inf: for a tensor with a zero (or near-zero) eigenvalue on
// one of its principal axes, the corresponding row/column of the result
// is zero instead of blowing up. This is the contract spec.md §9 calls
// "AdaptiveInvert" for bodies locked on one rotational axis.
func AdaptiveInvert(m mgl64.Mat3) mgl64.Mat3 {
	if isDiagonal(m) {
		var out mgl64.Mat3
		for i := 0; i < 3; i++ {
			v := m[i*3+i]
			if math.Abs(v) > SingularAxisTolerance {
				out[i*3+i] = 1.0 / v
			}
		}
		return out
	}

	det := m.Det()
	if math.Abs(det) <= SingularAxisTolerance {
		// Non-diagonal and singular: fall back to the diagonal-only
		// pseudo-inverse rather than propagate a NaN from a true
		// inverse. This under-approximates off-diagonal coupling but
		// keeps every entry finite, which is the invariant callers rely
		// on (spec.md §7, "Singular matrix").
		var diag mgl64.Mat3
		for i := 0; i < 3; i++ {
			diag[i*3+i] = m[i*3+i]
		}
		return AdaptiveInvert(diag)
	}

	return m.Inv()
}

func isDiagonal(m mgl64.Mat3) bool {
	const eps = 1e-12
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == col {
				continue
			}
			if math.Abs(m[col*3+row]) > eps {
				return false
			}
		}
	}
	return true
}

// WorldInertia computes R * local * R^T for the given orientation matrix
// and local-space tensor. Shared by RigidBody and Integrator so both sides
// of the invariant in spec.md §3 use the identical computation.
func WorldInertia(orientation mgl64.Mat3, local mgl64.Mat3) mgl64.Mat3 {
	return orientation.Mul3(local).Mul3(orientation.Transpose())
}

// IsFiniteVec3 reports whether every component of v is neither NaN nor ±Inf.
func IsFiniteVec3(v mgl64.Vec3) bool {
	return isFinite(v.X()) && isFinite(v.Y()) && isFinite(v.Z())
}

// IsFiniteQuat reports whether every component of q is finite.
func IsFiniteQuat(q mgl64.Quat) bool {
	return isFinite(q.W) && isFinite(q.V.X()) && isFinite(q.V.Y()) && isFinite(q.V.Z())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
