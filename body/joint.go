package body

import "github.com/go-gl/mathgl/mgl64"

// BigEpsilon is the orthogonality tolerance from spec.md's GLOSSARY: two
// JointBasis axes are considered perpendicular if their dot product's
// absolute value is below this bound.
const BigEpsilon = 1e-5

// JointBasis3D is an orthonormal 3-axis reference frame attached to a
// body and used by constraints to project forces onto meaningful axes
// (spec.md §3, §4.5). Built directly from spec.md's description in the
// teacher's plain-struct-plus-validating-setters idiom — the teacher has
// no joint-frame concept to adapt from.
type JointBasis3D struct {
	// Local axes, in the owning body's local space.
	localX mgl64.Vec3 // right
	localY mgl64.Vec3 // up
	localZ mgl64.Vec3 // backward (primary axis)

	rotation mgl64.Mat3 // world-rotation matrix

	worldX mgl64.Vec3
	worldY mgl64.Vec3
	worldZ mgl64.Vec3
}

// NewJointBasis3D returns the default frame spec.md §4.5 describes:
// primary axis +Z (backward), x = +X (right), y = +Y (up), rotation =
// identity.
func NewJointBasis3D() *JointBasis3D {
	jb := &JointBasis3D{
		localX:   mgl64.Vec3{1, 0, 0},
		localY:   mgl64.Vec3{0, 1, 0},
		localZ:   mgl64.Vec3{0, 0, 1},
		rotation: mgl64.Ident3(),
	}
	jb.recomputeWorldAxes()
	return jb
}

// SetLocalAxes validates that x, y, z are mutually orthogonal (within
// BigEpsilon), normalizes them, and recomputes the world axes.
func (jb *JointBasis3D) SetLocalAxes(x, y, z mgl64.Vec3) error {
	if err := checkOrthogonal3(x, y, z); err != nil {
		return err
	}
	jb.localX, jb.localY, jb.localZ = x.Normalize(), y.Normalize(), z.Normalize()
	jb.recomputeWorldAxes()
	return nil
}

// SetWorldAxes validates orthogonality of the given world-space axes,
// normalizes them, and projects them into local space by multiplying by
// the transpose of the current rotation matrix (spec.md §4.5).
func (jb *JointBasis3D) SetWorldAxes(x, y, z mgl64.Vec3) error {
	if err := checkOrthogonal3(x, y, z); err != nil {
		return err
	}
	x, y, z = x.Normalize(), y.Normalize(), z.Normalize()
	rt := jb.rotation.Transpose()
	jb.localX = rt.Mul3x1(x)
	jb.localY = rt.Mul3x1(y)
	jb.localZ = rt.Mul3x1(z)
	jb.worldX, jb.worldY, jb.worldZ = x, y, z
	return nil
}

// SetRotation assigns the world-rotation matrix and recomputes the world
// axes (spec.md §4.5: "Recomputation of the world axes occurs whenever
// the rotation matrix is assigned").
func (jb *JointBasis3D) SetRotation(r mgl64.Mat3) {
	jb.rotation = r
	jb.recomputeWorldAxes()
}

func (jb *JointBasis3D) recomputeWorldAxes() {
	jb.worldX = jb.rotation.Mul3x1(jb.localX)
	jb.worldY = jb.rotation.Mul3x1(jb.localY)
	jb.worldZ = jb.rotation.Mul3x1(jb.localZ)
}

// LocalAxes / WorldAxes / Rotation are plain accessors.
func (jb *JointBasis3D) LocalAxes() (x, y, z mgl64.Vec3) { return jb.localX, jb.localY, jb.localZ }
func (jb *JointBasis3D) WorldAxes() (x, y, z mgl64.Vec3) { return jb.worldX, jb.worldY, jb.worldZ }
func (jb *JointBasis3D) Rotation() mgl64.Mat3             { return jb.rotation }

func checkOrthogonal3(x, y, z mgl64.Vec3) error {
	xn, yn, zn := x.Normalize(), y.Normalize(), z.Normalize()
	for _, dot := range []float64{xn.Dot(yn), yn.Dot(zn), xn.Dot(zn)} {
		if abs(dot) > BigEpsilon {
			return NonOrthogonalBasisError(dot)
		}
	}
	return nil
}

// JointBasis2D is the two-axis variant of JointBasis3D, used by
// constraints that only need a plane's worth of orthogonal reference
// (spec.md §3: "JointBasis3D / JointBasis2D").
type JointBasis2D struct {
	localX mgl64.Vec3
	localY mgl64.Vec3

	rotation mgl64.Mat3

	worldX mgl64.Vec3
	worldY mgl64.Vec3
}

// NewJointBasis2D returns the default 2-axis frame: x = +X, y = +Y,
// rotation = identity.
func NewJointBasis2D() *JointBasis2D {
	jb := &JointBasis2D{
		localX:   mgl64.Vec3{1, 0, 0},
		localY:   mgl64.Vec3{0, 1, 0},
		rotation: mgl64.Ident3(),
	}
	jb.recomputeWorldAxes()
	return jb
}

// SetLocalAxes validates orthogonality, normalizes, and recomputes world
// axes.
func (jb *JointBasis2D) SetLocalAxes(x, y mgl64.Vec3) error {
	xn, yn := x.Normalize(), y.Normalize()
	if dot := xn.Dot(yn); abs(dot) > BigEpsilon {
		return NonOrthogonalBasisError(dot)
	}
	jb.localX, jb.localY = xn, yn
	jb.recomputeWorldAxes()
	return nil
}

// SetWorldAxes validates orthogonality of the world-space axes, then
// projects them into local space via the rotation matrix's transpose.
func (jb *JointBasis2D) SetWorldAxes(x, y mgl64.Vec3) error {
	xn, yn := x.Normalize(), y.Normalize()
	if dot := xn.Dot(yn); abs(dot) > BigEpsilon {
		return NonOrthogonalBasisError(dot)
	}
	rt := jb.rotation.Transpose()
	jb.localX = rt.Mul3x1(xn)
	jb.localY = rt.Mul3x1(yn)
	jb.worldX, jb.worldY = xn, yn
	return nil
}

// SetRotation assigns the world-rotation matrix and recomputes the world
// axes.
func (jb *JointBasis2D) SetRotation(r mgl64.Mat3) {
	jb.rotation = r
	jb.recomputeWorldAxes()
}

func (jb *JointBasis2D) recomputeWorldAxes() {
	jb.worldX = jb.rotation.Mul3x1(jb.localX)
	jb.worldY = jb.rotation.Mul3x1(jb.localY)
}

func (jb *JointBasis2D) LocalAxes() (x, y mgl64.Vec3) { return jb.localX, jb.localY }
func (jb *JointBasis2D) WorldAxes() (x, y mgl64.Vec3) { return jb.worldX, jb.worldY }
func (jb *JointBasis2D) Rotation() mgl64.Mat3          { return jb.rotation }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
