package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewJointBasis3D_Defaults(t *testing.T) {
	jb := NewJointBasis3D()
	x, y, z := jb.LocalAxes()
	if x != (mgl64.Vec3{1, 0, 0}) || y != (mgl64.Vec3{0, 1, 0}) || z != (mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("default local axes = (%v,%v,%v), want +X,+Y,+Z", x, y, z)
	}
	if jb.Rotation() != mgl64.Ident3() {
		t.Fatal("default rotation should be identity")
	}
}

func TestJointBasis3D_SetLocalAxes_RejectsNonOrthogonal(t *testing.T) {
	jb := NewJointBasis3D()
	err := jb.SetLocalAxes(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0, 0, 1})
	if err == nil {
		t.Fatal("non-orthogonal axes should fail")
	}
}

func TestJointBasis3D_SetLocalAxes_NormalizesAndAccepts(t *testing.T) {
	jb := NewJointBasis3D()
	err := jb.SetLocalAxes(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, 0, 5})
	if err != nil {
		t.Fatalf("orthogonal axes should be accepted, got %v", err)
	}
	x, _, _ := jb.LocalAxes()
	if math.Abs(x.Len()-1) > 1e-9 {
		t.Fatalf("local axes should be normalized, len(x) = %v", x.Len())
	}
}

func TestJointBasis3D_SetRotation_RecomputesWorldAxes(t *testing.T) {
	jb := NewJointBasis3D()
	r := mgl64.Mat3{
		0, 1, 0,
		-1, 0, 0,
		0, 0, 1,
	} // 90 degree rotation about Z in mathgl's column-major layout
	jb.SetRotation(r)

	wx, _, _ := jb.WorldAxes()
	expected := r.Mul3x1(mgl64.Vec3{1, 0, 0})
	if wx != expected {
		t.Fatalf("world X axis = %v, want R*localX = %v", wx, expected)
	}
}

func TestJointBasis2D_Defaults(t *testing.T) {
	jb := NewJointBasis2D()
	x, y := jb.LocalAxes()
	if x != (mgl64.Vec3{1, 0, 0}) || y != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("default local axes = (%v,%v), want +X,+Y", x, y)
	}
}

func TestJointBasis2D_SetLocalAxes_RejectsNonOrthogonal(t *testing.T) {
	jb := NewJointBasis2D()
	if err := jb.SetLocalAxes(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}); err == nil {
		t.Fatal("non-orthogonal axes should fail")
	}
}
