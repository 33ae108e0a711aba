// Package shape implements the collision shapes that back body.Shape:
// Box, Sphere, and Plane. Grounded on the teacher's actor/shape.go, with
// ComputeMass(density) and GetContactFeature dropped — this module has no
// density concept (mass is supplied directly, see body.RigidBody) and
// contact-feature extraction is a narrow-phase concern that lives with the
// external collaborator that does manifold generation, not here.
package shape

import (
	"math"

	"github.com/akmonengine/forge/body"
	"github.com/go-gl/mathgl/mgl64"
)

// Box is an oriented box shape defined by its half-extents.
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) ComputeAABB(transform body.Transform) {
	corners := [8]mgl64.Vec3{
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
	}

	worldCorner := transform.Orientation.Rotate(corners[0]).Add(transform.Position)
	min, max := worldCorner, worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.Orientation.Rotate(corners[i]).Add(transform.Position)
		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])
		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB { return b.aabb }

// VolumeDistribution returns the box's unit-mass inertia tensor; body.RigidBody
// scales it by mass (and InertiaTensorScale) when deriving a body's local
// inertia tensor.
func (b *Box) VolumeDistribution() mgl64.Mat3 {
	x := b.HalfExtents.X() * 2
	y := b.HalfExtents.Y() * 2
	z := b.HalfExtents.Z() * 2

	const factor = 1.0 / 12.0
	return mgl64.Mat3{
		factor * (y*y + z*z), 0, 0,
		0, factor * (x*x + z*z), 0,
		0, 0, factor * (x*x + y*y),
	}
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}
	return mgl64.Vec3{hx, hy, hz}
}

// Sphere is a sphere shape defined by its radius.
type Sphere struct {
	Radius float64
	aabb   AABB
}

func (s *Sphere) ComputeAABB(transform body.Transform) {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	s.aabb = AABB{Min: transform.Position.Sub(r), Max: transform.Position.Add(r)}
}

func (s *Sphere) GetAABB() AABB { return s.aabb }

func (s *Sphere) VolumeDistribution() mgl64.Mat3 {
	i := (2.0 / 5.0) * s.Radius * s.Radius
	return mgl64.Mat3{
		i, 0, 0,
		0, i, 0,
		0, 0, i,
	}
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return direction.Normalize().Mul(s.Radius)
}

// Plane is an infinite plane shape: Normal . p + Distance = 0. Planes are
// always kinematic (spec.md has no "infinite mass" concept — callers
// should construct plane bodies with mass <= 0).
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
	aabb     AABB
}

func (p *Plane) ComputeAABB(transform body.Transform) {
	const thickness = 1.0
	const infinity = 1e10

	planePoint := p.Normal.Mul(-p.Distance)
	min := planePoint.Sub(p.Normal.Mul(thickness)).Add(transform.Position)
	max := planePoint.Add(transform.Position)

	absNormal := mgl64.Vec3{math.Abs(p.Normal.X()), math.Abs(p.Normal.Y()), math.Abs(p.Normal.Z())}
	for axis := 0; axis < 3; axis++ {
		if absNormal[axis] < 0.9 {
			min[axis] = -infinity
			max[axis] = infinity
		}
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Plane) GetAABB() AABB { return p.aabb }

// VolumeDistribution returns the zero tensor; planes are not meant to be
// constructed as dynamic bodies.
func (p *Plane) VolumeDistribution() mgl64.Mat3 {
	return mgl64.Mat3{}
}

func (p *Plane) Support(direction mgl64.Vec3) mgl64.Vec3 {
	const boxHalfWidth = 1000.0
	const boxHalfHeight = 0.5
	const boxHalfDepth = 1000.0

	x := boxHalfWidth
	if direction.X() < 0 {
		x = -boxHalfWidth
	}
	y := boxHalfHeight
	if direction.Y() < 0 {
		y = -boxHalfHeight
	}
	z := boxHalfDepth
	if direction.Z() < 0 {
		z = -boxHalfDepth
	}
	return mgl64.Vec3{x, y, z}
}
