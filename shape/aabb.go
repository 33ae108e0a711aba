package shape

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box, used by collaborating broad-phase
// code to cull pairs before narrow-phase and TOI computation reach this
// module. Grounded on the teacher's actor.AABB.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (a AABB) ContainsPoint(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}
