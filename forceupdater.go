package forge

import (
	"github.com/akmonengine/forge/body"
	"github.com/go-gl/mathgl/mgl64"
)

// Gravity is a minimal body.ForceUpdater: a constant acceleration applied
// to every gravity-affected dynamic body each tick. Grounded on the
// teacher's World.Gravity field and World.integrate, which multiplies
// gravity by dt once per substep rather than leaving that to each body.
//
// body.ForceUpdater.GravityDt takes no dt argument (the Integrator is
// dt-agnostic about where that scaling happens, spec.md §6), so Space
// calls PrepareStep(dt) on every tick before handing Gravity to
// Integrator.Step.
type Gravity struct {
	Acceleration mgl64.Vec3
	dt           float64
}

// PrepareStep caches dt for the next GravityDt call.
func (g *Gravity) PrepareStep(dt float64) {
	g.dt = dt
}

func (g *Gravity) GravityDt() mgl64.Vec3 {
	return g.Acceleration.Mul(g.dt)
}

// ForceUpdateableBecomingDynamic and ForceUpdateableBecomingKinematic are
// no-ops: Gravity has no per-body bookkeeping, unlike a force accumulator
// that would need to add/remove the body from an active list.
func (g *Gravity) ForceUpdateableBecomingDynamic(b *body.RigidBody)   {}
func (g *Gravity) ForceUpdateableBecomingKinematic(b *body.RigidBody) {}
