// Package integrate advances a dynamic body's velocity under gravity and
// damping over a timestep and refreshes its world-space inertia tensors
// (spec.md §4.2). Grounded on the teacher's actor.RigidBody.Integrate,
// re-architected into a standalone component operating over
// collaborator-supplied bodies rather than a method that also commits
// accumulated forces/torques — force accumulation isn't part of this
// module's scope (the solver applies impulses directly via
// body.ApplyImpulse/ApplyLinearImpulse/ApplyAngularImpulse).
package integrate

import (
	"math"

	"github.com/akmonengine/forge/body"
)

// Integrator advances dynamic bodies one timestep at a time.
type Integrator struct{}

// Step runs spec.md §4.2's five-step algorithm over every body in bodies.
// Kinematic bodies are skipped — the algorithm only applies to dynamic
// bodies (spec.md §4.2: "given dt, update each dynamic body's velocity").
func (Integrator) Step(dt float64, bodies []*body.RigidBody, force body.ForceUpdater) {
	for _, b := range bodies {
		stepOne(dt, b, force)
	}
}

func stepOne(dt float64, b *body.RigidBody, force body.ForceUpdater) {
	if !b.IsDynamic() {
		return
	}

	// 1. Gravity.
	if b.GravityAffected && force != nil {
		b.LinearVelocity = b.LinearVelocity.Add(force.GravityDt())
	}

	// 2. Low-velocity stabilization boost.
	applyStabilization(b)

	// 3. Damping.
	applyDamping(dt, b)

	// 4. Reset damping boosts.
	b.ResetDampingBoosts()

	// 5. Refresh world inertia.
	b.RefreshWorldInertia()
}

func applyStabilization(b *body.RigidBody) {
	act := b.Activation()
	if act == nil {
		return
	}
	deact := act.Deactivation()
	if deact == nil || !deact.UseStabilization() || !act.AllowStabilization() {
		return
	}

	slowEnoughLongEnough := act.IsSlowing() || act.VelocityTimeBelowLimit() > deact.LowVelocityTimeMinimum()
	if !slowEnoughLongEnough {
		return
	}

	energy := b.LinearVelocity.Dot(b.LinearVelocity) + b.AngularVelocity.Dot(b.AngularVelocity)
	limitSq := deact.VelocityLowerLimitSquared()
	if energy >= limitSq {
		return
	}

	limit := deact.VelocityLowerLimit()
	if limit <= 0 {
		return
	}
	boost := 1 - math.Sqrt(energy)/(2*limit)
	b.ModifyLinearDamping(boost)
	b.ModifyAngularDamping(boost)
}

func applyDamping(dt float64, b *body.RigidBody) {
	if total := b.LinearDamping(); total > 0 {
		factor := math.Pow(clamp01(1-total), dt)
		b.LinearVelocity = b.LinearVelocity.Mul(factor)
	}
	if total := b.AngularDamping(); total > 0 {
		factor := math.Pow(clamp01(1-total), dt)
		b.AngularVelocity = b.AngularVelocity.Mul(factor)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
