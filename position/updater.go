// Package position implements the two position-update strategies from
// spec.md §4.3: Discrete (advance pose by v*dt every tick) and Continuous
// (advance orientation every tick, but gate the translation advance by the
// minimum time-of-impact across the body's contact pairs). Grounded on the
// teacher's actor.RigidBody.Integrate (the quaternion half-step block) and
// actor.RigidBody.Update (commit-predicted-transform pattern); the CCD/TOI
// half has no teacher analogue and is built directly from spec.md §4.3's
// algorithm.
package position

import (
	"github.com/akmonengine/forge/body"
	"github.com/go-gl/mathgl/mgl64"
)

// PositionUpdater runs the pre-update and continuous-update phases over a
// set of updateable bodies each tick.
type PositionUpdater struct {
	// Settings supplies the global CCD-eligibility predicate consulted by
	// UpdateTimesOfImpact (spec.md §6's MotionSettings).
	Settings body.MotionSettings
}

// PreUpdate runs spec.md §4.3's "pre-update" phase for every updateable
// body regardless of mode: a quaternion half-step, an orientation-matrix
// refresh, and — for Discrete-mode bodies only — the translation advance,
// world-transform update, and PositionUpdated emission.
//
// onUpdated is called once per body whose pose was finalized this phase
// (Discrete bodies only; Continuous bodies finalize in ContinuousUpdate).
// It stands in for the subscriber-list event mechanism in package events,
// kept as a plain callback here so this package doesn't need to import
// events for a single call site.
func (PositionUpdater) PreUpdate(dt float64, bodies []*body.RigidBody, collidables map[*body.RigidBody]body.CollidableHandle, onUpdated func(*body.RigidBody)) {
	for _, b := range bodies {
		preUpdateOne(dt, b, collidables[b], onUpdated)
	}
}

func preUpdateOne(dt float64, b *body.RigidBody, collidable body.CollidableHandle, onUpdated func(*body.RigidBody)) {
	halfStepOrientation(dt, b)

	if b.PositionUpdateMode == body.Discrete {
		b.Transform.Position = b.Transform.Position.Add(b.LinearVelocity.Mul(dt))
		if collidable != nil {
			collidable.UpdateWorldTransform(b.Transform.Position, b.Transform.Orientation)
		}
		if onUpdated != nil {
			onUpdated(b)
		}
	}
}

// halfStepOrientation implements spec.md §4.3 pre-update steps 1-2:
// q <- normalize(q + 0.5*(omega_quat*dt)*q), then refresh the cached
// orientation matrix. Mutates the transform fields directly rather than
// going through body.SetOrientation, since this phase already holds
// exclusive access to the body by construction (spec.md §5: "each body is
// mutated by exactly one worker") and does not need the activation side
// effect a public setter would add.
func halfStepOrientation(dt float64, b *body.RigidBody) {
	w := b.AngularVelocity
	omegaQuat := mgl64.Quat{W: 0, V: w}
	qDot := omegaQuat.Mul(b.Transform.Orientation).Scale(0.5)
	q := b.Transform.Orientation.Add(qDot.Scale(dt)).Normalize()

	b.Transform.Orientation = q
	b.Transform.OrientationMatrix = q.Mat4().Mat3()
}

// ResetTimesOfImpact implements spec.md §4.3's resetTimesOfImpact: sets
// every pair's timeOfImpact to 1 (the teacher's pack has no TOI concept;
// this is built directly from the spec).
func (PositionUpdater) ResetTimesOfImpact(pairs []body.ContactPair) {
	for _, p := range pairs {
		p.SetTimeOfImpact(1)
	}
}

// UpdateTimesOfImpact implements spec.md §4.3's updateTimesOfImpact: for
// each pair that is CCD-eligible per the global motion settings, delegate
// TOI computation to the pair. Safe to run concurrently across pairs
// because each pair writes only its own TOI slot (spec.md §5).
func (u PositionUpdater) UpdateTimesOfImpact(dt float64, pairs []body.ContactPair) {
	for _, p := range pairs {
		if u.Settings == nil || !u.Settings.PairAllowsCCD(p.BodyA(), p) {
			continue
		}
		p.UpdateTimeOfImpact(dt)
	}
}

// ContinuousUpdate implements spec.md §4.3's "continuous update" phase,
// which runs only for Continuous-mode bodies after TOI computation:
// position += linearVelocity * dt * toi_min, where toi_min is the
// minimum TimeOfImpact across the body's pairs (default 1 if it has
// none).
func (PositionUpdater) ContinuousUpdate(dt float64, bodies []*body.RigidBody, collidables map[*body.RigidBody]body.CollidableHandle, onUpdated func(*body.RigidBody)) {
	for _, b := range bodies {
		if b.PositionUpdateMode != body.Continuous {
			continue
		}
		continuousUpdateOne(dt, b, collidables[b], onUpdated)
	}
}

func continuousUpdateOne(dt float64, b *body.RigidBody, collidable body.CollidableHandle, onUpdated func(*body.RigidBody)) {
	toiMin := 1.0
	if collidable != nil {
		for _, pair := range collidable.Pairs() {
			if toi := pair.TimeOfImpact(); toi < toiMin {
				toiMin = toi
			}
		}
	}

	b.Transform.Position = b.Transform.Position.Add(b.LinearVelocity.Mul(dt * toiMin))

	if collidable != nil {
		collidable.UpdateWorldTransform(b.Transform.Position, b.Transform.Orientation)
	}
	if onUpdated != nil {
		onUpdated(b)
	}
}
