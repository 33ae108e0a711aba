// Package forge is the root orchestration package: Space sequences the
// phases a caller's collaborator graph participates in each tick, and
// ships minimal concrete collaborators (Activation, Gravity) so the core
// can be exercised end to end without a full broad-phase/narrow-phase/
// solver stack. Grounded on the teacher's World.Step and pipeline.go's
// task() chunked-goroutine helper, with the solver pulled out into a
// caller-supplied parameter — the module this package roots does not
// contain a constraint solver.
package forge

import (
	"github.com/akmonengine/forge/body"
	"github.com/akmonengine/forge/events"
	"github.com/akmonengine/forge/integrate"
	"github.com/akmonengine/forge/position"
)

// DefaultWorkers matches the teacher's DEFAULT_WORKERS.
const DefaultWorkers = 1

// Solver is the caller-supplied constraint-resolution hook invoked once
// per tick between integration and position update. It may mutate body
// velocities and pair contents but must leave position/orientation
// integration to PositionUpdater (spec.md §5's phase ordering).
type Solver func(bodies []*body.RigidBody, pairs []body.ContactPair)

// Space holds every body this simulation owns, its collaborator wiring,
// and the event buses collaborators may subscribe to.
type Space struct {
	Bodies []*body.RigidBody
	Pairs  []body.ContactPair

	Gravity     *Gravity
	Settings    body.MotionSettings
	Collidables map[*body.RigidBody]body.CollidableHandle

	Workers int

	PositionUpdated   *events.Bus[events.PositionUpdated]
	ShapeChanged      *events.Bus[events.ShapeChanged]
	MaterialChanged   *events.Bus[events.MaterialChanged]
	ActivationChanged *events.Bus[events.ActivationChanged]

	integrator integrate.Integrator
	updater    position.PositionUpdater
}

// NewSpace constructs an empty Space with its event buses wired up and
// workers defaulted to DefaultWorkers.
func NewSpace(gravity *Gravity, settings body.MotionSettings) *Space {
	return &Space{
		Gravity:           gravity,
		Settings:          settings,
		Collidables:       make(map[*body.RigidBody]body.CollidableHandle),
		Workers:           DefaultWorkers,
		PositionUpdated:   events.NewBus[events.PositionUpdated](),
		ShapeChanged:      events.NewBus[events.ShapeChanged](),
		MaterialChanged:   events.NewBus[events.MaterialChanged](),
		ActivationChanged: events.NewBus[events.ActivationChanged](),
		updater:           position.PositionUpdater{Settings: settings},
	}
}

// AddBody registers a body (and, if non-nil, its collidable companion)
// with the space, and wires the body's shape/material/activation change
// hooks to this Space's event buses (spec.md §4.6).
func (s *Space) AddBody(b *body.RigidBody, collidable body.CollidableHandle) {
	s.Bodies = append(s.Bodies, b)
	if collidable != nil {
		s.Collidables[b] = collidable
	}

	b.OnShapeChanged = func(rb *body.RigidBody) {
		s.ShapeChanged.Publish(events.ShapeChanged{Body: rb})
	}
	b.OnMaterialChanged = func(rb *body.RigidBody) {
		s.MaterialChanged.Publish(events.MaterialChanged{Body: rb})
	}
	if act, ok := b.Activation().(*Activation); ok {
		act.SetChangeNotifier(func(active bool) {
			s.ActivationChanged.Publish(events.ActivationChanged{Body: b, Active: active})
		})
	}
}

// RemoveBody drops a body (and its collidable) from the space. Mirrors
// the teacher's World.RemoveBody.
func (s *Space) RemoveBody(b *body.RigidBody) {
	for i, existing := range s.Bodies {
		if existing == b {
			s.Bodies = append(s.Bodies[:i], s.Bodies[i+1:]...)
			break
		}
	}
	delete(s.Collidables, b)
}

// Step runs one full tick: Integrator, the caller's solve hook,
// PositionUpdater's pre-update phase, TOI computation, and the
// continuous-update phase — spec.md §5's stated ordering. Every body
// whose pose is finalized this tick publishes a PositionUpdated event
// before the buses are flushed at the end of Step.
//
// Every phase except solve is data-parallel-safe by construction
// (spec.md §5: "each body is mutated by exactly one worker" for
// Integrator/pre-update/continuous-update; TOI computation mutates only
// a pair's own slot), so each is partitioned across Workers via
// parallelEach/chunk, mirroring the teacher's World.Step wrapping every
// phase in task(w.Workers, ...).
func (s *Space) Step(dt float64, solve Solver) {
	workers := max(DefaultWorkers, s.Workers)

	if s.Gravity != nil {
		s.Gravity.PrepareStep(dt)
	}

	var fu body.ForceUpdater
	if s.Gravity != nil {
		fu = s.Gravity
	}
	parallelEach(workers, chunk(s.Bodies, workers), func(group []*body.RigidBody) {
		s.integrator.Step(dt, group, fu)
	})

	if solve != nil {
		solve(s.Bodies, s.Pairs)
	}

	onUpdated := func(b *body.RigidBody) {
		s.PositionUpdated.Publish(events.PositionUpdated{Body: b})
	}

	parallelEach(workers, chunk(s.Bodies, workers), func(group []*body.RigidBody) {
		s.updater.PreUpdate(dt, group, s.Collidables, onUpdated)
	})
	parallelEach(workers, chunk(s.Pairs, workers), func(group []body.ContactPair) {
		s.updater.UpdateTimesOfImpact(dt, group)
	})
	parallelEach(workers, chunk(s.Bodies, workers), func(group []*body.RigidBody) {
		s.updater.ContinuousUpdate(dt, group, s.Collidables, onUpdated)
	})

	s.PositionUpdated.Flush()
	s.ShapeChanged.Flush()
	s.MaterialChanged.Flush()
	s.ActivationChanged.Flush()
}
