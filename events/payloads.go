package events

import "github.com/akmonengine/forge/body"

// PositionUpdated is published when a body's pose is finalized for the
// tick (package position, after PreUpdate/ContinuousUpdate).
type PositionUpdated struct {
	Body *body.RigidBody
}

// ShapeChanged is published by body.RigidBody.SetShape.
type ShapeChanged struct {
	Body *body.RigidBody
}

// MaterialChanged is published by body.RigidBody.SetMaterial.
type MaterialChanged struct {
	Body *body.RigidBody
}

// ActivationChanged is published when a body crosses the active/asleep
// boundary.
type ActivationChanged struct {
	Body   *body.RigidBody
	Active bool
}
