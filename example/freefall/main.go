// Command freefall drives a single dynamic sphere through forge.Space
// under gravity, printing its position and velocity every 30 ticks. Adapted from the
// teacher's example/simpleScene, trimmed down to this module's actual
// scope: no broad/narrow phase, no solver — SetupScene's "create a
// gravity world, add a body, step it" shape survives, GJK/EPA/manifold
// debugging does not.
package main

import (
	"fmt"

	"github.com/akmonengine/forge"
	"github.com/akmonengine/forge/body"
	"github.com/akmonengine/forge/events"
	"github.com/akmonengine/forge/shape"
	"github.com/go-gl/mathgl/mgl64"
)

type fixedMotionSettings struct{}

func (fixedMotionSettings) DefaultPositionUpdateMode() body.PositionUpdateMode {
	return body.Discrete
}

func (fixedMotionSettings) PairAllowsCCD(*body.RigidBody, body.ContactPair) bool {
	return false
}

func main() {
	gravity := &forge.Gravity{Acceleration: mgl64.Vec3{0, -9.81, 0}}
	space := forge.NewSpace(gravity, fixedMotionSettings{})

	ball := body.NewRigidBody(&shape.Sphere{Radius: 0.5}, 1.0, forge.NewActivation(&forge.Deactivation{
		Stabilize:      true,
		LowerLimit:     0.05,
		LowTimeMinimum: 0.5,
	}))
	ball.GravityAffected = true
	ball.SetPosition(mgl64.Vec3{0, 10, 0})

	space.AddBody(ball, nil)
	space.PositionUpdated.Subscribe(func(e events.PositionUpdated) {
		_ = e.Body // collaborators would push this pose to a render transform
	})

	const dt = 1.0 / 60.0
	for tick := 0; tick < 180; tick++ {
		space.Step(dt, nil)
		if tick%30 == 0 {
			fmt.Printf("t=%.2fs pos=%v vel=%v\n", float64(tick)*dt, ball.Transform.Position, ball.LinearVelocity)
		}
	}
}
