package forge

import "github.com/akmonengine/forge/body"

// Deactivation is a minimal body.DeactivationManager: one set of
// thresholds shared by every Activation constructed over it. Grounded on the
// teacher's World.trySleep constants (velocityThreshold, timeThreshold
// passed as literals into TrySleep); surfaced here as named, overridable
// fields instead of call-site literals since spec.md §6 models them as a
// collaborator-owned value.
type Deactivation struct {
	Stabilize      bool
	LowerLimit     float64
	LowTimeMinimum float64
}

func (d *Deactivation) UseStabilization() bool          { return d.Stabilize }
func (d *Deactivation) VelocityLowerLimit() float64     { return d.LowerLimit }
func (d *Deactivation) VelocityLowerLimitSquared() float64 {
	return d.LowerLimit * d.LowerLimit
}
func (d *Deactivation) LowVelocityTimeMinimum() float64 { return d.LowTimeMinimum }

// Activation is a minimal body.ActivationHandle: a per-body sleep timer
// tracked against a shared Deactivation. Grounded on the teacher's
// RigidBody.TrySleep/Sleep/Awake, split out of RigidBody into its own
// collaborator per spec.md §6 (the core no longer owns sleep bookkeeping
// directly).
type Activation struct {
	deactivation *Deactivation
	active       bool
	belowTime    float64

	// onChange, if set, fires on every active/asleep transition (not on
	// every Activate() call — a body already active re-activating is
	// not a transition). Wired by Space.AddBody to publish
	// ActivationChanged.
	onChange func(active bool)
}

// NewActivation constructs an Activation backed by deactivation, starting
// active.
func NewActivation(deactivation *Deactivation) *Activation {
	return &Activation{deactivation: deactivation, active: true}
}

// SetChangeNotifier installs fn to be called whenever this Activation
// transitions between active and asleep.
func (a *Activation) SetChangeNotifier(fn func(active bool)) {
	a.onChange = fn
}

func (a *Activation) Activate() {
	wasActive := a.active
	a.active = true
	a.belowTime = 0
	if !wasActive && a.onChange != nil {
		a.onChange(true)
	}
}

func (a *Activation) IsActive() bool { return a.active }

// IsSlowing reports whether the body has already accumulated any
// below-threshold time this activation period.
func (a *Activation) IsSlowing() bool { return a.belowTime > 0 }

func (a *Activation) VelocityTimeBelowLimit() float64 { return a.belowTime }

func (a *Activation) AllowStabilization() bool { return a.active }

func (a *Activation) Deactivation() body.DeactivationManager { return a.deactivation }

// TrySleep advances the sleep timer for rb given its current motion
// state, deactivating it once it has stayed below the velocity
// threshold for LowVelocityTimeMinimum seconds. Mirrors the teacher's
// World.trySleep loop, generalized to one body at a time so Space can
// run it inside parallelEach.
func (a *Activation) TrySleep(dt float64, rb *body.RigidBody) {
	if a.deactivation == nil || !a.active {
		return
	}

	energy := rb.LinearVelocity.Dot(rb.LinearVelocity) + rb.AngularVelocity.Dot(rb.AngularVelocity)
	if energy < a.deactivation.VelocityLowerLimitSquared() {
		a.belowTime += dt
		if a.belowTime >= a.deactivation.LowVelocityTimeMinimum() {
			a.active = false
			if a.onChange != nil {
				a.onChange(false)
			}
		}
	} else {
		a.belowTime = 0
	}
}
