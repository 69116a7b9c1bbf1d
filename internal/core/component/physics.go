package component

import (
	"math"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

const (
	// intentDeadzone is the movement-intent magnitude below which an axis
	// counts as unsteered and friction applies.
	intentDeadzone = 0.1
	// restEpsilon snaps tiny residual velocities to zero so bodies settle
	// instead of jittering forever.
	restEpsilon = 0.1
)

// Impulse is a time-bounded external force.
type Impulse struct {
	Force     geom.Vec2
	Remaining float64
}

// Physics integrates an entity's velocity from movement intent, external
// impulses, friction and gravity, then advances the sibling Transform.
// Intent is written by the AI component or the player input path; the
// collision system mutates velocity during resolution.
type Physics struct {
	entity.Base

	Speed        float64
	MaxSpeed     float64
	Acceleration float64
	Friction     float64
	Mass         float64
	Gravity      float64

	intent   geom.Vec2
	impulses []Impulse
	canJump  bool
}

// PhysicsConfig carries construction parameters for a Physics component.
type PhysicsConfig struct {
	Speed        float64 `json:"speed" yaml:"speed"`
	MaxSpeed     float64 `json:"max_speed" yaml:"max_speed"`
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	Friction     float64 `json:"friction" yaml:"friction"`
	Mass         float64 `json:"mass" yaml:"mass"`
	Gravity      float64 `json:"gravity" yaml:"gravity"`
}

// minMass is the floor applied to non-positive configured masses.
const minMass = 0.001

func NewPhysics(cfg PhysicsConfig) *Physics {
	mass := cfg.Mass
	if mass < minMass {
		mass = minMass
	}
	maxSpeed := cfg.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = cfg.Speed
	}
	return &Physics{
		Speed:        cfg.Speed,
		MaxSpeed:     maxSpeed,
		Acceleration: cfg.Acceleration,
		Friction:     cfg.Friction,
		Mass:         mass,
		Gravity:      cfg.Gravity,
	}
}

func (p *Physics) Kind() entity.Kind { return entity.KindPhysics }

// SetIntent stores the movement intent for the next integration step.
// Diagonal intent is normalized so it never moves faster than cardinal.
func (p *Physics) SetIntent(v geom.Vec2) {
	if v.LengthSquared() > 1 {
		v = v.Normalized()
	}
	p.intent = v
}

func (p *Physics) Intent() geom.Vec2 { return p.intent }

// ApplyImpulse queues an external force that contributes for duration
// seconds of simulated time.
func (p *Physics) ApplyImpulse(force geom.Vec2, duration float64) {
	if duration <= 0 {
		return
	}
	p.impulses = append(p.impulses, Impulse{Force: force, Remaining: duration})
}

// Jump applies an upward impulse when the body is grounded. The flag is
// consumed; SetGrounded re-arms it.
func (p *Physics) Jump(force float64) bool {
	if !p.canJump {
		return false
	}
	p.canJump = false
	p.ApplyImpulse(geom.V(0, -force), 0.1)
	return true
}

func (p *Physics) SetGrounded(grounded bool) {
	p.canJump = grounded
}

func (p *Physics) PendingImpulses() int { return len(p.impulses) }

func (p *Physics) Update(_ entity.Context, e *entity.Entity, dt float64) {
	tr, ok := TransformOf(e)
	if !ok {
		return
	}

	vel := tr.Velocity

	// Velocity approaches intent*speed at the acceleration rate. A rate
	// large enough to saturate in one tick behaves like direct assignment.
	target := p.intent.Scale(p.Speed)
	f := p.Acceleration * dt
	if f > 1 || math.IsInf(p.Acceleration, 1) {
		f = 1
	}
	vel = vel.Lerp(target, f)

	// External impulses contribute force/mass, dt-proportional, and are
	// purged once their remaining duration runs out.
	if len(p.impulses) > 0 {
		live := p.impulses[:0]
		for _, imp := range p.impulses {
			vel = vel.Add(imp.Force.Scale(dt / p.Mass))
			imp.Remaining -= dt
			if imp.Remaining > 0 {
				live = append(live, imp)
			}
		}
		p.impulses = live
	}

	vel.Y += p.Gravity * dt

	vel = vel.Clamp(p.MaxSpeed)

	// Friction decays unsteered axes; it is a multiplier, not a stop.
	if math.Abs(p.intent.X) < intentDeadzone {
		vel.X *= p.Friction
	}
	if math.Abs(p.intent.Y) < intentDeadzone {
		vel.Y *= p.Friction
	}

	if math.Abs(vel.X) < restEpsilon {
		vel.X = 0
	}
	if math.Abs(vel.Y) < restEpsilon {
		vel.Y = 0
	}

	tr.Prev = tr.Position
	tr.Position = tr.Position.Add(vel.Scale(dt))
	tr.Velocity = vel
}

// PhysicsOf fetches the entity's physics component, if attached.
func PhysicsOf(e *entity.Entity) (*Physics, bool) {
	c, ok := e.Component(entity.KindPhysics)
	if !ok {
		return nil, false
	}
	p, ok := c.(*Physics)
	return p, ok
}
