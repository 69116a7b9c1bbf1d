package component

import (
	"math"
	"math/rand"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// Behavior selects the state machine variant an AI component runs.
type Behavior string

const (
	BehaviorWander     Behavior = "wander"
	BehaviorPatrol     Behavior = "patrol"
	BehaviorAggressive Behavior = "aggressive"
	BehaviorPassive    Behavior = "passive"
	BehaviorFriendly   Behavior = "friendly"
)

// AI sub-states. Which are reachable depends on the behavior variant.
const (
	StateIdle   = "idle"
	StateWander = "wander"
	StatePatrol = "patrol"
	StateChase  = "chase"
	StateAttack = "attack"
	StateFlee   = "flee"
	StateFollow = "follow"
	StateAvoid  = "avoid"
)

const (
	wanderDuration = 1.0
	attackCooldown = 1.0
	waypointReach  = 10.0
	followFar      = 100.0
	followNear     = 50.0
)

// AIConfig carries construction parameters for an AI component.
type AIConfig struct {
	Behavior     Behavior    `json:"behavior" yaml:"behavior"`
	SightRange   float64     `json:"sight_range" yaml:"sight_range"`
	AttackRange  float64     `json:"attack_range" yaml:"attack_range"`
	AggroRange   float64     `json:"aggro_range" yaml:"aggro_range"`
	IdleDuration float64     `json:"idle_duration" yaml:"idle_duration"`
	Waypoints    []geom.Vec2 `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
}

// AI is a small per-entity state machine. It reads positions through the
// Transform and writes movement intent into the sibling Physics
// component; it never mutates a Transform directly. Cross-entity targets
// are held as weak identifiers and revalidated on every use.
type AI struct {
	entity.Base

	Behavior Behavior
	State    string

	SightRange   float64
	AttackRange  float64
	AggroRange   float64
	IdleDuration float64

	Waypoints []geom.Vec2

	timer         float64
	targetID      entity.ID
	waypointIndex int
	wanderHeading float64
}

func NewAI(cfg AIConfig) *AI {
	idle := cfg.IdleDuration
	if idle <= 0 {
		idle = 2.0
	}
	return &AI{
		Behavior:     cfg.Behavior,
		State:        StateIdle,
		SightRange:   cfg.SightRange,
		AttackRange:  cfg.AttackRange,
		AggroRange:   cfg.AggroRange,
		IdleDuration: idle,
		Waypoints:    cfg.Waypoints,
	}
}

func (a *AI) Kind() entity.Kind { return entity.KindAI }

// Target resolves the weak target reference, returning nil when the
// target no longer exists or is no longer active.
func (a *AI) Target(ctx entity.Context) *entity.Entity {
	if a.targetID == 0 {
		return nil
	}
	t, ok := ctx.Lookup(a.targetID)
	if !ok || !t.Active() {
		a.targetID = 0
		return nil
	}
	return t
}

func (a *AI) TargetID() entity.ID { return a.targetID }

func (a *AI) Update(ctx entity.Context, e *entity.Entity, dt float64) {
	tr, ok := TransformOf(e)
	if !ok {
		return
	}
	phys, ok := PhysicsOf(e)
	if !ok {
		return
	}

	a.timer += dt

	switch a.Behavior {
	case BehaviorWander:
		a.updateWander(phys)
	case BehaviorPatrol:
		a.updatePatrol(tr, phys)
	case BehaviorAggressive:
		a.updateAggressive(ctx, tr, phys)
	case BehaviorPassive:
		a.updatePassive(ctx, tr, phys)
	case BehaviorFriendly:
		a.updateFriendly(ctx, tr, phys)
	default:
		phys.SetIntent(geom.Vec2{})
	}
}

func (a *AI) enter(state string) {
	a.State = state
	a.timer = 0
}

// updateWander alternates between standing idle and a short sinusoidal
// drift in a random heading.
func (a *AI) updateWander(phys *Physics) {
	switch a.State {
	case StateWander:
		if a.timer >= wanderDuration {
			a.enter(StateIdle)
			phys.SetIntent(geom.Vec2{})
			return
		}
		drift := math.Sin(a.timer*2*math.Pi) * 0.5
		heading := a.wanderHeading + drift
		phys.SetIntent(geom.V(math.Cos(heading), math.Sin(heading)))
	default:
		phys.SetIntent(geom.Vec2{})
		if a.timer >= a.IdleDuration {
			a.wanderHeading = rand.Float64() * 2 * math.Pi
			a.enter(StateWander)
		}
	}
}

// updatePatrol walks the waypoint list, advancing with wrap-around once
// within reach of the current waypoint.
func (a *AI) updatePatrol(tr *Transform, phys *Physics) {
	if len(a.Waypoints) == 0 {
		phys.SetIntent(geom.Vec2{})
		return
	}
	a.State = StatePatrol
	wp := a.Waypoints[a.waypointIndex%len(a.Waypoints)]
	to := wp.Sub(tr.Position)
	if to.Length() < waypointReach {
		a.waypointIndex = (a.waypointIndex + 1) % len(a.Waypoints)
		wp = a.Waypoints[a.waypointIndex]
		to = wp.Sub(tr.Position)
	}
	phys.SetIntent(to.Normalized())
}

// updateAggressive acquires the player as target within sight range,
// chases, and cycles through one-second attacks inside attack range.
// Leaving sight range drops the target and resets to idle.
func (a *AI) updateAggressive(ctx entity.Context, tr *Transform, phys *Physics) {
	target := a.Target(ctx)

	if target == nil {
		player := ctx.Player()
		if player != nil && player.Active() {
			if ptr, ok := TransformOf(player); ok &&
				tr.Position.Distance(ptr.Position) < a.SightRange {
				a.targetID = player.ID()
				a.enter(StateChase)
				target = player
			}
		}
		if target == nil {
			a.enter(StateIdle)
			phys.SetIntent(geom.Vec2{})
			return
		}
	}

	ttr, ok := TransformOf(target)
	if !ok {
		a.targetID = 0
		a.enter(StateIdle)
		phys.SetIntent(geom.Vec2{})
		return
	}

	dist := tr.Position.Distance(ttr.Position)
	if dist > a.SightRange {
		a.targetID = 0
		a.enter(StateIdle)
		phys.SetIntent(geom.Vec2{})
		return
	}

	switch a.State {
	case StateAttack:
		phys.SetIntent(geom.Vec2{})
		if a.timer >= attackCooldown {
			a.enter(StateChase)
		}
	default:
		if dist < a.AttackRange {
			a.enter(StateAttack)
			phys.SetIntent(geom.Vec2{})
			return
		}
		a.State = StateChase
		phys.SetIntent(ttr.Position.Sub(tr.Position).Normalized())
	}
}

// updatePassive flees directly away from the player inside aggro range.
func (a *AI) updatePassive(ctx entity.Context, tr *Transform, phys *Physics) {
	player := ctx.Player()
	if player == nil || !player.Active() {
		a.State = StateIdle
		phys.SetIntent(geom.Vec2{})
		return
	}
	ptr, ok := TransformOf(player)
	if !ok {
		a.State = StateIdle
		phys.SetIntent(geom.Vec2{})
		return
	}
	if tr.Position.Distance(ptr.Position) < a.AggroRange {
		a.State = StateFlee
		phys.SetIntent(tr.Position.Sub(ptr.Position).Normalized())
		return
	}
	a.State = StateIdle
	phys.SetIntent(geom.Vec2{})
}

// updateFriendly keeps a comfortable distance from the player: approach
// when far, back off at half strength when too close.
func (a *AI) updateFriendly(ctx entity.Context, tr *Transform, phys *Physics) {
	player := ctx.Player()
	if player == nil || !player.Active() {
		a.State = StateIdle
		phys.SetIntent(geom.Vec2{})
		return
	}
	ptr, ok := TransformOf(player)
	if !ok {
		a.State = StateIdle
		phys.SetIntent(geom.Vec2{})
		return
	}

	dist := tr.Position.Distance(ptr.Position)
	switch {
	case dist > followFar:
		a.State = StateFollow
		phys.SetIntent(ptr.Position.Sub(tr.Position).Normalized())
	case dist < followNear:
		a.State = StateAvoid
		phys.SetIntent(tr.Position.Sub(ptr.Position).Normalized().Scale(0.5))
	default:
		a.State = StateIdle
		phys.SetIntent(geom.Vec2{})
	}
}

// AIOf fetches the entity's AI component, if attached.
func AIOf(e *entity.Entity) (*AI, bool) {
	c, ok := e.Component(entity.KindAI)
	if !ok {
		return nil, false
	}
	a, ok := c.(*AI)
	return a, ok
}
