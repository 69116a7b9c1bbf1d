package world

import (
	"fmt"

	"github.com/simforge/simforge/internal/core/component"
	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
	"github.com/simforge/simforge/internal/core/observability/log"
)

// Collision layers used by the built-in factories.
const (
	LayerPlayer   = "player"
	LayerNPC      = "npc"
	LayerCreature = "creature"
	LayerItem     = "item"
	LayerTerrain  = "terrain"
)

// Spawn carries the recognized creation options. Zero values fall back
// to per-class defaults.
type Spawn struct {
	Name       string             `json:"name" yaml:"name"`
	Position   geom.Vec2          `json:"position" yaml:"position"`
	Speed      float64            `json:"speed" yaml:"speed"`
	Color      string             `json:"color" yaml:"color"`
	Radius     float64            `json:"radius" yaml:"radius"`
	Mass       float64            `json:"mass" yaml:"mass"`
	Behavior   component.Behavior `json:"behavior" yaml:"behavior"`
	AggroRange float64            `json:"aggro_range" yaml:"aggro_range"`
	SightRange float64            `json:"sight_range" yaml:"sight_range"`
	Waypoints  []geom.Vec2        `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
	Tags       []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
}

const (
	minRadius = 1.0

	defaultAttackRange = 30.0
)

// sanitize clamps malformed geometry and mass to safe minimums rather
// than rejecting the spawn.
func (m *Manager) sanitize(s *Spawn, fallbackRadius, fallbackMass float64) {
	if s.Radius == 0 {
		s.Radius = fallbackRadius
	}
	if s.Radius < minRadius {
		m.log.Warn("spawn radius clamped",
			log.String("name", s.Name),
			log.Float64("radius", s.Radius))
		s.Radius = minRadius
	}
	if s.Mass == 0 {
		s.Mass = fallbackMass
	}
	if s.Mass < 0 {
		m.log.Warn("spawn mass clamped",
			log.String("name", s.Name),
			log.Float64("mass", s.Mass))
		s.Mass = fallbackMass
	}
}

// CreatePlayer assembles the player-controlled entity. At most one
// player exists; creating another replaces the lookup but keeps prior
// entities registered.
func (m *Manager) CreatePlayer(s Spawn) *entity.Entity {
	m.sanitize(&s, 16, 1)
	if s.Name == "" {
		s.Name = "player"
	}
	if s.Speed == 0 {
		s.Speed = 200
	}
	if s.Color == "" {
		s.Color = "#4da6ff"
	}

	e := m.spawn(s.Name, entity.ClassPlayer)
	e.Attach(component.NewTransform(s.Position))
	e.Attach(component.NewPhysics(component.PhysicsConfig{
		Speed:        s.Speed,
		MaxSpeed:     s.Speed * 1.5,
		Acceleration: 10,
		Friction:     0.9,
		Mass:         s.Mass,
	}))
	e.Attach(component.NewCollider(
		component.CircleShape(s.Radius),
		LayerPlayer,
		[]string{LayerPlayer, LayerNPC, LayerCreature, LayerItem, LayerTerrain},
	))
	e.Attach(component.NewRender(s.Color, s.Radius))
	e.AddTag("player")
	m.applyTags(e, s.Tags)

	m.player = e
	m.log.Info("player created",
		log.Uint64("id", uint64(e.ID())),
		log.String("name", e.Name()))
	return e
}

// CreateNPC assembles a friendly or scripted character.
func (m *Manager) CreateNPC(s Spawn) *entity.Entity {
	m.sanitize(&s, 14, 1)
	if s.Name == "" {
		s.Name = fmt.Sprintf("npc-%d", m.nextID+1)
	}
	if s.Speed == 0 {
		s.Speed = 120
	}
	if s.Color == "" {
		s.Color = "#ffd24d"
	}
	if s.Behavior == "" {
		s.Behavior = component.BehaviorFriendly
	}

	e := m.spawn(s.Name, entity.ClassNPC)
	e.Attach(component.NewTransform(s.Position))
	e.Attach(component.NewPhysics(component.PhysicsConfig{
		Speed:        s.Speed,
		MaxSpeed:     s.Speed,
		Acceleration: 8,
		Friction:     0.85,
		Mass:         s.Mass,
	}))
	e.Attach(component.NewCollider(
		component.CircleShape(s.Radius),
		LayerNPC,
		[]string{LayerPlayer, LayerCreature, LayerTerrain},
	))
	e.Attach(component.NewRender(s.Color, s.Radius))
	e.Attach(component.NewAI(component.AIConfig{
		Behavior:   s.Behavior,
		SightRange: s.SightRange,
		AggroRange: s.AggroRange,
		Waypoints:  s.Waypoints,
	}))
	m.applyTags(e, s.Tags)

	m.log.Debug("npc created",
		log.Uint64("id", uint64(e.ID())),
		log.String("behavior", string(s.Behavior)))
	return e
}

// CreateCreature assembles a hostile or skittish creature.
func (m *Manager) CreateCreature(s Spawn) *entity.Entity {
	m.sanitize(&s, 12, 1)
	if s.Name == "" {
		s.Name = fmt.Sprintf("creature-%d", m.nextID+1)
	}
	if s.Speed == 0 {
		s.Speed = 150
	}
	if s.Color == "" {
		s.Color = "#ff4d4d"
	}
	if s.Behavior == "" {
		s.Behavior = component.BehaviorAggressive
	}
	if s.SightRange == 0 {
		s.SightRange = 250
	}
	if s.AggroRange == 0 {
		s.AggroRange = 150
	}

	e := m.spawn(s.Name, entity.ClassCreature)
	e.Attach(component.NewTransform(s.Position))
	e.Attach(component.NewPhysics(component.PhysicsConfig{
		Speed:        s.Speed,
		MaxSpeed:     s.Speed,
		Acceleration: 8,
		Friction:     0.85,
		Mass:         s.Mass,
	}))
	e.Attach(component.NewCollider(
		component.CircleShape(s.Radius),
		LayerCreature,
		[]string{LayerPlayer, LayerNPC, LayerTerrain},
	))
	e.Attach(component.NewRender(s.Color, s.Radius))
	e.Attach(component.NewAI(component.AIConfig{
		Behavior:    s.Behavior,
		SightRange:  s.SightRange,
		AttackRange: defaultAttackRange,
		AggroRange:  s.AggroRange,
		Waypoints:   s.Waypoints,
	}))
	m.applyTags(e, s.Tags)

	m.log.Debug("creature created",
		log.Uint64("id", uint64(e.ID())),
		log.String("behavior", string(s.Behavior)))
	return e
}

// CreateTerrain assembles an immovable box obstacle. Terrain has no
// physics; resolution pushes the other party out by the full overlap.
func (m *Manager) CreateTerrain(s Spawn, width, height float64) *entity.Entity {
	if s.Name == "" {
		s.Name = fmt.Sprintf("terrain-%d", m.nextID+1)
	}
	if s.Color == "" {
		s.Color = "#666666"
	}
	if width <= 0 {
		width = 50
	}
	if height <= 0 {
		height = 50
	}

	e := m.spawn(s.Name, entity.ClassTerrain)
	e.Attach(component.NewTransform(s.Position))
	col := component.NewCollider(
		component.BoxShape(width, height),
		LayerTerrain,
		nil, // terrain blocks everything
	)
	col.Immovable = true
	e.Attach(col)
	e.Attach(component.NewRender(s.Color, width*0.5))
	m.applyTags(e, s.Tags)
	return e
}

func (m *Manager) applyTags(e *entity.Entity, tags []string) {
	for _, t := range tags {
		e.AddTag(t)
	}
}
