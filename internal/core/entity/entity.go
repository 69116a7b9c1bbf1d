package entity

import (
	"github.com/simforge/simforge/internal/core/geom"
)

// ID is a stable entity identifier, unique for the lifetime of a manager
// and assigned monotonically.
type ID uint64

// Class is the coarse category an entity belongs to. Factories assemble a
// fixed component bundle per class.
type Class string

const (
	ClassPlayer   Class = "player"
	ClassNPC      Class = "npc"
	ClassCreature Class = "creature"
	ClassItem     Class = "item"
	ClassTerrain  Class = "terrain"
)

// Kind is a capability slot. The enumeration is closed: every entity
// carries a fixed-size table with at most one component per kind.
type Kind uint8

const (
	KindTransform Kind = iota
	KindCollider
	KindPhysics
	KindRender
	KindAI

	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindCollider:
		return "collider"
	case KindPhysics:
		return "physics"
	case KindRender:
		return "render"
	case KindAI:
		return "ai"
	default:
		return "unknown"
	}
}

// updateOrder fixes per-entity component update order for a tick.
// AI runs first so movement intent written this tick is integrated this
// tick; physics then advances the transform.
var updateOrder = [...]Kind{KindAI, KindPhysics, KindTransform, KindCollider, KindRender}

// Entity is identity plus a capability table. Components are exclusively
// owned: their lifetime ends with the entity's.
type Entity struct {
	id         ID
	name       string
	class      Class
	active     bool
	tags       map[string]struct{}
	components [KindCount]Component
}

// New creates an active entity with no components. Callers normally go
// through the manager factory rather than constructing entities directly.
func New(id ID, name string, class Class) *Entity {
	return &Entity{
		id:     id,
		name:   name,
		class:  class,
		active: true,
		tags:   make(map[string]struct{}),
	}
}

func (e *Entity) ID() ID        { return e.id }
func (e *Entity) Name() string  { return e.name }
func (e *Entity) Class() Class  { return e.class }
func (e *Entity) Active() bool  { return e.active }

// Attach installs a component, silently replacing any existing component
// of the same kind. The replaced component is torn down first.
func (e *Entity) Attach(c Component) {
	k := c.Kind()
	if k >= KindCount {
		return
	}
	if old := e.components[k]; old != nil {
		old.Destroy(e)
	}
	e.components[k] = c
}

// Component returns the component for the given kind, or (nil, false)
// when the slot is empty. Absence is never an error.
func (e *Entity) Component(k Kind) (Component, bool) {
	if k >= KindCount || e.components[k] == nil {
		return nil, false
	}
	return e.components[k], true
}

func (e *Entity) Has(k Kind) bool {
	return k < KindCount && e.components[k] != nil
}

// Remove tears down and evicts the component of the given kind, if any.
func (e *Entity) Remove(k Kind) {
	if k >= KindCount || e.components[k] == nil {
		return
	}
	e.components[k].Destroy(e)
	e.components[k] = nil
}

func (e *Entity) AddTag(tag string) {
	e.tags[tag] = struct{}{}
}

func (e *Entity) RemoveTag(tag string) {
	delete(e.tags, tag)
}

func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	return out
}

// Update dispatches to every enabled component in the fixed update order.
func (e *Entity) Update(ctx Context, dt float64) {
	if !e.active {
		return
	}
	for _, k := range updateOrder {
		c := e.components[k]
		if c != nil && c.Enabled() {
			c.Update(ctx, e, dt)
		}
	}
}

// Render draws the entity onto the target. Draw order is deterministic:
// the collider debug overlay first (when toggled), then the render
// component.
func (e *Entity) Render(target Surface, colliderOverlay bool) {
	if !e.active {
		return
	}
	if colliderOverlay {
		if c := e.components[KindCollider]; c != nil && c.Enabled() {
			c.Render(e, target)
		}
	}
	if c := e.components[KindRender]; c != nil && c.Enabled() {
		c.Render(e, target)
	}
}

// OnCollision forwards a contact to every enabled component.
func (e *Entity) OnCollision(other *Entity, hit geom.Manifold) {
	if !e.active {
		return
	}
	for _, c := range e.components {
		if c != nil && c.Enabled() {
			c.OnCollision(e, other, hit)
		}
	}
}

// Destroy tears down all components, clears tags and deactivates the
// entity. Removal from the registry is deferred to the manager's cleanup
// pass. Destroying an inactive entity is a no-op.
func (e *Entity) Destroy() {
	if !e.active {
		return
	}
	e.active = false
	for k := Kind(0); k < KindCount; k++ {
		if e.components[k] != nil {
			e.components[k].Destroy(e)
			e.components[k] = nil
		}
	}
	e.tags = make(map[string]struct{})
}
