package entity

import (
	"github.com/simforge/simforge/internal/core/geom"
)

// Component is a behavior attached to an entity under one capability kind.
// Components receive their owning entity as a call parameter; they never
// hold a back-reference to it.
type Component interface {
	Kind() Kind
	Enabled() bool

	Update(ctx Context, e *Entity, dt float64)
	Render(e *Entity, target Surface)
	OnCollision(e *Entity, other *Entity, hit geom.Manifold)
	Destroy(e *Entity)
}

// Context gives components explicit access to the simulation they run in.
// It replaces ambient global lookups: the player entity and weak
// cross-entity references are resolved through it on every use.
type Context interface {
	// Player returns the player-controlled entity, or nil when none exists.
	Player() *Entity
	// Lookup resolves an entity by id. Destroyed-but-not-yet-purged
	// entities resolve with ok=true and Active()==false; callers must
	// treat an inactive result as "no target".
	Lookup(id ID) (*Entity, bool)
}

// Surface is the opaque render target handed into component render hooks.
// Colors are CSS-style strings so the drawable end can be a canvas, a
// recorded frame, or a test double.
type Surface interface {
	FillCircle(center geom.Vec2, radius float64, color string)
	StrokeCircle(center geom.Vec2, radius float64, color string)
	FillRect(box geom.AABB, color string)
	StrokeRect(box geom.AABB, color string)
}

// Base supplies the enabled flag and no-op hooks. Concrete components
// embed it and override what they need.
type Base struct {
	disabled bool
}

func (b *Base) Enabled() bool { return !b.disabled }

func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }

func (b *Base) Update(Context, *Entity, float64) {}

func (b *Base) Render(*Entity, Surface) {}

func (b *Base) OnCollision(*Entity, *Entity, geom.Manifold) {}

func (b *Base) Destroy(*Entity) {}
