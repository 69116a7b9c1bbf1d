package world

import (
	"github.com/simforge/simforge/internal/core/collision"
	"github.com/simforge/simforge/internal/core/component"
	"github.com/simforge/simforge/internal/core/config"
	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/events/bus"
	"github.com/simforge/simforge/internal/core/geom"
	"github.com/simforge/simforge/internal/core/observability/log"
)

// Stats is the per-tick observability snapshot exposed to overlays.
type Stats struct {
	Entities  int             `json:"entities"`
	Active    int             `json:"active"`
	Ticks     uint64          `json:"ticks"`
	Collision collision.Stats `json:"collision"`
}

// Manager is the entity registry and per-tick orchestrator. One tick is
// a pure step: update all entities against last tick's resolved state,
// run the collision system, then purge destroyed entities. Rendering is
// a separate pass. The manager is the simulation context handed to
// components; nothing reaches into ambient globals.
type Manager struct {
	log        log.Log
	cfg        *config.Simulation
	events     bus.EventBus
	collisions *collision.System

	entities map[entity.ID]*entity.Entity
	// order preserves creation order so component updates are
	// frame-stable.
	order  []*entity.Entity
	groups map[entity.Class][]*entity.Entity
	player *entity.Entity
	nextID entity.ID

	showColliders bool
	ticks         uint64
}

var _ entity.Context = (*Manager)(nil)

// NewManager wires the registry, event bus and collision system from
// configuration.
func NewManager(cfg *config.Simulation, l log.Log) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	if l == nil {
		l = log.Nop()
	}
	events := bus.New()
	return &Manager{
		log:    l,
		cfg:    cfg,
		events: events,
		collisions: collision.NewSystem(collision.Config{
			CellSize:        cfg.Collision.CellSize,
			Restitution:     cfg.Collision.Restitution,
			SameLayerExempt: cfg.Collision.SameLayerExempt,
		}, events, l),
		entities:      make(map[entity.ID]*entity.Entity),
		groups:        make(map[entity.Class][]*entity.Entity),
		showColliders: cfg.Debug.ShowColliders,
	}
}

// Events exposes the bus carrying collision enter/exit events.
func (m *Manager) Events() bus.EventBus { return m.events }

// Collisions exposes the collision system for stats and tests.
func (m *Manager) Collisions() *collision.System { return m.collisions }

// Player implements entity.Context.
func (m *Manager) Player() *entity.Entity { return m.player }

// Lookup implements entity.Context.
func (m *Manager) Lookup(id entity.ID) (*entity.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Update advances the simulation one tick. Delta time is clamped so a
// stalled frame cannot tunnel entities through each other.
func (m *Manager) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > m.cfg.World.MaxDelta {
		dt = m.cfg.World.MaxDelta
	}
	m.ticks++

	for _, e := range m.order {
		e.Update(m, dt)
	}

	m.collisions.Update(m, m.order, dt)

	m.cleanup()
}

// cleanup purges entities destroyed during this tick. Deletion is
// deferred to this single pass so no live traversal ever mutates the
// registry under itself.
func (m *Manager) cleanup() {
	removed := 0
	live := m.order[:0]
	for _, e := range m.order {
		if e.Active() {
			live = append(live, e)
			continue
		}
		delete(m.entities, e.ID())
		m.removeFromGroup(e)
		m.collisions.Grid().Remove(e)
		if m.player != nil && m.player.ID() == e.ID() {
			m.player = nil
		}
		removed++
	}
	for i := len(live); i < len(m.order); i++ {
		m.order[i] = nil
	}
	m.order = live
	if removed > 0 {
		m.log.Debug("purged destroyed entities", log.Int("count", removed))
	}
}

func (m *Manager) removeFromGroup(e *entity.Entity) {
	group := m.groups[e.Class()]
	for i, g := range group {
		if g.ID() == e.ID() {
			m.groups[e.Class()] = append(group[:i], group[i+1:]...)
			return
		}
	}
}

// Render draws every active entity onto the target in creation order.
func (m *Manager) Render(target entity.Surface) {
	for _, e := range m.order {
		e.Render(target, m.showColliders)
	}
}

// SetColliderOverlay toggles the collider debug overlay.
func (m *Manager) SetColliderOverlay(show bool) {
	m.showColliders = show
}

// SetPlayerIntent feeds the per-frame movement intent into the player's
// physics component. A missing player or physics component is a no-op.
func (m *Manager) SetPlayerIntent(intent geom.Vec2) {
	if m.player == nil || !m.player.Active() {
		return
	}
	if phys, ok := component.PhysicsOf(m.player); ok {
		phys.SetIntent(intent)
	}
}

// ByClass returns the active entities of a class.
func (m *Manager) ByClass(class entity.Class) []*entity.Entity {
	group := m.groups[class]
	out := make([]*entity.Entity, 0, len(group))
	for _, e := range group {
		if e.Active() {
			out = append(out, e)
		}
	}
	return out
}

// ByTag returns the active entities carrying the tag.
func (m *Manager) ByTag(tag string) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range m.order {
		if e.Active() && e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// EntityCount reports registered entities including ones pending purge.
func (m *Manager) EntityCount() int { return len(m.entities) }

// Stats snapshots counts for observability overlays.
func (m *Manager) Stats() Stats {
	active := 0
	for _, e := range m.order {
		if e.Active() {
			active++
		}
	}
	return Stats{
		Entities:  len(m.entities),
		Active:    active,
		Ticks:     m.ticks,
		Collision: m.collisions.Stats(),
	}
}

// spawn registers a fresh entity under the next monotonic id.
func (m *Manager) spawn(name string, class entity.Class) *entity.Entity {
	m.nextID++
	e := entity.New(m.nextID, name, class)
	m.entities[e.ID()] = e
	m.order = append(m.order, e)
	m.groups[class] = append(m.groups[class], e)
	return e
}
