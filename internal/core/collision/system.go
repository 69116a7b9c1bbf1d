package collision

import (
	"github.com/simforge/simforge/internal/core/component"
	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/events/bus"
	"github.com/simforge/simforge/internal/core/geom"
	"github.com/simforge/simforge/internal/core/observability/log"
	"github.com/simforge/simforge/pkg/generic"
)

// DefaultRestitution controls bounciness of the impulse response.
const DefaultRestitution = 0.8

// Config tunes the collision system.
type Config struct {
	CellSize    float64 `json:"cell_size" yaml:"cell_size"`
	Restitution float64 `json:"restitution" yaml:"restitution"`
	// SameLayerExempt lists layers whose members may collide with each
	// other. Members of every other layer never collide with their own
	// layer.
	SameLayerExempt []string `json:"same_layer_exempt" yaml:"same_layer_exempt"`
}

// Stats is a per-tick snapshot for observability overlays.
type Stats struct {
	Candidates   int    `json:"candidates"`
	Checks       int    `json:"checks"`
	Contacts     int    `json:"contacts"`
	TotalChecks  uint64 `json:"total_checks"`
	TotalImpacts uint64 `json:"total_impacts"`
}

type pairKey struct {
	a entity.ID
	b entity.ID
}

// canonicalKey orders a pair lexicographically by id so (A,B) and (B,A)
// collapse to one key.
func canonicalKey(a, b entity.ID) pairKey {
	if a < b {
		return pairKey{a: a, b: b}
	}
	return pairKey{a: b, b: a}
}

type candidate struct {
	a *entity.Entity
	b *entity.Entity
}

// System owns the spatial grid and runs broad phase, layer filtering,
// narrow phase and impulse resolution once per tick, after all entity
// updates have completed.
type System struct {
	log         log.Log
	grid        *Grid
	bus         bus.EventBus
	restitution float64
	exempt      map[string]struct{}

	// contacts tracks live overlapping pairs across ticks for
	// enter/exit bookkeeping.
	contacts map[pairKey]struct{}

	candidatePool *generic.Pool[map[pairKey]candidate]

	stats Stats
}

// NewSystem builds a collision system publishing contact events on b.
func NewSystem(cfg Config, b bus.EventBus, l log.Log) *System {
	restitution := cfg.Restitution
	if restitution <= 0 {
		restitution = DefaultRestitution
	}
	exempt := make(map[string]struct{}, len(cfg.SameLayerExempt))
	for _, layer := range cfg.SameLayerExempt {
		exempt[layer] = struct{}{}
	}
	return &System{
		log:         l,
		grid:        NewGrid(cfg.CellSize),
		bus:         b,
		restitution: restitution,
		exempt:      exempt,
		contacts:    make(map[pairKey]struct{}),
		candidatePool: generic.NewPool(func() map[pairKey]candidate {
			return make(map[pairKey]candidate, 64)
		}),
	}
}

func (s *System) Grid() *Grid { return s.grid }

func (s *System) Stats() Stats { return s.stats }

// CanCollide applies layer filtering: both allow-lists must admit the
// other's layer, and same-layer pairs only collide on exempt layers.
// The rule is symmetric by construction.
func (s *System) CanCollide(a, b *component.Collider) bool {
	if !a.Interacts(b.Layer) || !b.Interacts(a.Layer) {
		return false
	}
	if a.Layer == b.Layer {
		_, ok := s.exempt[a.Layer]
		return ok
	}
	return true
}

// Update runs one collision tick over the given entities: rebuild the
// grid, gather candidate pairs, test and resolve them, then settle
// enter/exit state.
func (s *System) Update(ctx entity.Context, entities []*entity.Entity, dt float64) {
	s.rebuildGrid(entities)

	candidates := s.candidatePool.Get()
	defer func() {
		clear(candidates)
		s.candidatePool.Put(candidates)
	}()
	s.broadPhase(entities, candidates)

	live := make(map[pairKey]struct{}, len(candidates))
	checks := 0
	for key, c := range candidates {
		checks++
		if s.testAndResolve(key, c) {
			live[key] = struct{}{}
		}
	}

	// Pairs that were overlapping but produced no contact this tick have
	// separated; this includes pairs that no longer even reach the
	// narrow phase.
	for key := range s.contacts {
		if _, still := live[key]; !still {
			s.endContact(ctx, key)
		}
	}
	s.contacts = live

	s.stats.Candidates = len(candidates)
	s.stats.Checks = checks
	s.stats.Contacts = len(live)
	s.stats.TotalChecks += uint64(checks)
}

func (s *System) rebuildGrid(entities []*entity.Entity) {
	s.grid.Clear()
	for _, e := range entities {
		if !e.Active() {
			continue
		}
		col, tr, ok := collidable(e)
		if !ok {
			continue
		}
		s.grid.Insert(e, col.Center(tr), col.BoundingRadius())
	}
}

func (s *System) broadPhase(entities []*entity.Entity, out map[pairKey]candidate) {
	for _, e := range entities {
		if !e.Active() {
			continue
		}
		col, tr, ok := collidable(e)
		if !ok {
			continue
		}
		for _, other := range s.grid.Query(col.Center(tr), col.BoundingRadius()) {
			if other.ID() == e.ID() {
				continue
			}
			key := canonicalKey(e.ID(), other.ID())
			if _, dup := out[key]; dup {
				continue
			}
			a, b := e, other
			if key.a != a.ID() {
				a, b = other, e
			}
			out[key] = candidate{a: a, b: b}
		}
	}
}

// testAndResolve runs layer filtering and the narrow phase for one pair,
// handling contact bookkeeping and physical resolution. It reports
// whether the pair is overlapping after this tick.
func (s *System) testAndResolve(key pairKey, c candidate) bool {
	colA, trA, okA := collidable(c.a)
	colB, trB, okB := collidable(c.b)
	if !okA || !okB {
		return false
	}
	if !s.CanCollide(colA, colB) {
		return false
	}

	m, hit := Collide(colA, trA, colB, trB)
	if !hit {
		return false
	}

	_, existing := s.contacts[key]
	colA.AddOverlap(c.b.ID())
	colB.AddOverlap(c.a.ID())
	if !existing {
		s.stats.TotalImpacts++
		if s.bus != nil {
			if err := s.bus.Publish(newEnterEvent(key.a, key.b, m)); err != nil {
				s.log.Warn("contact enter handler failed", log.Error(err))
			}
		}
	}

	c.a.OnCollision(c.b, m)
	c.b.OnCollision(c.a, m.Flip())

	if !colA.Trigger && !colB.Trigger {
		s.resolve(colA, trA, c.a, colB, trB, c.b, m)
	}
	return true
}

// endContact clears overlap state for a separated pair and publishes the
// exit event. Either side may already be destroyed.
func (s *System) endContact(ctx entity.Context, key pairKey) {
	if e, ok := ctx.Lookup(key.a); ok {
		if col, ok := component.ColliderOf(e); ok {
			col.RemoveOverlap(key.b)
		}
	}
	if e, ok := ctx.Lookup(key.b); ok {
		if col, ok := component.ColliderOf(e); ok {
			col.RemoveOverlap(key.a)
		}
	}
	if s.bus != nil {
		if err := s.bus.Publish(newExitEvent(key.a, key.b)); err != nil {
			s.log.Warn("contact exit handler failed", log.Error(err))
		}
	}
}

// resolve applies positional correction and the impulse response along
// the manifold normal. Immovable bodies and bodies without physics take
// no correction and contribute infinite mass.
func (s *System) resolve(colA *component.Collider, trA *component.Transform, a *entity.Entity,
	colB *component.Collider, trB *component.Transform, b *entity.Entity, m geom.Manifold) {

	invA := inverseMass(a, colA)
	invB := inverseMass(b, colB)
	if invA+invB == 0 {
		return
	}

	// Positional correction splits penetration in proportion to the
	// other body's mass share; heavier bodies move less.
	corrA := m.Penetration * invA / (invA + invB)
	corrB := m.Penetration * invB / (invA + invB)
	if corrA > 0 {
		trA.Position = trA.Position.Add(m.Normal.Scale(corrA))
	}
	if corrB > 0 {
		trB.Position = trB.Position.Sub(m.Normal.Scale(corrB))
	}

	// Impulse response, only when the bodies are approaching.
	relVel := trA.Velocity.Sub(trB.Velocity)
	vn := relVel.Dot(m.Normal)
	if vn >= 0 {
		return
	}
	j := -(1 + s.restitution) * vn / (invA + invB)
	trA.Velocity = trA.Velocity.Add(m.Normal.Scale(j * invA))
	trB.Velocity = trB.Velocity.Sub(m.Normal.Scale(j * invB))
}

// inverseMass is zero for immovable colliders and for entities without a
// physics component.
func inverseMass(e *entity.Entity, col *component.Collider) float64 {
	if col.Immovable {
		return 0
	}
	phys, ok := component.PhysicsOf(e)
	if !ok || phys.Mass <= 0 {
		return 0
	}
	return 1 / phys.Mass
}

// collidable fetches the collider/transform pair an entity needs to take
// part in collision detection.
func collidable(e *entity.Entity) (*component.Collider, *component.Transform, bool) {
	col, ok := component.ColliderOf(e)
	if !ok || !col.Enabled() || col.Shape.Type == component.ShapeNone {
		return nil, nil, false
	}
	tr, ok := component.TransformOf(e)
	if !ok {
		return nil, nil, false
	}
	return col, tr, true
}
