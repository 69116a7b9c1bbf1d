package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simforge/simforge/internal/core/geom"
)

// probe records lifecycle calls for assertions.
type probe struct {
	Base
	kind       Kind
	updates    *[]Kind
	destroyed  int
	collisions int
}

func (p *probe) Kind() Kind { return p.kind }

func (p *probe) Update(_ Context, _ *Entity, _ float64) {
	if p.updates != nil {
		*p.updates = append(*p.updates, p.kind)
	}
}

func (p *probe) OnCollision(*Entity, *Entity, geom.Manifold) { p.collisions++ }

func (p *probe) Destroy(*Entity) { p.destroyed++ }

func TestEntityBasics(t *testing.T) {
	e := New(7, "goblin", ClassCreature)
	require.Equal(t, ID(7), e.ID())
	require.Equal(t, "goblin", e.Name())
	require.Equal(t, ClassCreature, e.Class())
	require.True(t, e.Active())
}

func TestAttach(t *testing.T) {
	t.Run("attach and fetch", func(t *testing.T) {
		e := New(1, "e", ClassNPC)
		c := &probe{kind: KindPhysics}
		e.Attach(c)

		require.True(t, e.Has(KindPhysics))
		got, ok := e.Component(KindPhysics)
		require.True(t, ok)
		require.Same(t, c, got)
	})

	t.Run("missing slot is not an error", func(t *testing.T) {
		e := New(1, "e", ClassNPC)
		got, ok := e.Component(KindAI)
		require.False(t, ok)
		require.Nil(t, got)
		require.False(t, e.Has(KindAI))
	})

	t.Run("replacement tears down the old component", func(t *testing.T) {
		e := New(1, "e", ClassNPC)
		old := &probe{kind: KindRender}
		e.Attach(old)
		e.Attach(&probe{kind: KindRender})

		require.Equal(t, 1, old.destroyed)
		got, _ := e.Component(KindRender)
		require.NotSame(t, old, got)
	})

	t.Run("out of range kind is ignored", func(t *testing.T) {
		e := New(1, "e", ClassNPC)
		e.Attach(&probe{kind: KindCount})
		require.False(t, e.Has(KindCount))
	})
}

func TestRemove(t *testing.T) {
	e := New(1, "e", ClassNPC)
	c := &probe{kind: KindAI}
	e.Attach(c)

	e.Remove(KindAI)
	require.False(t, e.Has(KindAI))
	require.Equal(t, 1, c.destroyed)

	// Removing an empty slot is a no-op.
	e.Remove(KindAI)
	require.Equal(t, 1, c.destroyed)
}

func TestTags(t *testing.T) {
	e := New(1, "e", ClassNPC)
	e.AddTag("hostile")
	e.AddTag("boss")
	e.AddTag("hostile") // idempotent

	require.True(t, e.HasTag("hostile"))
	require.True(t, e.HasTag("boss"))
	require.ElementsMatch(t, []string{"hostile", "boss"}, e.Tags())

	e.RemoveTag("boss")
	require.False(t, e.HasTag("boss"))
	e.RemoveTag("boss") // absent tag is fine
}

func TestUpdateOrder(t *testing.T) {
	e := New(1, "e", ClassNPC)
	var calls []Kind
	for _, k := range []Kind{KindTransform, KindCollider, KindPhysics, KindRender, KindAI} {
		e.Attach(&probe{kind: k, updates: &calls})
	}

	e.Update(nil, 1.0/60)

	require.Equal(t, []Kind{KindAI, KindPhysics, KindTransform, KindCollider, KindRender}, calls)
}

func TestUpdateSkipsDisabled(t *testing.T) {
	e := New(1, "e", ClassNPC)
	var calls []Kind
	enabled := &probe{kind: KindPhysics, updates: &calls}
	disabled := &probe{kind: KindAI, updates: &calls}
	disabled.SetEnabled(false)
	e.Attach(enabled)
	e.Attach(disabled)

	e.Update(nil, 1.0/60)

	require.Equal(t, []Kind{KindPhysics}, calls)
}

func TestOnCollisionFansOut(t *testing.T) {
	e := New(1, "e", ClassNPC)
	other := New(2, "o", ClassNPC)
	a := &probe{kind: KindPhysics}
	b := &probe{kind: KindAI}
	off := &probe{kind: KindRender}
	off.SetEnabled(false)
	e.Attach(a)
	e.Attach(b)
	e.Attach(off)

	e.OnCollision(other, geom.Manifold{Normal: geom.V(1, 0), Penetration: 2})

	require.Equal(t, 1, a.collisions)
	require.Equal(t, 1, b.collisions)
	require.Zero(t, off.collisions)
}

func TestDestroy(t *testing.T) {
	e := New(1, "e", ClassNPC)
	c := &probe{kind: KindPhysics}
	e.Attach(c)
	e.AddTag("hostile")

	e.Destroy()

	require.False(t, e.Active())
	require.Equal(t, 1, c.destroyed)
	require.False(t, e.Has(KindPhysics))
	require.False(t, e.HasTag("hostile"))

	// Idempotent: a second destroy touches nothing.
	e.Destroy()
	require.Equal(t, 1, c.destroyed)
}

func TestInactiveEntityIsInert(t *testing.T) {
	e := New(1, "e", ClassNPC)
	var calls []Kind
	e.Attach(&probe{kind: KindPhysics, updates: &calls})
	e.Destroy()

	e.Update(nil, 1.0/60)
	e.OnCollision(New(2, "o", ClassNPC), geom.Manifold{})

	require.Empty(t, calls)
}
