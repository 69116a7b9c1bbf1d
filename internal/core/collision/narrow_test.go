package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simforge/simforge/internal/core/component"
	"github.com/simforge/simforge/internal/core/geom"
)

func circleAt(pos geom.Vec2, r float64) (*component.Collider, *component.Transform) {
	return component.NewCollider(component.CircleShape(r), "npc", nil),
		component.NewTransform(pos)
}

func boxAt(pos geom.Vec2, w, h float64) (*component.Collider, *component.Transform) {
	return component.NewCollider(component.BoxShape(w, h), "terrain", nil),
		component.NewTransform(pos)
}

func TestCollideCircleCircle(t *testing.T) {
	t.Run("overlapping circles", func(t *testing.T) {
		ca, ta := circleAt(geom.V(0, 0), 10)
		cb, tb := circleAt(geom.V(15, 0), 10)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.InDelta(t, 5.0, m.Penetration, 1e-9)
		// Normal points from the second body toward the first.
		require.InDelta(t, -1.0, m.Normal.X, 1e-9)
		require.InDelta(t, 0.0, m.Normal.Y, 1e-9)
	})

	t.Run("separated circles", func(t *testing.T) {
		ca, ta := circleAt(geom.V(0, 0), 10)
		cb, tb := circleAt(geom.V(25, 0), 10)

		_, hit := Collide(ca, ta, cb, tb)
		require.False(t, hit)
	})

	t.Run("exactly touching circles do not collide", func(t *testing.T) {
		ca, ta := circleAt(geom.V(0, 0), 10)
		cb, tb := circleAt(geom.V(20, 0), 10)

		_, hit := Collide(ca, ta, cb, tb)
		require.False(t, hit)
	})

	t.Run("concentric circles pick a fallback axis", func(t *testing.T) {
		ca, ta := circleAt(geom.V(5, 5), 10)
		cb, tb := circleAt(geom.V(5, 5), 4)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.InDelta(t, 1.0, m.Normal.Length(), 1e-9)
		require.InDelta(t, 14.0, m.Penetration, 1e-9)
	})

	t.Run("swapping operands flips the normal", func(t *testing.T) {
		ca, ta := circleAt(geom.V(0, 0), 10)
		cb, tb := circleAt(geom.V(15, 0), 10)

		ab, hitAB := Collide(ca, ta, cb, tb)
		ba, hitBA := Collide(cb, tb, ca, ta)
		require.True(t, hitAB)
		require.True(t, hitBA)
		require.Equal(t, ab.Normal.Neg(), ba.Normal)
		require.InDelta(t, ab.Penetration, ba.Penetration, 1e-9)
	})
}

func TestCollideBoxBox(t *testing.T) {
	t.Run("minimum penetration axis", func(t *testing.T) {
		ca, ta := boxAt(geom.V(5, 5), 10, 10) // bounds (0,0)-(10,10)
		cb, tb := boxAt(geom.V(13, 5), 10, 10)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.InDelta(t, 2.0, m.Penetration, 1e-9)
		require.Equal(t, geom.V(-1, 0), m.Normal)
	})

	t.Run("vertical axis when shallower", func(t *testing.T) {
		ca, ta := boxAt(geom.V(0, 0), 20, 10)
		cb, tb := boxAt(geom.V(2, 8), 20, 10)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.InDelta(t, 2.0, m.Penetration, 1e-9)
		require.Equal(t, geom.V(0, -1), m.Normal)
	})

	t.Run("edge touching boxes do not collide", func(t *testing.T) {
		ca, ta := boxAt(geom.V(0, 0), 10, 10)
		cb, tb := boxAt(geom.V(10, 0), 10, 10)

		_, hit := Collide(ca, ta, cb, tb)
		require.False(t, hit)
	})
}

func TestCollideCircleBox(t *testing.T) {
	t.Run("circle against box edge", func(t *testing.T) {
		ca, ta := circleAt(geom.V(18, 0), 10)
		cb, tb := boxAt(geom.V(0, 0), 20, 20) // bounds (-10,-10)-(10,10)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.InDelta(t, 2.0, m.Penetration, 1e-9)
		require.Equal(t, geom.V(1, 0), m.Normal)
		require.Equal(t, geom.V(10, 0), m.Contact)
	})

	t.Run("circle center inside box exits nearest face", func(t *testing.T) {
		ca, ta := circleAt(geom.V(8, 0), 5)
		cb, tb := boxAt(geom.V(0, 0), 20, 20)

		m, hit := Collide(ca, ta, cb, tb)
		require.True(t, hit)
		require.Equal(t, geom.V(1, 0), m.Normal)
		require.InDelta(t, 7.0, m.Penetration, 1e-9) // 2 to the face plus the radius
	})

	t.Run("box first flips onto the same convention", func(t *testing.T) {
		ca, ta := circleAt(geom.V(18, 0), 10)
		cb, tb := boxAt(geom.V(0, 0), 20, 20)

		cm, hitC := Collide(ca, ta, cb, tb)
		bm, hitB := Collide(cb, tb, ca, ta)
		require.True(t, hitC)
		require.True(t, hitB)
		require.Equal(t, cm.Normal.Neg(), bm.Normal)
		require.InDelta(t, cm.Penetration, bm.Penetration, 1e-9)
	})

	t.Run("circle away from box corner", func(t *testing.T) {
		ca, ta := circleAt(geom.V(20, 20), 5)
		cb, tb := boxAt(geom.V(0, 0), 20, 20)

		_, hit := Collide(ca, ta, cb, tb)
		require.False(t, hit)
	})
}

func TestCollideUnshaped(t *testing.T) {
	ca := component.NewCollider(component.Shape{}, "npc", nil)
	ta := component.NewTransform(geom.V(0, 0))
	cb, tb := circleAt(geom.V(0, 0), 10)

	_, hit := Collide(ca, ta, cb, tb)
	require.False(t, hit)
}

func TestColliderOffset(t *testing.T) {
	ca, ta := circleAt(geom.V(0, 0), 10)
	ca.Offset = geom.V(100, 0)
	cb, tb := circleAt(geom.V(115, 0), 10)

	m, hit := Collide(ca, ta, cb, tb)
	require.True(t, hit)
	require.InDelta(t, 5.0, m.Penetration, 1e-9)
}
