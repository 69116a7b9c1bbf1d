package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec2(t *testing.T) {
	t.Run("arithmetic", func(t *testing.T) {
		a := V(3, 4)
		b := V(1, -2)
		require.Equal(t, V(4, 2), a.Add(b))
		require.Equal(t, V(2, 6), a.Sub(b))
		require.Equal(t, V(6, 8), a.Scale(2))
		require.Equal(t, V(-3, -4), a.Neg())
		require.InDelta(t, -5.0, a.Dot(b), 1e-9)
	})

	t.Run("length", func(t *testing.T) {
		v := V(3, 4)
		require.InDelta(t, 5.0, v.Length(), 1e-9)
		require.InDelta(t, 25.0, v.LengthSquared(), 1e-9)
		require.InDelta(t, 5.0, V(0, 0).Distance(V(3, 4)), 1e-9)
	})

	t.Run("normalized", func(t *testing.T) {
		n := V(10, 0).Normalized()
		require.Equal(t, V(1, 0), n)
		require.InDelta(t, 1.0, V(3, 4).Normalized().Length(), 1e-9)
	})

	t.Run("normalized zero stays zero", func(t *testing.T) {
		require.True(t, V(0, 0).Normalized().IsZero())
	})

	t.Run("lerp", func(t *testing.T) {
		require.Equal(t, V(5, 5), V(0, 0).Lerp(V(10, 10), 0.5))
		require.Equal(t, V(0, 0), V(0, 0).Lerp(V(10, 10), 0))
		require.Equal(t, V(10, 10), V(0, 0).Lerp(V(10, 10), 1))
	})

	t.Run("clamp", func(t *testing.T) {
		require.Equal(t, V(3, 4), V(3, 4).Clamp(10))
		clamped := V(30, 40).Clamp(5)
		require.InDelta(t, 5.0, clamped.Length(), 1e-9)
		require.InDelta(t, 3.0, clamped.X, 1e-9)
		require.True(t, V(3, 4).Clamp(0).IsZero())
	})
}

func TestAABB(t *testing.T) {
	t.Run("around center", func(t *testing.T) {
		b := AABBAround(V(10, 10), 4, 6)
		require.Equal(t, V(8, 7), b.Min)
		require.Equal(t, V(12, 13), b.Max)
		require.Equal(t, V(10, 10), b.Center())
		require.InDelta(t, 4.0, b.Width(), 1e-9)
		require.InDelta(t, 6.0, b.Height(), 1e-9)
	})

	t.Run("overlaps", func(t *testing.T) {
		a := AABBAround(V(0, 0), 10, 10)
		require.True(t, a.Overlaps(AABBAround(V(8, 0), 10, 10)))
		require.True(t, a.Overlaps(AABBAround(V(10, 0), 10, 10))) // touching edges
		require.False(t, a.Overlaps(AABBAround(V(11, 0), 10, 10)))
	})

	t.Run("contains and clamp", func(t *testing.T) {
		b := AABBAround(V(0, 0), 10, 10)
		require.True(t, b.Contains(V(0, 0)))
		require.True(t, b.Contains(V(5, 5)))
		require.False(t, b.Contains(V(6, 0)))
		require.Equal(t, V(5, 0), b.ClampPoint(V(20, 0)))
		require.Equal(t, V(2, 2), b.ClampPoint(V(2, 2)))
	})
}

func TestManifoldFlip(t *testing.T) {
	m := Manifold{Normal: V(1, 0), Penetration: 3, Contact: V(7, 0)}
	f := m.Flip()
	require.Equal(t, V(-1, 0), f.Normal)
	require.Equal(t, m.Penetration, f.Penetration)
	require.Equal(t, m.Contact, f.Contact)
}
