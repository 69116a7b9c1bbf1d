package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

func gridEntity(id entity.ID) *entity.Entity {
	return entity.New(id, "e", entity.ClassNPC)
}

func ids(entities []*entity.Entity) []entity.ID {
	out := make([]entity.ID, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ID())
	}
	return out
}

func TestGridInsertQuery(t *testing.T) {
	t.Run("query spanning cells finds neighbors", func(t *testing.T) {
		g := NewGrid(100)
		a := gridEntity(1)
		b := gridEntity(2)
		g.Insert(a, geom.V(50, 50), 10)
		g.Insert(b, geom.V(140, 50), 10)

		// Radius 120 from (50,50) reaches into the neighbor cell.
		got := g.Query(geom.V(50, 50), 120)
		require.ElementsMatch(t, []entity.ID{1, 2}, ids(got))
	})

	t.Run("query is a superset not an exact filter", func(t *testing.T) {
		g := NewGrid(100)
		a := gridEntity(1)
		b := gridEntity(2)
		g.Insert(a, geom.V(10, 10), 5)
		g.Insert(b, geom.V(90, 90), 5) // same cell, 113 units away

		got := g.Query(geom.V(10, 10), 5)
		require.ElementsMatch(t, []entity.ID{1, 2}, ids(got))
	})

	t.Run("entity spanning cells is returned once", func(t *testing.T) {
		g := NewGrid(100)
		a := gridEntity(1)
		// Bounding circle overlaps four cells around (100,100).
		g.Insert(a, geom.V(100, 100), 30)

		got := g.Query(geom.V(100, 100), 150)
		require.Len(t, got, 1)
		require.Equal(t, entity.ID(1), got[0].ID())
	})

	t.Run("distant entities are not candidates", func(t *testing.T) {
		g := NewGrid(100)
		g.Insert(gridEntity(1), geom.V(0, 0), 10)
		g.Insert(gridEntity(2), geom.V(5000, 5000), 10)

		got := g.Query(geom.V(0, 0), 50)
		require.ElementsMatch(t, []entity.ID{1}, ids(got))
	})

	t.Run("negative coordinates bucket correctly", func(t *testing.T) {
		g := NewGrid(100)
		a := gridEntity(1)
		g.Insert(a, geom.V(-250, -250), 10)

		require.Empty(t, g.Query(geom.V(250, 250), 50))
		require.ElementsMatch(t, []entity.ID{1}, ids(g.Query(geom.V(-260, -260), 30)))
	})
}

func TestGridRemove(t *testing.T) {
	g := NewGrid(100)
	a := gridEntity(1)
	b := gridEntity(2)
	g.Insert(a, geom.V(50, 50), 40)
	g.Insert(b, geom.V(60, 60), 10)
	require.Equal(t, 2, g.EntityCount())

	g.Remove(a)
	require.Equal(t, 1, g.EntityCount())
	require.ElementsMatch(t, []entity.ID{2}, ids(g.Query(geom.V(50, 50), 50)))

	// Removing twice is harmless.
	g.Remove(a)
	require.Equal(t, 1, g.EntityCount())
}

func TestGridClear(t *testing.T) {
	g := NewGrid(100)
	g.Insert(gridEntity(1), geom.V(50, 50), 10)
	g.Insert(gridEntity(2), geom.V(150, 50), 10)
	g.Clear()

	require.Zero(t, g.EntityCount())
	require.Empty(t, g.Query(geom.V(50, 50), 200))
}

func TestGridDefaultCellSize(t *testing.T) {
	g := NewGrid(0)
	require.Equal(t, DefaultCellSize, g.CellSize())
	g = NewGrid(-5)
	require.Equal(t, DefaultCellSize, g.CellSize())
}
