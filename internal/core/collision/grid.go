package collision

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// DefaultCellSize suits entity radii in the tens of units.
const DefaultCellSize = 100.0

// cellKey hashes integer cell coordinates into a bucket key.
func cellKey(cx, cy int64) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(cx))
	binary.LittleEndian.PutUint64(b[8:16], uint64(cy))
	return xxhash.Sum64(b[:])
}

// Grid is a uniform-cell spatial hash used as the broad phase. Entities
// are bucketed into every cell their bounding circle overlaps. The grid
// holds non-owning references and is fully rebuilt each tick, so it can
// never go stale.
type Grid struct {
	cellSize float64
	cells    map[uint64][]*entity.Entity
	// occupied records the cells each entity was inserted into so Remove
	// can reverse an insertion without a full scan.
	occupied map[entity.ID][]uint64
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[uint64][]*entity.Entity),
		occupied: make(map[entity.ID][]uint64),
	}
}

func (g *Grid) CellSize() float64 { return g.cellSize }

// Clear drops all memberships, keeping allocated buckets for reuse.
func (g *Grid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for k := range g.occupied {
		delete(g.occupied, k)
	}
}

// Insert buckets the entity into every cell its bounding circle overlaps.
func (g *Grid) Insert(e *entity.Entity, pos geom.Vec2, radius float64) {
	minX, maxX := g.cellRange(pos.X, radius)
	minY, maxY := g.cellRange(pos.Y, radius)

	keys := g.occupied[e.ID()][:0]
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			key := cellKey(cx, cy)
			g.cells[key] = append(g.cells[key], e)
			keys = append(keys, key)
		}
	}
	g.occupied[e.ID()] = keys
}

// Remove takes the entity out of every cell it was inserted into.
func (g *Grid) Remove(e *entity.Entity) {
	keys, ok := g.occupied[e.ID()]
	if !ok {
		return
	}
	for _, key := range keys {
		bucket := g.cells[key]
		for i, other := range bucket {
			if other.ID() == e.ID() {
				bucket[i] = bucket[len(bucket)-1]
				g.cells[key] = bucket[:len(bucket)-1]
				break
			}
		}
	}
	delete(g.occupied, e.ID())
}

// Query returns the deduplicated union of entities in all cells
// overlapping the query circle. The result is a superset of the true
// neighbors: false positives are expected, false negatives are not.
func (g *Grid) Query(pos geom.Vec2, radius float64) []*entity.Entity {
	minX, maxX := g.cellRange(pos.X, radius)
	minY, maxY := g.cellRange(pos.Y, radius)

	seen := make(map[entity.ID]struct{})
	var out []*entity.Entity
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, e := range g.cells[cellKey(cx, cy)] {
				if _, dup := seen[e.ID()]; dup {
					continue
				}
				seen[e.ID()] = struct{}{}
				out = append(out, e)
			}
		}
	}
	return out
}

// EntityCount reports how many entities are currently inserted.
func (g *Grid) EntityCount() int {
	return len(g.occupied)
}

func (g *Grid) cellRange(coord, radius float64) (int64, int64) {
	return int64(math.Floor((coord - radius) / g.cellSize)),
		int64(math.Floor((coord + radius) / g.cellSize))
}
