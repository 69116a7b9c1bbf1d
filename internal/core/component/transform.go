package component

import (
	"math"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// renderSmoothing is the exponential rate at which the render position
// approaches the simulated position.
const renderSmoothing = 20.0

// Transform holds the spatial state of an entity. Position and Velocity
// are mutated by the Physics component and collision resolution; everyone
// else reads.
type Transform struct {
	entity.Base

	Position geom.Vec2
	Velocity geom.Vec2
	Rotation float64
	Scale    float64

	// Prev is the position at the start of the current integration step,
	// kept as a collision/interpolation baseline.
	Prev geom.Vec2

	// RenderPos trails Position with exponential smoothing so drawing is
	// decoupled from discrete physics steps.
	RenderPos geom.Vec2
}

func NewTransform(pos geom.Vec2) *Transform {
	return &Transform{
		Position:  pos,
		Scale:     1,
		Prev:      pos,
		RenderPos: pos,
	}
}

func (t *Transform) Kind() entity.Kind { return entity.KindTransform }

func (t *Transform) Update(_ entity.Context, _ *entity.Entity, dt float64) {
	f := 1 - math.Exp(-renderSmoothing*dt)
	t.RenderPos = t.RenderPos.Lerp(t.Position, f)
}

// TransformOf fetches the entity's transform, if attached.
func TransformOf(e *entity.Entity) (*Transform, bool) {
	c, ok := e.Component(entity.KindTransform)
	if !ok {
		return nil, false
	}
	t, ok := c.(*Transform)
	return t, ok
}
