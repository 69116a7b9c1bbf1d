package component

import (
	"math"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// ShapeType discriminates the collider shape union.
type ShapeType uint8

const (
	ShapeNone ShapeType = iota
	ShapeCircle
	ShapeBox
)

// Shape is the collider geometry. Only the fields for the active type are
// meaningful.
type Shape struct {
	Type   ShapeType
	Radius float64
	Width  float64
	Height float64
}

func CircleShape(radius float64) Shape {
	return Shape{Type: ShapeCircle, Radius: radius}
}

func BoxShape(width, height float64) Shape {
	return Shape{Type: ShapeBox, Width: width, Height: height}
}

// Collider carries collision geometry, layer filtering and the live
// overlap state maintained by the collision system.
type Collider struct {
	entity.Base

	Shape   Shape
	Offset  geom.Vec2
	Trigger bool

	// Layer is the single label this collider lives on; CollidesWith
	// lists the layers it may interact with. An empty list interacts
	// with everything.
	Layer        string
	CollidesWith []string

	// Immovable bodies (terrain) never receive positional correction.
	Immovable bool

	overlaps map[entity.ID]struct{}
}

func NewCollider(shape Shape, layer string, collidesWith []string) *Collider {
	return &Collider{
		Shape:        shape,
		Layer:        layer,
		CollidesWith: collidesWith,
		overlaps:     make(map[entity.ID]struct{}),
	}
}

func (c *Collider) Kind() entity.Kind { return entity.KindCollider }

// Center is the collider center in world space for the given transform.
// Always derived on demand, never cached.
func (c *Collider) Center(t *Transform) geom.Vec2 {
	return t.Position.Add(c.Offset)
}

// Bounds is the world-space AABB enclosing the shape.
func (c *Collider) Bounds(t *Transform) geom.AABB {
	center := c.Center(t)
	switch c.Shape.Type {
	case ShapeCircle:
		return geom.AABBAround(center, c.Shape.Radius*2, c.Shape.Radius*2)
	case ShapeBox:
		return geom.AABBAround(center, c.Shape.Width, c.Shape.Height)
	default:
		return geom.AABB{Min: center, Max: center}
	}
}

// BoundingRadius is the radius of the circle enclosing the shape, used
// for broad-phase grid insertion.
func (c *Collider) BoundingRadius() float64 {
	switch c.Shape.Type {
	case ShapeCircle:
		return c.Shape.Radius
	case ShapeBox:
		return math.Hypot(c.Shape.Width, c.Shape.Height) * 0.5
	default:
		return 0
	}
}

// Interacts reports whether this collider's allow-list admits the given
// layer. Same-layer policy is the collision system's concern, not the
// collider's.
func (c *Collider) Interacts(layer string) bool {
	if len(c.CollidesWith) == 0 {
		return true
	}
	for _, l := range c.CollidesWith {
		if l == layer {
			return true
		}
	}
	return false
}

// IsColliding reports whether any overlap is currently live.
func (c *Collider) IsColliding() bool {
	return len(c.overlaps) > 0
}

func (c *Collider) OverlapCount() int {
	return len(c.overlaps)
}

func (c *Collider) OverlappedBy(id entity.ID) bool {
	_, ok := c.overlaps[id]
	return ok
}

func (c *Collider) AddOverlap(id entity.ID) {
	c.overlaps[id] = struct{}{}
}

func (c *Collider) RemoveOverlap(id entity.ID) {
	delete(c.overlaps, id)
}

// Render draws the debug overlay: shape outline, red while colliding.
func (c *Collider) Render(e *entity.Entity, target entity.Surface) {
	tr, ok := TransformOf(e)
	if !ok {
		return
	}
	color := "#00ff00"
	if c.IsColliding() {
		color = "#ff0000"
	}
	switch c.Shape.Type {
	case ShapeCircle:
		target.StrokeCircle(c.Center(tr), c.Shape.Radius, color)
	case ShapeBox:
		target.StrokeRect(c.Bounds(tr), color)
	}
}

func (c *Collider) Destroy(*entity.Entity) {
	c.overlaps = make(map[entity.ID]struct{})
}

// ColliderOf fetches the entity's collider, if attached.
func ColliderOf(e *entity.Entity) (*Collider, bool) {
	c, ok := e.Component(entity.KindCollider)
	if !ok {
		return nil, false
	}
	col, ok := c.(*Collider)
	return col, ok
}
