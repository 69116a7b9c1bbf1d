package component

import (
	"fmt"
	"math"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// Animation is optional frame-based color animation.
type Animation struct {
	Frames    []string
	FrameTime float64

	timer float64
	index int
}

func (a *Animation) advance(dt float64) {
	if len(a.Frames) == 0 || a.FrameTime <= 0 {
		return
	}
	a.timer += dt
	for a.timer >= a.FrameTime {
		a.timer -= a.FrameTime
		a.index = (a.index + 1) % len(a.Frames)
	}
}

func (a *Animation) current(fallback string) string {
	if len(a.Frames) == 0 {
		return fallback
	}
	return a.Frames[a.index]
}

// Render is pure output: visual parameters drawn at the transform's
// interpolated position. It never mutates simulation state.
type Render struct {
	entity.Base

	Color   string
	Size    float64
	Opacity float64

	Animation *Animation
}

func NewRender(color string, size float64) *Render {
	return &Render{
		Color:   color,
		Size:    size,
		Opacity: 1,
	}
}

func (r *Render) Kind() entity.Kind { return entity.KindRender }

func (r *Render) Update(_ entity.Context, _ *entity.Entity, dt float64) {
	if r.Animation != nil {
		r.Animation.advance(dt)
	}
}

func (r *Render) Render(e *entity.Entity, target entity.Surface) {
	tr, ok := TransformOf(e)
	if !ok {
		return
	}

	color := r.Color
	if r.Animation != nil {
		color = r.Animation.current(color)
	}
	color = withOpacity(color, r.Opacity)

	pos := tr.RenderPos
	// Draw a box when the entity's collider is a box; circles otherwise.
	if col, ok := ColliderOf(e); ok && col.Shape.Type == ShapeBox {
		target.FillRect(geom.AABBAround(pos, col.Shape.Width, col.Shape.Height), color)
		return
	}
	target.FillCircle(pos, r.Size, color)
}

// withOpacity folds an opacity in [0,1) into a #rrggbb color as #rrggbbaa.
func withOpacity(color string, opacity float64) string {
	if opacity >= 1 || len(color) != 7 || color[0] != '#' {
		return color
	}
	if opacity < 0 {
		opacity = 0
	}
	return fmt.Sprintf("%s%02x", color, uint8(math.Round(opacity*255)))
}

// RenderOf fetches the entity's render component, if attached.
func RenderOf(e *entity.Entity) (*Render, bool) {
	c, ok := e.Component(entity.KindRender)
	if !ok {
		return nil, false
	}
	r, ok := c.(*Render)
	return r, ok
}
