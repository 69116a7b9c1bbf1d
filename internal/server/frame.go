package server

import (
	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// DrawOp is one recorded draw call, serializable for the viewer.
type DrawOp struct {
	Op     string  `json:"op"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r,omitempty"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
	Color  string  `json:"color"`
}

// Frame records component draw calls so the render pass can be replayed
// by a remote canvas. It implements entity.Surface.
type Frame struct {
	Ops []DrawOp `json:"ops"`
}

var _ entity.Surface = (*Frame)(nil)

func (f *Frame) Reset() {
	f.Ops = f.Ops[:0]
}

func (f *Frame) FillCircle(center geom.Vec2, radius float64, color string) {
	f.Ops = append(f.Ops, DrawOp{Op: "fill_circle", X: center.X, Y: center.Y, Radius: radius, Color: color})
}

func (f *Frame) StrokeCircle(center geom.Vec2, radius float64, color string) {
	f.Ops = append(f.Ops, DrawOp{Op: "stroke_circle", X: center.X, Y: center.Y, Radius: radius, Color: color})
}

func (f *Frame) FillRect(box geom.AABB, color string) {
	f.Ops = append(f.Ops, DrawOp{Op: "fill_rect", X: box.Min.X, Y: box.Min.Y, Width: box.Width(), Height: box.Height(), Color: color})
}

func (f *Frame) StrokeRect(box geom.AABB, color string) {
	f.Ops = append(f.Ops, DrawOp{Op: "stroke_rect", X: box.Min.X, Y: box.Min.Y, Width: box.Width(), Height: box.Height(), Color: color})
}
