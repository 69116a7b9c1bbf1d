package collision

import (
	"math"

	"github.com/simforge/simforge/internal/core/component"
	"github.com/simforge/simforge/internal/core/geom"
)

// Collide runs the exact shape-pair test for two colliders. The returned
// manifold normal is a unit vector pointing from the second collider
// toward the first: the direction the first body separates along.
// Unrecognized or empty shapes never collide.
func Collide(a *component.Collider, atr *component.Transform, b *component.Collider, btr *component.Transform) (geom.Manifold, bool) {
	ca := a.Center(atr)
	cb := b.Center(btr)

	switch {
	case a.Shape.Type == component.ShapeCircle && b.Shape.Type == component.ShapeCircle:
		return circleCircle(ca, a.Shape.Radius, cb, b.Shape.Radius)
	case a.Shape.Type == component.ShapeBox && b.Shape.Type == component.ShapeBox:
		return boxBox(a.Bounds(atr), b.Bounds(btr))
	case a.Shape.Type == component.ShapeCircle && b.Shape.Type == component.ShapeBox:
		return circleBox(ca, a.Shape.Radius, b.Bounds(btr))
	case a.Shape.Type == component.ShapeBox && b.Shape.Type == component.ShapeCircle:
		m, ok := circleBox(cb, b.Shape.Radius, a.Bounds(atr))
		if !ok {
			return geom.Manifold{}, false
		}
		return m.Flip(), true
	default:
		return geom.Manifold{}, false
	}
}

func circleCircle(ca geom.Vec2, ra float64, cb geom.Vec2, rb float64) (geom.Manifold, bool) {
	delta := ca.Sub(cb)
	distSq := delta.LengthSquared()
	total := ra + rb
	if distSq >= total*total {
		return geom.Manifold{}, false
	}

	dist := math.Sqrt(distSq)
	normal := geom.V(1, 0) // concentric circles separate along an arbitrary axis
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}

	return geom.Manifold{
		Normal:      normal,
		Penetration: total - dist,
		Contact:     cb.Add(normal.Scale(rb - (total-dist)*0.5)),
	}, true
}

func boxBox(a, b geom.AABB) (geom.Manifold, bool) {
	overlapX := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
	overlapY := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return geom.Manifold{}, false
	}

	// Separate along the axis of minimum penetration: the cheapest
	// correction.
	var normal geom.Vec2
	var penetration float64
	if overlapX < overlapY {
		penetration = overlapX
		if a.Min.X < b.Min.X {
			normal = geom.V(-1, 0)
		} else {
			normal = geom.V(1, 0)
		}
	} else {
		penetration = overlapY
		if a.Min.Y < b.Min.Y {
			normal = geom.V(0, -1)
		} else {
			normal = geom.V(0, 1)
		}
	}

	return geom.Manifold{
		Normal:      normal,
		Penetration: penetration,
		Contact:     a.Center().Add(b.Center()).Scale(0.5),
	}, true
}

// circleBox tests a circle against a box by clamping the circle center to
// the box bounds.
func circleBox(center geom.Vec2, radius float64, box geom.AABB) (geom.Manifold, bool) {
	closest := box.ClampPoint(center)
	delta := center.Sub(closest)
	distSq := delta.LengthSquared()
	if distSq >= radius*radius {
		return geom.Manifold{}, false
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return geom.Manifold{
			Normal:      delta.Scale(1 / dist),
			Penetration: radius - dist,
			Contact:     closest,
		}, true
	}

	// Center inside the box: push out through the nearest face.
	bc := box.Center()
	xDist := math.Min(center.X-box.Min.X, box.Max.X-center.X)
	yDist := math.Min(center.Y-box.Min.Y, box.Max.Y-center.Y)

	var normal geom.Vec2
	var penetration float64
	if xDist < yDist {
		penetration = xDist + radius
		if center.X < bc.X {
			normal = geom.V(-1, 0)
		} else {
			normal = geom.V(1, 0)
		}
	} else {
		penetration = yDist + radius
		if center.Y < bc.Y {
			normal = geom.V(0, -1)
		} else {
			normal = geom.V(0, 1)
		}
	}

	return geom.Manifold{
		Normal:      normal,
		Penetration: penetration,
		Contact:     closest,
	}, true
}
