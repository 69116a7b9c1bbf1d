package geom

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min Vec2
	Max Vec2
}

// AABBAround builds a box of the given width and height centered on c.
func AABBAround(c Vec2, width, height float64) AABB {
	hw, hh := width*0.5, height*0.5
	return AABB{
		Min: Vec2{X: c.X - hw, Y: c.Y - hh},
		Max: Vec2{X: c.X + hw, Y: c.Y + hh},
	}
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Center() Vec2 {
	return Vec2{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
	}
}

func (b AABB) Width() float64 {
	return b.Max.X - b.Min.X
}

func (b AABB) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// ClampPoint returns the point inside b closest to p.
func (b AABB) ClampPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Manifold describes a detected overlap between two shapes.
// Normal is a unit vector pointing from the second shape toward the first.
type Manifold struct {
	Normal      Vec2
	Penetration float64
	Contact     Vec2
}

// Flip returns the manifold as seen from the other party.
func (m Manifold) Flip() Manifold {
	return Manifold{
		Normal:      m.Normal.Neg(),
		Penetration: m.Penetration,
		Contact:     m.Contact,
	}
}
