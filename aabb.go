package main

import "math"

// AABB represents an Axis-Aligned Bounding Box. The zero-ish EmptyAABB sits
// at +inf/-inf so that Union is idempotent on empty boxes.
type AABB struct {
	Min Point
	Max Point
}

// EmptyAABB returns the canonical empty box
func EmptyAABB() AABB {
	return AABB{
		Min: Point{X: infinity, Y: infinity, Z: infinity},
		Max: Point{X: -infinity, Y: -infinity, Z: -infinity},
	}
}

// NewAABB creates a box from two corner points in any coordinate order
func NewAABB(a, b Point) AABB {
	return AABB{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// IsEmpty reports whether the box contains no points
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Union returns the smallest box enclosing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Point{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Point{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// UnionPoint returns the box grown to include p
func (aabb AABB) UnionPoint(p Point) AABB {
	return AABB{
		Min: Point{
			X: math.Min(aabb.Min.X, p.X),
			Y: math.Min(aabb.Min.Y, p.Y),
			Z: math.Min(aabb.Min.Z, p.Z),
		},
		Max: Point{
			X: math.Max(aabb.Max.X, p.X),
			Y: math.Max(aabb.Max.Y, p.Y),
			Z: math.Max(aabb.Max.Z, p.Z),
		},
	}
}

// GetCenter returns the box center
func (aabb AABB) GetCenter() Point {
	return aabb.Min.Add(aabb.Max).Scale(0.5)
}

// GetSize returns the box extents
func (aabb AABB) GetSize() Point {
	return aabb.Max.Sub(aabb.Min)
}

// HalfArea returns dx*dy + dy*dz + dz*dx, half of the surface area. The
// constant factor drops out of SAH cost comparisons. Empty boxes report 0.
func (aabb AABB) HalfArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	e := aabb.GetSize()
	return e.X*e.Y + e.Y*e.Z + e.Z*e.X
}

// Pad returns a box with no side narrower than AABB_PAD_DELTA, expanding
// thin axes symmetrically
func (aabb AABB) Pad() AABB {
	const delta2 = AABB_PAD_DELTA / 2
	padded := aabb

	if math.Abs(aabb.Max.X-aabb.Min.X) < AABB_PAD_DELTA {
		padded.Min.X -= delta2
		padded.Max.X += delta2
	}
	if math.Abs(aabb.Max.Y-aabb.Min.Y) < AABB_PAD_DELTA {
		padded.Min.Y -= delta2
		padded.Max.Y += delta2
	}
	if math.Abs(aabb.Max.Z-aabb.Min.Z) < AABB_PAD_DELTA {
		padded.Min.Z -= delta2
		padded.Max.Z += delta2
	}

	return padded
}

// TransformedBy returns the axis-aligned box enclosing the eight corners of
// this box after transformation by m
func (aabb AABB) TransformedBy(m *Matrix4x4) AABB {
	corners := [8]Point{
		{X: aabb.Min.X, Y: aabb.Min.Y, Z: aabb.Min.Z},
		{X: aabb.Max.X, Y: aabb.Min.Y, Z: aabb.Min.Z},
		{X: aabb.Min.X, Y: aabb.Max.Y, Z: aabb.Min.Z},
		{X: aabb.Max.X, Y: aabb.Max.Y, Z: aabb.Min.Z},
		{X: aabb.Min.X, Y: aabb.Min.Y, Z: aabb.Max.Z},
		{X: aabb.Max.X, Y: aabb.Min.Y, Z: aabb.Max.Z},
		{X: aabb.Min.X, Y: aabb.Max.Y, Z: aabb.Max.Z},
		{X: aabb.Max.X, Y: aabb.Max.Y, Z: aabb.Max.Z},
	}

	result := EmptyAABB()
	for _, corner := range corners {
		result = result.UnionPoint(m.TransformPoint(corner))
	}
	return result
}

// IntersectRay runs the slab test against the interval [tMin, tMax] and
// returns the entry distance, or +Inf on a miss. Returning the distance
// rather than a bool lets traversal order children near-to-far and prune by
// the current best hit. A ray starting inside the box returns tMin.
// Division by a zero direction component is well-defined with IEEE
// infinities; NaN outcomes count as misses.
func (aabb AABB) IntersectRay(r Ray, tMin, tMax float64) float64 {
	for a := 0; a < 3; a++ {
		invD := 1 / r.Direction.Axis(a)
		orig := r.Origin.Axis(a)

		t0 := (aabb.Min.Axis(a) - orig) * invD
		t1 := (aabb.Max.Axis(a) - orig) * invD

		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if !(tMax > tMin) {
			return infinity
		}
	}

	if math.IsNaN(tMin) {
		return infinity
	}
	return tMin
}
