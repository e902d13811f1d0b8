package main

// TextureCoord is a 2D texture coordinate
type TextureCoord struct {
	U, V float64
}

// Triangle is a hittable triangle with optional per-vertex normals and
// texture coordinates
type Triangle struct {
	V0, V1, V2 Point
	N0, N1, N2 Point
	UV0        TextureCoord
	UV1        TextureCoord
	UV2        TextureCoord
	Mat        Material

	// Smooth selects interpolated vertex normals over the geometric normal
	Smooth bool

	bbox     AABB
	centroid Point
}

// NewTriangle creates a flat-shaded triangle
func NewTriangle(v0, v1, v2 Point, mat Material) Triangle {
	t := Triangle{V0: v0, V1: v1, V2: v2, Mat: mat}
	t.FinishSetup()
	return t
}

// FinishSetup precomputes bounds and centroid after the vertex fields have
// been filled in. Bounds are padded so axis-aligned triangles keep a
// non-degenerate slab.
func (t *Triangle) FinishSetup() {
	t.bbox = EmptyAABB().UnionPoint(t.V0).UnionPoint(t.V1).UnionPoint(t.V2).Pad()
	t.centroid = t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// Intersect performs the Möller–Trumbore ray/triangle test without backface
// culling
func (t Triangle) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)

	// Ray parallel to the triangle plane
	if det > -INTERSECT_EPSILON && det < INTERSECT_EPSILON {
		return false
	}
	invDet := 1.0 / det

	tvec := r.Origin.Sub(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= tMin || dist >= tMax {
		return false
	}

	rec.T = dist
	rec.Point = r.At(dist)

	var outwardNormal Point
	if t.Smooth {
		// Barycentric interpolation of the vertex normals
		w := 1 - u - v
		outwardNormal = t.N0.Scale(w).Add(t.N1.Scale(u)).Add(t.N2.Scale(v)).Normalize()
	} else {
		outwardNormal = edge1.Cross(edge2).Normalize()
	}
	rec.SetFaceNormal(r, outwardNormal)

	w := 1 - u - v
	rec.U = w*t.UV0.U + u*t.UV1.U + v*t.UV2.U
	rec.V = w*t.UV0.V + u*t.UV1.V + v*t.UV2.V
	rec.Mat = t.Mat

	return true
}

func (t Triangle) BoundingBox() AABB {
	return t.bbox
}

func (t Triangle) Centroid() Point {
	return t.centroid
}
