package main

// BVHInstance places a shared BVH in the world under an affine transform.
// Rays are moved into object space for traversal; hit records are moved back
// to world space. Many instances may reference the same BVH.
type BVHInstance[T Hittable] struct {
	blas *BVH[T]

	transform    Matrix4x4
	invTransform Matrix4x4
	normalMatrix Matrix4x4

	bounds AABB
}

// NewBVHInstance wraps a BVH with an identity transform
func NewBVHInstance[T Hittable](blas *BVH[T]) *BVHInstance[T] {
	inst := &BVHInstance[T]{blas: blas}
	inst.SetTransform(IdentityMatrix())
	return inst
}

// SetTransform installs a new object-to-world transform and recomputes the
// cached inverse, normal matrix and world bounds
func (inst *BVHInstance[T]) SetTransform(transform Matrix4x4) {
	inst.transform = transform
	inst.invTransform = transform.Invert()
	// Normals transform by the inverse-transpose of the linear block, which
	// stays correct under non-uniform scale
	inst.normalMatrix = inst.invTransform.Transpose()
	inst.bounds = inst.blas.BoundingBox().TransformedBy(&transform)
}

// Transform returns the object-to-world matrix
func (inst *BVHInstance[T]) Transform() Matrix4x4 {
	return inst.transform
}

// Intersect traverses the wrapped BVH in object space.
//
// The object-space direction is deliberately not renormalized, so parametric
// distances carry over unchanged. Under a rigid transform they are world
// units; under non-rigid transforms t is measured in object-space units,
// which still orders hits correctly within this instance but is not
// comparable across differently scaled instances.
func (inst *BVHInstance[T]) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	objectRay := Ray{
		Origin:    inst.invTransform.TransformPoint(r.Origin),
		Direction: inst.invTransform.TransformDirection(r.Direction),
	}

	if !inst.blas.Intersect(objectRay, tMin, tMax, rec) {
		return false
	}

	rec.Point = inst.transform.TransformPoint(rec.Point)
	rec.Normal = inst.normalMatrix.TransformDirection(rec.Normal).Normalize()

	return true
}

// BoundingBox returns the world-space bounds of the transformed BVH root
func (inst *BVHInstance[T]) BoundingBox() AABB {
	return inst.bounds
}

// Centroid returns the center of the world-space bounds
func (inst *BVHInstance[T]) Centroid() Point {
	return inst.bounds.GetCenter()
}
