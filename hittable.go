package main

// Hittable is the contract every leaf of the acceleration structures
// satisfies: intersect a ray over a parametric interval, and expose a
// bounding box and a centroid for builders to index.
//
// Intersect fills rec and returns true when the ray hits within
// (tMin, tMax); rec is left untouched on a miss.
type Hittable interface {
	Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool
	BoundingBox() AABB
	Centroid() Point
}

// HittableList is a heterogeneous collection tested by a linear scan. It is
// the top-level world object; BLASes, instances and TLASes all nest inside
// one. It also serves as the brute-force reference the accelerated paths are
// checked against.
type HittableList struct {
	Objects []Hittable

	bbox   AABB
	center Point
}

// NewHittableList creates an empty list
func NewHittableList() *HittableList {
	return &HittableList{bbox: EmptyAABB()}
}

// Add appends an object and grows the accumulated bounds
func (hl *HittableList) Add(object Hittable) {
	hl.Objects = append(hl.Objects, object)
	hl.bbox = hl.bbox.Union(object.BoundingBox())
	hl.center = hl.bbox.GetCenter()
}

// Clear removes all objects
func (hl *HittableList) Clear() {
	hl.Objects = nil
	hl.bbox = EmptyAABB()
	hl.center = Point{}
}

func (hl *HittableList) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	var tempRec HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range hl.Objects {
		if object.Intersect(r, tMin, closestSoFar, &tempRec) {
			hitAnything = true
			closestSoFar = tempRec.T
			*rec = tempRec
		}
	}

	return hitAnything
}

func (hl *HittableList) BoundingBox() AABB {
	return hl.bbox
}

func (hl *HittableList) Centroid() Point {
	return hl.center
}
