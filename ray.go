package main

// Ray represents a ray in 3D space. Direction is not required to be
// normalized; parametric distances stay meaningful as long as nobody
// renormalizes it mid-flight.
type Ray struct {
	Origin    Point
	Direction Point
}

// At returns the point along the ray at distance t
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Scale(t))
}

// HitRecord contains information about a ray intersection
type HitRecord struct {
	T         float64
	Point     Point
	Normal    Point
	FrontFace bool
	U, V      float64
	Mat       Material
}

// SetFaceNormal orients the stored normal against the incident ray and
// records which side was hit. outwardNormal must be unit length.
func (rec *HitRecord) SetFaceNormal(r Ray, outwardNormal Point) {
	rec.FrontFace = r.Direction.Dot(outwardNormal) < 0
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Neg()
	}
}
