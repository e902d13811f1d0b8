package main

import "math"

// Sphere is a hittable sphere with a material handle
type Sphere struct {
	Center Point
	Radius float64
	Mat    Material

	bbox AABB
}

// NewSphere creates a sphere and precomputes its bounds
func NewSphere(center Point, radius float64, mat Material) Sphere {
	rvec := Point{X: radius, Y: radius, Z: radius}
	return Sphere{
		Center: center,
		Radius: radius,
		Mat:    mat,
		bbox:   NewAABB(center.Sub(rvec), center.Add(rvec)),
	}
}

func (s Sphere) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.LengthSquared()
	halfB := oc.Dot(r.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtd := math.Sqrt(discriminant)

	// Find the nearest root in the acceptable range
	root := (-halfB - sqrtd) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtd) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = r.At(root)
	outwardNormal := rec.Point.Sub(s.Center).Scale(1 / s.Radius)
	rec.SetFaceNormal(r, outwardNormal)
	rec.U, rec.V = sphereUV(outwardNormal)
	rec.Mat = s.Mat

	return true
}

func (s Sphere) BoundingBox() AABB {
	return s.bbox
}

func (s Sphere) Centroid() Point {
	return s.Center
}

// sphereUV maps a point on the unit sphere to [0,1]² texture coordinates:
// u is the angle around the Y axis from X=-1, v the angle from Y=-1 to Y=+1
func sphereUV(p Point) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi

	return phi / (2 * math.Pi), theta / math.Pi
}
