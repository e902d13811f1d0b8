package main

import "math"

// Point represents a 3D point or vector
type Point struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Scale returns the vector scaled by s
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Mul returns the component-wise product of two vectors
func (p Point) Mul(o Point) Point {
	return Point{X: p.X * o.X, Y: p.Y * o.Y, Z: p.Z * o.Z}
}

// Neg returns the negated vector
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y + p.Z*o.Z
}

// Cross returns the cross product of two vectors
func (p Point) Cross(o Point) Point {
	return Point{
		X: p.Y*o.Z - p.Z*o.Y,
		Y: p.Z*o.X - p.X*o.Z,
		Z: p.X*o.Y - p.Y*o.X,
	}
}

func (p Point) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

func (p Point) LengthSquared() float64 {
	return p.Dot(p)
}

// Normalize returns the unit vector with safety checks
func (p Point) Normalize() Point {
	length := p.Length()

	// Guard against zero-length vectors
	if length < 1e-10 {
		return Point{X: 0, Y: 1, Z: 0}
	}

	return p.Scale(1 / length)
}

// Axis returns the component selected by axis index 0, 1 or 2
func (p Point) Axis(a int) float64 {
	switch a {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}

// NearZero reports whether all components are close to zero
func (p Point) NearZero() bool {
	const s = 1e-8
	return math.Abs(p.X) < s && math.Abs(p.Y) < s && math.Abs(p.Z) < s
}

// Reflect mirrors the vector about the normal n
func (p Point) Reflect(n Point) Point {
	return p.Sub(n.Scale(2 * p.Dot(n)))
}

// Refract bends the unit vector through a surface with normal n and
// refraction ratio etaiOverEtat (Snell's law)
func (p Point) Refract(n Point, etaiOverEtat float64) Point {
	cosTheta := math.Min(p.Neg().Dot(n), 1.0)
	rOutPerp := p.Add(n.Scale(cosTheta)).Scale(etaiOverEtat)
	rOutParallel := n.Scale(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// clamp constrains a value between min and max
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// clampInt constrains an integer value between min and max
func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// degreesToRadians converts an angle in degrees to radians
func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
