package main

import "math"

// Matrix4x4 represents a 4x4 transformation matrix stored row-major
type Matrix4x4 struct {
	M [16]float64
}

// IdentityMatrix returns an identity matrix
func IdentityMatrix() Matrix4x4 {
	return Matrix4x4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// TranslationMatrix returns a matrix translating by (x, y, z)
func TranslationMatrix(x, y, z float64) Matrix4x4 {
	m := IdentityMatrix()
	m.M[3] = x
	m.M[7] = y
	m.M[11] = z
	return m
}

// ScaleMatrix returns a uniform scale matrix
func ScaleMatrix(s float64) Matrix4x4 {
	m := IdentityMatrix()
	m.M[0] = s
	m.M[5] = s
	m.M[10] = s
	return m
}

// ScaleMatrixXYZ returns a per-axis scale matrix
func ScaleMatrixXYZ(x, y, z float64) Matrix4x4 {
	m := IdentityMatrix()
	m.M[0] = x
	m.M[5] = y
	m.M[10] = z
	return m
}

// RotationX returns a rotation about the X axis by angle radians
func RotationX(a float64) Matrix4x4 {
	m := IdentityMatrix()
	c, s := math.Cos(a), math.Sin(a)
	m.M[5] = c
	m.M[6] = -s
	m.M[9] = s
	m.M[10] = c
	return m
}

// RotationY returns a rotation about the Y axis by angle radians
func RotationY(a float64) Matrix4x4 {
	m := IdentityMatrix()
	c, s := math.Cos(a), math.Sin(a)
	m.M[0] = c
	m.M[2] = s
	m.M[8] = -s
	m.M[10] = c
	return m
}

// RotationZ returns a rotation about the Z axis by angle radians
func RotationZ(a float64) Matrix4x4 {
	m := IdentityMatrix()
	c, s := math.Cos(a), math.Sin(a)
	m.M[0] = c
	m.M[1] = -s
	m.M[4] = s
	m.M[5] = c
	return m
}

// Multiply multiplies two matrices
func (m *Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[i*4+k] * other.M[k*4+j]
			}
			result.M[i*4+j] = sum
		}
	}
	return result
}

// TransformPoint transforms a point by this matrix, assuming it is affine
// (bottom row is 0,0,0,1), which avoids the W division
func (m *Matrix4x4) TransformPoint(p Point) Point {
	return Point{
		X: m.M[0]*p.X + m.M[1]*p.Y + m.M[2]*p.Z + m.M[3],
		Y: m.M[4]*p.X + m.M[5]*p.Y + m.M[6]*p.Z + m.M[7],
		Z: m.M[8]*p.X + m.M[9]*p.Y + m.M[10]*p.Z + m.M[11],
	}
}

// TransformDirection transforms a direction vector (ignores translation)
func (m *Matrix4x4) TransformDirection(d Point) Point {
	return Point{
		X: m.M[0]*d.X + m.M[1]*d.Y + m.M[2]*d.Z,
		Y: m.M[4]*d.X + m.M[5]*d.Y + m.M[6]*d.Z,
		Z: m.M[8]*d.X + m.M[9]*d.Y + m.M[10]*d.Z,
	}
}

// Transpose returns the transposed matrix
func (m *Matrix4x4) Transpose() Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result.M[i*4+j] = m.M[j*4+i]
		}
	}
	return result
}

// Invert returns the inverse matrix using the adjugate method.
// Singular matrices return identity.
func (m *Matrix4x4) Invert() Matrix4x4 {
	var inv Matrix4x4
	inv.M[0] = m.M[5]*m.M[10]*m.M[15] - m.M[5]*m.M[11]*m.M[14] - m.M[9]*m.M[6]*m.M[15] +
		m.M[9]*m.M[7]*m.M[14] + m.M[13]*m.M[6]*m.M[11] - m.M[13]*m.M[7]*m.M[10]

	inv.M[4] = -m.M[4]*m.M[10]*m.M[15] + m.M[4]*m.M[11]*m.M[14] + m.M[8]*m.M[6]*m.M[15] -
		m.M[8]*m.M[7]*m.M[14] - m.M[12]*m.M[6]*m.M[11] + m.M[12]*m.M[7]*m.M[10]

	inv.M[8] = m.M[4]*m.M[9]*m.M[15] - m.M[4]*m.M[11]*m.M[13] - m.M[8]*m.M[5]*m.M[15] +
		m.M[8]*m.M[7]*m.M[13] + m.M[12]*m.M[5]*m.M[11] - m.M[12]*m.M[7]*m.M[9]

	inv.M[12] = -m.M[4]*m.M[9]*m.M[14] + m.M[4]*m.M[10]*m.M[13] + m.M[8]*m.M[5]*m.M[14] -
		m.M[8]*m.M[6]*m.M[13] - m.M[12]*m.M[5]*m.M[10] + m.M[12]*m.M[6]*m.M[9]

	inv.M[1] = -m.M[1]*m.M[10]*m.M[15] + m.M[1]*m.M[11]*m.M[14] + m.M[9]*m.M[2]*m.M[15] -
		m.M[9]*m.M[3]*m.M[14] - m.M[13]*m.M[2]*m.M[11] + m.M[13]*m.M[3]*m.M[10]

	inv.M[5] = m.M[0]*m.M[10]*m.M[15] - m.M[0]*m.M[11]*m.M[14] - m.M[8]*m.M[2]*m.M[15] +
		m.M[8]*m.M[3]*m.M[14] + m.M[12]*m.M[2]*m.M[11] - m.M[12]*m.M[3]*m.M[10]

	inv.M[9] = -m.M[0]*m.M[9]*m.M[15] + m.M[0]*m.M[11]*m.M[13] + m.M[8]*m.M[1]*m.M[15] -
		m.M[8]*m.M[3]*m.M[13] - m.M[12]*m.M[1]*m.M[11] + m.M[12]*m.M[3]*m.M[9]

	inv.M[13] = m.M[0]*m.M[9]*m.M[14] - m.M[0]*m.M[10]*m.M[13] - m.M[8]*m.M[1]*m.M[14] +
		m.M[8]*m.M[2]*m.M[13] + m.M[12]*m.M[1]*m.M[10] - m.M[12]*m.M[2]*m.M[9]

	inv.M[2] = m.M[1]*m.M[6]*m.M[15] - m.M[1]*m.M[7]*m.M[14] - m.M[5]*m.M[2]*m.M[15] +
		m.M[5]*m.M[3]*m.M[14] + m.M[13]*m.M[2]*m.M[7] - m.M[13]*m.M[3]*m.M[6]

	inv.M[6] = -m.M[0]*m.M[6]*m.M[15] + m.M[0]*m.M[7]*m.M[14] + m.M[4]*m.M[2]*m.M[15] -
		m.M[4]*m.M[3]*m.M[14] - m.M[12]*m.M[2]*m.M[7] + m.M[12]*m.M[3]*m.M[6]

	inv.M[10] = m.M[0]*m.M[5]*m.M[15] - m.M[0]*m.M[7]*m.M[13] - m.M[4]*m.M[1]*m.M[15] +
		m.M[4]*m.M[3]*m.M[13] + m.M[12]*m.M[1]*m.M[7] - m.M[12]*m.M[3]*m.M[5]

	inv.M[14] = -m.M[0]*m.M[5]*m.M[14] + m.M[0]*m.M[6]*m.M[13] + m.M[4]*m.M[1]*m.M[14] -
		m.M[4]*m.M[2]*m.M[13] - m.M[12]*m.M[1]*m.M[6] + m.M[12]*m.M[2]*m.M[5]

	inv.M[3] = -m.M[1]*m.M[6]*m.M[11] + m.M[1]*m.M[7]*m.M[10] + m.M[5]*m.M[2]*m.M[11] -
		m.M[5]*m.M[3]*m.M[10] - m.M[9]*m.M[2]*m.M[7] + m.M[9]*m.M[3]*m.M[6]

	inv.M[7] = m.M[0]*m.M[6]*m.M[11] - m.M[0]*m.M[7]*m.M[10] - m.M[4]*m.M[2]*m.M[11] +
		m.M[4]*m.M[3]*m.M[10] + m.M[8]*m.M[2]*m.M[7] - m.M[8]*m.M[3]*m.M[6]

	inv.M[11] = -m.M[0]*m.M[5]*m.M[11] + m.M[0]*m.M[7]*m.M[9] + m.M[4]*m.M[1]*m.M[11] -
		m.M[4]*m.M[3]*m.M[9] - m.M[8]*m.M[1]*m.M[7] + m.M[8]*m.M[3]*m.M[5]

	inv.M[15] = m.M[0]*m.M[5]*m.M[10] - m.M[0]*m.M[6]*m.M[9] - m.M[4]*m.M[1]*m.M[10] +
		m.M[4]*m.M[2]*m.M[9] + m.M[8]*m.M[1]*m.M[6] - m.M[8]*m.M[2]*m.M[5]

	det := m.M[0]*inv.M[0] + m.M[1]*inv.M[4] + m.M[2]*inv.M[8] + m.M[3]*inv.M[12]

	if math.Abs(det) < 1e-10 {
		return IdentityMatrix()
	}

	invDet := 1.0 / det
	for i := 0; i < 16; i++ {
		inv.M[i] *= invDet
	}

	return inv
}
