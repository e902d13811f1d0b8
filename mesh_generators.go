package main

import "math"

// GenerateSphereMesh builds a UV-sphere triangle mesh centered at the
// origin, with smooth vertex normals. Used by the compiled-in scenes so
// mesh-based demos run without external assets.
func GenerateSphereMesh(radius float64, segments, rings int, mat Material) []Triangle {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	type vertex struct {
		pos    Point
		normal Point
		uv     TextureCoord
	}

	grid := make([][]vertex, rings+1)
	for r := 0; r <= rings; r++ {
		grid[r] = make([]vertex, segments+1)
		theta := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)

			n := Point{
				X: math.Sin(theta) * math.Cos(phi),
				Y: math.Cos(theta),
				Z: math.Sin(theta) * math.Sin(phi),
			}
			grid[r][s] = vertex{
				pos:    n.Scale(radius),
				normal: n,
				uv: TextureCoord{
					U: float64(s) / float64(segments),
					V: 1 - float64(r)/float64(rings),
				},
			}
		}
	}

	triangles := make([]Triangle, 0, 2*rings*segments)
	emit := func(a, b, c vertex) {
		tri := Triangle{
			V0: a.pos, V1: b.pos, V2: c.pos,
			N0: a.normal, N1: b.normal, N2: c.normal,
			UV0: a.uv, UV1: b.uv, UV2: c.uv,
			Mat:    mat,
			Smooth: true,
		}
		tri.FinishSetup()
		triangles = append(triangles, tri)
	}

	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			v00 := grid[r][s]
			v01 := grid[r][s+1]
			v10 := grid[r+1][s]
			v11 := grid[r+1][s+1]

			if r > 0 {
				emit(v00, v01, v10)
			}
			if r < rings-1 {
				emit(v01, v11, v10)
			}
		}
	}

	return triangles
}

// GenerateTorusMesh builds a torus triangle mesh in the XZ plane with
// smooth vertex normals
func GenerateTorusMesh(majorRadius, minorRadius float64, majorSegments, minorSegments int, mat Material) []Triangle {
	if majorSegments < 3 {
		majorSegments = 3
	}
	if minorSegments < 3 {
		minorSegments = 3
	}

	type vertex struct {
		pos    Point
		normal Point
	}

	grid := make([][]vertex, majorSegments+1)
	for i := 0; i <= majorSegments; i++ {
		grid[i] = make([]vertex, minorSegments+1)
		u := 2 * math.Pi * float64(i) / float64(majorSegments)
		ringCenter := Point{X: majorRadius * math.Cos(u), Z: majorRadius * math.Sin(u)}

		for j := 0; j <= minorSegments; j++ {
			v := 2 * math.Pi * float64(j) / float64(minorSegments)
			n := Point{
				X: math.Cos(u) * math.Cos(v),
				Y: math.Sin(v),
				Z: math.Sin(u) * math.Cos(v),
			}
			grid[i][j] = vertex{
				pos:    ringCenter.Add(n.Scale(minorRadius)),
				normal: n,
			}
		}
	}

	triangles := make([]Triangle, 0, 2*majorSegments*minorSegments)
	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			v00 := grid[i][j]
			v01 := grid[i][j+1]
			v10 := grid[i+1][j]
			v11 := grid[i+1][j+1]

			t1 := Triangle{
				V0: v00.pos, V1: v10.pos, V2: v01.pos,
				N0: v00.normal, N1: v10.normal, N2: v01.normal,
				Mat: mat, Smooth: true,
			}
			t1.FinishSetup()
			t2 := Triangle{
				V0: v01.pos, V1: v10.pos, V2: v11.pos,
				N0: v01.normal, N1: v10.normal, N2: v11.normal,
				Mat: mat, Smooth: true,
			}
			t2.FinishSetup()
			triangles = append(triangles, t1, t2)
		}
	}

	return triangles
}
