package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// INSTANCE TESTS
// ============================================================================

func unitSphereBLAS() *BVH[Sphere] {
	mat := NewLambertian(Color{0.7, 0.7, 0.7})
	return NewBVH([]Sphere{NewSphere(Point{}, 1, mat)})
}

func TestInstanceIdentityMatchesBLAS(t *testing.T) {
	blas := unitSphereBLAS()
	inst := NewBVHInstance(blas)

	rng := newTaskRNG(3, 0x1d)
	for trial := 0; trial < 2000; trial++ {
		r := Ray{
			Origin:    randomPoint(rng, -5, 5),
			Direction: randomUnitVector(rng),
		}

		var direct, viaInstance HitRecord
		directHit := blas.Intersect(r, 0.001, infinity, &direct)
		instanceHit := inst.Intersect(r, 0.001, infinity, &viaInstance)

		require.Equal(t, directHit, instanceHit)
		if directHit {
			require.InDelta(t, direct.T, viaInstance.T, 1e-9)
			require.InDelta(t, direct.Normal.X, viaInstance.Normal.X, 1e-9)
			require.InDelta(t, direct.Normal.Y, viaInstance.Normal.Y, 1e-9)
			require.InDelta(t, direct.Normal.Z, viaInstance.Normal.Z, 1e-9)
		}
	}
}

func TestInstanceTranslation(t *testing.T) {
	inst := NewBVHInstance(unitSphereBLAS())
	inst.SetTransform(TranslationMatrix(10, 0, 0))

	var rec HitRecord
	r := Ray{Origin: Point{X: 10, Z: 5}, Direction: Point{Z: -1}}
	require.True(t, inst.Intersect(r, 0.001, infinity, &rec))

	assert.InDelta(t, 4.0, rec.T, 1e-12)
	assert.InDelta(t, 10.0, rec.Point.X, 1e-12)
	assert.InDelta(t, 0.0, rec.Point.Y, 1e-12)
	assert.InDelta(t, 1.0, rec.Point.Z, 1e-12)

	// World bounds moved with the transform
	assert.InDelta(t, 9.0, inst.BoundingBox().Min.X, 1e-12)
	assert.InDelta(t, 11.0, inst.BoundingBox().Max.X, 1e-12)
}

func TestInstanceNonUniformScaleNormals(t *testing.T) {
	inst := NewBVHInstance(unitSphereBLAS())
	inst.SetTransform(ScaleMatrixXYZ(2, 1, 1))

	// Hitting the stretched sphere at (2,0,0): the surface there is
	// perpendicular to X, and the inverse-transpose keeps it that way
	var rec HitRecord
	r := Ray{Origin: Point{X: 5}, Direction: Point{X: -1}}
	require.True(t, inst.Intersect(r, 0.001, infinity, &rec))

	assert.InDelta(t, 2.0, rec.Point.X, 1e-9)
	assert.InDelta(t, 1.0, rec.Normal.X, 1e-9)
	assert.InDelta(t, 1.0, rec.Normal.Length(), 1e-9)
}

// ============================================================================
// TLAS TESTS
// ============================================================================

func gridInstances(side int) []*BVHInstance[Sphere] {
	blas := unitSphereBLAS()
	instances := make([]*BVHInstance[Sphere], 0, side*side)
	for i := 0; i < side*side; i++ {
		inst := NewBVHInstance(blas)
		inst.SetTransform(TranslationMatrix(
			float64(i%side)*3.0,
			0,
			float64(i/side)*3.0,
		))
		instances = append(instances, inst)
	}
	return instances
}

func TestTLASCoversAllInstances(t *testing.T) {
	instances := gridInstances(16)
	tlas := NewTLAS(instances)

	covered := make([]int, len(instances))
	var walk func(idx uint32)
	walk = func(idx uint32) {
		node := tlas.nodes[idx]
		if node.IsLeaf() {
			covered[node.Blas]++
			return
		}
		walk(node.LeftRight & 0xffff)
		walk(node.LeftRight >> 16)
	}
	walk(0)

	for i, count := range covered {
		require.Equal(t, 1, count, "instance %d appears in %d leaves", i, count)
	}
}

func TestTLASMatchesBruteForce(t *testing.T) {
	instances := gridInstances(16)
	tlas := NewTLAS(instances)

	brute := NewHittableList()
	for _, inst := range instances {
		brute.Add(inst)
	}

	rng := newTaskRNG(4, 0x71a5)
	hits := 0
	for trial := 0; trial < 10000; trial++ {
		r := Ray{
			Origin:    randomPoint(rng, -10, 55),
			Direction: randomUnitVector(rng),
		}

		var fast, slow HitRecord
		fastHit := tlas.Intersect(r, 0.001, infinity, &fast)
		slowHit := brute.Intersect(r, 0.001, infinity, &slow)

		require.Equal(t, slowHit, fastHit, "hit disagreement on trial %d", trial)
		if fastHit {
			hits++
			require.InDelta(t, slow.T, fast.T, 1e-9, "distance disagreement on trial %d", trial)
		}
	}

	assert.Greater(t, hits, 100)
}

func TestTLASDegenerateInputs(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tlas := NewTLAS([]*BVHInstance[Sphere]{})
		var rec HitRecord
		assert.False(t, tlas.Intersect(Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}, 0.001, infinity, &rec))
	})

	t.Run("SingleInstance", func(t *testing.T) {
		tlas := NewTLAS(gridInstances(1))
		var rec HitRecord
		r := Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}
		require.True(t, tlas.Intersect(r, 0.001, infinity, &rec))
		assert.InDelta(t, 4.0, rec.T, 1e-12)
	})

	t.Run("TwoInstances", func(t *testing.T) {
		tlas := NewTLAS(gridInstances(2)[:2])
		assert.Equal(t, uint32(4), tlas.NodesUsed())

		var rec HitRecord
		r := Ray{Origin: Point{X: 3, Z: 5}, Direction: Point{Z: -1}}
		require.True(t, tlas.Intersect(r, 0.001, infinity, &rec))
		assert.InDelta(t, 4.0, rec.T, 1e-12)
	})
}

func TestTLASDeterminism(t *testing.T) {
	first := NewTLAS(gridInstances(8))
	second := NewTLAS(gridInstances(8))

	require.Equal(t, first.nodesUsed, second.nodesUsed)
	for i := range first.nodes {
		require.Equal(t, first.nodes[i].LeftRight, second.nodes[i].LeftRight, "node %d differs", i)
		require.Equal(t, first.nodes[i].Blas, second.nodes[i].Blas, "node %d differs", i)
	}
}
