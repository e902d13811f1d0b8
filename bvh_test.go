package main

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BVH BUILD TESTS
// ============================================================================

func randomSpheres(n int, seed uint64) []Sphere {
	rng := newTaskRNG(0, seed)
	mat := NewLambertian(Color{0.5, 0.5, 0.5})

	spheres := make([]Sphere, n)
	for i := range spheres {
		spheres[i] = NewSphere(randomPoint(rng, -10, 10), randomRange(rng, 0.1, 0.5), mat)
	}
	return spheres
}

// collectLeaves walks the node array and returns every leaf reachable from
// the root
func collectLeaves(nodes []BvhNode) []BvhNode {
	var leaves []BvhNode
	var walk func(idx uint32)
	walk = func(idx uint32) {
		node := nodes[idx]
		if node.IsLeaf() {
			leaves = append(leaves, node)
			return
		}
		walk(node.LeftFirst)
		walk(node.LeftFirst + 1)
	}
	walk(0)
	return leaves
}

func TestBVHBuildInvariants(t *testing.T) {
	spheres := randomSpheres(500, 0xb14)
	bvh := NewBVH(spheres)

	t.Run("IndexArrayIsPermutation", func(t *testing.T) {
		seen := make(map[uint32]bool)
		for _, idx := range bvh.primIdx {
			require.Less(t, idx, uint32(len(spheres)))
			require.False(t, seen[idx], "index %d referenced twice", idx)
			seen[idx] = true
		}
		assert.Len(t, seen, len(spheres))
	})

	t.Run("LeavesPartitionPrimitives", func(t *testing.T) {
		covered := make([]int, len(spheres))
		for _, leaf := range collectLeaves(bvh.nodes) {
			for i := uint32(0); i < leaf.PrimitiveCount; i++ {
				covered[bvh.primIdx[leaf.LeftFirst+i]]++
			}
		}
		for i, count := range covered {
			require.Equal(t, 1, count, "primitive %d appears in %d leaves", i, count)
		}
	})

	t.Run("SiblingsAreAdjacent", func(t *testing.T) {
		var walk func(idx uint32)
		walk = func(idx uint32) {
			node := bvh.nodes[idx]
			if node.IsLeaf() {
				return
			}
			// Children are allocated as a pair starting at an even index
			require.GreaterOrEqual(t, node.LeftFirst, uint32(2))
			require.Less(t, node.LeftFirst+1, bvh.nodesUsed)
			require.Zero(t, node.LeftFirst%2, "left child %d not pair-aligned", node.LeftFirst)
			walk(node.LeftFirst)
			walk(node.LeftFirst + 1)
		}
		walk(0)
	})

	t.Run("ChildBoundsNestInParent", func(t *testing.T) {
		var walk func(idx uint32)
		walk = func(idx uint32) {
			node := bvh.nodes[idx]
			if node.IsLeaf() {
				return
			}
			for _, child := range []uint32{node.LeftFirst, node.LeftFirst + 1} {
				cb := bvh.nodes[child].BBox
				require.GreaterOrEqual(t, cb.Min.X, node.BBox.Min.X-1e-12)
				require.LessOrEqual(t, cb.Max.X, node.BBox.Max.X+1e-12)
				require.GreaterOrEqual(t, cb.Min.Y, node.BBox.Min.Y-1e-12)
				require.LessOrEqual(t, cb.Max.Y, node.BBox.Max.Y+1e-12)
				walk(child)
			}
		}
		walk(0)
	})

	t.Run("NodeArrayHighWaterMark", func(t *testing.T) {
		assert.LessOrEqual(t, int(bvh.nodesUsed), 2*len(spheres))
	})
}

func TestBVHDeterminism(t *testing.T) {
	spheres := randomSpheres(300, 0xdead)

	first := NewBVH(spheres)
	second := NewBVH(spheres)

	require.True(t, reflect.DeepEqual(first.nodes, second.nodes), "node arrays differ between builds")
	require.True(t, reflect.DeepEqual(first.primIdx, second.primIdx), "index arrays differ between builds")
}

func TestBVHSAHImprovement(t *testing.T) {
	// Whenever the builder decided to split the root, the chosen plane must
	// have been cheaper than leaving it a leaf.
	spheres := randomSpheres(64, 0x5a4)

	probe := &BVH[Sphere]{
		prims:   spheres,
		primIdx: make([]uint32, len(spheres)),
		nodes:   make([]BvhNode, 2),
	}
	for i := range probe.primIdx {
		probe.primIdx[i] = uint32(i)
	}
	probe.nodes[0].PrimitiveCount = uint32(len(spheres))
	probe.updateNodeBounds(0)

	axis, _, bestCost := probe.findBestSplit(&probe.nodes[0])
	require.GreaterOrEqual(t, axis, 0)
	noSplitCost := float64(len(spheres)) * probe.nodes[0].BBox.HalfArea()

	built := NewBVH(spheres)
	if !built.nodes[0].IsLeaf() {
		assert.Less(t, bestCost, noSplitCost)
	}
}

func TestBVHDegenerateInputs(t *testing.T) {
	mat := NewLambertian(Color{0.5, 0.5, 0.5})

	t.Run("Empty", func(t *testing.T) {
		bvh := NewBVH([]Sphere{})
		var rec HitRecord
		assert.False(t, bvh.Intersect(Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}, 0.001, infinity, &rec))
		assert.True(t, bvh.BoundingBox().IsEmpty())
	})

	t.Run("Single", func(t *testing.T) {
		bvh := NewBVH([]Sphere{NewSphere(Point{}, 1, mat)})
		assert.True(t, bvh.nodes[0].IsLeaf())

		var rec HitRecord
		require.True(t, bvh.Intersect(Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}, 0.001, infinity, &rec))
		assert.InDelta(t, 4.0, rec.T, 1e-12)
	})

	t.Run("CoincidentCentroids", func(t *testing.T) {
		// All centroids identical: every split aborts and the root stays a
		// leaf holding everything
		spheres := make([]Sphere, 16)
		for i := range spheres {
			spheres[i] = NewSphere(Point{X: 1, Y: 2, Z: 3}, 0.5, mat)
		}
		bvh := NewBVH(spheres)
		assert.True(t, bvh.nodes[0].IsLeaf())
		assert.Equal(t, uint32(16), bvh.nodes[0].PrimitiveCount)
	})
}

// ============================================================================
// BVH TRAVERSAL TESTS
// ============================================================================

func TestBVHSingleSphereScenario(t *testing.T) {
	mat := NewLambertian(Color{1, 0, 0})
	bvh := NewBVH([]Sphere{NewSphere(Point{}, 1, mat)})

	var rec HitRecord
	r := Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}
	require.True(t, bvh.Intersect(r, 0.001, infinity, &rec))

	assert.InDelta(t, 4.0, rec.T, 1e-12)
	assert.InDelta(t, 0.0, rec.Point.X, 1e-12)
	assert.InDelta(t, 0.0, rec.Point.Y, 1e-12)
	assert.InDelta(t, 1.0, rec.Point.Z, 1e-12)
	assert.InDelta(t, 1.0, rec.Normal.Z, 1e-12)
	assert.True(t, rec.FrontFace)
}

func TestBVHOverlappingSpheres(t *testing.T) {
	mat := NewLambertian(Color{1, 1, 1})
	near := NewSphere(Point{}, 1, mat)
	far := NewSphere(Point{Z: -2}, 1, mat)
	bvh := NewBVH([]Sphere{far, near})

	var rec HitRecord
	r := Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}
	require.True(t, bvh.Intersect(r, 0.001, infinity, &rec))

	// The nearer sphere wins
	assert.InDelta(t, 4.0, rec.T, 1e-12)
}

func TestBVHMatchesBruteForce(t *testing.T) {
	spheres := randomSpheres(400, 0xbf)
	bvh := NewBVH(spheres)

	brute := NewHittableList()
	for i := range spheres {
		brute.Add(spheres[i])
	}

	rng := newTaskRNG(2, 0xbf)
	misses, hits := 0, 0
	for trial := 0; trial < 5000; trial++ {
		r := Ray{
			Origin:    randomPoint(rng, -20, 20),
			Direction: randomUnitVector(rng),
		}

		var fast, slow HitRecord
		fastHit := bvh.Intersect(r, 0.001, infinity, &fast)
		slowHit := brute.Intersect(r, 0.001, infinity, &slow)

		require.Equal(t, slowHit, fastHit, "hit disagreement on trial %d", trial)
		if !fastHit {
			misses++
			continue
		}
		hits++
		require.InDelta(t, slow.T, fast.T, 1e-9, "distance disagreement on trial %d", trial)
		require.InDelta(t, slow.Point.X, fast.Point.X, 1e-9)
		require.InDelta(t, slow.Point.Y, fast.Point.Y, 1e-9)
		require.InDelta(t, slow.Point.Z, fast.Point.Z, 1e-9)
	}

	// A useful equivalence test needs both populations
	assert.Greater(t, hits, 100)
	assert.Greater(t, misses, 100)
}

func TestBVHTriangleMesh(t *testing.T) {
	mat := NewLambertian(Color{0.8, 0.8, 0.8})
	triangles := GenerateSphereMesh(1.0, 32, 16, mat)
	bvh := NewBVH(triangles)

	var rec HitRecord
	r := Ray{Origin: Point{Z: 5}, Direction: Point{Z: -1}}
	require.True(t, bvh.Intersect(r, 0.001, infinity, &rec))

	// A dense sphere mesh hits close to the analytic t = 4
	assert.InDelta(t, 4.0, rec.T, 0.05)
	assert.Greater(t, rec.Normal.Z, 0.9)
	assert.False(t, math.IsNaN(rec.Normal.X))
}
