package main

import "math"

// BvhNode is a packed BVH node. A node is a leaf iff PrimitiveCount > 0, in
// which case LeftFirst indexes the first entry of the primitive index array.
// Interior nodes keep their left child index in LeftFirst; the right child
// always sits at LeftFirst+1.
type BvhNode struct {
	BBox           AABB
	LeftFirst      uint32
	PrimitiveCount uint32
}

// IsLeaf reports whether the node references primitives directly
func (n *BvhNode) IsLeaf() bool {
	return n.PrimitiveCount > 0
}

// BVH is a bottom-level acceleration structure over a typed primitive array.
// The generic parameter keeps primitive dispatch static on the hot path; the
// heterogeneous world composes BVHs through the Hittable interface instead.
//
// The primitive array is borrowed for the lifetime of the BVH and must not
// be mutated while the structure is in use.
type BVH[T Hittable] struct {
	nodes     []BvhNode
	primIdx   []uint32
	prims     []T
	nodesUsed uint32
}

// NewBVH builds a BVH over prims using binned SAH splits. The build is
// deterministic: the same input yields byte-identical node arrays.
func NewBVH[T Hittable](prims []T) *BVH[T] {
	b := &BVH[T]{prims: prims}

	n := len(prims)
	if n == 0 {
		return b
	}

	// 2N nodes: at most N leaves and N-1 interior nodes, plus node 1 which
	// stays reserved so sibling pairs start at an even index.
	b.nodes = make([]BvhNode, 2*n)
	b.primIdx = make([]uint32, n)
	for i := range b.primIdx {
		b.primIdx[i] = uint32(i)
	}
	b.nodesUsed = 2

	root := &b.nodes[0]
	root.LeftFirst = 0
	root.PrimitiveCount = uint32(n)
	b.updateNodeBounds(0)
	b.subdivide(0)

	return b
}

// updateNodeBounds recomputes a node's box from its primitive range
func (b *BVH[T]) updateNodeBounds(nodeIdx uint32) {
	node := &b.nodes[nodeIdx]
	node.BBox = EmptyAABB()
	for i := uint32(0); i < node.PrimitiveCount; i++ {
		leafIdx := b.primIdx[node.LeftFirst+i]
		node.BBox = node.BBox.Union(b.prims[leafIdx].BoundingBox())
	}
}

// findBestSplit evaluates SAH_BINS-1 candidate planes per axis and returns
// the cheapest axis/position pair, or axis -1 when no axis has spatial
// variation. Ties resolve to the lower axis, then the lower plane.
func (b *BVH[T]) findBestSplit(node *BvhNode) (bestAxis int, bestPos, bestCost float64) {
	bestAxis = -1
	bestCost = infinity

	for axis := 0; axis < 3; axis++ {
		cmin, cmax := infinity, -infinity
		for i := uint32(0); i < node.PrimitiveCount; i++ {
			c := b.prims[b.primIdx[node.LeftFirst+i]].Centroid().Axis(axis)
			cmin = math.Min(cmin, c)
			cmax = math.Max(cmax, c)
		}
		if cmin == cmax {
			continue
		}

		var bins [SAH_BINS]struct {
			count  uint32
			bounds AABB
		}
		for i := range bins {
			bins[i].bounds = EmptyAABB()
		}

		scale := SAH_BINS / (cmax - cmin)
		for i := uint32(0); i < node.PrimitiveCount; i++ {
			prim := b.prims[b.primIdx[node.LeftFirst+i]]
			binIdx := int((prim.Centroid().Axis(axis) - cmin) * scale)
			if binIdx > SAH_BINS-1 {
				binIdx = SAH_BINS - 1
			}
			bins[binIdx].count++
			bins[binIdx].bounds = bins[binIdx].bounds.Union(prim.BoundingBox())
		}

		// Prefix sweeps over the SAH_BINS-1 candidate planes
		var leftCount, rightCount [SAH_BINS - 1]uint32
		var leftArea, rightArea [SAH_BINS - 1]float64
		leftBox, rightBox := EmptyAABB(), EmptyAABB()
		leftSum, rightSum := uint32(0), uint32(0)
		for i := 0; i < SAH_BINS-1; i++ {
			leftSum += bins[i].count
			leftCount[i] = leftSum
			leftBox = leftBox.Union(bins[i].bounds)
			leftArea[i] = leftBox.HalfArea()

			rightSum += bins[SAH_BINS-1-i].count
			rightCount[SAH_BINS-2-i] = rightSum
			rightBox = rightBox.Union(bins[SAH_BINS-1-i].bounds)
			rightArea[SAH_BINS-2-i] = rightBox.HalfArea()
		}

		binWidth := (cmax - cmin) / SAH_BINS
		for k := 0; k < SAH_BINS-1; k++ {
			if leftCount[k] == 0 || rightCount[k] == 0 {
				continue
			}
			cost := float64(leftCount[k])*leftArea[k] + float64(rightCount[k])*rightArea[k]
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestPos = cmin + binWidth*float64(k+1)
			}
		}
	}

	return bestAxis, bestPos, bestCost
}

// subdivide recursively splits the node's primitive range while SAH says
// splitting is cheaper than leaving the node a leaf. Termination is
// implicit: singleton leaves never pass the improvement test and coplanar
// clusters abort via the empty-side guard.
func (b *BVH[T]) subdivide(nodeIdx uint32) {
	node := &b.nodes[nodeIdx]

	axis, splitPos, bestCost := b.findBestSplit(node)
	if axis < 0 {
		return
	}
	noSplitCost := float64(node.PrimitiveCount) * node.BBox.HalfArea()
	if bestCost >= noSplitCost {
		return
	}

	// Two-pointer in-place partition of the index range
	i := node.LeftFirst
	j := node.LeftFirst + node.PrimitiveCount - 1
	for i <= j {
		if b.prims[b.primIdx[i]].Centroid().Axis(axis) < splitPos {
			i++
		} else {
			b.primIdx[i], b.primIdx[j] = b.primIdx[j], b.primIdx[i]
			if j == 0 {
				break
			}
			j--
		}
	}

	// Abort if one side ended up empty; all centroids coincide on this axis
	leftCount := i - node.LeftFirst
	if leftCount == 0 || leftCount == node.PrimitiveCount {
		return
	}

	leftChildIdx := b.nodesUsed
	rightChildIdx := b.nodesUsed + 1
	b.nodesUsed += 2

	b.nodes[leftChildIdx].LeftFirst = node.LeftFirst
	b.nodes[leftChildIdx].PrimitiveCount = leftCount
	b.nodes[rightChildIdx].LeftFirst = i
	b.nodes[rightChildIdx].PrimitiveCount = node.PrimitiveCount - leftCount
	node.LeftFirst = leftChildIdx
	node.PrimitiveCount = 0

	b.updateNodeBounds(leftChildIdx)
	b.updateNodeBounds(rightChildIdx)

	b.subdivide(leftChildIdx)
	b.subdivide(rightChildIdx)
}

// Intersect traverses the tree iteratively with a fixed-size stack. Children
// are visited near-to-far using the slab entry distances, and far children
// are pruned against the best hit known at push time. A ray that would
// overflow the stack reports a conservative miss.
func (b *BVH[T]) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	if len(b.nodes) == 0 {
		return false
	}

	node := &b.nodes[0]
	var stack [TRAVERSAL_STACK_SIZE]*BvhNode
	stackPtr := 0

	var tempRec HitRecord
	hitAnything := false
	closestSoFar := tMax

	for {
		if node.IsLeaf() {
			for i := uint32(0); i < node.PrimitiveCount; i++ {
				leafIdx := b.primIdx[node.LeftFirst+i]
				if b.prims[leafIdx].Intersect(r, tMin, closestSoFar, &tempRec) {
					hitAnything = true
					closestSoFar = tempRec.T
					*rec = tempRec
				}
			}
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
			continue
		}

		child1 := &b.nodes[node.LeftFirst]
		child2 := &b.nodes[node.LeftFirst+1]
		dist1 := child1.BBox.IntersectRay(r, tMin, closestSoFar)
		dist2 := child2.BBox.IntersectRay(r, tMin, closestSoFar)
		if dist1 > dist2 {
			dist1, dist2 = dist2, dist1
			child1, child2 = child2, child1
		}

		if math.IsInf(dist1, 1) {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
			continue
		}

		node = child1
		if !math.IsInf(dist2, 1) {
			if stackPtr == TRAVERSAL_STACK_SIZE {
				return false
			}
			stack[stackPtr] = child2
			stackPtr++
		}
	}

	return hitAnything
}

// BoundingBox returns the root bounds
func (b *BVH[T]) BoundingBox() AABB {
	if len(b.nodes) == 0 {
		return EmptyAABB()
	}
	return b.nodes[0].BBox
}

// Centroid returns the center of the root bounds
func (b *BVH[T]) Centroid() Point {
	return b.BoundingBox().GetCenter()
}

// NodesUsed returns the high-water mark of the node array
func (b *BVH[T]) NodesUsed() uint32 {
	return b.nodesUsed
}
