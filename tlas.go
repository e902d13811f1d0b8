package main

import "math"

// TlasNode is a packed top-level node. A node is a leaf iff LeftRight == 0,
// in which case Blas indexes the instance array. Interior nodes keep the
// left child index in the low 16 bits of LeftRight and the right child in
// the high 16 bits; the agglomerative build means children are generally not
// adjacent. Node 0 never appears as a child, so 0 is a safe leaf marker.
type TlasNode struct {
	BBox      AABB
	LeftRight uint32
	Blas      uint32
}

// IsLeaf reports whether the node references an instance
func (n *TlasNode) IsLeaf() bool {
	return n.LeftRight == 0
}

// TLAS is a top-level acceleration structure over BVH instances, built
// bottom-up by agglomerative clustering on surface-area cost. Clustering
// beats top-down splitting for modest instance counts and tolerates
// arbitrarily overlapping instances.
type TLAS[T Hittable] struct {
	nodes     []TlasNode
	instances []*BVHInstance[T]
	nodesUsed uint32
}

// NewTLAS builds a TLAS over the given instances. The instance array is
// owned by the TLAS from here on. Child node indices reach 2*len(instances)-2,
// so instance counts must not exceed 1<<15 for them to fit the packed
// 16-bit layout.
func NewTLAS[T Hittable](instances []*BVHInstance[T]) *TLAS[T] {
	t := &TLAS[T]{instances: instances}

	m := len(instances)
	if m == 0 {
		return t
	}

	// Node 0 is reserved for the final root; one leaf per instance follows.
	t.nodes = make([]TlasNode, 2*m)
	active := make([]uint32, m)
	for i, inst := range instances {
		t.nodes[i+1] = TlasNode{
			BBox: inst.BoundingBox(),
			Blas: uint32(i),
		}
		active[i] = uint32(i + 1)
	}
	t.nodesUsed = uint32(m + 1)

	// Repeatedly merge mutually best-matching pairs until one cluster
	// remains, walking the chain A->B->C to find mutual pairs quickly.
	a := 0
	b := t.findBestMatch(active, a)
	for len(active) > 1 {
		c := t.findBestMatch(active, b)
		if a == c {
			nodeA, nodeB := active[a], active[b]
			newIdx := t.nodesUsed
			t.nodesUsed++
			t.nodes[newIdx] = TlasNode{
				BBox:      t.nodes[nodeA].BBox.Union(t.nodes[nodeB].BBox),
				LeftRight: nodeA | nodeB<<16,
			}

			last := len(active) - 1
			active[a] = newIdx
			active[b] = active[last]
			if a == last {
				a = b
			}
			active = active[:last]
			if len(active) > 1 {
				b = t.findBestMatch(active, a)
			}
		} else {
			a = b
			b = c
		}
	}

	t.nodes[0] = t.nodes[active[0]]
	return t
}

// findBestMatch returns the active entry whose union with entry x has the
// smallest half surface area
func (t *TLAS[T]) findBestMatch(active []uint32, x int) int {
	smallest := infinity
	best := -1
	boxX := t.nodes[active[x]].BBox

	for y := range active {
		if y == x {
			continue
		}
		area := boxX.Union(t.nodes[active[y]].BBox).HalfArea()
		if area < smallest {
			smallest = area
			best = y
		}
	}

	return best
}

// Intersect traverses the TLAS with the same stackless scheme as the BVH;
// leaves delegate to the referenced instance
func (t *TLAS[T]) Intersect(r Ray, tMin, tMax float64, rec *HitRecord) bool {
	if len(t.nodes) == 0 {
		return false
	}

	node := &t.nodes[0]
	var stack [TRAVERSAL_STACK_SIZE]*TlasNode
	stackPtr := 0

	var tempRec HitRecord
	hitAnything := false
	closestSoFar := tMax

	for {
		if node.IsLeaf() {
			if t.instances[node.Blas].Intersect(r, tMin, closestSoFar, &tempRec) {
				hitAnything = true
				closestSoFar = tempRec.T
				*rec = tempRec
			}
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
			continue
		}

		child1 := &t.nodes[node.LeftRight&0xffff]
		child2 := &t.nodes[node.LeftRight>>16]
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
func (t *TLAS[T]) BoundingBox() AABB {
	if len(t.nodes) == 0 {
		return EmptyAABB()
	}
	return t.nodes[0].BBox
}

// Centroid returns the center of the root bounds
func (t *TLAS[T]) Centroid() Point {
	return t.BoundingBox().GetCenter()
}

// NodesUsed returns the high-water mark of the node array
func (t *TLAS[T]) NodesUsed() uint32 {
	return t.nodesUsed
}
