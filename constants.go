package main

import "math"

// Acceleration structure constants
const (
	// AABB_PAD_DELTA is the minimum slab extent; any axis thinner than this
	// is padded symmetrically so the slab test never degenerates.
	AABB_PAD_DELTA = 1e-4

	// SAH_BINS is the number of equally spaced candidate planes evaluated
	// per axis when choosing a split.
	SAH_BINS = 8

	// TRAVERSAL_STACK_SIZE is the hard cap on traversal depth. SAH builds
	// stay far below this for any realistic primitive count; a ray that
	// would overflow the stack reports a conservative miss instead.
	TRAVERSAL_STACK_SIZE = 64
)

// Rendering constants
const (
	// SHADOW_ACNE_EPSILON is the lower ray bound for all scene queries.
	// It must be strictly positive or surfaces re-intersect themselves.
	SHADOW_ACNE_EPSILON = 0.001

	INTERSECT_EPSILON = 1e-9

	DEFAULT_IMAGE_WIDTH  = 640
	DEFAULT_ASPECT_RATIO = 16.0 / 9.0
	DEFAULT_SAMPLES      = 100
	DEFAULT_MAX_DEPTH    = 50
	DEFAULT_VFOV         = 20.0
)

var infinity = math.Inf(1)
