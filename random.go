package main

import (
	"math"
	"math/rand"
)

// newTaskRNG returns the generator for one sample task. Each task gets its
// own generator so nothing is shared across workers; seeding mixes the task
// index with a per-render salt through splitmix64 so consecutive indices
// land far apart in the sequence.
func newTaskRNG(taskIndex int, salt uint64) *rand.Rand {
	seed := splitmix64(uint64(taskIndex) ^ salt)
	return rand.New(rand.NewSource(int64(seed)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// randomRange returns a random real in [min, max)
func randomRange(rng *rand.Rand, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}

// randomPoint returns a vector with components uniform in [min, max)
func randomPoint(rng *rand.Rand, min, max float64) Point {
	return Point{
		X: randomRange(rng, min, max),
		Y: randomRange(rng, min, max),
		Z: randomRange(rng, min, max),
	}
}

// randomInUnitDisk returns a point uniform in the unit disk on the z=0 plane
func randomInUnitDisk(rng *rand.Rand) Point {
	for {
		p := Point{X: randomRange(rng, -1, 1), Y: randomRange(rng, -1, 1)}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// randomUnitVector returns a uniformly distributed unit vector
func randomUnitVector(rng *rand.Rand) Point {
	for {
		p := randomPoint(rng, -1, 1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq <= 1 {
			return p.Scale(1 / math.Sqrt(lensq))
		}
	}
}

// randomOnHemisphere returns a unit vector on the hemisphere around normal
func randomOnHemisphere(rng *rand.Rand, normal Point) Point {
	onUnitSphere := randomUnitVector(rng)
	if onUnitSphere.Dot(normal) > 0 {
		return onUnitSphere
	}
	return onUnitSphere.Neg()
}

// randomColor returns a color with components uniform in [min, max)
func randomColor(rng *rand.Rand, min, max float64) Color {
	return Color{
		R: randomRange(rng, min, max),
		G: randomRange(rng, min, max),
		B: randomRange(rng, min, max),
	}
}
