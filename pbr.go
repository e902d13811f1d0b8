package main

import "math/rand"

// PBRMaterial is a metallic/roughness material with separate albedo and
// emission textures. Metallic blends between a diffuse bounce and a
// roughness-fuzzed mirror bounce; emission is added on top, so glowing
// particles and dull matter share one material.
type PBRMaterial struct {
	Albedo    Texture
	Emit      Texture
	Metallic  float64
	Roughness float64
}

// NewPBRMaterial creates a non-emissive metallic/roughness material
func NewPBRMaterial(albedo Texture, metallic, roughness float64) *PBRMaterial {
	return &PBRMaterial{
		Albedo:    albedo,
		Metallic:  clamp(metallic, 0, 1),
		Roughness: clamp(roughness, 0, 1),
	}
}

func (m *PBRMaterial) Scatter(rng *rand.Rand, rIn Ray, rec *HitRecord) (Color, Ray, bool) {
	albedo := m.Albedo.Value(rec.U, rec.V, rec.Point)

	if rng.Float64() < m.Metallic {
		reflected := rIn.Direction.Reflect(rec.Normal).Normalize()
		reflected = reflected.Add(randomUnitVector(rng).Scale(m.Roughness))
		scattered := Ray{Origin: rec.Point, Direction: reflected}
		return albedo, scattered, scattered.Direction.Dot(rec.Normal) > 0
	}

	scatterDirection := rec.Normal.Add(randomUnitVector(rng))
	if scatterDirection.NearZero() {
		scatterDirection = rec.Normal
	}
	return albedo, Ray{Origin: rec.Point, Direction: scatterDirection}, true
}

func (m *PBRMaterial) Emitted(u, v float64, p Point) Color {
	if m.Emit == nil {
		return ColorBlack
	}
	return m.Emit.Value(u, v, p)
}
