package material

import "github.com/df07/go-scene-tracer/pkg/core"

// Material is a flat surface descriptor. The value ranges below are advisory
// and are not validated.
type Material struct {
	Albedo         core.Color // Base reflectance
	Roughness      float64    // 0 = mirror-like, 1 = fully diffuse
	Emission       float64    // Emission strength, >= 0
	EmissionColor  core.Color // Color of emitted light
	SpecularChance float64    // Probability in [0,1] that a bounce is specular
}

// NewDiffuse creates a non-emissive material with the given albedo and roughness
func NewDiffuse(albedo core.Color, roughness float64) Material {
	return Material{Albedo: albedo, Roughness: roughness}
}

// NewGlossy creates a material that reflects specularly with the given probability
func NewGlossy(albedo core.Color, roughness, specularChance float64) Material {
	return Material{Albedo: albedo, Roughness: roughness, SpecularChance: specularChance}
}

// NewEmissive creates a light-emitting material with a black albedo
func NewEmissive(color core.Color, strength float64) Material {
	return Material{EmissionColor: color, Emission: strength}
}

// Emitted returns the emitted radiance, EmissionColor scaled by Emission
func (m Material) Emitted() core.Color {
	return m.EmissionColor.Mul(m.Emission)
}

// IsEmissive reports whether the material emits any light
func (m Material) IsEmissive() bool {
	e := m.Emitted()
	return e[0] > 0 || e[1] > 0 || e[2] > 0
}
