package renderer

import (
	"math/rand"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/geometry"
)

// SurfaceEpsilon keeps bounced rays from re-hitting the surface they leave
const SurfaceEpsilon = 0.001

// PathTracer shades rays by bouncing them through the scene.
// Emission is collected along the path; diffuse bounces are tinted by albedo,
// specular bounces (chosen with the material's SpecularChance) reflect with a
// spread set by roughness.
type PathTracer struct {
	MaxDepth   int        // Maximum number of bounces
	Background core.Color // Radiance for rays that escape the scene
}

// NewPathTracer creates a new path tracer
func NewPathTracer(maxDepth int, background core.Color) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth, Background: background}
}

// RayColor computes the radiance arriving along a single ray
func (pt *PathTracer) RayColor(ray core.Ray, world geometry.Hittable, random *rand.Rand) core.Color {
	radiance := core.Color{}
	throughput := core.NewColor(1, 1, 1)

	for bounce := 0; bounce < pt.MaxDepth; bounce++ {
		hit, isHit := world.Hit(ray, core.Forward(SurfaceEpsilon))
		if !isHit {
			radiance = radiance.Add(core.MultiplyVec(throughput, pt.Background))
			break
		}

		mat := hit.Material
		radiance = radiance.Add(core.MultiplyVec(throughput, mat.Emitted()))

		normal := hit.FacingNormal(ray)
		diffuse := normal.Add(core.RandomUnitVector(random))
		if diffuse.LenSqr() < 1e-12 {
			diffuse = normal
		}
		diffuse = diffuse.Normalize()

		direction := diffuse
		if random.Float64() < mat.SpecularChance {
			reflected := core.Reflect(ray.Direction.Normalize(), normal)
			direction = core.Lerp(diffuse, reflected, 1-mat.Roughness)
			if direction.LenSqr() < 1e-12 {
				direction = reflected
			}
			direction = direction.Normalize()
		} else {
			throughput = core.MultiplyVec(throughput, mat.Albedo)
		}

		ray = core.NewRay(hit.Point, direction)
	}

	return radiance
}
