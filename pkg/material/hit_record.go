package material

import "github.com/df07/go-scene-tracer/pkg/core"

// HitRecord contains information about a ray-object intersection.
// It holds its own copy of the material, so it stays valid after the scene changes.
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward unit normal for spheres, the plane's normal as given for planes
	T        float64   // Parameter t along the ray
	Material Material  // Material of the hit surface
}

// FacingNormal returns the normal flipped to oppose the incoming ray direction
func (h *HitRecord) FacingNormal(ray core.Ray) core.Vec3 {
	if ray.Direction.Dot(h.Normal) > 0 {
		return h.Normal.Mul(-1)
	}
	return h.Normal
}
