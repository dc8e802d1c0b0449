package geometry

import (
	"math"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
//
// Only the near root of the quadratic is considered, so spheres are opaque from
// the outside only: a ray starting inside a sphere does not hit it.
func (s *Sphere) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	// Work relative to the center so the local hit point is also the outward normal
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients in half-b form: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	t := (-halfB - math.Sqrt(discriminant)) / a
	if !interval.Contains(t) {
		return nil, false
	}

	local := oc.Add(ray.Direction.Mul(t))
	return &material.HitRecord{
		Point:    local.Add(s.Center),
		Normal:   local.Normalize(),
		T:        t,
		Material: s.Material,
	}, true
}
