package geometry

import (
	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Must be nonzero; used as given, not normalized
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) Plane {
	return Plane{
		Point:    point,
		Normal:   normal,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	// A ray parallel to the plane divides by zero; the resulting Inf or NaN
	// is rejected by the interval test.
	t := p.Normal.Dot(p.Point.Sub(ray.Origin)) / p.Normal.Dot(ray.Direction)
	if !interval.Contains(t) {
		return nil, false
	}

	return &material.HitRecord{
		Point:    ray.At(t),
		Normal:   p.Normal,
		T:        t,
		Material: p.Material,
	}, true
}
