package geometry

import (
	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// Hittable is anything that can be intersected by a ray.
// Hit returns a fresh record when some t within the interval puts the ray on the
// surface, and (nil, false) otherwise. It must not modify the receiver.
type Hittable interface {
	Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool)
}
