package geometry

import (
	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// Kind identifies which primitive a Shape holds
type Kind int

const (
	KindNone Kind = iota
	KindSphere
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return "none"
	}
}

// Shape is a closed union over the primitive kinds. Exactly one primitive is
// active and the Shape owns its data, so copying a Shape copies the primitive.
// The zero Shape holds nothing and is never hit.
//
// A new primitive kind needs a Kind, a field, a constructor and one arm in Hit.
type Shape struct {
	kind   Kind
	sphere Sphere
	plane  Plane
}

// NewSphereShape wraps a sphere
func NewSphereShape(s Sphere) Shape {
	return Shape{kind: KindSphere, sphere: s}
}

// NewPlaneShape wraps a plane
func NewPlaneShape(p Plane) Shape {
	return Shape{kind: KindPlane, plane: p}
}

// Kind returns the active primitive kind
func (s *Shape) Kind() Kind {
	return s.kind
}

// Sphere returns the held sphere for in-place editing
func (s *Shape) Sphere() (*Sphere, bool) {
	if s.kind != KindSphere {
		return nil, false
	}
	return &s.sphere, true
}

// Plane returns the held plane for in-place editing
func (s *Shape) Plane() (*Plane, bool) {
	if s.kind != KindPlane {
		return nil, false
	}
	return &s.plane, true
}

// Material returns a copy of the active primitive's material
func (s *Shape) Material() material.Material {
	switch s.kind {
	case KindSphere:
		return s.sphere.Material
	case KindPlane:
		return s.plane.Material
	default:
		return material.Material{}
	}
}

// Hit forwards to the active primitive
func (s *Shape) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	switch s.kind {
	case KindSphere:
		return s.sphere.Hit(ray, interval)
	case KindPlane:
		return s.plane.Hit(ray, interval)
	default:
		return nil, false
	}
}
