package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

func TestShape_DispatchMatchesPrimitive(t *testing.T) {
	sphere := unitSphere()
	plane := groundPlane()

	tests := []struct {
		name      string
		shape     Shape
		primitive Hittable
		ray       core.Ray
	}{
		{
			name:      "sphere",
			shape:     NewSphereShape(sphere),
			primitive: &sphere,
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
		},
		{
			name:      "plane",
			shape:     NewPlaneShape(plane),
			primitive: &plane,
			ray:       core.NewRay(core.NewVec3(1, 3, 2), core.NewVec3(0.2, -1, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, expectedHit := tt.primitive.Hit(tt.ray, core.Forward(0.001))
			actual, actualHit := tt.shape.Hit(tt.ray, core.Forward(0.001))

			require.Equal(t, expectedHit, actualHit)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestShape_ZeroValueNeverHits(t *testing.T) {
	var shape Shape
	assert.Equal(t, KindNone, shape.Kind())

	_, isHit := shape.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.Forward(0))
	assert.False(t, isHit)
	assert.Equal(t, material.Material{}, shape.Material())
}

func TestShape_Accessors(t *testing.T) {
	sphereShape := NewSphereShape(unitSphere())
	planeShape := NewPlaneShape(groundPlane())

	assert.Equal(t, KindSphere, sphereShape.Kind())
	assert.Equal(t, KindPlane, planeShape.Kind())

	s, ok := sphereShape.Sphere()
	require.True(t, ok)
	assert.Equal(t, 1.0, s.Radius)
	_, ok = sphereShape.Plane()
	assert.False(t, ok)

	p, ok := planeShape.Plane()
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(0, 1, 0), p.Normal)
	_, ok = planeShape.Sphere()
	assert.False(t, ok)

	assert.Equal(t, unitSphere().Material, sphereShape.Material())
	assert.Equal(t, groundPlane().Material, planeShape.Material())
}

func TestShape_EditInPlace(t *testing.T) {
	shape := NewSphereShape(unitSphere())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	s, _ := shape.Sphere()
	s.Radius = 2

	hit, isHit := shape.Hit(ray, core.Forward(0.001))
	require.True(t, isHit)
	assert.InDelta(t, 3.0, hit.T, tolerance)
}

func TestShape_CopiesOwnTheirPrimitive(t *testing.T) {
	original := NewSphereShape(unitSphere())
	copied := original

	s, _ := copied.Sphere()
	s.Radius = 3

	o, _ := original.Sphere()
	assert.Equal(t, 1.0, o.Radius)
}

func TestShape_HitRecordOwnsMaterial(t *testing.T) {
	shape := NewSphereShape(unitSphere())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := shape.Hit(ray, core.Forward(0.001))
	require.True(t, isHit)

	s, _ := shape.Sphere()
	s.Material.Roughness = 0.1

	assert.Equal(t, 1.0, hit.Material.Roughness)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "sphere", KindSphere.String())
	assert.Equal(t, "plane", KindPlane.String())
	assert.Equal(t, "none", KindNone.String())
}
