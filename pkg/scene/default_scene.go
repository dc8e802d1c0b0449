package scene

import (
	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/geometry"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// Default creates the default scene: two small diffuse spheres, a large ground
// sphere and a large emissive sky sphere
func Default() *Scene {
	magenta := material.NewDiffuse(core.NewColor(1.0, 0.0, 1.0), 0.8)
	green := material.NewDiffuse(core.NewColor(0.2, 0.7, 0.1), 0.6)
	ground := material.NewDiffuse(core.NewColor(0.2, 0.3, 6.0), 0.5)
	sky := material.NewEmissive(core.NewColor(0.9, 0.9, 0.7), 3.0)

	return New(
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, magenta)),
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(2, 0, -1), 1.0, green)),
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(0, -101, 0), 100.0, ground)),
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(100, 101, -20), 100.0, sky)),
	)
}

// NewPlaneScene creates two spheres resting on an infinite ground plane, lit by
// the same emissive sky sphere as the default scene
func NewPlaneScene() *Scene {
	glossy := material.NewGlossy(core.NewColor(0.9, 0.9, 0.9), 0.05, 0.8)
	orange := material.NewDiffuse(core.NewColor(0.9, 0.45, 0.1), 1.0)
	floor := material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5), 1.0)
	sky := material.NewEmissive(core.NewColor(0.9, 0.9, 0.7), 3.0)

	return New(
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(-1.1, 0, 0), 1.0, glossy)),
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(1.1, 0, -0.5), 1.0, orange)),
		geometry.NewPlaneShape(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor)),
		geometry.NewSphereShape(geometry.NewSphere(core.NewVec3(100, 101, -20), 100.0, sky)),
	)
}
