package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-scene-tracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// DefaultCameraConfig frames the built-in scenes at 400x225
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 1, 6),
		LookAt: core.NewVec3(0.5, 0, -0.5),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
		Width:  400,
		Height: 225,
	}
}

// Camera generates primary rays for pixels
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	upperLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	aspectRatio := float64(config.Width) / float64(config.Height)
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Sub(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Mul(viewportWidth)
	vertical := v.Mul(viewportHeight)
	upperLeftCorner := config.Center.
		Sub(horizontal.Mul(0.5)).
		Add(vertical.Mul(0.5)).
		Sub(w)

	return &Camera{
		config:          config,
		origin:          config.Center,
		upperLeftCorner: upperLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// PixelRay returns the ray through continuous image coordinates (x, y), where
// (0, 0) is the top-left corner of the image
func (c *Camera) PixelRay(x, y float64) core.Ray {
	s := x / float64(c.config.Width)
	t := y / float64(c.config.Height)
	direction := c.upperLeftCorner.
		Add(c.horizontal.Mul(s)).
		Sub(c.vertical.Mul(t)).
		Sub(c.origin)

	return core.NewRay(c.origin, direction)
}

// GetRay returns a ray through a random point inside pixel (i, j)
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	return c.PixelRay(float64(i)+random.Float64(), float64(j)+random.Float64())
}
