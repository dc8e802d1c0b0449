package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 represents a 3D vector or point
type Vec3 = mgl64.Vec3

// Color is a linear RGB triple stored in a Vec3
type Color = mgl64.Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// NewColor creates a new linear RGB color
func NewColor(r, g, b float64) Color {
	return Color{r, g, b}
}

// MultiplyVec returns component-wise multiplication of two vectors
func MultiplyVec(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Lerp linearly interpolates from a to b
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Reflect mirrors v about the normal n
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Clamp returns a vector with components clamped to [minVal, maxVal]
func Clamp(v Vec3, minVal, maxVal float64) Vec3 {
	return Vec3{
		max(minVal, min(maxVal, v[0])),
		max(minVal, min(maxVal, v[1])),
		max(minVal, min(maxVal, v[2])),
	}
}

// GammaCorrect applies gamma correction to color values
func GammaCorrect(c Color, gamma float64) Color {
	invGamma := 1.0 / gamma
	return Color{
		math.Pow(c[0], invGamma),
		math.Pow(c[1], invGamma),
		math.Pow(c[2], invGamma),
	}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func Luminance(c Color) float64 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}
