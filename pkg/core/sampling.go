package core

import (
	"math"
	"math/rand"
)

// SampleOnUnitSphere maps two uniform samples in [0,1) to a uniformly
// distributed point on the unit sphere
func SampleOnUnitSphere(u, v float64) Vec3 {
	z := 1.0 - 2.0*u // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * v
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// RandomUnitVector returns a uniformly distributed direction
func RandomUnitVector(random *rand.Rand) Vec3 {
	return SampleOnUnitSphere(random.Float64(), random.Float64())
}
