package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, expected, actual core.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], tolerance, msgAndArgs...)
	}
}

func unitSphere() Sphere {
	return NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5), 1))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := unitSphere()
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, core.Forward(0.001))
	assert.False(t, isHit)
	assert.Nil(t, hit)
}

func TestSphere_Hit_FrontHit(t *testing.T) {
	sphere := unitSphere()
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.Forward(0.001))
	require.True(t, isHit)

	assert.InDelta(t, 1.0, hit.T, tolerance)
	assertVecNear(t, core.NewVec3(0, 0, 1), hit.Point)
	assertVecNear(t, core.NewVec3(0, 0, 1), hit.Normal)
	assert.Equal(t, sphere.Material, hit.Material)
}

func TestSphere_Hit_OffCenter(t *testing.T) {
	mat := material.NewEmissive(core.NewColor(1, 1, 1), 2)
	sphere := NewSphere(core.NewVec3(3, -2, 5), 2.0, mat)
	ray := core.NewRay(core.NewVec3(3, 10, 5), core.NewVec3(0, -1, 0))

	hit, isHit := sphere.Hit(ray, core.Forward(0.001))
	require.True(t, isHit)

	assert.InDelta(t, 10.0, hit.T, tolerance)
	assertVecNear(t, core.NewVec3(3, 0, 5), hit.Point)
	assertVecNear(t, core.NewVec3(0, 1, 0), hit.Normal)
	assert.Equal(t, mat, hit.Material)
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := unitSphere()
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.Forward(0.001))
	require.True(t, isHit, "Expected glancing hit, but got miss")
	assertVecNear(t, core.NewVec3(1, 0, 0), hit.Point)
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := unitSphere()
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		interval core.Interval
	}{
		{"tMax before near root", core.NewInterval(0.001, 0.5)},
		{"upper bound equals near root", core.NewInterval(0.001, 1.0)},
		{"tMin past both roots", core.NewInterval(3.5, 1000)},
		// The far root (t=3) is never tried
		{"tMin between roots", core.NewInterval(1.5, 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.interval)
			assert.False(t, isHit, "unexpected hit %+v", hit)
		})
	}

	hit, isHit := sphere.Hit(ray, core.NewInterval(1.0, 1.5))
	require.True(t, isHit, "lower bound should be inclusive")
	assert.InDelta(t, 1.0, hit.T, tolerance)
}

func TestSphere_Hit_OriginInsideMisses(t *testing.T) {
	sphere := unitSphere()

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0.3, 0.4, -0.5),
	}
	for _, dir := range directions {
		ray := core.NewRay(core.NewVec3(0.1, 0.2, 0), dir)
		_, isHit := sphere.Hit(ray, core.Forward(0.001))
		assert.False(t, isHit, "ray from inside along %v should not hit (near root only)", dir)
	}
}

func TestSphere_Hit_UnnormalizedDirection(t *testing.T) {
	sphere := unitSphere()
	origin := core.NewVec3(0, 0, 2)

	unit, ok := sphere.Hit(core.NewRay(origin, core.NewVec3(0, 0, -1)), core.Forward(0.001))
	require.True(t, ok)

	for _, scale := range []float64{0.01, 0.5, 3, 250} {
		scaled, ok := sphere.Hit(core.NewRay(origin, core.NewVec3(0, 0, -scale)), core.Forward(0.0001))
		require.True(t, ok, "scale %f", scale)
		assert.InDelta(t, unit.T/scale, scaled.T, tolerance)
		assertVecNear(t, unit.Point, scaled.Point)
		assertVecNear(t, unit.Normal, scaled.Normal)
	}
}

func TestSphere_Hit_DegenerateInputs(t *testing.T) {
	sphere := unitSphere()

	// Zero direction gives 0/0
	_, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0)), core.Forward(0.001))
	assert.False(t, isHit)

	// Zero radius sphere off the ray's line
	point := NewSphere(core.NewVec3(0, 1, 0), 0, material.Material{})
	_, isHit = point.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), core.Forward(0.001))
	assert.False(t, isHit)
}

func TestSphere_Hit_PointsLieOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		radius := 0.5 + random.Float64()*2
		sphere := NewSphere(center, radius, material.Material{})

		// Start outside and aim at a point strictly inside the sphere
		origin := center.Add(core.RandomUnitVector(random).Mul(radius + 1 + random.Float64()*5))
		target := center.Add(core.RandomUnitVector(random).Mul(radius * 0.9 * random.Float64()))
		direction := target.Sub(origin).Mul(0.1 + random.Float64()*10)

		hit, isHit := sphere.Hit(core.NewRay(origin, direction), core.Forward(1e-9))
		require.True(t, isHit, "case %d: expected hit", i)

		assert.Greater(t, hit.T, 0.0)
		assert.InDelta(t, radius, hit.Point.Sub(center).Len(), 1e-8, "case %d: hit point off surface", i)
		assert.InDelta(t, 1.0, hit.Normal.Len(), 1e-9, "case %d: normal not unit", i)
		assertVecNear(t, hit.Point.Sub(center).Mul(1/radius), hit.Normal)
	}
}

func TestSphere_Hit_LinesOutsideRadiusMiss(t *testing.T) {
	random := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		radius := 0.5 + random.Float64()*2
		sphere := NewSphere(center, radius, material.Material{})

		direction := core.RandomUnitVector(random)
		helper := core.NewVec3(1, 0, 0)
		if math.Abs(direction.X()) > 0.9 {
			helper = core.NewVec3(0, 1, 0)
		}
		perpendicular := direction.Cross(helper).Normalize()

		// The closest point on the line is farther from the center than the radius
		closest := center.Add(perpendicular.Mul(radius * (1.05 + random.Float64()*2)))
		origin := closest.Sub(direction.Mul(5 + random.Float64()*5))
		ray := core.NewRay(origin, direction.Mul(0.1+random.Float64()*10))

		_, isHit := sphere.Hit(ray, core.Forward(1e-9))
		assert.False(t, isHit, "case %d: expected miss", i)
	}
}
