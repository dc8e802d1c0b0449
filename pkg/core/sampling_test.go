package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleOnUnitSphere(t *testing.T) {
	tests := []struct {
		name     string
		u, v     float64
		expected Vec3
	}{
		{"north pole", 0, 0, NewVec3(0, 0, 1)},
		{"equator", 0.5, 0, NewVec3(1, 0, 0)},
		{"equator quarter turn", 0.5, 0.25, NewVec3(0, 1, 0)},
		{"south pole", 1, 0.7, NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleOnUnitSphere(tt.u, tt.v)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.expected[i], got[i], 1e-12)
			}
		})
	}
}

func TestRandomUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	mean := Vec3{}
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(random)
		assert.InDelta(t, 1.0, v.Len(), 1e-9, "sample %d", i)
		mean = mean.Add(v)
	}

	// Uniform directions average out near the origin
	assert.Less(t, mean.Mul(1.0/1000).Len(), 0.1)
}
