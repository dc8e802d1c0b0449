package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-scene-tracer/pkg/core"
)

func TestMaterial_Emitted(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected core.Color
		emissive bool
	}{
		{
			name:     "sky light",
			material: NewEmissive(core.NewColor(0.9, 0.9, 0.7), 3.0),
			expected: core.NewColor(2.7, 2.7, 2.1),
			emissive: true,
		},
		{
			name:     "zero strength",
			material: NewEmissive(core.NewColor(1, 1, 1), 0),
			expected: core.NewColor(0, 0, 0),
			emissive: false,
		},
		{
			name:     "diffuse",
			material: NewDiffuse(core.NewColor(1, 0, 1), 0.8),
			expected: core.NewColor(0, 0, 0),
			emissive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emitted := tt.material.Emitted()
			assert.True(t, emitted.ApproxEqualThreshold(tt.expected, 1e-12), "expected %v, got %v", tt.expected, emitted)
			assert.Equal(t, tt.emissive, tt.material.IsEmissive())
		})
	}
}

func TestMaterial_Constructors(t *testing.T) {
	glossy := NewGlossy(core.NewColor(0.8, 0.8, 0.8), 0.1, 0.5)
	assert.Equal(t, 0.1, glossy.Roughness)
	assert.Equal(t, 0.5, glossy.SpecularChance)
	assert.False(t, glossy.IsEmissive())

	// Out of range values are kept as given
	odd := NewDiffuse(core.NewColor(2, -1, 0), 7)
	assert.Equal(t, 7.0, odd.Roughness)
	assert.Equal(t, core.NewColor(2, -1, 0), odd.Albedo)
}

func TestHitRecord_FacingNormal(t *testing.T) {
	hit := &HitRecord{Normal: core.NewVec3(0, 1, 0)}

	down := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	assert.Equal(t, core.NewVec3(0, 1, 0), hit.FacingNormal(down))

	up := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	assert.Equal(t, core.NewVec3(0, -1, 0), hit.FacingNormal(up))

	// The record itself is untouched
	assert.Equal(t, core.NewVec3(0, 1, 0), hit.Normal)
}
