package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Shapes)
			assert.Equal(t, 0, s.FrameIndex)
		})
	}

	_, err := ByName("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestByName_ReturnsFreshScenes(t *testing.T) {
	a, err := ByName("default")
	require.NoError(t, err)
	b, err := ByName("default")
	require.NoError(t, err)

	a.Resize()
	sphere, _ := a.Shapes[0].Sphere()
	sphere.Radius = 5

	other, _ := b.Shapes[0].Sphere()
	assert.Equal(t, 1.0, other.Radius)
	assert.Equal(t, 0, b.FrameIndex)
}

func TestNamesAndList(t *testing.T) {
	assert.Equal(t, []string{"default", "plane"}, Names())

	infos := List()
	require.Len(t, infos, 2)
	assert.Equal(t, "default", infos[0].Name)
	assert.NotEmpty(t, infos[1].Description)
}
