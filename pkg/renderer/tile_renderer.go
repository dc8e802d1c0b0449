package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/geometry"
)

// channels per pixel in the accumulation buffer
const channels = 3

// TileRenderer traces the pixels of a tile and adds them to an accumulation buffer
type TileRenderer struct {
	world  geometry.Hittable
	tracer *PathTracer
}

// NewTileRenderer creates a new tile renderer for the given world
func NewTileRenderer(world geometry.Hittable, tracer *PathTracer) *TileRenderer {
	return &TileRenderer{
		world:  world,
		tracer: tracer,
	}
}

// RenderTileBounds adds samples to every pixel within bounds. The buffer is
// row-major RGB with the given image width.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, camera *Camera, buffer []float64, width int, random *rand.Rand, samples int) RenderStats {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			sum := core.Color{}
			for s := 0; s < samples; s++ {
				ray := camera.GetRay(i, j, random)
				sum = sum.Add(tr.tracer.RayColor(ray, tr.world, random))
			}

			offset := (j*width + i) * channels
			buffer[offset] += sum[0]
			buffer[offset+1] += sum[1]
			buffer[offset+2] += sum[2]
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * samples,
	}
}
