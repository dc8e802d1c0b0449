package renderer

import (
	"image"
	"time"

	"github.com/df07/go-scene-tracer/pkg/core"
)

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels     int           // Number of pixels rendered
	TotalSamples    int           // Samples taken during this frame
	SamplesPerPixel int           // Samples per pixel accumulated so far
	FrameIndex      int           // Frames accumulated so far
	Duration        time.Duration // Wall time for this frame
}

// merge folds the stats of one tile into the frame stats
func (rs *RenderStats) merge(tile RenderStats) {
	rs.TotalPixels += tile.TotalPixels
	rs.TotalSamples += tile.TotalSamples
}

// CalculateAverageLuminance returns the mean luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += core.Luminance(core.NewColor(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff))
		}
	}
	return total / float64(pixels)
}
