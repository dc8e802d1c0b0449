package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/scene"
)

// ErrPoolClosed is returned when a frame is requested after Close
var ErrPoolClosed = errors.New("worker pool closed")

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize        int        // Size of each tile (64x64 recommended)
	SamplesPerFrame int        // Samples added to every pixel per frame
	MaxDepth        int        // Maximum bounces per path
	NumWorkers      int        // Number of parallel workers (0 = use CPU count)
	Background      core.Color // Radiance of rays that leave the scene
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:        64,
		SamplesPerFrame: 1,
		MaxDepth:        5,
		NumWorkers:      0, // Auto-detect CPU count
		Background:      core.Color{},
	}
}

// Progressive renders a scene frame by frame, averaging frames together while
// the scene's Accumulate flag is set.
//
// The scene's FrameIndex and Accumulation fields are owned by Progressive
// during RenderFrame. Callers that edit the scene concurrently must serialize
// edits with RenderFrame.
type Progressive struct {
	scene      *scene.Scene
	camera     *Camera
	config     ProgressiveConfig
	tiles      []*Tile
	workerPool *WorkerPool
	logger     zerolog.Logger
	closed     bool
	pass       int // frames started since creation or the last Resize; seeds the tiles
}

// NewProgressive creates a frame driver and starts its worker pool
func NewProgressive(s *scene.Scene, cameraConfig CameraConfig, config ProgressiveConfig, logger zerolog.Logger) *Progressive {
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.SamplesPerFrame <= 0 {
		config.SamplesPerFrame = 1
	}

	tracer := NewPathTracer(config.MaxDepth, config.Background)
	workerPool := NewWorkerPool(NewTileRenderer(s, tracer), config.NumWorkers)
	workerPool.Start()

	logger.Debug().
		Int("width", cameraConfig.Width).
		Int("height", cameraConfig.Height).
		Int("workers", workerPool.GetNumWorkers()).
		Int("tile_size", config.TileSize).
		Msg("progressive renderer ready")

	return &Progressive{
		scene:      s,
		camera:     NewCamera(cameraConfig),
		config:     config,
		tiles:      NewTileGrid(cameraConfig.Width, cameraConfig.Height, config.TileSize),
		workerPool: workerPool,
		logger:     logger,
	}
}

// Scene returns the scene being rendered
func (p *Progressive) Scene() *scene.Scene {
	return p.scene
}

// Camera returns the camera for the current image size
func (p *Progressive) Camera() *Camera {
	return p.camera
}

// Size returns the current image dimensions
func (p *Progressive) Size() (int, int) {
	cfg := p.camera.Config()
	return cfg.Width, cfg.Height
}

// Resize changes the image dimensions and restarts accumulation
func (p *Progressive) Resize(width, height int) {
	cfg := p.camera.Config()
	cfg.Width = width
	cfg.Height = height
	p.camera = NewCamera(cfg)
	p.tiles = NewTileGrid(width, height, p.config.TileSize)
	p.pass = 0
	p.scene.Resize()

	p.logger.Debug().Int("width", width).Int("height", height).Msg("resized")
}

// RenderFrame adds one frame of samples to the accumulation buffer and returns
// the averaged image
func (p *Progressive) RenderFrame(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if p.closed {
		return nil, RenderStats{}, ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := p.Size()
	s := p.scene

	size := width * height * channels
	if s.FrameIndex < 0 || len(s.Accumulation) != size || !s.Accumulate {
		if len(s.Accumulation) != size {
			s.Accumulation = make([]float64, size)
		} else {
			clear(s.Accumulation)
		}
		s.FrameIndex = 0
	}

	// Seeded by pass, not FrameIndex, which restarts with accumulation
	pass := p.pass
	p.pass++
	for _, tile := range p.tiles {
		tile.Reseed(pass)
	}

	// Submit from a separate goroutine so results can drain while tasks queue
	go func() {
		for id, tile := range p.tiles {
			p.workerPool.SubmitTask(TileTask{
				Ctx:     ctx,
				Tile:    tile,
				Camera:  p.camera,
				Samples: p.config.SamplesPerFrame,
				TaskID:  id,
				Buffer:  s.Accumulation,
				Width:   width,
			})
		}
	}()

	stats := RenderStats{}
	var frameErr error
	for i := 0; i < len(p.tiles); i++ {
		result, ok := p.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, ErrPoolClosed
		}
		if result.Error != nil {
			if frameErr == nil {
				frameErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)
	}

	if frameErr != nil {
		// Some tiles were sampled and some were not
		s.Resize()
		p.logger.Debug().Err(frameErr).Int("pass", pass).Msg("frame aborted")
		return nil, RenderStats{}, frameErr
	}

	s.FrameIndex++
	img := p.resolve(width, height)

	stats.FrameIndex = s.FrameIndex
	stats.SamplesPerPixel = s.FrameIndex * p.config.SamplesPerFrame
	stats.Duration = time.Since(start)

	p.logger.Debug().
		Int("frame", stats.FrameIndex).
		Int("spp", stats.SamplesPerPixel).
		Dur("elapsed", stats.Duration).
		Msg("frame complete")

	return img, stats, nil
}

// Render renders up to frames frames, calling onFrame after each one.
// A non-positive frames value renders until ctx is cancelled.
func (p *Progressive) Render(ctx context.Context, frames int, onFrame func(*image.RGBA, RenderStats) error) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		img, stats, err := p.RenderFrame(ctx)
		if err != nil {
			return err
		}
		if onFrame != nil {
			if err := onFrame(img, stats); err != nil {
				return fmt.Errorf("frame %d: %w", stats.FrameIndex, err)
			}
		}
	}
	return nil
}

// Close stops the worker pool. The renderer cannot be used afterwards.
func (p *Progressive) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.workerPool.Stop()
}

// resolve averages the accumulation buffer into an 8-bit image
func (p *Progressive) resolve(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scale := 1.0 / float64(p.scene.FrameIndex*p.config.SamplesPerFrame)
	buffer := p.scene.Accumulation

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * channels
			c := core.NewColor(buffer[offset], buffer[offset+1], buffer[offset+2]).Mul(scale)
			img.SetRGBA(x, y, ToRGBA(c))
		}
	}
	return img
}

// ToRGBA converts a linear color to RGBA with clamping and gamma correction
func ToRGBA(c core.Color) color.RGBA {
	c = core.GammaCorrect(core.Clamp(c, 0.0, 1.0), 2.0)

	return color.RGBA{
		R: uint8(255 * c[0]),
		G: uint8(255 * c[1]),
		B: uint8(255 * c[2]),
		A: 255,
	}
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(tileSeed(id, 0))),
	}
}

// Reseed resets the tile's generator for the given frame so that a frame's
// samples depend only on tile and frame index
func (t *Tile) Reseed(frame int) {
	t.Random.Seed(tileSeed(t.ID, frame))
}

func tileSeed(id, frame int) int64 {
	return int64(id+42) + int64(frame)*1_000_003 // +42 to avoid seed 0
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
