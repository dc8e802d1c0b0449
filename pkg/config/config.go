package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/renderer"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

var cameraUp = core.NewVec3(0, 1, 0)

// Camera places the view; the up direction is always +Y
type Camera struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	FOV      float64    `yaml:"fov"` // vertical, degrees
}

// Config holds every setting of a render or preview session
type Config struct {
	Scene           string `yaml:"scene"` // registry name, e.g. "default"
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Frames          int    `yaml:"frames"` // 0 renders until interrupted
	SamplesPerFrame int    `yaml:"samples_per_frame"`
	MaxDepth        int    `yaml:"max_depth"`
	TileSize        int    `yaml:"tile_size"`
	Workers         int    `yaml:"workers"` // 0 = CPU count
	Accumulate      bool   `yaml:"accumulate"`
	Output          string `yaml:"output"`

	Background [3]float64 `yaml:"background"`
	Camera     Camera     `yaml:"camera"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cam := renderer.DefaultCameraConfig()
	prog := renderer.DefaultProgressiveConfig()

	return &Config{
		Scene:           "default",
		Width:           cam.Width,
		Height:          cam.Height,
		Frames:          16,
		SamplesPerFrame: prog.SamplesPerFrame,
		MaxDepth:        prog.MaxDepth,
		TileSize:        prog.TileSize,
		Workers:         prog.NumWorkers,
		Accumulate:      true,
		Output:          "output/render.png",
		Background:      [3]float64{0, 0, 0},
		Camera: Camera{
			Position: [3]float64(cam.Center),
			LookAt:   [3]float64(cam.LookAt),
			FOV:      cam.VFov,
		},
	}
}

// Load reads a YAML file on top of Default, so missing keys keep their defaults
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first setting that the renderer cannot use
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene is empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	case c.SamplesPerFrame <= 0:
		return fmt.Errorf("%w: samples_per_frame %d", ErrInvalidConfig, c.SamplesPerFrame)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size %d", ErrInvalidConfig, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalidConfig, c.Camera.FOV)
	case c.Camera.Position == c.Camera.LookAt:
		return fmt.Errorf("%w: camera position equals look_at", ErrInvalidConfig)
	case c.lookParallelToUp():
		return fmt.Errorf("%w: camera looks straight along the up axis", ErrInvalidConfig)
	}
	return nil
}

// lookParallelToUp reports a view direction with no usable horizontal axis
func (c *Config) lookParallelToUp() bool {
	w := core.Vec3(c.Camera.Position).Sub(core.Vec3(c.Camera.LookAt))
	return w.Cross(cameraUp).Len() <= 1e-9*w.Len()
}

// CameraConfig converts the camera section into a renderer camera
func (c *Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center: core.Vec3(c.Camera.Position),
		LookAt: core.Vec3(c.Camera.LookAt),
		Up:     cameraUp,
		VFov:   c.Camera.FOV,
		Width:  c.Width,
		Height: c.Height,
	}
}

// ProgressiveConfig converts the sampling settings into a renderer config
func (c *Config) ProgressiveConfig() renderer.ProgressiveConfig {
	return renderer.ProgressiveConfig{
		TileSize:        c.TileSize,
		SamplesPerFrame: c.SamplesPerFrame,
		MaxDepth:        c.MaxDepth,
		NumWorkers:      c.Workers,
		Background:      core.Color(c.Background),
	}
}
