package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/df07/go-scene-tracer/pkg/config"
	"github.com/df07/go-scene-tracer/pkg/renderer"
	"github.com/df07/go-scene-tracer/pkg/scene"
	"github.com/df07/go-scene-tracer/web/server"
)

func setupLogging(ctx *cli.Context) zerolog.Logger {
	level := zerolog.InfoLevel
	if ctx.GlobalBool("v") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig reads --config when given and applies any flags that were set
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}

	if ctx.IsSet("scene") {
		cfg.Scene = ctx.String("scene")
	}
	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("frames") {
		cfg.Frames = ctx.Int("frames")
	}
	if ctx.IsSet("spp") {
		cfg.SamplesPerFrame = ctx.Int("spp")
	}
	if ctx.IsSet("out") {
		cfg.Output = ctx.String("out")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createScene creates a fresh built-in scene by name
func createScene(name string) (*scene.Scene, error) {
	return scene.ByName(name)
}

func newRenderer(cfg *config.Config, logger zerolog.Logger) (*renderer.Progressive, error) {
	s, err := createScene(cfg.Scene)
	if err != nil {
		return nil, err
	}
	s.Accumulate = cfg.Accumulate

	return renderer.NewProgressive(s, cfg.CameraConfig(), cfg.ProgressiveConfig(), logger), nil
}

func renderCommand(ctx *cli.Context) error {
	logger := setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info().
		Str("scene", cfg.Scene).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("frames", cfg.Frames).
		Msg("rendering")

	var last *image.RGBA
	var frames []renderer.RenderStats
	err = r.Render(runCtx, cfg.Frames, func(img *image.RGBA, stats renderer.RenderStats) error {
		last = img
		frames = append(frames, stats)
		logger.Debug().Int("frame", stats.FrameIndex).Dur("elapsed", stats.Duration).Msg("frame")
		return nil
	})
	if err != nil && runCtx.Err() == nil {
		return err
	}
	if last == nil {
		return fmt.Errorf("render %s: no frame completed", cfg.Scene)
	}

	if err := savePNG(cfg.Output, last); err != nil {
		return err
	}

	displayFrameStats(ctx.App.Writer, frames)
	logger.Info().
		Str("out", cfg.Output).
		Float64("luminance", renderer.CalculateAverageLuminance(last)).
		Msg("render saved")
	return nil
}

func serveCommand(ctx *cli.Context) error {
	logger := setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := server.NewServer(r, ctx.Int("fps"), logger)
	return srv.ListenAndServe(runCtx, ctx.String("addr"))
}

func scenesCommand(ctx *cli.Context) error {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
	return nil
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func displayFrameStats(w io.Writer, frames []renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Samples/pixel", "Samples", "Render time"})

	var total time.Duration
	for _, stats := range frames {
		table.Append([]string{
			fmt.Sprintf("%d", stats.FrameIndex),
			fmt.Sprintf("%d", stats.SamplesPerPixel),
			fmt.Sprintf("%d", stats.TotalSamples),
			stats.Duration.String(),
		})
		total += stats.Duration
	}
	table.SetFooter([]string{"", "", "TOTAL", total.String()})
	table.Render()
}
