package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "scene-tracer"
	app.Usage = "progressively path trace analytic sphere and plane scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable debug logging",
		},
	}

	configFlag := cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML config file; flags override its values",
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Render progressive frames of a built-in scene, averaging them together, and
write the final image as a PNG. Per-frame statistics are printed as a table.
With --frames 0 rendering continues until interrupted.`,
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "frames",
					Usage: "number of frames to accumulate",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel per frame",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: renderCommand,
		},
		{
			Name:  "serve",
			Usage: "serve a live preview over websockets",
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "HTTP listen address",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: 10,
					Usage: "maximum frames per second, 0 for unlimited",
				},
			},
			Action: serveCommand,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: scenesCommand,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
