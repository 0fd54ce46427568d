package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/cmd"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("main")

func newApp() *cli.App {
	// The default version flag also claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes on the CPU using a BVH accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "scenes-dir",
			Value:  "scenes",
			Usage:  "directory scanned for JSON scene files",
			EnvVar: "PATHTRACER_SCENES_DIR",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene, a scene file from the scenes directory (file:<name>)
or a JSON scene given by path. Width, height, samples and the other sampling
settings default to the values stored in the scene.

The output format follows the extension of --out: png, bmp, tif or tiff.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "scene, s",
					Value:  "default",
					Usage:  "scene ID, file:<name> or path to a JSON scene",
					EnvVar: "PATHTRACER_SCENE",
				},
				cli.StringFlag{
					Name:   "config, c",
					Usage:  "path to a JSON scene file, overrides --scene",
					EnvVar: "PATHTRACER_CONFIG",
				},
				cli.IntFlag{
					Name:   "width",
					Usage:  "frame width",
					EnvVar: "PATHTRACER_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Usage:  "frame height",
					EnvVar: "PATHTRACER_HEIGHT",
				},
				cli.IntFlag{
					Name:   "spp",
					Usage:  "samples per pixel",
					EnvVar: "PATHTRACER_SPP",
				},
				cli.IntFlag{
					Name:   "depth",
					Usage:  "maximum path depth",
					EnvVar: "PATHTRACER_DEPTH",
				},
				cli.Float64Flag{
					Name:   "fov",
					Usage:  "camera field of view in degrees",
					EnvVar: "PATHTRACER_FOV",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "render goroutines, one per CPU when unset",
					EnvVar: "PATHTRACER_WORKERS",
				},
				cli.Int64Flag{
					Name:   "seed",
					Usage:  "random seed",
					EnvVar: "PATHTRACER_SEED",
				},
				cli.IntFlag{
					Name:   "leaf-size",
					Usage:  "maximum primitives per BVH leaf",
					EnvVar: "PATHTRACER_LEAF_SIZE",
				},
				cli.BoolFlag{
					Name:   "no-bvh",
					Usage:  "test every primitive for every ray",
					EnvVar: "PATHTRACER_NO_BVH",
				},
				cli.StringFlag{
					Name:   "out, o",
					Usage:  "image filename, output/<scene>/render_<timestamp>.png when unset",
					EnvVar: "PATHTRACER_OUT",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene files",
			Action: cmd.ListScenes,
		},
		{
			Name:   "info",
			Usage:  "show the host CPU and memory",
			Action: cmd.ShowInfo,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port, p",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "PATHTRACER_PORT",
				},
				cli.IntFlag{
					Name:   "max-pixels",
					Value:  1920 * 1080,
					Usage:  "largest width*height a request may render",
					EnvVar: "PATHTRACER_MAX_PIXELS",
				},
				cli.IntFlag{
					Name:   "max-spp",
					Value:  1024,
					Usage:  "largest samples per pixel a request may ask for",
					EnvVar: "PATHTRACER_MAX_SPP",
				},
				cli.IntFlag{
					Name:   "console-lines",
					Value:  200,
					Usage:  "log lines kept for /api/console",
					EnvVar: "PATHTRACER_CONSOLE_LINES",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
