package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/imageio"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/df07/go-bvh-pathtracer/pkg/sysinfo"
)

// Render a still frame.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := selectScene(ctx)
	if err != nil {
		return err
	}

	world, err := scene.Build(sc, scene.BuildOptions{
		NoBVH:    ctx.Bool("no-bvh"),
		LeafSize: ctx.Int("leaf-size"),
	})
	if err != nil {
		return err
	}

	if info, err := sysinfo.Collect(); err == nil {
		logger.Infof("host: %s", info.Summary())
	}

	rt, err := world.NewRaytracer(progressLogger())
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sampling := sc.SamplingConfig
	logger.Noticef("rendering %q at %dx%d, %d spp, max depth %d",
		sc.Name, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth)
	buf, stats, err := rt.Render(renderCtx)
	if err != nil {
		return fmt.Errorf("render interrupted after %d of %d rows: %w", stats.RowsRendered, sampling.Height, err)
	}

	out := ctx.String("out")
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sc.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := imageio.Write(out, renderer.ToneMap(buf, sampling.SamplesPerPixel)); err != nil {
		return err
	}

	displayRenderStats(ctx.App.Writer, stats, world)
	logger.Noticef("render saved as %s", out)
	return nil
}

// selectScene resolves --config or --scene and applies the command line
// overrides on top of the scene's own settings
func selectScene(ctx *cli.Context) (*scene.Scene, error) {
	ref := ctx.String("scene")
	if path := ctx.String("config"); path != "" {
		ref = path
	}

	sc, err := loaders.ResolveScene(ref, ctx.GlobalString("scenes-dir"))
	if err != nil {
		return nil, err
	}

	sc.SamplingConfig = sc.SamplingConfig.Apply(samplingOverrides(ctx))
	if fov := ctx.Float64("fov"); fov > 0 {
		sc.CameraConfig.VFov = fov
	}
	if err := sc.SamplingConfig.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// samplingOverrides collects the sampling flags given on the command line or
// through the environment. Flags left unset keep the scene's values, so an
// explicit 0 still overrides.
func samplingOverrides(ctx *cli.Context) scene.SamplingOverrides {
	var o scene.SamplingOverrides
	intFlag := func(name string) *int {
		if !ctx.IsSet(name) {
			return nil
		}
		v := ctx.Int(name)
		return &v
	}
	o.Width = intFlag("width")
	o.Height = intFlag("height")
	o.SamplesPerPixel = intFlag("spp")
	o.MaxDepth = intFlag("depth")
	o.Workers = intFlag("workers")
	if ctx.IsSet("seed") {
		seed := ctx.Int64("seed")
		o.Seed = &seed
	}
	return o
}

// progressLogger reports every tenth of the frame at Info level
func progressLogger() renderer.ProgressFunc {
	lastDecile := 0
	return func(rowsDone, rowsTotal int) {
		decile := rowsDone * 10 / rowsTotal
		if decile > lastDecile {
			lastDecile = decile
			logger.Infof("%3d%% (%d/%d rows)", decile*10, rowsDone, rowsTotal)
		}
	}
}

func displayRenderStats(w io.Writer, stats renderer.RenderStats, world *scene.World) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", stats.SamplesPerPixel)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", stats.Workers)})
	table.Append([]string{"Rays traced", fmt.Sprintf("%d", stats.RaysTraced)})
	table.Append([]string{"Average bounces", fmt.Sprintf("%.2f", stats.AverageBounces())})
	table.Append([]string{"Rays per second", fmt.Sprintf("%.0f", stats.RaysPerSecond())})

	if world.BVH != nil {
		bvh := world.BVH.Stats()
		table.Append([]string{"BVH primitives", fmt.Sprintf("%d", bvh.Primitives)})
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", bvh.Nodes, bvh.Leaves)})
		table.Append([]string{"BVH depth", fmt.Sprintf("%d max, %.1f avg leaf", bvh.MaxDepth, bvh.AvgLeafDepth)})
		table.Append([]string{"BVH largest leaf", fmt.Sprintf("%d", bvh.MaxLeafSize)})
	} else {
		table.Append([]string{"Acceleration", "none"})
	}
	table.SetFooter([]string{"Render time", stats.Duration.Round(time.Millisecond).String()})

	table.Render()
}
