package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// ErrInvalidRenderConfig is wrapped by render configuration errors
var ErrInvalidRenderConfig = errors.New("invalid render config")

// ProgressFunc is called from the collecting goroutine after each row
// completes
type ProgressFunc func(rowsDone, rowsTotal int)

// RenderConfig contains the parameters of a single render
type RenderConfig struct {
	SamplesPerPixel int          // Camera rays per pixel
	NumWorkers      int          // Worker goroutines, 0 means one per CPU
	Seed            int64        // Base seed; each row derives its own stream
	Progress        ProgressFunc // Optional per-row callback
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SamplesPerPixel: 100,
		Seed:            42,
	}
}

// Validate checks the render parameters
func (c RenderConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel %d must be positive: %w", c.SamplesPerPixel, ErrInvalidRenderConfig)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count %d must not be negative: %w", c.NumWorkers, ErrInvalidRenderConfig)
	}
	return nil
}

// Raytracer drives an integrator over every pixel seen by a camera
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, integ integrator.Integrator, config RenderConfig) (*Raytracer, error) {
	if camera == nil {
		return nil, fmt.Errorf("camera is required: %w", ErrInvalidRenderConfig)
	}
	if integ == nil {
		return nil, fmt.Errorf("integrator is required: %w", ErrInvalidRenderConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{camera: camera, integrator: integ, config: config}, nil
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// RenderRow accumulates SamplesPerPixel samples for every pixel of row into
// out. The row's sampler is seeded from the base seed and the row index, so
// the result does not depend on which worker renders it.
func (rt *Raytracer) RenderRow(row int, out []core.Color) RenderStats {
	sampler := core.NewSeededSampler(core.StreamSeed(rt.config.Seed, row))
	spp := rt.config.SamplesPerPixel

	var rays int64
	for col := range out {
		sum := core.Black
		for s := 0; s < spp; s++ {
			ray := rt.camera.GetRay(row, col, sampler)
			color, traced := rt.integrator.RayColor(ray, sampler)
			sum = sum.Add(color)
			rays += int64(traced)
		}
		out[col] = sum
	}

	return RenderStats{
		RowsRendered: 1,
		TotalPixels:  len(out),
		TotalSamples: len(out) * spp,
		RaysTraced:   rays,
	}
}

// Render traces the whole image in parallel rows and returns the
// accumulated sums. When ctx is cancelled the partially filled buffer is
// returned along with ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	width, height := rt.camera.Width(), rt.camera.Height()
	buf := NewPixelBuffer(width, height)

	pool := NewWorkerPool(rt, buf, rt.config.NumWorkers)
	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}

	logger.Infof("rendering %dx%d at %d spp with %d workers",
		width, height, rt.config.SamplesPerPixel, stats.Workers)

	start := time.Now()
	pool.Start(ctx)
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}
	go pool.Stop()

	var renderErr error
	done := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err != nil {
			if renderErr == nil {
				renderErr = result.Err
			}
			continue
		}
		stats.add(result.Stats)
		done++
		if rt.config.Progress != nil {
			rt.config.Progress(done, height)
		}
	}
	stats.Duration = time.Since(start)

	if renderErr != nil {
		logger.Warningf("render stopped after %d/%d rows: %v", stats.RowsRendered, height, renderErr)
		return buf, stats, renderErr
	}

	logger.Infof("rendered %d rays in %v (%.0f rays/s)",
		stats.RaysTraced, stats.Duration, stats.RaysPerSecond())
	return buf, stats, nil
}
