package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.viam.com/test"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// constantIntegrator returns the same color for every ray
type constantIntegrator struct {
	color core.Color
	calls atomic.Int64
}

func (c *constantIntegrator) RayColor(ray core.Ray, sampler core.Sampler) (core.Color, int) {
	c.calls.Add(1)
	return c.color, 1
}

func smallCamera(t *testing.T, width, height int) *Camera {
	t.Helper()
	config := DefaultCameraConfig()
	config.Width = width
	config.Height = height
	camera, err := NewCamera(config)
	test.That(t, err, test.ShouldBeNil)
	return camera
}

// testWorld is a lit diffuse sphere over a mirror ground
func testWorld(t *testing.T) integrator.Intersector {
	t.Helper()
	var prims []geometry.Primitive
	add := func(center core.Vec3, radius float64, mat material.Material) {
		s, err := geometry.NewSphere(center, radius, mat)
		test.That(t, err, test.ShouldBeNil)
		prims = append(prims, geometry.SpherePrimitive(s))
	}
	add(core.NewVec3(0, 0, -1), 0.5, material.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3)))
	add(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	add(core.NewVec3(1, 0.5, -1.5), 0.25, material.NewEmission(core.White, 4))
	add(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))
	return geometry.NewBVH(prims)
}

func TestRaytracer_ConstantIntegrator(t *testing.T) {
	integ := &constantIntegrator{color: core.NewVec3(0.25, 0.5, 1)}
	rt, err := NewRaytracer(smallCamera(t, 5, 3), integ, RenderConfig{SamplesPerPixel: 4, NumWorkers: 2})
	test.That(t, err, test.ShouldBeNil)

	buf, stats, err := rt.Render(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.Width, test.ShouldEqual, 5)
	test.That(t, buf.Height, test.ShouldEqual, 3)

	for i, p := range buf.Pixels {
		if !p.Equals(core.NewVec3(1, 2, 4)) {
			t.Fatalf("pixel %d = %v, want (1, 2, 4)", i, p)
		}
	}

	test.That(t, integ.calls.Load(), test.ShouldEqual, int64(5*3*4))
	test.That(t, stats.RowsRendered, test.ShouldEqual, 3)
	test.That(t, stats.TotalPixels, test.ShouldEqual, 15)
	test.That(t, stats.TotalSamples, test.ShouldEqual, 60)
	test.That(t, stats.RaysTraced, test.ShouldEqual, int64(60))
	test.That(t, stats.Workers, test.ShouldEqual, 2)
	test.That(t, stats.Complete(), test.ShouldBeTrue)
	test.That(t, stats.AverageBounces(), test.ShouldEqual, 1.0)
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	world := testWorld(t)
	camera := smallCamera(t, 16, 8)

	render := func(workers int, seed int64) *PixelBuffer {
		rt, err := NewRaytracer(camera, integrator.NewPathTracer(world, 10),
			RenderConfig{SamplesPerPixel: 3, NumWorkers: workers, Seed: seed})
		test.That(t, err, test.ShouldBeNil)
		buf, _, err := rt.Render(context.Background())
		test.That(t, err, test.ShouldBeNil)
		return buf
	}

	reference := render(1, 42)
	for _, workers := range []int{2, 5, 16} {
		if !render(workers, 42).Equal(reference) {
			t.Errorf("render with %d workers differs from single worker", workers)
		}
	}

	if render(4, 43).Equal(reference) {
		t.Error("different seeds produced identical images")
	}
}

func TestRaytracer_RowMatchesFullRender(t *testing.T) {
	world := testWorld(t)
	rt, err := NewRaytracer(smallCamera(t, 8, 4), integrator.NewPathTracer(world, 8),
		RenderConfig{SamplesPerPixel: 2, NumWorkers: 3, Seed: 9})
	test.That(t, err, test.ShouldBeNil)

	buf, _, err := rt.Render(context.Background())
	test.That(t, err, test.ShouldBeNil)

	row := make([]core.Color, 8)
	stats := rt.RenderRow(2, row)
	test.That(t, stats.TotalPixels, test.ShouldEqual, 8)
	for x := range row {
		if !row[x].Equals(buf.At(x, 2)) {
			t.Fatalf("pixel (%d, 2) = %v in row render, %v in full render", x, row[x], buf.At(x, 2))
		}
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	integ := &constantIntegrator{color: core.White}
	rt, err := NewRaytracer(smallCamera(t, 4, 6), integ, RenderConfig{SamplesPerPixel: 1, NumWorkers: 2})
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf, stats, err := rt.Render(ctx)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
	test.That(t, buf, test.ShouldNotBeNil)
	test.That(t, stats.RowsRendered, test.ShouldEqual, 0)
	test.That(t, stats.Complete(), test.ShouldBeFalse)
	test.That(t, integ.calls.Load(), test.ShouldEqual, int64(0))
}

func TestRaytracer_Progress(t *testing.T) {
	var calls []int
	rt, err := NewRaytracer(smallCamera(t, 2, 5), &constantIntegrator{color: core.White}, RenderConfig{
		SamplesPerPixel: 1,
		NumWorkers:      3,
		Progress: func(done, total int) {
			test.That(t, total, test.ShouldEqual, 5)
			calls = append(calls, done)
		},
	})
	test.That(t, err, test.ShouldBeNil)

	_, _, err = rt.Render(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, calls, test.ShouldResemble, []int{1, 2, 3, 4, 5})
}

func TestNewRaytracer_Validation(t *testing.T) {
	camera := smallCamera(t, 2, 2)
	integ := &constantIntegrator{}

	tests := []struct {
		name   string
		camera *Camera
		integ  integrator.Integrator
		config RenderConfig
	}{
		{"nil camera", nil, integ, DefaultRenderConfig()},
		{"nil integrator", camera, nil, DefaultRenderConfig()},
		{"zero samples", camera, integ, RenderConfig{SamplesPerPixel: 0}},
		{"negative workers", camera, integ, RenderConfig{SamplesPerPixel: 1, NumWorkers: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(tt.camera, tt.integ, tt.config)
			test.That(t, errors.Is(err, ErrInvalidRenderConfig), test.ShouldBeTrue)
		})
	}
}
