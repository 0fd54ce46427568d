package scene

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// BuildOptions controls how the acceleration structure is constructed
type BuildOptions struct {
	NoBVH    bool // Scan every object on every query
	LeafSize int  // Primitives per BVH leaf, 0 means the default
	MaxDepth int  // BVH recursion limit, 0 means the default
}

// World is a scene prepared for rendering. Bounded primitives live in the
// BVH; planes are scanned after it.
type World struct {
	Scene      *Scene
	BVH        *geometry.BVH  // nil when built with NoBVH
	List       *geometry.List // set when built with NoBVH
	Camera     *renderer.Camera
	Integrator *integrator.PathTracer
}

// Build validates the scene and constructs its acceleration structure,
// camera and integrator
func Build(s *Scene, opts BuildOptions) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	camera, err := renderer.NewCamera(s.Camera())
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}

	w := &World{Scene: s, Camera: camera}
	if opts.NoBVH {
		w.List = geometry.NewList(s.Primitives, s.Planes)
		logger.Infof("scene %q: %d primitives, %d planes, no BVH", s.Name, len(s.Primitives), len(s.Planes))
	} else {
		buildOpts := geometry.DefaultBuildOptions()
		if opts.LeafSize > 0 {
			buildOpts.LeafSize = opts.LeafSize
		}
		if opts.MaxDepth > 0 {
			buildOpts.MaxDepth = opts.MaxDepth
		}
		bvh, err := geometry.BuildWithOptions(s.Primitives, identity(len(s.Primitives)), buildOpts)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
		w.BVH = bvh
		if log.Enabled(log.Info) {
			stats := bvh.Stats()
			logger.Infof("scene %q: %d primitives in %d BVH nodes (max depth %d), %d planes",
				s.Name, stats.Primitives, stats.Nodes, stats.MaxDepth, len(s.Planes))
		}
	}

	w.Integrator = &integrator.PathTracer{
		World:      w,
		MaxDepth:   s.SamplingConfig.MaxDepth,
		Background: s.Background,
	}
	return w, nil
}

// Hit returns the closest intersection across the BVH and the planes. A
// plane at exactly the same distance as a primitive wins, matching the scan
// order of the unaccelerated list.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if w.List != nil {
		return w.List.Hit(ray, tMin, tMax)
	}

	closest, hitAnything := w.BVH.Hit(ray, tMin, tMax)
	if hitAnything {
		tMax = closest.T
	}
	for _, p := range w.Scene.Planes {
		if hit, ok := p.Hit(ray, tMin, tMax); ok {
			closest = hit
			hitAnything = true
			tMax = hit.T
		}
	}
	return closest, hitAnything
}

// NewRaytracer creates a raytracer for the world using its sampling config
func (w *World) NewRaytracer(progress renderer.ProgressFunc) (*renderer.Raytracer, error) {
	sampling := w.Scene.SamplingConfig
	return renderer.NewRaytracer(w.Camera, w.Integrator, renderer.RenderConfig{
		SamplesPerPixel: sampling.SamplesPerPixel,
		NumWorkers:      sampling.Workers,
		Seed:            sampling.Seed,
		Progress:        progress,
	})
}

func identity(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
