// Package scene assembles primitives, camera and sampling settings into
// renderable worlds.
package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// ErrInvalidConfig is wrapped by sampling and scene configuration errors
var ErrInvalidConfig = errors.New("invalid scene config")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Primitives     []geometry.Primitive // Bounded objects, placed in the BVH
	Planes         []*geometry.Plane    // Unbounded objects, scanned on every query
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	Background     integrator.Background
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base random seed
	Workers         int   // Render workers, 0 means one per CPU
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        5,
		Seed:            42,
	}
}

// Validate checks that every field is usable
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel %d must be positive: %w", c.SamplesPerPixel, ErrInvalidConfig)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth %d must not be negative: %w", c.MaxDepth, ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("worker count %d must not be negative: %w", c.Workers, ErrInvalidConfig)
	}
	return nil
}

// SamplingOverrides holds optional replacements for SamplingConfig fields.
// Nil fields keep the current value, so zero is a valid override.
type SamplingOverrides struct {
	Width           *int
	Height          *int
	SamplesPerPixel *int
	MaxDepth        *int
	Seed            *int64
	Workers         *int
}

// Apply returns c with every set field of o applied
func (c SamplingConfig) Apply(o SamplingOverrides) SamplingConfig {
	if o.Width != nil {
		c.Width = *o.Width
	}
	if o.Height != nil {
		c.Height = *o.Height
	}
	if o.SamplesPerPixel != nil {
		c.SamplesPerPixel = *o.SamplesPerPixel
	}
	if o.MaxDepth != nil {
		c.MaxDepth = *o.MaxDepth
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	return c
}

// New creates an empty scene with default camera, sampling and sky
func New(name string) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
		Background:     integrator.DefaultBackground(),
	}
}

// AddSphere validates and adds a sphere
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.Primitives = append(s.Primitives, geometry.SpherePrimitive(sphere))
	return nil
}

// AddTriangle validates and adds a flat-shaded triangle
func (s *Scene) AddTriangle(v0, v1, v2 core.Vec3, mat material.Material) error {
	tri, err := geometry.NewTriangle(v0, v1, v2, mat)
	if err != nil {
		return err
	}
	s.Primitives = append(s.Primitives, geometry.TrianglePrimitive(tri))
	return nil
}

// AddQuad adds the parallelogram corner, corner+u, corner+u+v, corner+v as
// two triangles
func (s *Scene) AddQuad(corner, u, v core.Vec3, mat material.Material) error {
	if err := s.AddTriangle(corner, corner.Add(u), corner.Add(u).Add(v), mat); err != nil {
		return err
	}
	return s.AddTriangle(corner, corner.Add(u).Add(v), corner.Add(v), mat)
}

// AddPlane validates and adds an infinite plane
func (s *Scene) AddPlane(point, normal core.Vec3, mat material.Material) error {
	plane, err := geometry.NewPlane(point, normal, mat)
	if err != nil {
		return err
	}
	s.Planes = append(s.Planes, plane)
	return nil
}

// AddMesh adds every triangle of mesh
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) {
	s.Primitives = append(s.Primitives, mesh.Primitives()...)
}

// GetPrimitiveCount returns the number of bounded primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}

// Validate checks the sampling and camera configuration
func (s *Scene) Validate() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}
	if err := s.Camera().Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// Camera returns the camera configuration sized to the sampling resolution
func (s *Scene) Camera() renderer.CameraConfig {
	config := s.CameraConfig
	config.Width = s.SamplingConfig.Width
	config.Height = s.SamplingConfig.Height
	return config
}

// mustAdd panics on construction errors in built-in scenes, whose inputs
// are constants
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
