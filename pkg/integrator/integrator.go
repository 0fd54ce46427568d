// Package integrator computes the radiance carried along camera rays.
package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Intersector answers closest-hit queries against a scene. Both the BVH and
// the unaccelerated list satisfy it.
type Intersector interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance along a camera ray and the number of
	// ray segments traced to compute it
	RayColor(ray core.Ray, sampler core.Sampler) (core.Color, int)
}

// Background is the radiance of rays that escape the scene: a vertical
// gradient from Horizon (pointing down) to Zenith (pointing up)
type Background struct {
	Horizon core.Color
	Zenith  core.Color
}

// DefaultBackground is a white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Horizon: core.White,
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background radiance seen along direction
func (b Background) Color(direction core.Vec3) core.Color {
	a := 0.5 * (direction.Unit().Y + 1.0)
	return b.Horizon.Lerp(b.Zenith, a)
}
