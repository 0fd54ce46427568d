package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// MinHitDistance is the lower bound of every intersection query. Hits closer
// than this are treated as the surface the ray just left.
const MinHitDistance = 0.001

// PathTracer implements recursive unidirectional path tracing with a hard
// depth cutoff
type PathTracer struct {
	World      Intersector
	MaxDepth   int
	Background Background
}

// NewPathTracer creates a path tracer over world with the default background
func NewPathTracer(world Intersector, maxDepth int) *PathTracer {
	return &PathTracer{
		World:      world,
		MaxDepth:   maxDepth,
		Background: DefaultBackground(),
	}
}

// RayColor traces a camera ray with the configured depth budget
func (pt *PathTracer) RayColor(ray core.Ray, sampler core.Sampler) (core.Color, int) {
	rays := 0
	color := pt.trace(ray, pt.MaxDepth, sampler, &rays)
	return color, rays
}

// Trace returns the radiance along ray with depth bounces remaining. A depth
// of zero or less is black regardless of the scene.
func (pt *PathTracer) Trace(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	var rays int
	return pt.trace(ray, depth, sampler, &rays)
}

func (pt *PathTracer) trace(ray core.Ray, depth int, sampler core.Sampler, rays *int) core.Color {
	if depth <= 0 {
		return core.Black
	}
	*rays++

	hit, ok := pt.World.Hit(ray, MinHitDistance, math.Inf(1))
	if !ok {
		return pt.Background.Color(ray.Direction)
	}

	scatter, ok := hit.Material.Scatter(ray, hit, sampler)
	if !ok {
		return hit.Material.Emitted()
	}

	return scatter.Attenuation.MultiplyVec(pt.trace(scatter.Scattered, depth-1, sampler, rays))
}
