package material

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// NewDiffuse creates a matte material of the given color
func NewDiffuse(color core.Color) Material {
	return Material{Type: Diffuse, Color: color}
}

func (m Material) scatterDiffuse(hit HitRecord, sampler core.Sampler) ScatterResult {
	// Offsetting a hemisphere sample by the normal biases directions toward it
	direction := core.RandomInHemisphere(hit.Normal, sampler).Add(hit.Normal)

	// Catch degenerate scatter direction
	if direction.LengthSquared() < 1e-16 {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Color,
	}
}
