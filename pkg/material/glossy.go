package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewGlossy creates a material mixing a diffuse base with a specular coat.
// Specularity is the reflectance at normal incidence and roughness blurs the
// specular lobe toward the diffuse one; both are clamped to [0, 1].
func NewGlossy(color core.Color, specularity, roughness float64) Material {
	return Material{
		Type:        Glossy,
		Color:       color,
		Specularity: clamp01(specularity),
		Roughness:   clamp01(roughness),
	}
}

func (m Material) scatterGlossy(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	cosTheta := math.Min(rayIn.Direction.Unit().Negate().Dot(hit.Normal.Unit()), 1.0)
	reflectance := m.Specularity + (1-m.Specularity)*pow5(1-cosTheta)

	specular := 0.0
	if reflectance >= sampler.Get1D() {
		specular = 1.0
	}

	diffuseDir := core.RandomInHemisphere(hit.Normal, sampler).Add(hit.Normal).Unit()
	reflectDir := core.Reflect(rayIn.Direction, hit.Normal).Unit()

	// A specular sample with zero roughness is a perfect mirror
	weight := specular * (1 - m.Roughness)
	direction := reflectDir.Multiply(weight).Add(diffuseDir.Multiply(1 - weight)).Normalize()
	if direction.LengthSquared() == 0 {
		direction = hit.Normal
	}

	attenuation := m.Color.Multiply(1 - specular).Add(core.White.Multiply(specular))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}
}
