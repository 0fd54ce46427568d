package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// metalRatio is the fixed refractive ratio used for the Fresnel tint of metals
const metalRatio = 2.2

// NewMetal creates a metallic material. Roughness is clamped to [0, 1].
func NewMetal(color core.Color, roughness float64) Material {
	return Material{Type: Metal, Color: color, Roughness: clamp01(roughness)}
}

func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	ratio := metalRatio
	if hit.FrontFace {
		ratio = 1.0 / metalRatio
	}

	cosTheta := math.Min(rayIn.Direction.Unit().Negate().Dot(hit.Normal.Unit()), 1.0)
	reflectance := schlick(cosTheta, ratio)

	direction := core.Reflect(rayIn.Direction, hit.Normal)
	if m.Roughness > 0 {
		direction = direction.Add(core.RandomUnitVector(sampler).Multiply(m.Roughness))
	}

	// Grazing angles tint toward white
	attenuation := m.Color.Multiply(1 - reflectance).Add(core.White.Multiply(reflectance))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}
}
