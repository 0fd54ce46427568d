package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewDielectric creates a clear refractive material such as glass (ior 1.5)
func NewDielectric(ior float64) Material {
	return Material{Type: Dielectric, Color: core.White, IOR: ior}
}

// Reflectance is Schlick's approximation for the Fresnel reflectance of a
// dielectric at the given incident cosine and refraction ratio
func Reflectance(cosine, refractionRatio float64) float64 {
	return schlick(cosine, refractionRatio)
}

func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	// Entering the material from outside uses the inverse ratio
	refractionRatio := m.IOR
	if hit.FrontFace {
		refractionRatio = 1.0 / m.IOR
	}

	unitDirection := rayIn.Direction.Unit()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal.Unit()), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: core.White,
	}
}
