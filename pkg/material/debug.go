package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewNormal creates a debug material that shades surfaces by their normal
func NewNormal() Material {
	return Material{Type: Normal}
}

// NewStripes creates a debug material with a procedural black and white
// pattern in the XY plane
func NewStripes() Material {
	return Material{Type: Stripes}
}

func scatterNormal(hit HitRecord) ScatterResult {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, hit.Normal),
		Attenuation: hit.Normal.Add(core.White).Multiply(0.5),
	}
}

func scatterStripes(hit HitRecord) ScatterResult {
	a := (math.Sin(hit.Point.X)+1)/2 + (math.Sin(hit.Point.Y)+1)/2
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, hit.Normal),
		Attenuation: core.Black.Lerp(core.White, a),
	}
}
