package material

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// NewEmission creates a light-emitting material radiating color × strength.
// Emissive surfaces never scatter.
func NewEmission(color core.Color, strength float64) Material {
	return Material{Type: Emission, Color: color, Strength: strength}
}
