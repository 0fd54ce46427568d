// Package material defines the closed set of surface materials and how each
// one scatters or absorbs an incoming ray.
package material

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ErrInvalidMaterial is wrapped by every material validation failure.
var ErrInvalidMaterial = errors.New("invalid material")

// Type identifies a material variant
type Type int

// Material variants. Empty is the zero value so an unassigned surface absorbs.
const (
	Empty Type = iota
	Diffuse
	Metal
	Dielectric
	Glossy
	Emission
	Normal
	Stripes
)

var typeNames = map[Type]string{
	Empty:      "empty",
	Diffuse:    "diffuse",
	Metal:      "metal",
	Dielectric: "dielectric",
	Glossy:     "glossy",
	Emission:   "emission",
	Normal:     "normal",
	Stripes:    "stripes",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a lower-case variant name back to its Type
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("unknown material type %q: %w", name, ErrInvalidMaterial)
}

// Material is a small value type copied into every primitive and hit record.
// Only the fields relevant to Type are meaningful.
type Material struct {
	Type        Type
	Color       core.Color // Base color, or emitted color for Emission
	Roughness   float64    // Metal fuzz or glossy lobe blur, in [0, 1]
	Specularity float64    // Glossy base reflectance, in [0, 1]
	IOR         float64    // Dielectric index of refraction
	Strength    float64    // Emission multiplier
}

// ScatterResult is the continuation of a path after a surface interaction
type ScatterResult struct {
	Scattered   core.Ray   // The outgoing ray
	Attenuation core.Color // Color the traced radiance is multiplied by
}

// NewEmpty returns the absorbing placeholder material
func NewEmpty() Material {
	return Material{Type: Empty}
}

// Scatter dispatches on the variant. It returns false when the path terminates
// at this surface, in which case Emitted gives the path's value.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Type {
	case Diffuse:
		return m.scatterDiffuse(hit, sampler), true
	case Metal:
		return m.scatterMetal(rayIn, hit, sampler), true
	case Dielectric:
		return m.scatterDielectric(rayIn, hit, sampler), true
	case Glossy:
		return m.scatterGlossy(rayIn, hit, sampler), true
	case Normal:
		return scatterNormal(hit), true
	case Stripes:
		return scatterStripes(hit), true
	default:
		return ScatterResult{}, false
	}
}

// Emitted returns the radiance of a non-scattering surface
func (m Material) Emitted() core.Color {
	if m.Type == Emission {
		return m.Color.Multiply(m.Strength)
	}
	return core.Black
}

// IsEmissive reports whether the material contributes light
func (m Material) IsEmissive() bool {
	return m.Type == Emission && m.Strength > 0 && !m.Color.Equals(core.Black)
}

// Validate rejects parameters that would produce NaNs or negative radiance
func (m Material) Validate() error {
	if !m.Color.IsFinite() || m.Color.X < 0 || m.Color.Y < 0 || m.Color.Z < 0 {
		return fmt.Errorf("%s: color %v must be finite and non-negative: %w", m.Type, m.Color, ErrInvalidMaterial)
	}

	switch m.Type {
	case Dielectric:
		if !(m.IOR > 0) || !isFinite(m.IOR) {
			return fmt.Errorf("dielectric: index of refraction %v must be positive: %w", m.IOR, ErrInvalidMaterial)
		}
	case Emission:
		if !(m.Strength >= 0) || !isFinite(m.Strength) {
			return fmt.Errorf("emission: strength %v must be non-negative: %w", m.Strength, ErrInvalidMaterial)
		}
	case Metal, Glossy:
		if !(m.Roughness >= 0 && m.Roughness <= 1) {
			return fmt.Errorf("%s: roughness %v outside [0, 1]: %w", m.Type, m.Roughness, ErrInvalidMaterial)
		}
		if !(m.Specularity >= 0 && m.Specularity <= 1) {
			return fmt.Errorf("%s: specularity %v outside [0, 1]: %w", m.Type, m.Specularity, ErrInvalidMaterial)
		}
	case Empty, Diffuse, Normal, Stripes:
	default:
		return fmt.Errorf("unknown material type %d: %w", int(m.Type), ErrInvalidMaterial)
	}
	return nil
}

func (m Material) String() string {
	switch m.Type {
	case Diffuse:
		return fmt.Sprintf("diffuse(%v)", m.Color)
	case Metal:
		return fmt.Sprintf("metal(%v, roughness=%g)", m.Color, m.Roughness)
	case Dielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.IOR)
	case Glossy:
		return fmt.Sprintf("glossy(%v, specularity=%g, roughness=%g)", m.Color, m.Specularity, m.Roughness)
	case Emission:
		return fmt.Sprintf("emission(%v, strength=%g)", m.Color, m.Strength)
	default:
		return m.Type.String()
	}
}

// schlick approximates Fresnel reflectance for the cosine of the incident
// angle and the ratio of refractive indices
func schlick(cosine, ratio float64) float64 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 = r0 * r0
	return r0 + (1-r0)*pow5(1-cosine)
}

func pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
