package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// SphereGridSize is the number of cells along each side of the grid
const SphereGridSize = 22

// NewSphereGridScene creates a grid of small spheres with randomly chosen
// diffuse, metal or glass materials around three large feature spheres.
// Layout and materials are fully determined by seed.
func NewSphereGridScene(seed int64) *Scene {
	s := New("spheregrid")
	s.CameraConfig.VFov = 25
	s.CameraConfig.LookFrom = core.NewVec3(13, 2, 3)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, 0)
	s.SamplingConfig = SamplingConfig{
		Width:           600,
		Height:          338,
		SamplesPerPixel: 64,
		MaxDepth:        20,
		Seed:            42,
	}

	random := rand.New(rand.NewSource(seed))
	between := func(lo, hi float64) float64 { return lo + (hi-lo)*random.Float64() }

	mustAdd(s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))))

	half := SphereGridSize / 2
	for i := -half; i < half; i++ {
		for j := -half; j < half; j++ {
			center := core.NewVec3(float64(i)+0.9*random.Float64(), 0.2, float64(j)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			// Hue across the grid, chroma from the random draw
			hue := float64(i+half) / float64(SphereGridSize) * 360
			var mat material.Material
			switch choose := random.Float64(); {
			case choose < 0.8:
				mat = material.NewDiffuse(oklchToRGB(0.65, between(0.05, 0.25), hue))
			case choose < 0.95:
				mat = material.NewMetal(oklchToRGB(0.8, between(0.02, 0.12), hue), between(0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}
			mustAdd(s.AddSphere(center, 0.2, mat))
		}
	}

	mustAdd(s.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)))
	mustAdd(s.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewDiffuse(core.NewVec3(0.4, 0.2, 0.1))))
	mustAdd(s.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)))

	return s
}
