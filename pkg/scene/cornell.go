package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box built from triangles, lit
// only by an emissive panel below the ceiling
func NewCornellScene() *Scene {
	s := New("cornell")
	s.CameraConfig.VFov = 40
	s.CameraConfig.LookFrom = core.NewVec3(278, 278, -800)
	s.CameraConfig.LookAt = core.NewVec3(278, 278, 0)
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 150,
		MaxDepth:        40,
		Seed:            42,
	}
	s.Background = integrator.Background{Horizon: core.Black, Zenith: core.Black}

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmission(core.NewVec3(1, 0.9, 0.75), 15)

	// Standard 555 unit box
	boxSize := 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)
	origin := core.NewVec3(0, 0, 0)

	mustAdd(s.AddQuad(origin, x, z, white)) // floor
	mustAdd(s.AddQuad(y, x, z, white))      // ceiling
	mustAdd(s.AddQuad(z, x, y, white))      // back wall
	mustAdd(s.AddQuad(origin, z, y, red))   // left wall
	mustAdd(s.AddQuad(x, z, y, green))      // right wall

	// Light panel just below the ceiling
	mustAdd(s.AddQuad(core.NewVec3(213, 554, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105), light))

	// Glass and mirror spheres in place of the usual blocks
	mustAdd(s.AddSphere(core.NewVec3(185, 90, 169), 90, material.NewDielectric(1.5)))
	mustAdd(s.AddSphere(core.NewVec3(370, 120, 351), 120, material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0)))

	return s
}
