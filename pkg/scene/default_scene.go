package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewDefaultScene creates the demo scene: a glossy blue ground plane with a
// glossy white sphere, a brushed metal sphere and a single triangle
func NewDefaultScene() *Scene {
	s := New("default")
	s.CameraConfig.VFov = 60
	s.CameraConfig.LookFrom = core.NewVec3(0, 1, 10)
	s.CameraConfig.LookAt = core.NewVec3(0, 1, 1)
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        5,
		Seed:            42,
	}

	ground := material.NewGlossy(core.NewVec3(0.1, 0.1, 0.4), 0.02, 0.1)
	glossyWhite := material.NewGlossy(core.White, 0.15, 0.0)
	brushed := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.2)
	clay := material.NewDiffuse(core.NewVec3(0.4, 0.2, 0.1))

	mustAdd(s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground))
	mustAdd(s.AddSphere(core.NewVec3(2, 1, 2), 1, glossyWhite))
	mustAdd(s.AddSphere(core.NewVec3(-2, 1, 2), 1, brushed))
	mustAdd(s.AddTriangle(
		core.NewVec3(0, 1, 2),
		core.NewVec3(1, 1, 2),
		core.NewVec3(0, 2, 0),
		clay,
	))

	return s
}
