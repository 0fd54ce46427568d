package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewMeshScene creates a smooth-shaded icosphere and a flat-shaded one on a
// diffuse ground, lit by an emissive sphere. subdivisions controls the
// tessellation of both meshes.
func NewMeshScene(subdivisions int) *Scene {
	s := New("mesh")
	s.CameraConfig.VFov = 45
	s.CameraConfig.LookFrom = core.NewVec3(0, 2, 6)
	s.CameraConfig.LookAt = core.NewVec3(0, 1, 0)
	s.SamplingConfig = SamplingConfig{
		Width:           600,
		Height:          338,
		SamplesPerPixel: 64,
		MaxDepth:        10,
		Seed:            42,
	}

	mustAdd(s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7))))
	mustAdd(s.AddSphere(core.NewVec3(2, 6, 3), 1.5, material.NewEmission(core.NewVec3(1, 0.95, 0.85), 6)))

	smooth, err := NewIcosphere(core.NewVec3(-1.2, 1, 0), 1, subdivisions, true,
		material.NewGlossy(core.NewVec3(0.8, 0.3, 0.2), 0.15, 0))
	mustAdd(err)
	s.AddMesh(smooth)

	faceted, err := NewIcosphere(core.NewVec3(1.2, 1, 0), 1, subdivisions, false,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05))
	mustAdd(err)
	s.AddMesh(faceted)

	return s
}

// NewIcosphere tessellates a sphere by repeatedly subdividing an
// icosahedron. With smooth set, vertex normals are the radial directions.
func NewIcosphere(center core.Vec3, radius float64, subdivisions int, smooth bool, mat material.Material) (*geometry.TriangleMesh, error) {
	phi := (1 + math.Sqrt(5)) / 2
	vertices := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for i, v := range vertices {
		vertices[i] = v.Unit()
	}
	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for level := 0; level < subdivisions; level++ {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			vertices = append(vertices, vertices[a].Add(vertices[b]).Unit())
			midpoints[key] = len(vertices) - 1
			return len(vertices) - 1
		}

		next := make([]int, 0, len(faces)*4)
		for f := 0; f < len(faces); f += 3 {
			a, b, c := faces[f], faces[f+1], faces[f+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next, a, ab, ca, b, bc, ab, c, ca, bc, ab, bc, ca)
		}
		faces = next
	}

	var options geometry.TriangleMeshOptions
	if smooth {
		options.Normals = make([]core.Vec3, len(vertices))
		copy(options.Normals, vertices)
	}

	positions := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		positions[i] = center.Add(v.Multiply(radius))
	}

	return geometry.NewTriangleMesh(positions, faces, mat, &options)
}
