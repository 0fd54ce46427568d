package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// TriangleMesh is a collection of triangles sharing a vertex array. It holds
// no acceleration structure of its own; its primitives are added to the
// scene BVH.
type TriangleMesh struct {
	Triangles []*Triangle
	Skipped   int // Degenerate faces dropped when SkipDegenerate is set
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals        []core.Vec3         // Optional per-vertex normals (one per vertex)
	Materials      []material.Material // Optional per-triangle materials
	Rotation       *core.Vec3          // Optional rotation in radians around X, Y, Z
	Center         *core.Vec3          // Optional center point for rotation
	SkipDegenerate bool                // Drop zero-area faces instead of failing
}

// NewTriangleMesh creates a mesh from vertices and face indices, where each
// group of three indices forms a triangle. options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3: %w", len(faces), ErrInvalidGeometry)
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}

	numTriangles := len(faces) / 3
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("%d normals for %d vertices: %w", len(options.Normals), len(vertices), ErrInvalidGeometry)
	}
	if options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("%d materials for %d triangles: %w", len(options.Materials), numTriangles, ErrInvalidGeometry)
	}

	workingVertices := vertices
	workingNormals := options.Normals
	if options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
		if workingNormals != nil {
			workingNormals = make([]core.Vec3, len(options.Normals))
			for i, n := range options.Normals {
				workingNormals[i] = rotateVertex(n, *options.Rotation)
			}
		}
	}

	mesh := &TriangleMesh{
		Triangles: make([]*Triangle, 0, numTriangles),
		bbox:      core.EmptyAABB(),
	}

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) {
			return nil, fmt.Errorf("face %d references vertex out of range: %w", i, ErrInvalidGeometry)
		}

		triangleMaterial := mat
		if options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		triangle, err := NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial)
		if err != nil {
			if options.SkipDegenerate && errors.Is(err, ErrInvalidGeometry) {
				mesh.Skipped++
				continue
			}
			return nil, fmt.Errorf("face %d: %w", i, err)
		}

		if workingNormals != nil {
			triangle, err = triangle.WithVertexNormals(workingNormals[i0], workingNormals[i1], workingNormals[i2])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
		}

		mesh.Triangles = append(mesh.Triangles, triangle)
		mesh.bbox.Join(triangle.BoundingBox())
	}

	return mesh, nil
}

// Primitives wraps each triangle for inclusion in a BVH
func (tm *TriangleMesh) Primitives() []Primitive {
	prims := make([]Primitive, len(tm.Triangles))
	for i, t := range tm.Triangles {
		prims[i] = TrianglePrimitive(t)
	}
	return prims
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// Len returns the number of triangles in the mesh
func (tm *TriangleMesh) Len() int {
	return len(tm.Triangles)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}

	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}

	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}

	return vertex
}
