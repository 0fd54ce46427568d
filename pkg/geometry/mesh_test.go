package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func quadVertices() []core.Vec3 {
	return []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
}

func TestTriangleMesh_Creation(t *testing.T) {
	faces := []int{0, 1, 2, 0, 2, 3}
	mesh, err := NewTriangleMesh(quadVertices(), faces, material.NewDiffuse(core.White), nil)
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}

	if mesh.Len() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.Len())
	}

	bbox := mesh.BoundingBox()
	if !bbox.Min.Equals(core.NewVec3(0, 0, 0)) || !bbox.Max.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Unexpected bounding box %v", bbox)
	}

	prims := mesh.Primitives()
	if len(prims) != 2 || prims[0].Kind() != KindTriangle {
		t.Fatalf("Expected two triangle primitives, got %v", prims)
	}

	// Both halves of the quad are hit
	for _, p := range []core.Vec3{core.NewVec3(0.8, 0.2, 1), core.NewVec3(0.2, 0.8, 1)} {
		ray := core.NewRay(p, core.NewVec3(0, 0, -1))
		if _, ok := NewBVH(prims).Hit(ray, 0.001, math.Inf(1)); !ok {
			t.Errorf("Expected hit at %v", p)
		}
	}
}

func TestTriangleMesh_Options(t *testing.T) {
	faces := []int{0, 1, 2, 0, 2, 3}
	up := core.NewVec3(0, 0, 1)

	t.Run("vertex normals", func(t *testing.T) {
		mesh, err := NewTriangleMesh(quadVertices(), faces, material.NewEmpty(), &TriangleMeshOptions{
			Normals: []core.Vec3{up, up, up, up},
		})
		if err != nil {
			t.Fatalf("NewTriangleMesh: %v", err)
		}
		for _, tri := range mesh.Triangles {
			if !tri.IsSmooth() {
				t.Error("Expected smooth triangles")
			}
		}
	})

	t.Run("per-triangle materials", func(t *testing.T) {
		mats := []material.Material{material.NewDiffuse(core.White), material.NewMetal(core.White, 0)}
		mesh, err := NewTriangleMesh(quadVertices(), faces, material.NewEmpty(), &TriangleMeshOptions{Materials: mats})
		if err != nil {
			t.Fatalf("NewTriangleMesh: %v", err)
		}
		if mesh.Triangles[1].Material.Type != material.Metal {
			t.Errorf("Expected metal second triangle, got %v", mesh.Triangles[1].Material)
		}
	})

	t.Run("rotation", func(t *testing.T) {
		rotation := core.NewVec3(0, 0, math.Pi/2)
		mesh, err := NewTriangleMesh(quadVertices(), faces, material.NewEmpty(), &TriangleMeshOptions{Rotation: &rotation})
		if err != nil {
			t.Fatalf("NewTriangleMesh: %v", err)
		}
		bbox := mesh.BoundingBox()
		if math.Abs(bbox.Min.X+1) > 1e-9 || math.Abs(bbox.Max.Y-1) > 1e-9 {
			t.Errorf("Unexpected rotated bounds %v", bbox)
		}
	})

	t.Run("skip degenerate", func(t *testing.T) {
		withDegenerate := append([]int{0, 1, 1}, faces...)
		if _, err := NewTriangleMesh(quadVertices(), withDegenerate, material.NewEmpty(), nil); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("Expected ErrInvalidGeometry, got %v", err)
		}
		mesh, err := NewTriangleMesh(quadVertices(), withDegenerate, material.NewEmpty(), &TriangleMeshOptions{SkipDegenerate: true})
		if err != nil {
			t.Fatalf("NewTriangleMesh: %v", err)
		}
		if mesh.Len() != 2 || mesh.Skipped != 1 {
			t.Errorf("Expected 2 triangles and 1 skipped, got %d and %d", mesh.Len(), mesh.Skipped)
		}
	})
}

func TestTriangleMesh_Errors(t *testing.T) {
	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{"face count", []int{0, 1}, nil},
		{"index out of range", []int{0, 1, 7}, nil},
		{"normal count", []int{0, 1, 2}, &TriangleMeshOptions{Normals: []core.Vec3{{X: 1}}}},
		{"material count", []int{0, 1, 2}, &TriangleMeshOptions{Materials: []material.Material{{}, {}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(quadVertices(), tt.faces, material.NewEmpty(), tt.options)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
