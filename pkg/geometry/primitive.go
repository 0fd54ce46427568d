package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Kind identifies which shape a Primitive holds
type Kind uint8

const (
	KindSphere Kind = iota + 1
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	default:
		return "invalid"
	}
}

// Primitive is the closed set of bounded shapes stored in a BVH. It is
// dispatched with a switch on its kind rather than through an interface.
type Primitive struct {
	kind     Kind
	sphere   *Sphere
	triangle *Triangle
}

// SpherePrimitive wraps a sphere
func SpherePrimitive(s *Sphere) Primitive {
	return Primitive{kind: KindSphere, sphere: s}
}

// TrianglePrimitive wraps a triangle
func TrianglePrimitive(t *Triangle) Primitive {
	return Primitive{kind: KindTriangle, triangle: t}
}

// Kind returns the shape held by the primitive
func (p Primitive) Kind() Kind {
	return p.kind
}

// Sphere returns the wrapped sphere, or nil for other kinds
func (p Primitive) Sphere() *Sphere {
	return p.sphere
}

// Triangle returns the wrapped triangle, or nil for other kinds
func (p Primitive) Triangle() *Triangle {
	return p.triangle
}

// Hit tests the wrapped shape against the ray
func (p Primitive) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch p.kind {
	case KindSphere:
		return p.sphere.Hit(ray, tMin, tMax)
	case KindTriangle:
		return p.triangle.Hit(ray, tMin, tMax)
	default:
		return material.HitRecord{}, false
	}
}

// BoundingBox returns the precomputed box of the wrapped shape
func (p Primitive) BoundingBox() core.AABB {
	switch p.kind {
	case KindSphere:
		return p.sphere.bbox
	case KindTriangle:
		return p.triangle.bbox
	default:
		return core.EmptyAABB()
	}
}

// Centroid returns the point used to order primitives during BVH builds
func (p Primitive) Centroid() core.Vec3 {
	switch p.kind {
	case KindSphere:
		return p.sphere.Center
	case KindTriangle:
		return p.triangle.centroid
	default:
		return core.Vec3{}
	}
}

// Material returns the wrapped shape's material
func (p Primitive) Material() material.Material {
	switch p.kind {
	case KindSphere:
		return p.sphere.Material
	case KindTriangle:
		return p.triangle.Material
	default:
		return material.NewEmpty()
	}
}
