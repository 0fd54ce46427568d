package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices, with
// optional per-vertex normals for smooth shading
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle

	normal        core.Vec3     // Unnormalized face normal, cross(V1-V0, V2-V0)
	area          float64       // Twice the triangle's area
	vertexNormals *[3]core.Vec3 // Normals at V0, V1, V2, or nil for flat shading
	bbox          core.AABB
	centroid      core.Vec3
}

// NewTriangle creates a flat-shaded triangle. Vertices must be finite and
// must not be collinear.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) (*Triangle, error) {
	if !v0.IsFinite() || !v1.IsFinite() || !v2.IsFinite() {
		return nil, fmt.Errorf("triangle vertices %v %v %v are not finite: %w", v0, v1, v2, ErrInvalidGeometry)
	}

	normal := v1.Subtract(v0).Cross(v2.Subtract(v0))
	area := normal.Length()
	if area == 0 || !isFinite(area) {
		return nil, fmt.Errorf("triangle %v %v %v has zero area: %w", v0, v1, v2, ErrInvalidGeometry)
	}

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   normal,
		area:     area,
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
		centroid: v0.Add(v1).Add(v2).Divide(3),
	}, nil
}

// WithVertexNormals returns a copy of the triangle that interpolates the
// given normals (at V0, V1, V2) across its surface
func (t *Triangle) WithVertexNormals(n0, n1, n2 core.Vec3) (*Triangle, error) {
	for _, n := range []core.Vec3{n0, n1, n2} {
		if !n.IsFinite() || n.LengthSquared() == 0 {
			return nil, fmt.Errorf("vertex normal %v must be finite and non-zero: %w", n, ErrInvalidGeometry)
		}
	}

	smooth := *t
	smooth.vertexNormals = &[3]core.Vec3{n0, n1, n2}
	return &smooth, nil
}

// Hit tests if a ray intersects with the triangle: a ray-plane intersection
// followed by an inside test against each of the three edges
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if !t.bbox.Hit(ray) {
		return material.HitRecord{}, false
	}

	// Parallel to the plane
	dDotN := ray.Direction.Dot(t.normal)
	if dDotN == 0 {
		return material.HitRecord{}, false
	}

	tParam := t.V0.Subtract(ray.Origin).Dot(t.normal) / dDotN
	if tParam < tMin || tParam > tMax {
		return material.HitRecord{}, false
	}

	p := ray.At(tParam)

	// Each edge cross must agree with the face normal
	c0 := t.V1.Subtract(t.V0).Cross(p.Subtract(t.V0))
	if t.normal.Dot(c0) < 0 {
		return material.HitRecord{}, false
	}
	c1 := t.V2.Subtract(t.V1).Cross(p.Subtract(t.V1))
	if t.normal.Dot(c1) < 0 {
		return material.HitRecord{}, false
	}
	c2 := t.V0.Subtract(t.V2).Cross(p.Subtract(t.V2))
	if t.normal.Dot(c2) < 0 {
		return material.HitRecord{}, false
	}

	normal := t.normal
	if t.vertexNormals != nil {
		// Sub-triangle opposite a vertex gives that vertex's weight
		w0 := c1.Length() / t.area
		w1 := c2.Length() / t.area
		w2 := 1 - w0 - w1
		n := t.vertexNormals
		normal = n[0].Multiply(w0).Add(n[1].Multiply(w1)).Add(n[2].Multiply(w2))
	}

	hit := material.HitRecord{
		T:        tParam,
		Point:    p,
		Material: t.Material,
	}
	hit.SetFaceNormal(ray, normal.Normalize())

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Centroid returns the mean of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.centroid
}

// Normal returns the unit face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal.Unit()
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area / 2
}

// IsSmooth reports whether the triangle interpolates vertex normals
func (t *Triangle) IsSmooth() bool {
	return t.vertexNormals != nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
