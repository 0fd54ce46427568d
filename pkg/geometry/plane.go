package geometry

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal. Planes
// have no bounding box and are only tested by full scans.
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane, normalizing its normal
func NewPlane(point, normal core.Vec3, mat material.Material) (*Plane, error) {
	if !point.IsFinite() {
		return nil, fmt.Errorf("plane point %v is not finite: %w", point, ErrInvalidGeometry)
	}
	if !normal.IsFinite() || normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("plane normal %v must be finite and non-zero: %w", normal, ErrInvalidGeometry)
	}

	return &Plane{
		Point:    point,
		Normal:   normal.Unit(),
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the plane within [tMin, tMax]
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if denominator == 0 {
		return material.HitRecord{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return material.HitRecord{}, false
	}

	hit := material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}
