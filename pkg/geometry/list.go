package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// List is an unaccelerated world: every query scans all primitives and planes
type List struct {
	Primitives []Primitive
	Planes     []*Plane
}

// NewList creates a list over the given primitives and planes
func NewList(primitives []Primitive, planes []*Plane) *List {
	return &List{Primitives: primitives, Planes: planes}
}

// Hit returns the closest intersection in [tMin, tMax]. Each hit narrows the
// search range, so later objects only win when strictly closer or tied.
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, p := range l.Primitives {
		if hit, ok := p.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			hitAnything = true
			closestSoFar = hit.T
		}
	}
	for _, p := range l.Planes {
		if hit, ok := p.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			hitAnything = true
			closestSoFar = hit.T
		}
	}

	return closest, hitAnything
}

// Len returns the number of objects scanned per query
func (l *List) Len() int {
	return len(l.Primitives) + len(l.Planes)
}

// Bounds returns the union of the bounded primitives' boxes. Planes are
// unbounded and excluded.
func (l *List) Bounds() core.AABB {
	box := core.EmptyAABB()
	for _, p := range l.Primitives {
		box.Join(p.BoundingBox())
	}
	return box
}
