package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box with Min=+Inf and Max=-Inf, so that adding or
// joining anything onto it yields exactly the added content
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box.Add(point)
	}
	return box
}

// Add expands the box to contain point
func (aabb *AABB) Add(point Vec3) {
	aabb.Min = aabb.Min.Min(point)
	aabb.Max = aabb.Max.Max(point)
}

// Join expands the box to contain other
func (aabb *AABB) Join(other AABB) {
	aabb.Add(other.Min)
	aabb.Add(other.Max)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	aabb.Join(other)
	return aabb
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// Zero direction components rely on IEEE division producing ±Inf. No ray
// parameter range is applied here; primitives check their own [tMin, tMax].
func (aabb AABB) Hit(ray Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) / direction
		t1 := (aabb.Max.Axis(axis) - origin) / direction
		tAxisMin := math.Min(t0, t1)
		tAxisMax := math.Max(t0, t1)

		if tAxisMax < tMin || tAxisMin > tMax {
			return false
		}

		if tAxisMin > tMin {
			tMin = tAxisMin
		}
		if tAxisMax < tMax {
			tMax = tAxisMax
		}
	}

	return true
}

// IsEmpty reports whether nothing has been added to the box
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Y is picked only when strictly longer than X, and Z only when strictly
// longer than the current pick.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	axis := 0
	if size.X < size.Y {
		axis = 1
	}
	if size.Axis(axis) < size.Z {
		axis = 2
	}
	return axis
}
