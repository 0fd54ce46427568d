package material

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// HitRecord contains information about a ray-surface intersection. It is
// returned by value from intersection queries and never stored.
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing the incoming ray
	FrontFace bool      // Whether the ray hit the outside face
	Material  Material  // Copy of the hit primitive's material
}

// SetFaceNormal orients the normal against the ray. A ray grazing the surface
// exactly counts as hitting the front face.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	if ray.Direction.Dot(outwardNormal) > 0 {
		h.Normal = outwardNormal.Negate()
		h.FrontFace = false
	} else {
		h.Normal = outwardNormal
		h.FrontFace = true
	}
}
