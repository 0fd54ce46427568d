package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit                bool                   `json:"hit"`
	MaterialType       string                 `json:"materialType,omitempty"`
	MaterialProperties map[string]interface{} `json:"materialProperties,omitempty"`
	GeometryType       string                 `json:"geometryType,omitempty"`
	GeometryProperties map[string]interface{} `json:"geometryProperties,omitempty"`
	Point              [3]float64             `json:"point"`
	Normal             [3]float64             `json:"normal"`
	Distance           float64                `json:"distance"`
	FrontFace          bool                   `json:"frontFace"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes the parameters relevant to the material type
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Type {
	case material.Diffuse:
		properties["color"] = hexColor(mat.Color)
	case material.Metal:
		properties["color"] = hexColor(mat.Color)
		properties["roughness"] = mat.Roughness
	case material.Dielectric:
		properties["ior"] = mat.IOR
		properties["reflectanceAtNormal"] = material.Reflectance(1, 1/mat.IOR)
	case material.Glossy:
		properties["color"] = hexColor(mat.Color)
		properties["specularity"] = mat.Specularity
		properties["roughness"] = mat.Roughness
	case material.Emission:
		properties["emission"] = vec(mat.Emitted())
		properties["color"] = hexColor(mat.Color)
		properties["strength"] = mat.Strength
	}

	return mat.Type.String(), properties
}

// extractGeometryInfo describes a primitive
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	bbox := p.BoundingBox()
	properties["boundingBox"] = map[string]interface{}{
		"min": vec(bbox.Min),
		"max": vec(bbox.Max),
	}

	switch p.Kind() {
	case geometry.KindSphere:
		sphere := p.Sphere()
		properties["center"] = vec(sphere.Center)
		properties["radius"] = sphere.Radius
	case geometry.KindTriangle:
		tri := p.Triangle()
		properties["normal"] = vec(tri.Normal().Unit())
		properties["area"] = tri.Area()
		properties["smooth"] = tri.IsSmooth()
	}
	return p.Kind().String(), properties
}

// inspectPixel casts the center ray of pixel (x, y) and describes the
// closest object. The BVH does not report which primitive it hit, so the
// primitive is recovered by matching the hit distance.
func inspectPixel(world *scene.World, x, y int) InspectResponse {
	ray := world.Camera.CenterRay(y, x)
	hit, ok := world.Hit(ray, integrator.MinHitDistance, math.Inf(1))
	if !ok {
		return InspectResponse{Hit: false}
	}

	response := InspectResponse{
		Hit:       true,
		Point:     vec(hit.Point),
		Normal:    vec(hit.Normal),
		Distance:  hit.T * ray.Direction.Length(),
		FrontFace: hit.FrontFace,
	}
	response.MaterialType, response.MaterialProperties = extractMaterialInfo(hit.Material)

	for _, p := range world.Scene.Primitives {
		if h, ok := p.Hit(ray, integrator.MinHitDistance, hit.T); ok && h.T == hit.T {
			response.GeometryType, response.GeometryProperties = extractGeometryInfo(p)
			return response
		}
	}
	for _, plane := range world.Scene.Planes {
		if h, ok := plane.Hit(ray, integrator.MinHitDistance, hit.T); ok && h.T == hit.T {
			response.GeometryType = "plane"
			response.GeometryProperties = map[string]interface{}{
				"point":  vec(plane.Point),
				"normal": vec(plane.Normal),
			}
			return response
		}
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	x, err := requiredIntParam(c, "x")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	y, err := requiredIntParam(c, "y")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	sceneObj, err := s.prepareScene(req)
	if err != nil {
		return errorResponse(c, requestStatus(err), err)
	}
	sampling := sceneObj.SamplingConfig
	if x < 0 || y < 0 || x >= sampling.Width || y >= sampling.Height {
		return errorResponse(c, http.StatusBadRequest,
			fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, sampling.Width, sampling.Height))
	}

	world, err := scene.Build(sceneObj, scene.BuildOptions{NoBVH: req.NoBVH})
	if err != nil {
		return errorResponse(c, requestStatus(err), err)
	}

	return c.JSON(http.StatusOK, inspectPixel(world, x, y))
}
