package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// Vec3Cfg is a JSON [x, y, z] triple
type Vec3Cfg [3]float64

// Vec3 converts the triple to a core vector
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg overrides the default camera; nil fields keep the default
type CameraCfg struct {
	LookFrom *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt   *Vec3Cfg `json:"lookAt,omitempty"`
	Up       *Vec3Cfg `json:"up,omitempty"`
	VFov     float64  `json:"vfov,omitempty"`
}

// SamplingCfg overrides the default sampling; absent fields keep the default
type SamplingCfg struct {
	Width           *int   `json:"width,omitempty"`
	Height          *int   `json:"height,omitempty"`
	SamplesPerPixel *int   `json:"spp,omitempty"`
	MaxDepth        *int   `json:"maxDepth,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
	Workers         *int   `json:"workers,omitempty"`
}

// Overrides returns the fields present in the file
func (c SamplingCfg) Overrides() scene.SamplingOverrides {
	return scene.SamplingOverrides{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		Seed:            c.Seed,
		Workers:         c.Workers,
	}
}

type BackgroundCfg struct {
	Horizon Vec3Cfg `json:"horizon"`
	Zenith  Vec3Cfg `json:"zenith"`
}

// MaterialCfg describes a named material. Type is a material variant name
// such as "diffuse" or "glossy".
type MaterialCfg struct {
	Type        string  `json:"type"`
	Color       Vec3Cfg `json:"color"`
	Roughness   float64 `json:"roughness,omitempty"`
	Specularity float64 `json:"specularity,omitempty"`
	IOR         float64 `json:"ior,omitempty"`
	Strength    float64 `json:"strength,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

type TriangleCfg struct {
	Vertices [3]Vec3Cfg  `json:"vertices"`
	Normals  *[3]Vec3Cfg `json:"normals,omitempty"`
	Material string      `json:"material"`
}

type PlaneCfg struct {
	Point    Vec3Cfg `json:"point"`
	Normal   Vec3Cfg `json:"normal"`
	Material string  `json:"material"`
}

type MeshCfg struct {
	Path      string   `json:"path"`
	Material  string   `json:"material,omitempty"` // Overrides the OBJ's own materials
	RotateDeg *Vec3Cfg `json:"rotateDeg,omitempty"`
	Center    *Vec3Cfg `json:"center,omitempty"`
}

// SceneConfig is the JSON scene file format
type SceneConfig struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Background  *BackgroundCfg         `json:"background,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres,omitempty"`
	Triangles   []TriangleCfg          `json:"triangles,omitempty"`
	Planes      []PlaneCfg             `json:"planes,omitempty"`
	Meshes      []MeshCfg              `json:"meshes,omitempty"`
}

// Build validates and constructs the material (no defaults beyond the
// constructors' own)
func (m MaterialCfg) Build() (material.Material, error) {
	t, err := material.ParseType(m.Type)
	if err != nil {
		return material.Material{}, err
	}

	color := m.Color.Vec3()
	var mat material.Material
	switch t {
	case material.Diffuse:
		mat = material.NewDiffuse(color)
	case material.Metal:
		mat = material.Material{Type: material.Metal, Color: color, Roughness: m.Roughness}
	case material.Dielectric:
		mat = material.NewDielectric(m.IOR)
	case material.Glossy:
		mat = material.Material{Type: material.Glossy, Color: color, Specularity: m.Specularity, Roughness: m.Roughness}
	case material.Emission:
		mat = material.NewEmission(color, m.Strength)
	case material.Normal:
		mat = material.NewNormal()
	case material.Stripes:
		mat = material.NewStripes()
	default:
		mat = material.NewEmpty()
	}

	if err := mat.Validate(); err != nil {
		return material.Material{}, err
	}
	return mat, nil
}

// ParseSceneConfig decodes a JSON scene, rejecting unknown fields
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}
	return &cfg, nil
}

// LoadSceneConfig reads and decodes a JSON scene file
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadScene reads a JSON scene file and builds it. Mesh paths are resolved
// relative to the file.
func LoadScene(path string) (*scene.Scene, error) {
	cfg, err := LoadSceneConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := cfg.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debugf("loaded scene %q from %s: %d primitives, %d planes",
		s.Name, path, s.GetPrimitiveCount(), len(s.Planes))
	return s, nil
}

// Build turns the configuration into a scene. Unset camera and sampling
// fields keep the scene defaults.
func (c *SceneConfig) Build(baseDir string) (*scene.Scene, error) {
	name := c.Name
	if name == "" {
		name = "untitled"
	}
	s := scene.New(name)

	if c.Camera.LookFrom != nil {
		s.CameraConfig.LookFrom = c.Camera.LookFrom.Vec3()
	}
	if c.Camera.LookAt != nil {
		s.CameraConfig.LookAt = c.Camera.LookAt.Vec3()
	}
	if c.Camera.Up != nil {
		s.CameraConfig.Up = c.Camera.Up.Vec3()
	}
	if c.Camera.VFov != 0 {
		s.CameraConfig.VFov = c.Camera.VFov
	}

	s.SamplingConfig = s.SamplingConfig.Apply(c.Sampling.Overrides())

	if c.Background != nil {
		s.Background = integrator.Background{
			Horizon: c.Background.Horizon.Vec3(),
			Zenith:  c.Background.Zenith.Vec3(),
		}
	}

	materials, err := c.buildMaterials()
	if err != nil {
		return nil, err
	}
	lookup := func(kind string, i int, name string) (material.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return material.Material{}, fmt.Errorf("%s %d: undefined material %q: %w", kind, i, name, scene.ErrInvalidConfig)
		}
		return mat, nil
	}

	for i, sc := range c.Spheres {
		mat, err := lookup("sphere", i, sc.Material)
		if err != nil {
			return nil, err
		}
		if err := s.AddSphere(sc.Center.Vec3(), sc.Radius, mat); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	if err := c.addTriangles(s, lookup); err != nil {
		return nil, err
	}

	for i, pc := range c.Planes {
		mat, err := lookup("plane", i, pc.Material)
		if err != nil {
			return nil, err
		}
		if err := s.AddPlane(pc.Point.Vec3(), pc.Normal.Vec3(), mat); err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
	}

	for i, mc := range c.Meshes {
		opts := OBJMeshOptions{}
		if mc.Material != "" {
			mat, err := lookup("mesh", i, mc.Material)
			if err != nil {
				return nil, err
			}
			opts.Override = &mat
		}
		if mc.RotateDeg != nil {
			rotation := mc.RotateDeg.Vec3().Multiply(degToRad)
			opts.Rotation = &rotation
		}
		if mc.Center != nil {
			center := mc.Center.Vec3()
			opts.Center = &center
		}

		path := mc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		mesh, err := LoadOBJMesh(path, opts)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		s.AddMesh(mesh)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

const degToRad = math.Pi / 180

func (c *SceneConfig) buildMaterials() (map[string]material.Material, error) {
	names := make([]string, 0, len(c.Materials))
	for name := range c.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mat, err := c.Materials[name].Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	return materials, nil
}

func (c *SceneConfig) addTriangles(s *scene.Scene, lookup func(string, int, string) (material.Material, error)) error {
	for i, tc := range c.Triangles {
		mat, err := lookup("triangle", i, tc.Material)
		if err != nil {
			return err
		}
		v := tc.Vertices
		if tc.Normals == nil {
			if err := s.AddTriangle(v[0].Vec3(), v[1].Vec3(), v[2].Vec3(), mat); err != nil {
				return fmt.Errorf("triangle %d: %w", i, err)
			}
			continue
		}

		tri, err := geometry.NewTriangle(v[0].Vec3(), v[1].Vec3(), v[2].Vec3(), mat)
		if err == nil {
			n := tc.Normals
			tri, err = tri.WithVertexNormals(n[0].Vec3(), n[1].Vec3(), n[2].Vec3())
		}
		if err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
		s.Primitives = append(s.Primitives, geometry.TrianglePrimitive(tri))
	}
	return nil
}
