package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/udhos/gwob"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

var logger = log.New("loaders")

// ErrMalformed is wrapped by every parse error
var ErrMalformed = errors.New("malformed input")

// OBJData contains the triangulated contents of a Wavefront OBJ file. Each
// distinct position/normal combination used by a face corner is one vertex.
type OBJData struct {
	Vertices      []core.Vec3 // Vertex positions
	Normals       []core.Vec3 // Per-vertex normals parallel to Vertices, nil without vn
	Faces         []int       // Vertex indices, 3 per triangle
	FaceMaterials []string    // usemtl name per triangle, "" before any usemtl
	MaterialLibs  []string    // mtllib references
}

// TriangleCount returns the number of triangles
func (d *OBJData) TriangleCount() int {
	return len(d.Faces) / 3
}

// HasAllNormals reports whether every triangle corner has a usable normal
func (d *OBJData) HasAllNormals() bool {
	if len(d.Normals) != len(d.Vertices) || len(d.Faces) == 0 {
		return false
	}
	for _, idx := range d.Faces {
		if d.Normals[idx].LengthSquared() == 0 {
			return false
		}
	}
	return true
}

func parserOptions() *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) { logger.Debug(msg) },
	}
}

// LoadOBJ opens and parses an OBJ file
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads an OBJ stream. Polygons are fanned into triangles; texture
// coordinates are ignored.
func ParseOBJ(r io.Reader) (*OBJData, error) {
	obj, err := gwob.NewObjFromReader("obj", bufio.NewReader(r), parserOptions())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}
	return newOBJData(obj), nil
}

// newOBJData unpacks the interleaved vertex buffer of a parsed OBJ
func newOBJData(obj *gwob.Obj) *OBJData {
	floatsPerVertex := obj.StrideSize / 4
	positionOffset := obj.StrideOffsetPosition / 4
	normalOffset := obj.StrideOffsetNormal / 4

	count := 0
	if floatsPerVertex > 0 {
		count = len(obj.Coord) / floatsPerVertex
	}

	data := &OBJData{
		Vertices:      make([]core.Vec3, count),
		Faces:         append([]int(nil), obj.Indices...),
		FaceMaterials: make([]string, len(obj.Indices)/3),
	}
	if obj.NormCoordFound {
		data.Normals = make([]core.Vec3, count)
	}

	for i := 0; i < count; i++ {
		base := i * floatsPerVertex
		data.Vertices[i] = vec3From32(obj.Coord[base+positionOffset:])
		if data.Normals != nil {
			data.Normals[i] = vec3From32(obj.Coord[base+normalOffset:])
		}
	}

	for _, group := range obj.Groups {
		for idx := group.IndexBegin; idx < group.IndexBegin+group.IndexCount; idx += 3 {
			data.FaceMaterials[idx/3] = group.Usemtl
		}
	}

	if obj.Mtllib != "" {
		data.MaterialLibs = []string{obj.Mtllib}
	}
	return data
}

func vec3From32(f []float32) core.Vec3 {
	return core.NewVec3(float64(f[0]), float64(f[1]), float64(f[2]))
}

// ParseMTL reads a material library and returns diffuse colors by material
// name
func ParseMTL(r io.Reader) (map[string]core.Color, error) {
	lib, err := gwob.ReadMaterialLibFromReader(bufio.NewReader(r), parserOptions())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}

	colors := make(map[string]core.Color, len(lib.Lib))
	for name, mtl := range lib.Lib {
		colors[name] = vec3From32(mtl.Kd[:])
	}
	return colors, nil
}

// MaterialFromName maps an MTL material to a surface by the first letter of
// its name: d is diffuse, g is glossy, e is a strength 5 emitter. Any other
// name absorbs.
func MaterialFromName(name string, diffuse core.Color) material.Material {
	switch {
	case strings.HasPrefix(name, "d"):
		return material.NewDiffuse(diffuse)
	case strings.HasPrefix(name, "g"):
		return material.NewGlossy(diffuse, 0.15, 0)
	case strings.HasPrefix(name, "e"):
		return material.NewEmission(diffuse, 5)
	default:
		return material.NewEmpty()
	}
}

// OBJMeshOptions controls how an OBJ file becomes a triangle mesh
type OBJMeshOptions struct {
	Override *material.Material // Use this material for every triangle instead of the MTL
	Rotation *core.Vec3         // Optional rotation in radians around X, Y, Z
	Center   *core.Vec3         // Optional rotation center
}

// LoadOBJMesh loads an OBJ file and its material libraries into a mesh.
// Vertex normals are used only when every corner has one. Degenerate faces
// are skipped.
func LoadOBJMesh(filename string, opts OBJMeshOptions) (*geometry.TriangleMesh, error) {
	startTime := time.Now()

	data, err := LoadOBJ(filename)
	if err != nil {
		return nil, err
	}

	colors := make(map[string]core.Color)
	if opts.Override == nil {
		for _, lib := range data.MaterialLibs {
			libPath := filepath.Join(filepath.Dir(filename), lib)
			libColors, err := loadMTL(libPath)
			if err != nil {
				return nil, err
			}
			for name, c := range libColors {
				colors[name] = c
			}
		}
	}

	mesh, err := data.Mesh(colors, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d triangles (%d degenerate skipped) in %v",
		filename, mesh.Len(), mesh.Skipped, time.Since(startTime))
	return mesh, nil
}

func loadMTL(path string) (map[string]core.Color, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material library: %w", err)
	}
	defer file.Close()

	colors, err := ParseMTL(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return colors, nil
}

// Mesh builds a triangle mesh from the parsed data. colors maps usemtl
// names to diffuse colors; unknown or missing names absorb.
func (d *OBJData) Mesh(colors map[string]core.Color, opts OBJMeshOptions) (*geometry.TriangleMesh, error) {
	options := &geometry.TriangleMeshOptions{
		Rotation:       opts.Rotation,
		Center:         opts.Center,
		SkipDegenerate: true,
		Materials:      make([]material.Material, d.TriangleCount()),
	}
	for i, name := range d.FaceMaterials {
		switch {
		case opts.Override != nil:
			options.Materials[i] = *opts.Override
		case name == "":
			options.Materials[i] = material.NewEmpty()
		default:
			c, ok := colors[name]
			if !ok {
				options.Materials[i] = material.NewEmpty()
				continue
			}
			options.Materials[i] = MaterialFromName(name, c)
		}
	}

	if d.HasAllNormals() {
		options.Normals = d.Normals
	}

	return geometry.NewTriangleMesh(d.Vertices, d.Faces, material.NewEmpty(), options)
}
