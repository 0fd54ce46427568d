package loaders

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

const tinySceneJSON = `{
	"name": "tiny",
	"materials": {"white": {"type": "diffuse", "color": [1, 1, 1]}},
	"spheres": [{"center": [0, 0, -3], "radius": 1, "material": "white"}]
}`

func TestResolveScene(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.json", tinySceneJSON)

	tests := []struct {
		name     string
		ref      string
		wantName string
		wantErr  error
	}{
		{"empty is default", "", "default", nil},
		{"builtin", "cornell", "cornell", nil},
		{"file id", "file:tiny", "tiny", nil},
		{"direct path", path, "tiny", nil},
		{"unknown builtin", "teapot", "", scene.ErrUnknownScene},
		{"unknown file id", "file:huge", "", scene.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ResolveScene(tt.ref, dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Name != tt.wantName {
				t.Errorf("expected scene %q, got %q", tt.wantName, s.Name)
			}
		})
	}
}

func TestResolveSceneMissingPath(t *testing.T) {
	_, err := ResolveScene(filepath.Join(t.TempDir(), "absent.json"), "")
	if err == nil {
		t.Fatal("expected an error for a missing scene file")
	}
}

func TestBundledSceneFiles(t *testing.T) {
	dir := filepath.Join("..", "..", "scenes")
	files, err := scene.ListFileScenes(dir)
	if err != nil {
		t.Fatalf("list %s: %v", dir, err)
	}
	if len(files) == 0 {
		t.Fatalf("no scene files in %s", dir)
	}

	for _, info := range files {
		t.Run(info.ID, func(t *testing.T) {
			s, err := ResolveScene(info.ID, dir)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if _, err := scene.Build(s, scene.BuildOptions{}); err != nil {
				t.Fatalf("build: %v", err)
			}
		})
	}
}
