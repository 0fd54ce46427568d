package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// ResolveScene turns a scene reference into a scene. An empty reference is
// the default scene, "file:<name>" is <name>.json in scenesDir, a path
// ending in .json is loaded directly and anything else names a built-in.
func ResolveScene(ref, scenesDir string) (*scene.Scene, error) {
	switch {
	case ref == "":
		return scene.NewDefaultScene(), nil
	case strings.HasPrefix(ref, "file:"):
		files, err := scene.ListFileScenes(scenesDir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.ID == ref {
				return LoadScene(f.FilePath)
			}
		}
		return nil, fmt.Errorf("%q in %s: %w", ref, scenesDir, scene.ErrUnknownScene)
	case strings.EqualFold(filepath.Ext(ref), ".json"):
		return LoadScene(ref)
	default:
		return scene.NewBuiltinScene(ref)
	}
}
