package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete_metadata.json",
			content: `{"name": "Glass Spheres", "description": "Three glass spheres", "group": "Glass", "spheres": []}`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Glass Spheres",
				DisplayName: "Glass Spheres",
				Description: "Three glass spheres",
				Group:       "Glass",
				Type:        "file",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"description": "Just a description"}`,
			expected: SceneInfo{
				ID:          "file:partial_metadata",
				Name:        "Partial Metadata",
				DisplayName: "Partial Metadata",
				Description: "Just a description",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
		{
			name:    "no-metadata.json",
			content: `{}`,
			expected: SceneInfo{
				ID:          "file:no-metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)
			tc.expected.FilePath = path

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseSceneMetadata(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := writeSceneFile(t, dir, "broken.json", `{"name": `)
	result, err := ParseSceneMetadata(path)
	if err == nil {
		t.Error("expected an error for malformed JSON")
	}
	if result.ID != "file:broken" {
		t.Errorf("fallback ID = %q, want file:broken", result.ID)
	}
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.json", `{"name": "Beta"}`)
	writeSceneFile(t, dir, "a.json", `{"name": "Alpha"}`)
	writeSceneFile(t, dir, "broken.json", `not json`)
	writeSceneFile(t, dir, "notes.txt", `ignored`)

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("found %d scenes, want 2: %+v", len(scenes), scenes)
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("scenes not sorted by display name: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListFileScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("ListFileScenes() = %v, want empty slice", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "custom.json", `{"name": "Custom", "group": "Experiments"}`)
	writeSceneFile(t, dir, "other.json", `{"name": "Other"}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var names []string
	for _, group := range response.Groups {
		names = append(names, group.Name)
	}
	expectedGroups := []string{BuiltinGroup, "Experiments", "Scene Files"}
	if len(names) != len(expectedGroups) {
		t.Fatalf("groups = %v, want %v", names, expectedGroups)
	}
	for i := range names {
		if names[i] != expectedGroups[i] {
			t.Errorf("group %d = %q, want %q", i, names[i], expectedGroups[i])
		}
	}

	expectedScenes := []string{"default", "spheregrid", "mesh", "cornell"}
	builtIn := response.Groups[0].Scenes
	if len(builtIn) != len(expectedScenes) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(builtIn), len(expectedScenes))
	}
	for i, id := range expectedScenes {
		if builtIn[i].ID != id || builtIn[i].Type != "builtin" || builtIn[i].DisplayName == "" {
			t.Errorf("built-in scene %d = %+v, want id %q", i, builtIn[i], id)
		}
	}
}

func TestNewBuiltinScene(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("scene name = %q, want %q", s.Name, info.ID)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("built-in scene invalid: %v", err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("built-in scene has no primitives")
			}
		})
	}

	if _, err := NewBuiltinScene("dragon"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("NewBuiltinScene(dragon) error = %v, want ErrUnknownScene", err)
	}
}
