// Package imageio encodes rendered images in the format named by a file
// extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Encoder writes an image to w
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	"png": png.Encode,
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	},
}

var aliases = map[string]string{"tif": "tiff"}

// Formats returns the supported format names
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatFromPath returns the format name for path's extension
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if alias, ok := aliases[ext]; ok {
		ext = alias
	}
	if _, ok := encoders[ext]; !ok {
		return "", fmt.Errorf("%q (supported: %s): %w", filepath.Ext(path), strings.Join(Formats(), ", "), ErrUnsupportedFormat)
	}
	return ext, nil
}

// Encode writes img to w in the named format
func Encode(w io.Writer, format string, img image.Image) error {
	encoder, ok := encoders[format]
	if !ok {
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return encoder(w, img)
}

// Write encodes img to path, choosing the format from the extension. Parent
// directories are created as needed.
func Write(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, format, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}
