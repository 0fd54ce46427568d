package renderer

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// PixelBuffer holds per-pixel radiance sums in row-major order. Values are
// not divided by the sample count.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// Row returns the slice backing row y. Rows never overlap, so distinct rows
// may be written concurrently.
func (b *PixelBuffer) Row(y int) []core.Color {
	return b.Pixels[y*b.Width : (y+1)*b.Width]
}

// At returns the accumulated sum for pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Color {
	return b.Pixels[y*b.Width+x]
}

// Equal reports whether two buffers hold identical sums
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, p := range b.Pixels {
		if !p.Equals(other.Pixels[i]) {
			return false
		}
	}
	return true
}
