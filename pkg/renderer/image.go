package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ToneMap averages the buffer over samples, applies gamma 2 and quantizes
// to 8-bit RGBA. Values above 1 saturate to 255.
func ToneMap(buf *PixelBuffer, samples int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	scale := 1.0 / float64(max(samples, 1))

	for y := 0; y < buf.Height; y++ {
		row := buf.Row(y)
		for x, sum := range row {
			img.SetRGBA(x, y, vec3ToColor(sum.Multiply(scale)))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA with gamma 2 and clamping
func vec3ToColor(c core.Color) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	q := math.Sqrt(v) * 255
	if q >= 255 {
		return 255
	}
	return uint8(q)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
