package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ErrInvalidCamera is wrapped by camera configuration errors
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
	VFov     float64   // Vertical field of view in degrees
	LookFrom core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Up direction
}

// DefaultCameraConfig returns a 400x200 camera looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:    400,
		Height:   200,
		VFov:     60,
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
	}
}

// Validate checks that the configuration describes a usable camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalidCamera)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("field of view %v must be in (0, 180): %w", c.VFov, ErrInvalidCamera)
	}
	if !c.LookFrom.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite: %w", ErrInvalidCamera)
	}
	forward := c.LookFrom.Subtract(c.LookAt)
	if forward.LengthSquared() == 0 {
		return fmt.Errorf("look-from and look-at coincide at %v: %w", c.LookFrom, ErrInvalidCamera)
	}
	if c.Up.Cross(forward).LengthSquared() == 0 {
		return fmt.Errorf("up vector %v is parallel to the view direction: %w", c.Up, ErrInvalidCamera)
	}
	return nil
}

// Camera maps pixels to primary rays. The viewport sits at the focus point
// (look-at) and pixel (0, 0) is the upper-left corner.
type Camera struct {
	config         CameraConfig
	center         core.Vec3
	upperLeftPixel core.Vec3 // Center of pixel (0, 0)
	deltaW         core.Vec3 // Offset between horizontally adjacent pixels
	deltaH         core.Vec3 // Offset between vertically adjacent pixels
	basisX         core.Vec3
	basisY         core.Vec3
	basisZ         core.Vec3
}

// NewCamera derives the camera basis and pixel grid from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focalLength := config.LookFrom.Subtract(config.LookAt).Length()
	h := math.Tan(config.VFov * math.Pi / 180 / 2)
	viewportWidth := 2.0 * focalLength * h
	viewportHeight := viewportWidth / (float64(config.Width) / float64(config.Height))

	// Right-handed basis with z pointing back toward the viewer
	z := config.LookFrom.Subtract(config.LookAt).Unit()
	x := config.Up.Cross(z).Unit()
	y := z.Cross(x).Unit()

	viewportW := x.Multiply(viewportWidth)
	viewportH := y.Multiply(-viewportHeight)

	deltaW := viewportW.Divide(float64(config.Width))
	deltaH := viewportH.Divide(float64(config.Height))

	upperLeft := config.LookFrom.
		Subtract(z.Multiply(focalLength)).
		Subtract(viewportW.Divide(2)).
		Subtract(viewportH.Divide(2))

	return &Camera{
		config:         config,
		center:         config.LookFrom,
		upperLeftPixel: upperLeft.Add(deltaW.Divide(2)).Add(deltaH.Divide(2)),
		deltaW:         deltaW,
		deltaH:         deltaH,
		basisX:         x,
		basisY:         y,
		basisZ:         z,
	}, nil
}

// GetRay returns a ray through a uniformly jittered point within the pixel
// at (row, col)
func (c *Camera) GetRay(row, col int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	pixelSample := c.pixelCenter(row, col).
		Add(c.deltaH.Multiply(jitter.X - 0.5)).
		Add(c.deltaW.Multiply(jitter.Y - 0.5))
	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}

// CenterRay returns the unjittered ray through the center of pixel (row, col)
func (c *Camera) CenterRay(row, col int) core.Ray {
	return core.NewRay(c.center, c.pixelCenter(row, col).Subtract(c.center))
}

func (c *Camera) pixelCenter(row, col int) core.Vec3 {
	return c.upperLeftPixel.
		Add(c.deltaH.Multiply(float64(row))).
		Add(c.deltaW.Multiply(float64(col)))
}

// GetCameraForward returns the unit direction the camera looks in
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.basisZ.Negate()
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (x, y, z core.Vec3) {
	return c.basisX, c.basisY, c.basisZ
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
