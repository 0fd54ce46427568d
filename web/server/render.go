package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-pathtracer/pkg/imageio"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client. Absent
// parameters keep the scene's own settings.
type RenderRequest struct {
	Scene    string
	Sampling scene.SamplingOverrides
	NoBVH    bool
}

// parseRenderRequest reads the scene and sampling query parameters
func (s *Server) parseRenderRequest(c echo.Context) (RenderRequest, error) {
	req := RenderRequest{Scene: c.QueryParam("scene")}

	var err error
	if req.Sampling.Width, err = intParam(c, "width"); err != nil {
		return req, err
	}
	if req.Sampling.Height, err = intParam(c, "height"); err != nil {
		return req, err
	}
	if req.Sampling.SamplesPerPixel, err = intParam(c, "spp"); err != nil {
		return req, err
	}
	if req.Sampling.MaxDepth, err = intParam(c, "depth"); err != nil {
		return req, err
	}
	if raw := c.QueryParam("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("parameter seed=%q is not an integer", raw)
		}
		req.Sampling.Seed = &seed
	}
	if raw := c.QueryParam("bvh"); raw != "" {
		useBVH, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("parameter bvh=%q is not a boolean", raw)
		}
		req.NoBVH = !useBVH
	}

	return req, nil
}

// prepareScene loads the requested scene, applies the overrides and checks
// the server limits
func (s *Server) prepareScene(req RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}

	sceneObj.SamplingConfig = sceneObj.SamplingConfig.Apply(req.Sampling)
	if err := sceneObj.SamplingConfig.Validate(); err != nil {
		return nil, err
	}

	sampling := sceneObj.SamplingConfig
	if pixels := sampling.Width * sampling.Height; s.config.MaxPixels > 0 && pixels > s.config.MaxPixels {
		return nil, fmt.Errorf("%dx%d exceeds the %d pixel limit: %w", sampling.Width, sampling.Height, s.config.MaxPixels, scene.ErrInvalidConfig)
	}
	if s.config.MaxSamples > 0 && sampling.SamplesPerPixel > s.config.MaxSamples {
		return nil, fmt.Errorf("%d samples exceeds the limit of %d: %w", sampling.SamplesPerPixel, s.config.MaxSamples, scene.ErrInvalidConfig)
	}
	return sceneObj, nil
}

// requestStatus maps scene preparation errors to HTTP status codes
func requestStatus(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidConfig), errors.Is(err, renderer.ErrInvalidCamera):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleRender renders a scene and responds with a PNG. The render stops
// early if the client goes away.
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	sceneObj, err := s.prepareScene(req)
	if err != nil {
		return errorResponse(c, requestStatus(err), err)
	}

	world, err := scene.Build(sceneObj, scene.BuildOptions{NoBVH: req.NoBVH})
	if err != nil {
		return errorResponse(c, requestStatus(err), err)
	}

	rt, err := world.NewRaytracer(nil)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	buf, stats, err := rt.Render(c.Request().Context())
	if err != nil {
		logger.Warningf("render of %q abandoned: %v", sceneObj.Name, err)
		return errorResponse(c, http.StatusServiceUnavailable, err)
	}

	img := renderer.ToneMap(buf, sceneObj.SamplingConfig.SamplesPerPixel)
	var out bytes.Buffer
	if err := imageio.Encode(&out, "png", img); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	logger.Infof("rendered %q %dx%d at %d spp in %v", sceneObj.Name,
		stats.Width, stats.Height, stats.SamplesPerPixel, stats.Duration.Round(time.Millisecond))

	header := c.Response().Header()
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Rays-Traced", strconv.FormatInt(stats.RaysTraced, 10))
	return c.Blob(http.StatusOK, "image/png", out.Bytes())
}
