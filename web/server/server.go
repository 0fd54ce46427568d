package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/df07/go-bvh-pathtracer/pkg/sysinfo"
)

var logger = log.New("server")

// Config contains the server settings and per-request limits
type Config struct {
	Port       int
	ScenesDir  string // Directory scanned for JSON scene files
	MaxPixels  int    // Largest width*height a request may ask for
	MaxSamples int    // Largest samples per pixel a request may ask for
	Console    *Console
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Port:       8080,
		ScenesDir:  "scenes",
		MaxPixels:  1920 * 1080,
		MaxSamples: 1024,
	}
}

// Server handles web requests for the path tracer
type Server struct {
	config Config
	echo   *echo.Echo
}

// NewServer creates a server and registers its routes
func NewServer(config Config) *Server {
	if config.Console == nil {
		config.Console = NewConsole(200)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	s := &Server{config: config, echo: e}
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)
	e.GET("/api/console", s.handleConsole)
	e.GET("/api/system", s.handleSystem)
	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the configured port until Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// errorResponse writes a JSON error body
func errorResponse(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, response)
}

// handleConsole returns recent log lines
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.config.Console.Messages())
}

// handleSystem reports the host hardware
func (s *Server) handleSystem(c echo.Context) error {
	info, err := sysinfo.Collect()
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, info)
}

// loadScene resolves a scene ID from a request. Clients may name built-in
// and scenes-directory scenes but never arbitrary paths.
func (s *Server) loadScene(id string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(id), ".json") {
		return nil, fmt.Errorf("%q: %w", id, scene.ErrUnknownScene)
	}
	return loaders.ResolveScene(id, s.config.ScenesDir)
}

// intParam parses an optional integer query parameter, returning nil when
// it is absent
func intParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter %s=%q is not an integer", name, raw)
	}
	return &v, nil
}

// requiredIntParam parses an integer query parameter that must be present
func requiredIntParam(c echo.Context, name string) (int, error) {
	v, err := intParam(c, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("parameter %s is required", name)
	}
	return *v, nil
}
