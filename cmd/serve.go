package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/web/server"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the web server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	console := server.NewConsole(ctx.Int("console-lines"))
	log.SetSink(io.MultiWriter(os.Stderr, console))

	config := server.DefaultConfig()
	config.Port = ctx.Int("port")
	config.ScenesDir = ctx.GlobalString("scenes-dir")
	config.MaxPixels = ctx.Int("max-pixels")
	config.MaxSamples = ctx.Int("max-spp")
	config.Console = console
	srv := server.NewServer(config)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
