package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
