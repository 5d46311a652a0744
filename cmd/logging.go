package cmd

import (
	"github.com/lumenrt/lumen/config"
	"github.com/lumenrt/lumen/log"
	"github.com/urfave/cli"
)

var logger = log.New("lumen")

// Apply the configured log level; the -v and -vv flags take precedence.
func setupLogging(ctx *cli.Context, cfg config.Config) {
	log.SetLevel(cfg.LogLevel())

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
