package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/timekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/timekeeper/internal/cli"
	"github.com/dmitrijs2005/timekeeper/internal/config"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v\n\nEnvironment:\n%s", err, config.EnvHelp())
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx, os.Stdin)

}
