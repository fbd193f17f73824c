package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/devboard/internal/buildinfo"
	"github.com/dmitrijs2005/devboard/internal/client/cli"
	"github.com/dmitrijs2005/devboard/internal/client/config"
	"github.com/dmitrijs2005/devboard/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewZerologLogger(logging.NewConsoleWriter(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
