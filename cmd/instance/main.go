package main

import (
	"context"
	"fmt"

	"github.com/shelfsync/shelfsync/internal/app"
	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("shelfsync-instance")
	cfg, err := config.GetInstanceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	instance, err := app.NewInstance(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init instance error")
	}

	if err = instance.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("instance run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
