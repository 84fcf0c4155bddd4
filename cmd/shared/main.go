package main

import (
	"context"
	"fmt"

	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/sharedsrv"
	"github.com/shelfsync/shelfsync/internal/sharedstore"
	"github.com/shelfsync/shelfsync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("shelfsync-shared")
	cfg, err := config.GetSharedConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create shared storage")
	}
	defer db.Close()

	repo := sharedstore.NewSharedRepository(db, log)
	handler := sharedsrv.NewHandler(repo, log)

	srv, err := sharedsrv.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create shared-store server")
	}

	srv.RunServer()
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
