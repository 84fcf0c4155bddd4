// Package app wires one catalog instance together: local store, shared-store
// bridge, connectivity monitor, reconciler, orchestrator and the catalog
// service facade.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/shelfsync/shelfsync/internal/bridge"
	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/netmon"
	"github.com/shelfsync/shelfsync/internal/orchestrator"
	"github.com/shelfsync/shelfsync/internal/reconciler"
	"github.com/shelfsync/shelfsync/internal/service"
	"github.com/shelfsync/shelfsync/internal/store"
)

type Instance struct {
	// Catalog is the application surface exposed to the presentation
	// collaborator.
	Catalog service.CatalogService

	db           *store.DB
	monitor      *netmon.Monitor
	orchestrator *orchestrator.Orchestrator

	logger *logger.Logger
}

func NewInstance(ctx context.Context, cfg *config.InstanceConfig, logger *logger.Logger) (*Instance, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	repo := store.NewProductRepository(db, logger)

	sharedBridge, err := bridge.NewHTTPBridge(cfg.Bridge, logger)
	if err != nil {
		return nil, fmt.Errorf("create shared-store bridge: %w", err)
	}

	monitor := netmon.NewMonitor(cfg.Net, logger)
	rec := reconciler.NewReconciler(repo, sharedBridge, cfg.Instance.ID, logger)
	orch := orchestrator.NewOrchestrator(rec, monitor, sharedBridge, repo, cfg.Instance.ID, cfg.Sync.Interval, logger)
	catalog := service.NewCatalogService(repo, orch, cfg.Instance.ID, logger)

	return &Instance{
		Catalog:      catalog,
		db:           db,
		monitor:      monitor,
		orchestrator: orch,
		logger:       logger,
	}, nil
}

// Run starts the connectivity monitor and the sync orchestrator and blocks
// until ctx is cancelled or a stop signal arrives.
func (a *Instance) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	go a.monitor.Run(ctx)
	go a.orchestrator.Run(ctx)

	<-ctx.Done()

	a.logger.Info().Msg("instance shut down gracefully")
	return a.db.Close()
}
