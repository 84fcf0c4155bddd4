package service

import (
	"context"

	"github.com/shelfsync/shelfsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CatalogService is the instance-side application surface: CRUD over the
// local catalog plus sync control and observation for the presentation
// collaborator.
type CatalogService interface {
	// LoadAll returns the live (non-deleted) catalog.
	LoadAll(ctx context.Context) ([]models.Product, error)

	// Get returns one record by sync ID, deleted or not.
	Get(ctx context.Context, syncID string) (models.Product, error)

	// Save persists a created or edited record with bumped version and fresh
	// authorship, then requests a sync pass. The persisted record is
	// returned.
	Save(ctx context.Context, product models.Product) (models.Product, error)

	// Delete soft-deletes a record as a new revision so the deletion itself
	// synchronizes, then requests a sync pass.
	Delete(ctx context.Context, syncID string) error

	// ManualSync runs a sync pass now, retrying per policy.
	ManualSync(ctx context.Context) error

	// Status reports the current sync status.
	Status(ctx context.Context) models.SyncStatus

	// Watch streams full catalog snapshots: one immediately, then one after
	// every committed local write.
	Watch(ctx context.Context, includeDeleted bool) <-chan []models.Product
}

// SyncControl is the slice of the orchestrator the catalog service drives.
type SyncControl interface {
	NotifySaved()
	ManualSync(ctx context.Context) error
	Status(ctx context.Context) models.SyncStatus
}
