package store

import (
	"context"
	"time"

	"github.com/shelfsync/shelfsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProductRepository is the durable keyed catalog store owned by one app
// instance. Every write durably persists before the call returns; the store
// performs no retries of its own, a storage failure propagates to the caller.
type ProductRepository interface {
	// Get returns the record with the given sync ID, or ErrProductNotFound.
	Get(ctx context.Context, syncID string) (models.Product, error)

	// GetAll returns the current record set. Soft-deleted records are
	// excluded unless includeDeleted is set.
	GetAll(ctx context.Context, includeDeleted bool) ([]models.Product, error)

	// Put upserts a record by sync ID, creating it if new.
	Put(ctx context.Context, product models.Product) error

	// PutBatch upserts a batch of records in a single transaction.
	PutBatch(ctx context.Context, products []models.Product) error

	// GetChangedSince returns records with last_updated strictly after since
	// that were authored by updatedBy. This is the push-phase scoping query.
	GetChangedSince(ctx context.Context, since time.Time, updatedBy string) ([]models.Product, error)

	// CountChangedSince counts the records GetChangedSince would return.
	CountChangedSince(ctx context.Context, since time.Time, updatedBy string) (int, error)

	// SoftDelete records a deletion as a new revision: the record stays in
	// the store with deleted set, a bumped version and a fresh timestamp.
	SoftDelete(ctx context.Context, syncID, updatedBy string, at time.Time) error

	// Watch returns a live snapshot stream: the current full set is emitted
	// immediately on subscription and a fresh snapshot follows every
	// committed write. The stream closes when ctx is cancelled. Delivery is
	// at-least-once in the store's commit order.
	Watch(ctx context.Context, includeDeleted bool) <-chan []models.Product
}
