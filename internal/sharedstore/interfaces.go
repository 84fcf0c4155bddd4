package sharedstore

import (
	"context"
	"time"

	"github.com/shelfsync/shelfsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sharedstore_mock.go -package=mock

// SharedRepository is the single cross-instance product store owned by the
// shared-store daemon. Reads are scoped with a selection expression and
// positional arguments; batch writes are atomic.
type SharedRepository interface {
	// Query returns shared records matching the selection expression, e.g.
	// Query(ctx, "last_updated > ?", 1700000000000).
	Query(ctx context.Context, where string, args ...any) ([]models.SharedProduct, error)

	// UpsertOne inserts or replaces a single record keyed by sync ID.
	UpsertOne(ctx context.Context, product models.SharedProduct) error

	// UpsertBatch inserts or replaces a batch of records in one transaction.
	UpsertBatch(ctx context.Context, products []models.SharedProduct) error

	// SoftDelete marks the record deleted as a new revision. Returns false
	// when no record carries the sync ID.
	SoftDelete(ctx context.Context, syncID string) (bool, error)

	// WaitForChange blocks until a write commits, the timeout elapses or ctx
	// is cancelled. Returns true only on a committed write. The signal is a
	// coarse hint with no payload; callers re-derive changes via Query.
	WaitForChange(ctx context.Context, timeout time.Duration) bool
}
