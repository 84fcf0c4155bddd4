package bridge

import (
	"context"

	"github.com/shelfsync/shelfsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/bridge_mock.go -package=mock

// SharedStoreBridge is the instance-side port to the shared store. Every
// method is fallible: when the shared store is unreachable the returned error
// wraps ErrBridgeUnavailable and callers treat the instance as offline for
// sync purposes.
//
// Reads carry the shared wire representation (millisecond timestamps, 0/1
// deleted flags); conversion to the in-process record form is the caller's
// concern.
type SharedStoreBridge interface {
	// GetByID returns the shared record with the given sync ID, or
	// ErrSharedProductNotFound.
	GetByID(ctx context.Context, syncID string) (models.SharedProduct, error)

	// GetAll returns every shared record, deleted ones included.
	GetAll(ctx context.Context) ([]models.SharedProduct, error)

	// GetUpdatedAfter returns shared records with last_updated strictly
	// greater than sinceMilli, ordered by last_updated.
	GetUpdatedAfter(ctx context.Context, sinceMilli int64) ([]models.SharedProduct, error)

	// UpsertOne inserts or replaces one shared record.
	UpsertOne(ctx context.Context, product models.SharedProduct) error

	// UpsertBatch inserts or replaces a batch of shared records atomically.
	UpsertBatch(ctx context.Context, products []models.SharedProduct) error

	// SoftDelete marks the shared record deleted. Returns false when the
	// shared store holds no record with the sync ID.
	SoftDelete(ctx context.Context, syncID string) (bool, error)

	// Notifications long-polls the shared store for change hints and delivers
	// them as payload-free signals. Hints are best-effort: they may be
	// spurious and consumers must re-derive changes via reads. The channel is
	// closed when ctx is cancelled.
	Notifications(ctx context.Context) <-chan struct{}
}
