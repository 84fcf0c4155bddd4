// Package reconciler implements the bidirectional sync pass between one
// instance's local product store and the shared store.
//
// A pass is stateless with respect to individual records: it recomputes
// everything from the two stores and the caller-supplied watermark. Push
// sends records this instance authored since the watermark, pull adopts
// records other instances authored since the watermark, and a record changed
// on both sides is resolved by Merge and written back to both stores. The
// caller advances the watermark only when the pass returns without error, so
// a failed window is simply retried whole — safe because every step is
// idempotent.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shelfsync/shelfsync/internal/bridge"
	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/models"
)

type Reconciler struct {
	store  store.ProductRepository
	bridge bridge.SharedStoreBridge
	selfID string

	now func() time.Time

	logger *logger.Logger
}

func NewReconciler(productStore store.ProductRepository, sharedBridge bridge.SharedStoreBridge, selfID string, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		store:  productStore,
		bridge: sharedBridge,
		selfID: selfID,
		now:    time.Now,
		logger: logger,
	}
}

// Reconcile runs one push+pull+merge pass over the window (watermark, now].
//
// The returned SyncResult carries the candidate new watermark (captured at
// the start of the pass) and the per-phase counts. On error the caller must
// keep its old watermark: the pass may have partially applied writes, and
// retrying the same window converges because pushes, pulls and merges are
// all idempotent. A push batch failure is reported as an error but does not
// prevent the pull phase from running first.
func (r *Reconciler) Reconcile(ctx context.Context, watermark time.Time) (models.SyncResult, error) {
	start := r.now()
	result := models.SyncResult{NewWatermark: start}

	pushErr := r.push(ctx, watermark, &result)
	if pushErr != nil && !errors.Is(pushErr, errPushBatch) {
		return result, pushErr
	}

	if err := r.pull(ctx, watermark, &result); err != nil {
		return result, err
	}

	if pushErr != nil {
		return result, pushErr
	}

	r.logger.Info().
		Str("func", "Reconciler.Reconcile").
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int("merged", result.Merged).
		Msg("sync pass complete")

	return result, nil
}

// errPushBatch marks a failed final batch upsert: the only push failure that
// lets the pull phase proceed. Everything staged is re-staged on the next run.
var errPushBatch = errors.New("push batch failed")

func (r *Reconciler) push(ctx context.Context, watermark time.Time, result *models.SyncResult) error {
	changed, err := r.store.GetChangedSince(ctx, watermark, r.selfID)
	if err != nil {
		return fmt.Errorf("failed to load locally changed records: %w", err)
	}

	var staged []models.SharedProduct
	for _, local := range changed {
		sharedRecord, err := r.bridge.GetByID(ctx, local.SyncID)
		if errors.Is(err, bridge.ErrSharedProductNotFound) {
			staged = append(staged, models.ToShared(local))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read shared record (sync_id=%s): %w", local.SyncID, err)
		}

		localMilli := local.UpdatedAtMilli()
		switch {
		case localMilli > sharedRecord.LastUpdated:
			staged = append(staged, models.ToShared(local))

		case sharedRecord.LastUpdated > localMilli:
			// both sides changed since the last sync
			if err = r.mergeAndPersist(ctx, local, sharedRecord.ToProduct(), result); err != nil {
				return err
			}

		default:
			// equal timestamps: already consistent
		}
	}

	if len(staged) == 0 {
		return nil
	}

	if err = r.bridge.UpsertBatch(ctx, staged); err != nil {
		r.logger.Warn().
			Str("func", "Reconciler.push").
			Int("staged", len(staged)).
			Err(err).
			Msg("push batch failed, records stay pending for the next pass")
		return fmt.Errorf("%w: %v", errPushBatch, err)
	}

	result.Pushed = len(staged)
	return nil
}

func (r *Reconciler) pull(ctx context.Context, watermark time.Time, result *models.SyncResult) error {
	sharedChanged, err := r.bridge.GetUpdatedAfter(ctx, watermark.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to load shared changed records: %w", err)
	}

	var staged []models.Product
	for _, sharedRecord := range sharedChanged {
		// self-authored records are already consistent locally by construction
		if sharedRecord.UpdatedBy == r.selfID {
			continue
		}

		local, err := r.store.Get(ctx, sharedRecord.SyncID)
		if errors.Is(err, store.ErrProductNotFound) {
			staged = append(staged, sharedRecord.ToProduct())
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read local record (sync_id=%s): %w", sharedRecord.SyncID, err)
		}

		localMilli := local.UpdatedAtMilli()
		if sharedRecord.LastUpdated <= localMilli {
			// local is newer (push phase's concern) or both are converged
			continue
		}

		if local.LastUpdated.After(watermark) && local.UpdatedBy == r.selfID {
			// same conflict class as the push phase; Merge is idempotent so
			// detecting it here as well is harmless
			if err = r.mergeAndPersist(ctx, local, sharedRecord.ToProduct(), result); err != nil {
				return err
			}
			continue
		}

		incoming := sharedRecord.ToProduct()
		incoming.LocalID = local.LocalID
		staged = append(staged, incoming)
	}

	if len(staged) == 0 {
		return nil
	}

	if err = r.store.PutBatch(ctx, staged); err != nil {
		return fmt.Errorf("failed to persist pulled records: %w", err)
	}

	result.Pulled = len(staged)
	return nil
}

// mergeAndPersist resolves one conflict and writes the merged revision to
// both stores as a unit. A crash between the two writes is repaired by the
// next pass: the side that got the write appears newer and flows across
// through the normal timestamp comparison.
func (r *Reconciler) mergeAndPersist(ctx context.Context, local, sharedRecord models.Product, result *models.SyncResult) error {
	merged := Merge(local, sharedRecord, r.selfID, r.now())

	if err := r.store.Put(ctx, merged); err != nil {
		return fmt.Errorf("failed to persist merged record locally (sync_id=%s): %w", merged.SyncID, err)
	}
	if err := r.bridge.UpsertOne(ctx, models.ToShared(merged)); err != nil {
		return fmt.Errorf("failed to persist merged record to shared store (sync_id=%s): %w", merged.SyncID, err)
	}

	r.logger.Debug().
		Str("func", "Reconciler.mergeAndPersist").
		Str("sync_id", merged.SyncID).
		Int64("version", merged.Version).
		Msg("conflict resolved")

	result.Merged++
	return nil
}
