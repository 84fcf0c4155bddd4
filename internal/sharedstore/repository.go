package sharedstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/models"
)

var productColumns = []string{
	"sync_id",
	"name",
	"image_uri",
	"count",
	"packaging",
	"mrp",
	"pp",
	"last_updated",
	"updated_by",
	"version",
	"deleted",
}

type sharedRepository struct {
	db      *store.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger

	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewSharedRepository(db *store.DB, logger *logger.Logger) SharedRepository {
	return &sharedRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
		subs:    make(map[int]chan struct{}),
	}
}

func (s *sharedRepository) Query(ctx context.Context, where string, args ...any) ([]models.SharedProduct, error) {
	log := logger.FromContext(ctx)

	query, queryArgs, err := s.builder.
		Select(productColumns...).
		From("products").
		Where(sq.Expr(where, args...)).
		OrderBy("last_updated").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sharedRepository.Query").
			Str("where", where).
			Msg("failed to build query")
		return nil, fmt.Errorf("failed to build shared query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "sharedRepository.Query").
			Str("where", where).
			Msg("failed to execute shared query")
		return nil, fmt.Errorf("failed to query shared products: %w", err)
	}
	defer rows.Close()

	var items []models.SharedProduct
	for rows.Next() {
		var item models.SharedProduct
		scanErr := rows.Scan(
			&item.SyncID,
			&item.Name,
			&item.ImageURI,
			&item.Count,
			&item.Packaging,
			&item.MRP,
			&item.PP,
			&item.LastUpdated,
			&item.UpdatedBy,
			&item.Version,
			&item.Deleted,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sharedRepository.Query").
				Msg("failed to scan shared product row")
			return nil, fmt.Errorf("failed to scan shared product row: %w", scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating shared product rows: %w", rowsErr)
	}

	return items, nil
}

func (s *sharedRepository) UpsertOne(ctx context.Context, product models.SharedProduct) error {
	if err := s.upsert(ctx, s.db.DB, product); err != nil {
		return err
	}

	s.notify()
	return nil
}

func (s *sharedRepository) UpsertBatch(ctx context.Context, products []models.SharedProduct) error {
	if len(products) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sharedRepository.UpsertBatch").
			Msg("failed to begin batch transaction")
		return fmt.Errorf("failed to begin shared batch transaction: %w", err)
	}
	defer tx.Rollback()

	for _, product := range products {
		if err = s.upsert(ctx, tx, product); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "sharedRepository.UpsertBatch").
			Msg("failed to commit batch transaction")
		return fmt.Errorf("failed to commit shared batch transaction: %w", err)
	}

	s.notify()
	return nil
}

func (s *sharedRepository) upsert(ctx context.Context, db sq.ExecerContext, product models.SharedProduct) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert("products").
		Columns(productColumns...).
		Values(
			product.SyncID,
			product.Name,
			product.ImageURI,
			product.Count,
			product.Packaging,
			product.MRP,
			product.PP,
			product.LastUpdated,
			product.UpdatedBy,
			product.Version,
			product.Deleted,
		).
		Suffix(`ON CONFLICT(sync_id) DO UPDATE SET
			name         = excluded.name,
			image_uri    = excluded.image_uri,
			count        = excluded.count,
			packaging    = excluded.packaging,
			mrp          = excluded.mrp,
			pp           = excluded.pp,
			last_updated = excluded.last_updated,
			updated_by   = excluded.updated_by,
			version      = excluded.version,
			deleted      = excluded.deleted`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build shared upsert: %w", err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sharedRepository.upsert").
			Str("sync_id", product.SyncID).
			Msg("failed to execute upsert for shared product")
		return fmt.Errorf("failed to save shared product (sync_id=%s): %w", product.SyncID, err)
	}

	return nil
}

func (s *sharedRepository) SoftDelete(ctx context.Context, syncID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Update("products").
		Set("deleted", 1).
		Set("version", sq.Expr("version + 1")).
		Set("last_updated", time.Now().UnixMilli()).
		Where(sq.Eq{"sync_id": syncID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build shared soft delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sharedRepository.SoftDelete").
			Str("sync_id", syncID).
			Msg("failed to execute soft delete for shared product")
		return false, fmt.Errorf("failed to delete shared product (sync_id=%s): %w", syncID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected (sync_id=%s): %w", syncID, err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	s.notify()
	return true, nil
}

func (s *sharedRepository) WaitForChange(ctx context.Context, timeout time.Duration) bool {
	s.mu.Lock()
	id := s.next
	s.next++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func (s *sharedRepository) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
