package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/models"
)

type productRepository struct {
	*DB
	hub    *watchHub
	logger *logger.Logger
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	return &productRepository{
		DB:     db,
		hub:    newWatchHub(),
		logger: logger,
	}
}

func (p *productRepository) Get(ctx context.Context, syncID string) (models.Product, error) {
	log := logger.FromContext(ctx)

	row := p.DB.QueryRowContext(ctx, getProduct, syncID)

	item, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		log.Err(err).
			Str("func", "productRepository.Get").
			Str("sync_id", syncID).
			Msg("failed to scan product row")
		return models.Product{}, fmt.Errorf("failed to get product (sync_id=%s): %w", syncID, err)
	}

	return item, nil
}

func (p *productRepository) GetAll(ctx context.Context, includeDeleted bool) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query := getAllProducts
	if includeDeleted {
		query = getAllProductsWithDeleted
	}

	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.GetAll").
			Msg("failed to execute query for getting all products")
		return nil, fmt.Errorf("failed to query all products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (p *productRepository) Put(ctx context.Context, product models.Product) error {
	log := logger.FromContext(ctx)

	deleted := int64(0)
	if product.Deleted {
		deleted = 1
	}

	_, err := p.DB.ExecContext(ctx, upsertProduct,
		product.SyncID,
		product.Name,
		product.ImageURI,
		product.Count,
		product.Packaging,
		product.MRP,
		product.PP,
		product.LastUpdated.UnixMilli(),
		product.UpdatedBy,
		product.Version,
		deleted,
	)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.Put").
			Str("sync_id", product.SyncID).
			Msg("failed to execute upsert for product")
		return fmt.Errorf("failed to save product (sync_id=%s): %w", product.SyncID, err)
	}

	p.hub.notify()
	return nil
}

func (p *productRepository) PutBatch(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.PutBatch").
			Msg("failed to begin batch transaction")
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	for _, product := range products {
		deleted := int64(0)
		if product.Deleted {
			deleted = 1
		}

		_, err = tx.ExecContext(ctx, upsertProduct,
			product.SyncID,
			product.Name,
			product.ImageURI,
			product.Count,
			product.Packaging,
			product.MRP,
			product.PP,
			product.LastUpdated.UnixMilli(),
			product.UpdatedBy,
			product.Version,
			deleted,
		)
		if err != nil {
			log.Err(err).
				Str("func", "productRepository.PutBatch").
				Str("sync_id", product.SyncID).
				Msg("failed to execute upsert in batch")
			return fmt.Errorf("failed to save product in batch (sync_id=%s): %w", product.SyncID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "productRepository.PutBatch").
			Msg("failed to commit batch transaction")
		return fmt.Errorf("failed to commit batch transaction: %w", err)
	}

	p.hub.notify()
	return nil
}

func (p *productRepository) GetChangedSince(ctx context.Context, since time.Time, updatedBy string) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getChangedSince, since.UnixMilli(), updatedBy)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.GetChangedSince").
			Str("updated_by", updatedBy).
			Msg("failed to execute query for changed products")
		return nil, fmt.Errorf("failed to query changed products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (p *productRepository) CountChangedSince(ctx context.Context, since time.Time, updatedBy string) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := p.DB.QueryRowContext(ctx, countChangedSince, since.UnixMilli(), updatedBy)
	if err := row.Scan(&count); err != nil {
		log.Err(err).
			Str("func", "productRepository.CountChangedSince").
			Str("updated_by", updatedBy).
			Msg("failed to count changed products")
		return 0, fmt.Errorf("failed to count changed products: %w", err)
	}

	return count, nil
}

func (p *productRepository) SoftDelete(ctx context.Context, syncID, updatedBy string, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, softDeleteProduct, at.UnixMilli(), updatedBy, syncID)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.SoftDelete").
			Str("sync_id", syncID).
			Msg("failed to execute soft delete for product")
		return fmt.Errorf("failed to delete product (sync_id=%s): %w", syncID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.SoftDelete").
			Str("sync_id", syncID).
			Msg("failed to get rows affected after soft delete")
		return fmt.Errorf("failed to get rows affected (sync_id=%s): %w", syncID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "productRepository.SoftDelete").
			Str("sync_id", syncID).
			Msg("no rows affected during soft delete: record not found")
		return ErrProductNotFound
	}

	p.hub.notify()
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanProduct.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (models.Product, error) {
	var (
		item        models.Product
		lastUpdated int64
		deleted     int64
	)

	err := row.Scan(
		&item.LocalID,
		&item.SyncID,
		&item.Name,
		&item.ImageURI,
		&item.Count,
		&item.Packaging,
		&item.MRP,
		&item.PP,
		&lastUpdated,
		&item.UpdatedBy,
		&item.Version,
		&deleted,
	)
	if err != nil {
		return models.Product{}, err
	}

	item.LastUpdated = time.UnixMilli(lastUpdated)
	item.Deleted = deleted != 0

	return item, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var items []models.Product

	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rowsErr)
	}

	return items, nil
}
