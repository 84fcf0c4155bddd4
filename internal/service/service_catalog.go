package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/internal/utils"
	"github.com/shelfsync/shelfsync/models"
)

type catalogService struct {
	store  store.ProductRepository
	sync   SyncControl
	uuid   *utils.UUIDGenerator
	selfID string

	now func() time.Time

	logger *logger.Logger
}

func NewCatalogService(productStore store.ProductRepository, syncControl SyncControl, selfID string, logger *logger.Logger) CatalogService {
	return &catalogService{
		store:  productStore,
		sync:   syncControl,
		uuid:   utils.NewUUIDGenerator(),
		selfID: selfID,
		now:    time.Now,
		logger: logger,
	}
}

func (c *catalogService) LoadAll(ctx context.Context) ([]models.Product, error) {
	return c.store.GetAll(ctx, false)
}

func (c *catalogService) Get(ctx context.Context, syncID string) (models.Product, error) {
	return c.store.Get(ctx, syncID)
}

// Save stamps the record before persisting: a record without a sync ID is a
// creation (fresh ID, version 1), an existing record gets its stored version
// bumped by exactly one. Either way authorship moves to this instance and the
// timestamp is renewed, which is what makes the record eligible for the next
// push phase.
func (c *catalogService) Save(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	if product.SyncID == "" {
		product.SyncID = c.uuid.Generate()
		product.Version = 1
	} else {
		current, err := c.store.Get(ctx, product.SyncID)
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			// caller-supplied sync ID unknown locally: treat as creation
			product.Version = 1
		case err != nil:
			return models.Product{}, fmt.Errorf("failed to load current record (sync_id=%s): %w", product.SyncID, err)
		default:
			product.LocalID = current.LocalID
			product.Version = current.Version + 1
		}
	}

	product.LastUpdated = c.now()
	product.UpdatedBy = c.selfID

	if err := c.store.Put(ctx, product); err != nil {
		log.Err(err).
			Str("func", "catalogService.Save").
			Str("sync_id", product.SyncID).
			Msg("failed to persist record")
		return models.Product{}, err
	}

	c.sync.NotifySaved()
	return product, nil
}

func (c *catalogService) Delete(ctx context.Context, syncID string) error {
	log := logger.FromContext(ctx)

	if err := c.store.SoftDelete(ctx, syncID, c.selfID, c.now()); err != nil {
		log.Err(err).
			Str("func", "catalogService.Delete").
			Str("sync_id", syncID).
			Msg("failed to delete record")
		return err
	}

	c.sync.NotifySaved()
	return nil
}

func (c *catalogService) ManualSync(ctx context.Context) error {
	return c.sync.ManualSync(ctx)
}

func (c *catalogService) Status(ctx context.Context) models.SyncStatus {
	return c.sync.Status(ctx)
}

func (c *catalogService) Watch(ctx context.Context, includeDeleted bool) <-chan []models.Product {
	return c.store.Watch(ctx, includeDeleted)
}
