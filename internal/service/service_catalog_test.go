package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/mock"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/internal/utils"
	"github.com/shelfsync/shelfsync/models"
)

// stubSyncControl records sync requests without running anything.
type stubSyncControl struct {
	notified int
	manual   int
	err      error
	status   models.SyncStatus
}

func (s *stubSyncControl) NotifySaved() { s.notified++ }

func (s *stubSyncControl) ManualSync(context.Context) error {
	s.manual++
	return s.err
}

func (s *stubSyncControl) Status(context.Context) models.SyncStatus { return s.status }

func newTestCatalogService(t *testing.T, ctrl *gomock.Controller) (*catalogService, *mock.MockProductRepository, *stubSyncControl) {
	t.Helper()

	repo := mock.NewMockProductRepository(ctrl)
	syncControl := &stubSyncControl{}

	svc := NewCatalogService(repo, syncControl, "shop-a", logger.Nop()).(*catalogService)
	svc.uuid = utils.NewUUIDGenerator()

	return svc, repo, syncControl
}

func TestCatalogService_Save_NewRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, syncControl := newTestCatalogService(t, ctrl)
	now := time.UnixMilli(5000)
	svc.now = func() time.Time { return now }

	ctx := context.Background()

	var persisted models.Product
	repo.EXPECT().Put(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, product models.Product) error {
			persisted = product
			return nil
		})

	saved, err := svc.Save(ctx, models.Product{Name: "rice", Count: 3, Packaging: models.PackagingSack})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.SyncID, "a new record gets a generated sync ID")
	assert.Equal(t, int64(1), saved.Version)
	assert.Equal(t, "shop-a", saved.UpdatedBy)
	assert.Equal(t, now, saved.LastUpdated)
	assert.Equal(t, persisted, saved)
	assert.Equal(t, 1, syncControl.notified, "a save requests a sync pass")
}

func TestCatalogService_Save_ExistingRecordBumpsVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, syncControl := newTestCatalogService(t, ctrl)
	now := time.UnixMilli(8000)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	current := models.Product{
		LocalID: 4, SyncID: "p1", Name: "rice", Count: 3,
		LastUpdated: time.UnixMilli(5000), UpdatedBy: "shop-b", Version: 6,
	}

	repo.EXPECT().Get(ctx, "p1").Return(current, nil)
	repo.EXPECT().Put(ctx, gomock.Any()).Return(nil)

	saved, err := svc.Save(ctx, models.Product{SyncID: "p1", Name: "rice", Count: 9})
	require.NoError(t, err)

	assert.Equal(t, int64(7), saved.Version, "version bumps by exactly one per local mutation")
	assert.Equal(t, int64(4), saved.LocalID, "local row key is preserved")
	assert.Equal(t, "shop-a", saved.UpdatedBy, "authorship moves to this instance")
	assert.Equal(t, 1, syncControl.notified)
}

func TestCatalogService_Save_UnknownSyncIDTreatedAsCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestCatalogService(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, "foreign-id").Return(models.Product{}, store.ErrProductNotFound)
	repo.EXPECT().Put(ctx, gomock.Any()).Return(nil)

	saved, err := svc.Save(ctx, models.Product{SyncID: "foreign-id", Name: "salt"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.Equal(t, "foreign-id", saved.SyncID)
}

func TestCatalogService_Save_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, syncControl := newTestCatalogService(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Put(ctx, gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Save(ctx, models.Product{Name: "rice"})
	require.Error(t, err)
	assert.Zero(t, syncControl.notified, "a failed save must not request a sync")
}

func TestCatalogService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, syncControl := newTestCatalogService(t, ctrl)
	now := time.UnixMilli(9000)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	repo.EXPECT().SoftDelete(ctx, "p1", "shop-a", now).Return(nil)

	require.NoError(t, svc.Delete(ctx, "p1"))
	assert.Equal(t, 1, syncControl.notified, "a delete synchronizes like any other revision")
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, syncControl := newTestCatalogService(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().SoftDelete(ctx, "missing", "shop-a", gomock.Any()).Return(store.ErrProductNotFound)

	err := svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.Zero(t, syncControl.notified)
}

func TestCatalogService_StatusAndManualSyncDelegate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, syncControl := newTestCatalogService(t, ctrl)
	syncControl.status = models.SyncStatus{State: models.SyncOffline, Pending: 5}

	ctx := context.Background()

	status := svc.Status(ctx)
	assert.Equal(t, models.SyncOffline, status.State)
	assert.Equal(t, 5, status.Pending)

	require.NoError(t, svc.ManualSync(ctx))
	assert.Equal(t, 1, syncControl.manual)
}
