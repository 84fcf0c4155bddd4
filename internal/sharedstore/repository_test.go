package sharedstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/models"
)

func newTestSharedRepo(t *testing.T) (*sharedRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := NewSharedRepository(&store.DB{DB: db}, logger.Nop()).(*sharedRepository)
	return repo, mock, db
}

func sharedRows(products ...models.SharedProduct) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"sync_id", "name", "image_uri", "count", "packaging",
		"mrp", "pp", "last_updated", "updated_by", "version", "deleted",
	})
	for _, p := range products {
		rows.AddRow(
			p.SyncID, p.Name, p.ImageURI, p.Count, p.Packaging,
			p.MRP, p.PP, p.LastUpdated, p.UpdatedBy, p.Version, p.Deleted,
		)
	}
	return rows
}

func TestSharedRepository_Query(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	want := models.SharedProduct{
		SyncID: "p1", Name: "rice", Count: 3, LastUpdated: 5000, UpdatedBy: "shop-a", Version: 2,
	}

	mock.ExpectQuery("SELECT .* FROM products WHERE .* ORDER BY last_updated").
		WithArgs(int64(4000)).
		WillReturnRows(sharedRows(want))

	got, err := repo.Query(context.Background(), "last_updated > ?", int64(4000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("expected [%+v], got %+v", want, got)
	}
}

func TestSharedRepository_Query_DBError(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM products").
		WillReturnError(errors.New("db locked"))

	_, err := repo.Query(context.Background(), "1 = 1")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestSharedRepository_UpsertOne_NotifiesWaiters(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO products").
		WithArgs("p1", "rice", "", int64(3), "", 0.0, 0.0, int64(5000), "shop-a", int64(2), int64(0)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	waited := make(chan bool, 1)
	go func() {
		waited <- repo.WaitForChange(context.Background(), 2*time.Second)
	}()

	// give the waiter a moment to subscribe
	time.Sleep(20 * time.Millisecond)

	err := repo.UpsertOne(context.Background(), models.SharedProduct{
		SyncID: "p1", Name: "rice", Count: 3, LastUpdated: 5000, UpdatedBy: "shop-a", Version: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-waited:
		if !got {
			t.Error("expected the waiter to observe the committed write")
		}
	case <-time.After(2 * time.Second):
		t.Error("waiter did not wake up")
	}
}

func TestSharedRepository_UpsertBatch(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	products := []models.SharedProduct{
		{SyncID: "p1", LastUpdated: 1000, Version: 1},
		{SyncID: "p2", LastUpdated: 2000, Version: 1},
	}

	mock.ExpectBegin()
	for range products {
		mock.ExpectExec("INSERT INTO products").
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	if err := repo.UpsertBatch(context.Background(), products); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSharedRepository_UpsertBatch_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.UpsertBatch(context.Background(), []models.SharedProduct{{SyncID: "p1"}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSharedRepository_SoftDelete(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE products SET").
		WithArgs(1, sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.SoftDelete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected the record to be reported deleted")
	}
}

func TestSharedRepository_SoftDelete_UnknownRecord(t *testing.T) {
	repo, mock, db := newTestSharedRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE products SET").
		WithArgs(1, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.SoftDelete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected false for an unknown sync ID")
	}
}

func TestSharedRepository_WaitForChange_Timeout(t *testing.T) {
	repo, _, db := newTestSharedRepo(t)
	defer db.Close()

	if repo.WaitForChange(context.Background(), 10*time.Millisecond) {
		t.Error("expected a quiet timeout without writes")
	}
}
