package store

import (
	"context"
	"testing"
	"time"

	"github.com/shelfsync/shelfsync/models"
)

func TestWatchHub_CoalescesSignals(t *testing.T) {
	hub := newWatchHub()
	id, signal := hub.subscribe()
	defer hub.unsubscribe(id)

	// three commits before the subscriber reads: one pending signal
	hub.notify()
	hub.notify()
	hub.notify()

	select {
	case <-signal:
	default:
		t.Fatal("expected a pending signal")
	}

	select {
	case <-signal:
		t.Error("signals must coalesce, got a second pending signal")
	default:
	}
}

func TestWatchHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := newWatchHub()
	id, signal := hub.subscribe()
	hub.unsubscribe(id)

	hub.notify()

	select {
	case <-signal:
		t.Error("unsubscribed channel must not receive signals")
	default:
	}
}

func TestWatch_EmitsImmediateSnapshotThenFollowsCommits(t *testing.T) {
	repo, mock, db := newTestProductRepo(t)
	defer db.Close()

	first := models.Product{LocalID: 1, SyncID: "p1", LastUpdated: time.UnixMilli(1000), Version: 1}
	second := models.Product{LocalID: 2, SyncID: "p2", LastUpdated: time.UnixMilli(2000), Version: 1}

	// snapshot on subscribe
	mock.ExpectQuery("SELECT(.|\n)*FROM products(.|\n)*WHERE deleted = 0").
		WillReturnRows(productRows(first))
	// snapshot after the signalled commit
	mock.ExpectQuery("SELECT(.|\n)*FROM products(.|\n)*WHERE deleted = 0").
		WillReturnRows(productRows(first, second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.Watch(ctx, false)

	snapshot := <-stream
	if len(snapshot) != 1 || snapshot[0].SyncID != "p1" {
		t.Fatalf("expected immediate snapshot [p1], got %+v", snapshot)
	}

	repo.hub.notify()

	select {
	case snapshot = <-stream:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a snapshot after a committed write")
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected snapshot [p1 p2], got %+v", snapshot)
	}

	cancel()

	select {
	case _, open := <-stream:
		if open {
			t.Error("expected the stream to close after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Error("stream did not close after cancellation")
	}
}
