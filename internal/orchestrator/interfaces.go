package orchestrator

import (
	"context"
	"time"

	"github.com/shelfsync/shelfsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/orchestrator_mock.go -package=mock

// Syncer runs one reconciliation pass over the window (watermark, now].
type Syncer interface {
	Reconcile(ctx context.Context, watermark time.Time) (models.SyncResult, error)
}

// ConnectivityMonitor reports shared-store reachability. Online is the
// settled (debounced) view, IsOnline is a live probe, and Changes streams
// deduplicated transitions.
type ConnectivityMonitor interface {
	IsOnline(ctx context.Context) bool
	Online() bool
	Changes() <-chan bool
}

// ChangeNotifier delivers payload-free "shared store changed" hints. Hints
// feed the same trigger path as the periodic timer and are never trusted as
// a substitute for querying actual changed records.
type ChangeNotifier interface {
	Notifications(ctx context.Context) <-chan struct{}
}
