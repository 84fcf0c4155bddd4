// Package orchestrator owns the sync lifecycle for one instance: when a
// reconciliation pass runs, the watermark it runs against, and the status the
// presentation layer sees.
//
// All sync entry points (periodic timer, reconnect, local save, shared-store
// hint, manual request) converge on a single coalescing trigger, and an
// in-flight flag guarantees at most one pass at a time. A request arriving
// while a pass runs is dropped, not queued: the running pass already covers
// the window, and the next trigger covers anything it missed.
package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/store"
	"github.com/shelfsync/shelfsync/models"
)

const (
	// manualSyncRetries is the number of retries after the first failed
	// attempt: a manual sync makes three attempts in total.
	manualSyncRetries = 2

	manualSyncBackoff = 500 * time.Millisecond
)

type Orchestrator struct {
	syncer   Syncer
	monitor  ConnectivityMonitor
	notifier ChangeNotifier
	store    store.ProductRepository
	selfID   string
	interval time.Duration

	// inFlight is the Idle/Running state machine: a flag, not a lock,
	// because the run loop is the only steady-state caller and ManualSync
	// simply loses the race and retries.
	inFlight atomic.Bool
	trigger  chan struct{}

	mu        sync.Mutex
	watermark time.Time
	lastSync  time.Time
	lastErr   error
	state     models.SyncState

	logger *logger.Logger
}

func NewOrchestrator(
	syncer Syncer,
	monitor ConnectivityMonitor,
	notifier ChangeNotifier,
	productStore store.ProductRepository,
	selfID string,
	interval time.Duration,
	logger *logger.Logger,
) *Orchestrator {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Orchestrator{
		syncer:   syncer,
		monitor:  monitor,
		notifier: notifier,
		store:    productStore,
		selfID:   selfID,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		state:    models.SyncIdle,
		logger:   logger,
	}
}

// Run drives the sync lifecycle until ctx is cancelled. The periodic ticker
// is armed only while online; reconnecting re-arms it and triggers an
// immediate pass.
func (o *Orchestrator) Run(ctx context.Context) {
	changes := o.monitor.Changes()
	hints := o.notifier.Notifications(ctx)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	online := o.monitor.Online()
	if online {
		o.requestSync()
	} else {
		ticker.Stop()
		o.setState(models.SyncOffline)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case state := <-changes:
			if state == online {
				continue
			}
			online = state
			if online {
				o.logger.Info().
					Str("func", "Orchestrator.Run").
					Msg("connectivity restored, syncing immediately")
				ticker.Reset(o.interval)
				o.requestSync()
			} else {
				o.logger.Info().
					Str("func", "Orchestrator.Run").
					Msg("connectivity lost, suspending periodic sync")
				ticker.Stop()
				o.setState(models.SyncOffline)
			}

		case <-hints:
			if online {
				o.requestSync()
			}

		case <-ticker.C:
			o.requestSync()

		case <-o.trigger:
			// errors are recorded in status; the loop itself never stops
			_ = o.syncOnce(ctx)
		}
	}
}

// NotifySaved requests a sync pass after a local save. The request coalesces
// with any pass already pending or running.
func (o *Orchestrator) NotifySaved() {
	o.requestSync()
}

// ManualSync runs a pass immediately on the caller's goroutine, retrying
// with exponential backoff when the pass fails or loses the in-flight race.
func (o *Orchestrator) ManualSync(ctx context.Context) error {
	backoff := retry.WithMaxRetries(manualSyncRetries, retry.NewExponential(manualSyncBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := o.syncOnce(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Status reports the user-visible sync status: current phase, last completed
// sync, pending locally-authored changes and the last error if any.
func (o *Orchestrator) Status(ctx context.Context) models.SyncStatus {
	o.mu.Lock()
	status := models.SyncStatus{
		State:    o.state,
		LastSync: o.lastSync,
	}
	if o.lastErr != nil {
		status.LastErr = o.lastErr.Error()
	}
	watermark := o.watermark
	o.mu.Unlock()

	pending, err := o.store.CountChangedSince(ctx, watermark, o.selfID)
	if err != nil {
		o.logger.Err(err).
			Str("func", "Orchestrator.Status").
			Msg("failed to count pending changes")
		return status
	}

	status.Pending = pending
	return status
}

func (o *Orchestrator) requestSync() {
	select {
	case o.trigger <- struct{}{}:
	default:
		// a pending trigger already guarantees a pass
	}
}

func (o *Orchestrator) syncOnce(ctx context.Context) error {
	if !o.inFlight.CompareAndSwap(false, true) {
		return ErrSyncInFlight
	}
	defer o.inFlight.Store(false)

	if !o.monitor.IsOnline(ctx) {
		o.setState(models.SyncOffline)
		return ErrOffline
	}

	o.setState(models.SyncRunning)

	o.mu.Lock()
	watermark := o.watermark
	o.mu.Unlock()

	result, err := o.syncer.Reconcile(ctx, watermark)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.state = models.SyncError
		o.lastErr = err
		o.logger.Err(err).
			Str("func", "Orchestrator.syncOnce").
			Msg("sync pass failed, watermark unchanged")
		return err
	}

	o.watermark = result.NewWatermark
	o.lastSync = result.NewWatermark
	o.state = models.SyncIdle
	o.lastErr = nil

	return nil
}

func (o *Orchestrator) setState(state models.SyncState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
}
