package orchestrator

import "errors"

var (
	// ErrSyncInFlight is returned when a sync is requested while another pass
	// is already running. Requests coalesce; they never queue.
	ErrSyncInFlight = errors.New("sync already in flight")

	// ErrOffline is returned when a sync is requested while the shared store
	// is unreachable.
	ErrOffline = errors.New("shared store offline")
)
