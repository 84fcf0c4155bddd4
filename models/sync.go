package models

import "time"

// SyncState enumerates the orchestrator phases surfaced to the presentation
// layer. It is a closed set; switches over it should be exhaustive.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncOffline
	SyncError
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncRunning:
		return "running"
	case SyncOffline:
		return "offline"
	case SyncError:
		return "error"
	default:
		return "unknown"
	}
}

// SyncResult summarizes a single reconciliation pass.
type SyncResult struct {
	// NewWatermark is the timestamp up to which both stores are known to be
	// reconciled after this pass. Equal to the input watermark when the pass
	// failed.
	NewWatermark time.Time
	Pushed       int
	Pulled       int
	Merged       int
}

// SyncStatus is the user-visible synchronization status.
type SyncStatus struct {
	State    SyncState `json:"state"`
	LastSync time.Time `json:"last_sync"`
	// Pending counts locally-authored records not yet pushed to the shared
	// store.
	Pending int    `json:"pending"`
	LastErr string `json:"last_err,omitempty"`
}
