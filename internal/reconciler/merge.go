package reconciler

import (
	"time"

	"github.com/shelfsync/shelfsync/models"
)

// MergedSuffix marks revisions produced by conflict resolution. The author of
// a merged record is "<instanceID>_merged", which keeps it distinct from the
// instance's own edits so the push filter never re-pushes it.
const MergedSuffix = "_merged"

// Merge resolves two divergent revisions of the same record into a single new
// revision that both stores subsequently adopt.
//
// Records carry one whole-record timestamp, so "latest wins" compares the two
// revisions as units: the side with the later lastUpdated contributes every
// mutable field. Ties fall to the higher version, and a full tie falls to the
// shared side. Deletion is sticky: a delete on either side survives the
// merge regardless of which side won the fields.
//
// The merged revision gets version = max(local, shared) + 1 and a fresh
// timestamp, so re-running reconciliation with the merged state on both sides
// finds equal revisions and produces nothing further.
//
// Merging two already-converged revisions (equal timestamp and version)
// returns local unchanged: no spurious revision is created.
func Merge(local, shared models.Product, selfID string, now time.Time) models.Product {
	localMilli := local.UpdatedAtMilli()
	sharedMilli := shared.UpdatedAtMilli()

	if localMilli == sharedMilli && local.Version == shared.Version {
		return local
	}

	winner := shared
	switch {
	case localMilli > sharedMilli:
		winner = local
	case sharedMilli > localMilli:
		winner = shared
	case local.Version > shared.Version:
		winner = local
	}

	merged := winner
	merged.LocalID = local.LocalID
	merged.SyncID = local.SyncID
	merged.Version = maxVersion(local.Version, shared.Version) + 1
	merged.LastUpdated = now
	merged.UpdatedBy = selfID + MergedSuffix
	merged.Deleted = local.Deleted || shared.Deleted

	return merged
}

func maxVersion(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
