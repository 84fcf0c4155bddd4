package models

// Bridge wire protocol. The shared-store daemon exposes the named operations
// insert, insertBatch, query, update and delete; richer read shapes
// (get-by-id, get-updated-after, get-all) are expressed as query selections
// by the caller.

// QueryRequest selects shared records with a selection expression and
// positional arguments, e.g. Where: "last_updated > ?", Args: [1700000000000].
type QueryRequest struct {
	Where string `json:"where"`
	Args  []any  `json:"args,omitempty"`
}

// QueryResponse carries the selected shared records.
type QueryResponse struct {
	Products []SharedProduct `json:"products"`
	Length   int             `json:"length"`
}

// UpsertRequest inserts or replaces a single shared record.
type UpsertRequest struct {
	Product SharedProduct `json:"product"`
}

// UpsertBatchRequest inserts or replaces a batch of shared records
// atomically.
type UpsertBatchRequest struct {
	Products []SharedProduct `json:"products"`
	Length   int             `json:"length"`
}

// UpsertResponse reports whether the write (or the whole batch) succeeded.
type UpsertResponse struct {
	OK bool `json:"ok"`
}

// DeleteRequest soft-deletes the shared record with the given sync ID.
type DeleteRequest struct {
	SyncID string `json:"sync_id"`
}

// ChangeNotification is the payload-free "something changed" hint pushed from
// the shared side. Receivers must re-derive actual changes from a query;
// hints may be spurious or missed.
type ChangeNotification struct {
	Changed bool `json:"changed"`
}
