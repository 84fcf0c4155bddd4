package models

import "time"

// Packaging types supported by the catalog. The set is fixed; the core does
// not reject unknown values (validation lives in the presentation layer).
const (
	PackagingPiece  = "piece"
	PackagingBox    = "box"
	PackagingBottle = "bottle"
	PackagingPacket = "packet"
	PackagingSack   = "sack"
)

// Product is the unit of synchronization: one catalog record as held by a
// local instance store.
//
// LocalID is the store-assigned row key and is never stable across stores.
// SyncID is the globally-unique identity assigned at creation; it is the join
// key between local and shared representations and is immutable for the
// lifetime of the logical record.
type Product struct {
	LocalID     int64     `json:"local_id,omitempty"`
	SyncID      string    `json:"sync_id"`
	Name        string    `json:"name"`
	ImageURI    string    `json:"image_uri"`
	Count       int64     `json:"count"`
	Packaging   string    `json:"packaging"`
	MRP         float64   `json:"mrp"`
	PP          float64   `json:"pp"`
	LastUpdated time.Time `json:"last_updated"`
	UpdatedBy   string    `json:"updated_by"`
	Version     int64     `json:"version"`
	Deleted     bool      `json:"deleted"`
}

// SubTotal is the purchase value of the current stock. It is derived and
// never persisted.
func (p Product) SubTotal() float64 {
	return p.PP * float64(p.Count)
}

// UpdatedAtMilli returns the record timestamp at the millisecond granularity
// used by both stores. All timestamp comparisons during reconciliation happen
// at this granularity.
func (p Product) UpdatedAtMilli() int64 {
	return p.LastUpdated.UnixMilli()
}
