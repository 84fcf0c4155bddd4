package models

import "time"

// SharedProduct is the shared-store representation of a Product: the string
// SyncID is the primary key, timestamps are integer milliseconds since epoch
// and booleans are 0/1 integers. This is both the row layout of the shared
// database and the wire form carried across the bridge.
type SharedProduct struct {
	SyncID      string  `json:"sync_id"`
	Name        string  `json:"name"`
	ImageURI    string  `json:"image_uri"`
	Count       int64   `json:"count"`
	Packaging   string  `json:"packaging"`
	MRP         float64 `json:"mrp"`
	PP          float64 `json:"pp"`
	LastUpdated int64   `json:"last_updated"`
	UpdatedBy   string  `json:"updated_by"`
	Version     int64   `json:"version"`
	Deleted     int64   `json:"deleted"`
}

// ToProduct converts the shared representation to the in-process record form.
// LocalID is left zero; the local store assigns its own key on upsert.
func (s SharedProduct) ToProduct() Product {
	return Product{
		SyncID:      s.SyncID,
		Name:        s.Name,
		ImageURI:    s.ImageURI,
		Count:       s.Count,
		Packaging:   s.Packaging,
		MRP:         s.MRP,
		PP:          s.PP,
		LastUpdated: time.UnixMilli(s.LastUpdated),
		UpdatedBy:   s.UpdatedBy,
		Version:     s.Version,
		Deleted:     s.Deleted != 0,
	}
}

// ToShared converts a local record to the shared representation.
func ToShared(p Product) SharedProduct {
	deleted := int64(0)
	if p.Deleted {
		deleted = 1
	}

	return SharedProduct{
		SyncID:      p.SyncID,
		Name:        p.Name,
		ImageURI:    p.ImageURI,
		Count:       p.Count,
		Packaging:   p.Packaging,
		MRP:         p.MRP,
		PP:          p.PP,
		LastUpdated: p.LastUpdated.UnixMilli(),
		UpdatedBy:   p.UpdatedBy,
		Version:     p.Version,
		Deleted:     deleted,
	}
}
