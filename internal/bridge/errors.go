package bridge

import "errors"

var (
	// ErrBridgeUnavailable wraps any transport or shared-store failure. The
	// sync engine maps it to the offline path: skip the cycle, keep the
	// watermark, retry later.
	ErrBridgeUnavailable = errors.New("shared store unavailable")

	// ErrSharedProductNotFound is returned by GetByID when the shared store
	// holds no record with the requested sync ID.
	ErrSharedProductNotFound = errors.New("shared product not found")
)
