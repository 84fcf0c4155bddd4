package store

import "errors"

var (
	// ErrProductNotFound is returned by Get when no record carries the
	// requested sync ID.
	ErrProductNotFound = errors.New("product not found")
)
