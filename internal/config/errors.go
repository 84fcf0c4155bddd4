package config

import "errors"

// Validation errors returned by the config views when required configuration
// groups are incomplete or invalid.
var (
	// ErrInvalidInstanceConfigs indicates a missing instance identifier.
	ErrInvalidInstanceConfigs = errors.New("invalid instance configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidBridgeConfigs indicates invalid bridge settings
	// (for example, a missing shared-store address).
	ErrInvalidBridgeConfigs = errors.New("invalid bridge configuration")
	// ErrInvalidNetConfigs indicates invalid connectivity monitor settings
	// (for example, a missing probe URL).
	ErrInvalidNetConfigs = errors.New("invalid net configuration")
	// ErrInvalidServerConfigs indicates invalid daemon listen settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
