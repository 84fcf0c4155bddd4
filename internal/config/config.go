package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the shelfsync
// application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Instance holds the identity of this app instance.
	Instance Instance `envPrefix:"INSTANCE_"`

	// Storage holds the persistence settings for the SQLite store owned by
	// the running process (local store for an instance, shared store for the
	// daemon).
	Storage Storage `envPrefix:"STORAGE_"`

	// Bridge holds the address and timeouts used to reach the shared-store
	// daemon from an app instance.
	Bridge Bridge `envPrefix:"BRIDGE_"`

	// Net holds connectivity-probe settings for the connectivity monitor.
	Net Net `envPrefix:"NET_"`

	// Sync holds background synchronization settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Server holds the listen address and timeouts of the shared-store
	// daemon.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Instance identifies one app instance among the set sharing the device.
type Instance struct {
	// ID is the actor identifier stamped into updated_by on every local
	// mutation. Must be unique per app instance on the device.
	// Env: INSTANCE_ID
	ID string `env:"ID"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database backend.
type DB struct {
	// DSN is the SQLite file path (e.g. "/var/lib/shelfsync/catalog.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Bridge holds outbound settings for the shared-store bridge client.
type Bridge struct {
	// HTTPAddress is the address of the shared-store daemon in "host:port"
	// format (e.g. "127.0.0.1:8790").
	// Env: BRIDGE_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the per-call bound after which the bridge is treated
	// as unavailable for the current cycle (e.g. "5s").
	// Env: BRIDGE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Net holds connectivity-monitor settings.
type Net struct {
	// ProbeURL is the known external endpoint whose reachability defines
	// "online". A link can report connected while having no real route, so
	// the probe always performs a live request.
	// Env: NET_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// ProbeTimeout bounds a single reachability check; an unfinished probe
	// counts as offline.
	// Env: NET_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// PollInterval is how often the monitor samples connectivity.
	// Env: NET_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// Debounce is the stability window a connectivity flip must survive
	// before it is reported, suppressing transient link flaps.
	// Env: NET_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`
}

// Sync holds background synchronization settings.
type Sync struct {
	// Interval is the periodic reconciliation interval while online
	// (e.g. "5m").
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
}

// Server holds network and timeout settings for the shared-store daemon.
type Server struct {
	// HTTPAddress is the TCP address on which the daemon listens, in
	// "host:port" format (e.g. "127.0.0.1:8790").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads and merges the application configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source fails
// to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
