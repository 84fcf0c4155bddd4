package config

import (
	"fmt"
	"time"
)

// Defaults applied when a source leaves a field unset.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultRequestTimeout = 5 * time.Second
	DefaultProbeTimeout   = 3 * time.Second
	DefaultPollInterval   = 2 * time.Second
	DefaultDebounce       = 1500 * time.Millisecond
)

// InstanceConfig is the configuration view consumed by one app instance.
type InstanceConfig struct {
	// Instance identifies this app instance.
	Instance Instance
	// Storage contains the local store settings.
	Storage Storage
	// Bridge contains the shared-store bridge settings.
	Bridge Bridge
	// Net contains connectivity monitor settings.
	Net Net
	// Sync contains background sync settings.
	Sync Sync
}

// SharedConfig is the configuration view consumed by the shared-store daemon.
type SharedConfig struct {
	// Storage contains the shared store settings.
	Storage Storage
	// Server contains the daemon listen settings.
	Server Server
}

// GetInstanceConfig builds and validates an instance-specific config view
// from the merged structured configuration, applying defaults to unset
// duration fields.
func GetInstanceConfig() (*InstanceConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	instanceCfg := &InstanceConfig{
		Instance: cfg.Instance,
		Storage:  cfg.Storage,
		Bridge:   cfg.Bridge,
		Net:      cfg.Net,
		Sync:     cfg.Sync,
	}
	instanceCfg.applyDefaults()

	return instanceCfg, instanceCfg.validate()
}

// GetSharedConfig builds and validates the daemon config view from the merged
// structured configuration.
func GetSharedConfig() (*SharedConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	sharedCfg := &SharedConfig{
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}
	if sharedCfg.Server.RequestTimeout == 0 {
		sharedCfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	return sharedCfg, sharedCfg.validate()
}

func (cfg *InstanceConfig) applyDefaults() {
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Bridge.RequestTimeout == 0 {
		cfg.Bridge.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Net.ProbeTimeout == 0 {
		cfg.Net.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Net.PollInterval == 0 {
		cfg.Net.PollInterval = DefaultPollInterval
	}
	if cfg.Net.Debounce == 0 {
		cfg.Net.Debounce = DefaultDebounce
	}
}

func (cfg *InstanceConfig) validate() error {
	if cfg.Instance.ID == "" {
		return ErrInvalidInstanceConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Bridge.HTTPAddress == "" {
		return ErrInvalidBridgeConfigs
	}

	if cfg.Net.ProbeURL == "" {
		return ErrInvalidNetConfigs
	}

	return nil
}

func (cfg *SharedConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
