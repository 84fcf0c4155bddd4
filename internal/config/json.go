package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Instance struct {
		ID string `json:"id"`
	} `json:"instance,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Bridge struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"bridge,omitempty"`

	Net struct {
		ProbeURL     string   `json:"probe_url"`
		ProbeTimeout Duration `json:"probe_timeout"`
		PollInterval Duration `json:"poll_interval"`
		Debounce     Duration `json:"debounce"`
	} `json:"net,omitempty"`

	Sync struct {
		Interval Duration `json:"interval"`
	} `json:"sync,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Instance: Instance{
			ID: jsonCfg.Instance.ID,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Bridge: Bridge{
			HTTPAddress:    jsonCfg.Bridge.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Bridge.RequestTimeout),
		},
		Net: Net{
			ProbeURL:     jsonCfg.Net.ProbeURL,
			ProbeTimeout: time.Duration(jsonCfg.Net.ProbeTimeout),
			PollInterval: time.Duration(jsonCfg.Net.PollInterval),
			Debounce:     time.Duration(jsonCfg.Net.Debounce),
		},
		Sync: Sync{
			Interval: time.Duration(jsonCfg.Sync.Interval),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
