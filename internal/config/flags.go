package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port] (shared-store daemon)
//	-b bridge address in format [host]:[port] (app instance)
//	-d database DSN (SQLite file path)
//	-i instance identifier
//	-sync-interval periodic sync interval (e.g., "5m")
//	-request-timeout bridge/server request timeout (e.g., "5s")
//	-probe-url connectivity probe endpoint
//	-probe-timeout connectivity probe timeout (e.g., "3s")
//	-debounce connectivity flap suppression window (e.g., "1500ms")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress, bridgeAddress NetAddress
	var databaseDSN string
	var instanceID string
	var syncInterval time.Duration
	var requestTimeout time.Duration
	var probeURL string
	var probeTimeout time.Duration
	var pollInterval time.Duration
	var debounce time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&bridgeAddress, "b", "Bridge address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&instanceID, "i", "", "Instance identifier")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 5m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 5s, 1m)")
	flag.StringVar(&probeURL, "probe-url", "", "Connectivity probe URL")
	flag.DurationVar(&probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (e.g., 3s)")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Connectivity poll interval (e.g., 2s)")
	flag.DurationVar(&debounce, "debounce", 0, "Connectivity debounce window (e.g., 1500ms)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Instance: Instance{
			ID: instanceID,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Bridge: Bridge{
			HTTPAddress:    bridgeAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Net: Net{
			ProbeURL:     probeURL,
			ProbeTimeout: probeTimeout,
			PollInterval: pollInterval,
			Debounce:     debounce,
		},
		Sync: Sync{
			Interval: syncInterval,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
