// Package netmon tracks shared-store reachability for the sync engine.
//
// Connectivity is probed actively: the monitor asks "can I reach the probe
// target right now" on a fixed cadence and turns the answers into a
// deduplicated, debounced stream of online/offline transitions. Flapping
// links (a reading that disagrees with the current state but does not persist
// for the stability window) produce no transitions.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/utils"
)

// ProbeFunc answers whether the shared store is reachable right now. The
// probe must honour ctx cancellation and return within the probe timeout.
type ProbeFunc func(ctx context.Context) bool

type Monitor struct {
	probe    ProbeFunc
	interval time.Duration
	debounce time.Duration

	mu     sync.Mutex
	online bool
	subs   map[int]chan bool
	next   int

	logger *logger.Logger
}

// NewMonitor builds a Monitor with an HTTP HEAD probe against cfg.ProbeURL.
// Any HTTP response counts as reachable; only transport failures count as
// offline.
func NewMonitor(cfg config.Net, logger *logger.Logger) *Monitor {
	client := utils.NewHTTPClient()
	client.SetTimeout(cfg.ProbeTimeout)

	probe := func(ctx context.Context) bool {
		_, err := client.R().SetContext(ctx).Head(cfg.ProbeURL)
		return err == nil
	}

	return NewMonitorWithProbe(probe, cfg.PollInterval, cfg.Debounce, logger)
}

// NewMonitorWithProbe builds a Monitor around a custom probe. Tests inject
// deterministic probes here.
func NewMonitorWithProbe(probe ProbeFunc, interval, debounce time.Duration, logger *logger.Logger) *Monitor {
	return &Monitor{
		probe:    probe,
		interval: interval,
		debounce: debounce,
		subs:     make(map[int]chan bool),
		logger:   logger,
	}
}

// IsOnline performs a live probe and returns the result. It does not consult
// or update the debounced state; callers that need the settled view should
// watch Changes.
func (m *Monitor) IsOnline(ctx context.Context) bool {
	return m.probe(ctx)
}

// Online returns the current debounced state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Changes returns a stream of debounced connectivity transitions. The first
// value arrives after Run settles the initial state; consecutive equal states
// are never delivered. Slow consumers only ever see the latest state: a
// pending unread value is replaced, not queued behind.
func (m *Monitor) Changes() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan bool, 1)
	m.subs[m.next] = ch
	m.next++
	return ch
}

// Run drives the poll loop until ctx is cancelled. The first probe settles
// the initial state immediately (no debounce) and is announced to
// subscribers; after that a disagreeing reading must persist for the
// stability window before it becomes a transition.
func (m *Monitor) Run(ctx context.Context) {
	initial := m.probe(ctx)
	m.mu.Lock()
	m.online = initial
	m.mu.Unlock()
	m.logger.Info().
		Str("func", "Monitor.Run").
		Bool("online", initial).
		Msg("connectivity state settled")
	m.publish(initial)

	var (
		pending      bool
		pendingSet   bool
		pendingSince time.Time
	)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		observed := m.probe(ctx)

		m.mu.Lock()
		current := m.online
		m.mu.Unlock()

		switch {
		case observed == current:
			pendingSet = false

		case !pendingSet || pending != observed:
			pending = observed
			pendingSet = true
			pendingSince = time.Now()

		case time.Since(pendingSince) >= m.debounce:
			pendingSet = false
			m.mu.Lock()
			m.online = observed
			m.mu.Unlock()
			m.logger.Info().
				Str("func", "Monitor.Run").
				Bool("online", observed).
				Msg("connectivity state changed")
			m.publish(observed)
		}
	}
}

func (m *Monitor) publish(state bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- state:
		default:
			// replace the stale unread value with the latest state
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}
