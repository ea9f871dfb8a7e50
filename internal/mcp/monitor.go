package mcp

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/docuveil/docuveil/internal/logger"
)

// ProbeInterval is how often the monitor re-checks the proxy.
const ProbeInterval = 15 * time.Second

// Monitor caches proxy availability so request paths never block on a
// probe. Reads are lock-free.
type Monitor struct {
	client    *Client
	interval  time.Duration
	available atomic.Bool
	logger    *logger.Logger
}

// NewMonitor creates a monitor around client. Call Run to start probing.
func NewMonitor(client *Client, log *logger.Logger) *Monitor {
	if log == nil {
		log = logger.Get()
	}
	return &Monitor{client: client, interval: ProbeInterval, logger: log}
}

// Run probes immediately, then on every tick until ctx is cancelled.
// Intended to run as a goroutine.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// Available reports the last probe outcome.
func (m *Monitor) Available() bool {
	return m.available.Load()
}

func (m *Monitor) probe(ctx context.Context) {
	up := m.client.Available(ctx)
	was := m.available.Swap(up)
	if up != was {
		if up {
			m.logger.WithOperation("mcp.monitor").Info("proxy is available")
		} else {
			m.logger.WithOperation("mcp.monitor").Warn("proxy is unavailable")
		}
	}
}
