package gateway

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// DefaultProbeInterval matches the UI's health banner cadence.
const DefaultProbeInterval = 30 * time.Second

// Monitor probes the backend immediately and then on a fixed interval
// for the life of its context, pushing every outcome to the OnStatus
// callback. Ticks that fire while a probe is still outstanding are
// dropped so slow probes never pile up.
type Monitor struct {
	Gateway  Gateway
	Interval time.Duration
	OnStatus func(Status)

	inFlight atomic.Bool
}

// Run blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	m.probe(ctx)

	ticker := time.NewTicker(interval)
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

func (m *Monitor) probe(ctx context.Context) {
	if !m.inFlight.CompareAndSwap(false, true) {
		log.Println("[HealthMonitor] previous probe still in flight, skipping tick")
		return
	}
	go func() {
		defer m.inFlight.Store(false)
		status := m.Gateway.CheckHealth(ctx)
		if m.OnStatus != nil {
			m.OnStatus(status)
		}
	}()
}
