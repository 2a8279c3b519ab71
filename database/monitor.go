package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// Pinger is the subset of the pool the monitor needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor periodically health-checks the database connection and retries
// with exponential backoff while it is down
type Monitor struct {
	pinger      Pinger
	interval    time.Duration
	pingTimeout time.Duration
	maxElapsed  time.Duration
	healthy     atomic.Bool
}

// NewMonitor creates a monitor that checks the connection every interval
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	m := &Monitor{
		pinger:      pinger,
		interval:    interval,
		pingTimeout: 5 * time.Second,
		maxElapsed:  2 * time.Minute,
	}
	m.healthy.Store(true)
	return m
}

// Healthy reports the result of the last health check
func (m *Monitor) Healthy() bool {
	return m.healthy.Load()
}

// Check pings the database once and records the result
func (m *Monitor) Check(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	defer cancel()

	err := m.pinger.Ping(pingCtx)
	m.setHealthy(err == nil, err)
	return err
}

// Run checks the connection until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Check(ctx); err != nil {
				m.reconnect(ctx)
			}
		}
	}
}

// reconnect re-pings with exponential backoff until the database answers,
// the backoff gives up, or ctx is cancelled
func (m *Monitor) reconnect(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = m.maxElapsed

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := m.Check(ctx)
		if err != nil {
			log.WithFields(log.Fields{
				"attempt": attempt,
				"error":   err,
			}).Warn("Database still unreachable")
		}
		return err
	}, backoff.WithContext(b, ctx))

	if err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Giving up reconnecting to database until next health check")
	}
}

func (m *Monitor) setHealthy(healthy bool, err error) {
	was := m.healthy.Swap(healthy)
	switch {
	case was && !healthy:
		log.WithError(err).Error("Database connection lost")
	case !was && healthy:
		log.Info("Database connection recovered")
	}
}
