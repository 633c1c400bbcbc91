// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/metrics"
	"github.com/MKhiriev/go-contacts/internal/store"
)

const pingTimeout = 2 * time.Second

// DBHealthWorker pings the database every interval and publishes the result
// to /healthz, the gRPC health service and the contacts_database_up gauge.
type DBHealthWorker struct {
	pinger   store.Pinger
	interval time.Duration
	healthy  atomic.Bool

	mu        sync.Mutex
	listeners []func(bool)

	logger *logger.Logger
}

// NewDBHealthWorker returns a worker probing pinger. A nil pinger (the
// in-memory store) is always healthy and Run does nothing.
func NewDBHealthWorker(pinger store.Pinger, cfg config.Workers, logger *logger.Logger) *DBHealthWorker {
	w := &DBHealthWorker{
		pinger:   pinger,
		interval: cfg.HealthCheckInterval,
		logger:   logger,
	}
	w.healthy.Store(true)
	metrics.SetDatabaseUp(true)

	return w
}

// Healthy reports the outcome of the latest probe.
func (w *DBHealthWorker) Healthy() bool {
	return w.healthy.Load()
}

// OnChange registers fn to be called with every status change.
func (w *DBHealthWorker) OnChange(fn func(healthy bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *DBHealthWorker) Run(ctx context.Context) {
	if w.pinger == nil || w.interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.probe(ctx)
			}
		}
	}()
}

func (w *DBHealthWorker) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := w.pinger.PingContext(pingCtx)
	up := err == nil
	metrics.SetDatabaseUp(up)

	if w.healthy.Swap(up) == up {
		return
	}
	if up {
		w.logger.Info().Msg("database is reachable again")
	} else {
		w.logger.Err(err).Msg("database ping failed")
	}

	w.mu.Lock()
	listeners := append([]func(bool){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(up)
	}
}
