// Package snapshot keeps an in-memory copy of the backend's raw job listing
// and refreshes it on a cron cadence.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"timviec/internal/domain/job"
)

// Lister is the bulk listing collaborator.
type Lister interface {
	ListJobs(ctx context.Context) ([]job.Record, error)
}

// Invalidator drops derived result pages after a snapshot change.
type Invalidator interface {
	InvalidateJobPages(ctx context.Context) error
}

// Refresher drives periodic snapshot refreshes. The listing fetch itself is
// not retried here; the next tick simply tries again.
type Refresher struct {
	store       *Store
	lister      Lister
	invalidator Invalidator
	cron        *cron.Cron
	spec        string
	logger      *log.Logger
}

func NewRefresher(store *Store, lister Lister, invalidator Invalidator, intervalMinutes int, logger *log.Logger) *Refresher {
	if intervalMinutes <= 0 {
		intervalMinutes = 10
	}
	return &Refresher{
		store:       store,
		lister:      lister,
		invalidator: invalidator,
		cron:        cron.New(),
		spec:        fmt.Sprintf("@every %dm", intervalMinutes),
		logger:      logger,
	}
}

// Start registers the cron entry and runs one refresh immediately so the
// store is populated without waiting for the first tick.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Refresh(ctx); err != nil && r.logger != nil {
			r.logger.Printf("[Snapshot] scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	r.cron.Start()
	if r.logger != nil {
		r.logger.Printf("[Snapshot] refresher started spec=%s", r.spec)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Refresh(ctx); err != nil && r.logger != nil {
			r.logger.Printf("[Snapshot] initial refresh failed: %v", err)
		}
	}()
	return nil
}

// Stop halts the cron loop. In-flight refreshes finish on their own and are
// subject to the usual generation check.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

// Refresh fetches the listing once and applies it under a fresh generation.
// A stale result (a newer refresh applied first) is dropped without error.
func (r *Refresher) Refresh(ctx context.Context) error {
	gen := r.store.NextGeneration()

	records, err := r.lister.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	if !r.store.Apply(gen, records) {
		if r.logger != nil {
			r.logger.Printf("[Snapshot] dropped stale refresh gen=%d", gen)
		}
		return nil
	}
	if r.logger != nil {
		r.logger.Printf("[Snapshot] applied refresh gen=%d records=%d", gen, len(records))
	}

	if r.invalidator != nil {
		if err := r.invalidator.InvalidateJobPages(ctx); err != nil && r.logger != nil {
			r.logger.Printf("[Snapshot] page cache invalidation failed: %v", err)
		}
	}
	return nil
}
