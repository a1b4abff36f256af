package enrich

import (
	"context"
	"log"
	"sync"
	"time"
)

// Detail is the denormalized payload attached to a visible record.
type Detail struct {
	CompanyLogo string
}

// FetchFunc loads the detail payload for one job id from the backend.
type FetchFunc func(ctx context.Context, jobID int64) (*Detail, error)

// entry tracks one key through absent → pending → {resolved | absent}.
// done is closed when the underlying fetch settles; value stays nil on
// failure.
type entry struct {
	done  chan struct{}
	value *Detail
}

// Cache memoizes detail lookups per job id. Concurrent Gets for the same
// unresolved key share a single in-flight fetch; a failed fetch is not
// cached, so the next Get retries. Resolved values are kept for the cache
// lifetime. Construct one per browsing session (or per test) rather than
// sharing a package singleton.
type Cache struct {
	mu      sync.Mutex
	entries map[int64]*entry

	fetch        FetchFunc
	fetchTimeout time.Duration
	logger       *log.Logger
}

const defaultFetchTimeout = 10 * time.Second

// NewCache builds a cache around fetch. fetchTimeout bounds each underlying
// fetch; zero or negative selects a default. A timed-out fetch is an
// ordinary failure and reverts the key to absent.
func NewCache(fetch FetchFunc, fetchTimeout time.Duration, logger *log.Logger) *Cache {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Cache{
		entries:      make(map[int64]*entry),
		fetch:        fetch,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Get returns the detail for jobID, waiting for an in-flight fetch if one
// exists and starting one otherwise. It returns nil when the fetch failed
// or ctx expired first; enrichment is best-effort and never surfaces an
// error to the caller.
func (c *Cache) Get(ctx context.Context, jobID int64) *Detail {
	c.mu.Lock()
	e, ok := c.entries[jobID]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[jobID] = e
		go c.resolve(jobID, e)
	}
	c.mu.Unlock()

	select {
	case <-e.done:
		return e.value
	case <-ctx.Done():
		// The fetch keeps running so later callers can still hit the
		// resolved value.
		return nil
	}
}

// Resolved reports whether jobID currently has a settled value. Pending
// keys report false.
func (c *Cache) Resolved(jobID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[jobID]
	if !ok {
		return false
	}
	select {
	case <-e.done:
		return e.value != nil
	default:
		return false
	}
}

// resolve runs the fetch on its own bounded context, detached from any one
// caller, so a cancelled caller cannot fail the shared lookup.
func (c *Cache) resolve(jobID int64, e *entry) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	value, err := c.fetch(ctx, jobID)
	if err != nil || value == nil {
		if err != nil && c.logger != nil {
			c.logger.Printf("[Enrich] detail fetch failed job_id=%d err=%v", jobID, err)
		}
		c.mu.Lock()
		delete(c.entries, jobID)
		c.mu.Unlock()
		close(e.done)
		return
	}

	e.value = value
	close(e.done)
}
